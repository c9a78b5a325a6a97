// Package filter selects analysis records by structural properties.
package filter

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/stranalyzer/internal/domain"
	"github.com/kailas-cloud/stranalyzer/internal/domain/analysis"
)

// Field names as exposed to clients.
const (
	FieldIsPalindrome      = "is_palindrome"
	FieldMinLength         = "min_length"
	FieldMaxLength         = "max_length"
	FieldWordCount         = "word_count"
	FieldContainsCharacter = "contains_character"
)

// Spec is a conjunction of optional constraints. A nil field imposes no constraint.
type Spec struct {
	IsPalindrome      *bool   `json:"is_palindrome,omitempty"`
	MinLength         *int    `json:"min_length,omitempty"`
	MaxLength         *int    `json:"max_length,omitempty"`
	WordCount         *int    `json:"word_count,omitempty"`
	ContainsCharacter *string `json:"contains_character,omitempty"`
}

// Raw holds unvalidated filter values, e.g. straight from a querystring.
type Raw struct {
	IsPalindrome      *string
	MinLength         *string
	MaxLength         *string
	WordCount         *string
	ContainsCharacter *string
}

// Parse validates raw values and builds a Spec.
// Fields are checked in declaration order; the first invalid one is reported.
func Parse(raw Raw) (Spec, error) {
	var spec Spec

	if raw.IsPalindrome != nil {
		v, ok := parseBool(*raw.IsPalindrome)
		if !ok {
			return Spec{}, domain.NewInvalidFilter(FieldIsPalindrome, "must be true or false")
		}
		spec.IsPalindrome = &v
	}

	var err error
	if spec.MinLength, err = parseInt(FieldMinLength, raw.MinLength); err != nil {
		return Spec{}, err
	}
	if spec.MaxLength, err = parseInt(FieldMaxLength, raw.MaxLength); err != nil {
		return Spec{}, err
	}
	if spec.WordCount, err = parseInt(FieldWordCount, raw.WordCount); err != nil {
		return Spec{}, err
	}

	if raw.ContainsCharacter != nil {
		c := *raw.ContainsCharacter
		spec.ContainsCharacter = &c
	}

	if err := spec.Validate(); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

// Validate checks constraints that typed fields cannot express.
func (s Spec) Validate() error {
	if s.ContainsCharacter != nil && utf8.RuneCountInString(*s.ContainsCharacter) != 1 {
		return domain.NewInvalidFilter(FieldContainsCharacter, "must be a single character")
	}
	return nil
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	default:
		return false, false
	}
}

func parseInt(field string, s *string) (*int, error) {
	if s == nil {
		return nil, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(*s))
	if err != nil {
		return nil, domain.NewInvalidFilter(field, "must be an integer")
	}
	return &v, nil
}

// IsEmpty reports whether the spec has no constraints.
func (s Spec) IsEmpty() bool {
	return s.IsPalindrome == nil && s.MinLength == nil && s.MaxLength == nil &&
		s.WordCount == nil && s.ContainsCharacter == nil
}

// Matches reports whether r satisfies every present constraint.
func (s Spec) Matches(r analysis.Record) bool {
	if s.IsPalindrome != nil && r.IsPalindrome() != *s.IsPalindrome {
		return false
	}
	if s.MinLength != nil && r.Length() < *s.MinLength {
		return false
	}
	if s.MaxLength != nil && r.Length() > *s.MaxLength {
		return false
	}
	if s.WordCount != nil && r.WordCount() != *s.WordCount {
		return false
	}
	if s.ContainsCharacter != nil &&
		!strings.Contains(strings.ToLower(r.Input()), strings.ToLower(*s.ContainsCharacter)) {
		return false
	}
	return true
}

// Apply returns the entries whose records match s, preserving their order.
func Apply(s Spec, entries []analysis.Entry) []analysis.Entry {
	if s.IsEmpty() {
		return entries
	}
	out := make([]analysis.Entry, 0, len(entries))
	for _, e := range entries {
		if s.Matches(e.Record()) {
			out = append(out, e)
		}
	}
	return out
}

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }
