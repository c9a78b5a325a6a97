// Package query translates free-text phrases into filter specs using fixed pattern rules.
package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kailas-cloud/stranalyzer/internal/domain"
	"github.com/kailas-cloud/stranalyzer/internal/domain/analysis/filter"
)

var (
	wordCountRe  = regexp.MustCompile(`(\d+)\s*word`)
	longerThanRe = regexp.MustCompile(`longer than\s*(\d+)`)
	shorterRe    = regexp.MustCompile(`shorter than\s*(\d+)`)
	containingRe = regexp.MustCompile(`containing (?:letter |character )?([a-z])`)
)

// rule inspects the normalized phrase and may set or overwrite fields of spec.
type rule func(phrase string, spec *filter.Spec) error

// rules run in order; later rules win on the same field.
var rules = []rule{
	palindromeRule,
	notPalindromeRule,
	wordCountRule,
	intRule(longerThanRe, filter.FieldMinLength, func(s *filter.Spec, v int) { s.MinLength = &v }),
	intRule(shorterRe, filter.FieldMaxLength, func(s *filter.Spec, v int) { s.MaxLength = &v }),
	containingRule,
}

// Interpret parses phrase into a filter spec.
// Returns domain.ErrUnparsableQuery if no rule produced a constraint.
func Interpret(phrase string) (filter.Spec, error) {
	normalized := strings.TrimSpace(strings.ToLower(phrase))

	var spec filter.Spec
	for _, r := range rules {
		if err := r(normalized, &spec); err != nil {
			return filter.Spec{}, err
		}
	}

	if spec.IsEmpty() {
		return filter.Spec{}, fmt.Errorf(
			"%q: include words like \"palindrome\", \"longer than\" or \"single word\": %w",
			phrase, domain.ErrUnparsableQuery,
		)
	}
	return spec, nil
}

func palindromeRule(phrase string, spec *filter.Spec) error {
	if strings.Contains(phrase, "palindrome") || strings.Contains(phrase, "palindromic") {
		spec.IsPalindrome = filter.Bool(true)
	}
	return nil
}

// notPalindromeRule runs after palindromeRule: every negated phrase also contains
// the positive keyword, so the negation always overrides it.
func notPalindromeRule(phrase string, spec *filter.Spec) error {
	if strings.Contains(phrase, "not palindrome") || strings.Contains(phrase, "not palindromic") {
		spec.IsPalindrome = filter.Bool(false)
	}
	return nil
}

func wordCountRule(phrase string, spec *filter.Spec) error {
	if m := wordCountRe.FindStringSubmatch(phrase); m != nil {
		v, err := atoi(filter.FieldWordCount, m[1])
		if err != nil {
			return err
		}
		spec.WordCount = &v
		return nil
	}
	if strings.Contains(phrase, "single word") {
		spec.WordCount = filter.Int(1)
	}
	return nil
}

func intRule(re *regexp.Regexp, field string, set func(*filter.Spec, int)) rule {
	return func(phrase string, spec *filter.Spec) error {
		m := re.FindStringSubmatch(phrase)
		if m == nil {
			return nil
		}
		v, err := atoi(field, m[1])
		if err != nil {
			return err
		}
		set(spec, v)
		return nil
	}
}

func containingRule(phrase string, spec *filter.Spec) error {
	if m := containingRe.FindStringSubmatch(phrase); m != nil {
		spec.ContainsCharacter = filter.String(m[1])
	}
	return nil
}

func atoi(field, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, domain.NewInvalidFilter(field, "number out of range")
	}
	return v, nil
}
