package stranalyzer

import (
	"time"

	domanalysis "github.com/kailas-cloud/stranalyzer/internal/domain/analysis"
	"github.com/kailas-cloud/stranalyzer/internal/domain/analysis/filter"
)

// CharCount is the number of occurrences of one character.
type CharCount struct {
	Char  string
	Count int
}

// Analysis holds the computed properties of one stored string.
type Analysis struct {
	ID               string // same as SHA256Hash
	Value            string
	Length           int
	IsPalindrome     bool
	UniqueCharacters int
	WordCount        int
	SHA256Hash       string
	// Frequencies lists characters of the normalized form in first-occurrence order.
	Frequencies []CharCount
	CreatedAt   time.Time
}

// Filter selects analyses. Nil fields impose no constraint.
type Filter struct {
	IsPalindrome      *bool
	MinLength         *int
	MaxLength         *int
	WordCount         *int
	ContainsCharacter *string
}

// QueryResult is the outcome of a natural language query.
type QueryResult struct {
	Query   string
	Filter  Filter
	Results []Analysis
}

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

func (f Filter) toSpec() filter.Spec {
	return filter.Spec{
		IsPalindrome:      f.IsPalindrome,
		MinLength:         f.MinLength,
		MaxLength:         f.MaxLength,
		WordCount:         f.WordCount,
		ContainsCharacter: f.ContainsCharacter,
	}
}

func filterFromSpec(s filter.Spec) Filter {
	return Filter{
		IsPalindrome:      s.IsPalindrome,
		MinLength:         s.MinLength,
		MaxLength:         s.MaxLength,
		WordCount:         s.WordCount,
		ContainsCharacter: s.ContainsCharacter,
	}
}

func analysisFromEntry(e domanalysis.Entry) Analysis {
	rec := e.Record()
	entries := rec.Frequencies().Entries()
	freqs := make([]CharCount, len(entries))
	for i, fe := range entries {
		freqs[i] = CharCount{Char: fe.Char, Count: fe.Count}
	}
	return Analysis{
		ID:               rec.SHA256Hash(),
		Value:            rec.Input(),
		Length:           rec.Length(),
		IsPalindrome:     rec.IsPalindrome(),
		UniqueCharacters: rec.UniqueCharacters(),
		WordCount:        rec.WordCount(),
		SHA256Hash:       rec.SHA256Hash(),
		Frequencies:      freqs,
		CreatedAt:        e.CreatedAt(),
	}
}

func analysesFromEntries(entries []domanalysis.Entry) []Analysis {
	out := make([]Analysis, len(entries))
	for i, e := range entries {
		out[i] = analysisFromEntry(e)
	}
	return out
}
