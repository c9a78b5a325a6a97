// Package analysis derives structural properties from raw text.
package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/kailas-cloud/stranalyzer/internal/domain"
)

// Record is the immutable result of analyzing one input string.
type Record struct {
	input            string
	length           int
	isPalindrome     bool
	uniqueCharacters int
	wordCount        int
	sha256Hash       string
	frequencies      Frequencies
}

// Analyze computes the properties of input.
// Palindrome and frequency logic run on the normalized form (lowercase, no whitespace),
// word count and hash on the cleaned form (collapsed whitespace, trimmed).
func Analyze(input string) (Record, error) {
	if input == "" {
		return Record{}, fmt.Errorf("input is required: %w", domain.ErrInvalidInput)
	}

	cleaned := Clean(input)
	normalized := Normalize(cleaned)
	reversed := reverse(normalized)

	frequencies := countFrequencies(normalized)
	sum := sha256.Sum256([]byte(cleaned))

	return Record{
		input:            input,
		length:           len(utf16.Encode([]rune(input))),
		isPalindrome:     normalized == reversed,
		uniqueCharacters: frequencies.Len(),
		wordCount:        countWords(cleaned),
		sha256Hash:       hex.EncodeToString(sum[:]),
		frequencies:      frequencies,
	}, nil
}

// Clean collapses every whitespace run to a single space and trims the edges.
func Clean(s string) string {
	return strings.Join(strings.FieldsFunc(s, isSpace), " ")
}

// Normalize lowercases s and strips all whitespace.
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if isSpace(r) {
			return -1
		}
		return r
	}, strings.ToLower(s))
}

// isSpace reports whether r is whitespace or a line terminator in the ECMAScript sense.
// Unlike unicode.IsSpace it excludes U+0085 and includes U+FEFF.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u00A0', '\u1680', '\u2028', '\u2029', '\u202F', '\u205F', '\u3000', '\uFEFF':
		return true
	}
	return r >= '\u2000' && r <= '\u200A'
}

// reverse works on runes, so a lone astral character reads the same reversed.
func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

func countWords(cleaned string) int {
	if cleaned == "" {
		return 0
	}
	return strings.Count(cleaned, " ") + 1
}

// Input returns the original text exactly as submitted.
func (r Record) Input() string { return r.input }

// Length returns the input length in UTF-16 code units.
func (r Record) Length() int { return r.length }

// IsPalindrome reports whether the normalized form reads the same reversed.
func (r Record) IsPalindrome() bool { return r.isPalindrome }

// UniqueCharacters returns the number of distinct characters in the normalized form.
func (r Record) UniqueCharacters() int { return r.uniqueCharacters }

// WordCount returns the number of space-separated tokens in the cleaned form.
func (r Record) WordCount() int { return r.wordCount }

// SHA256Hash returns the hex digest of the cleaned form.
func (r Record) SHA256Hash() string { return r.sha256Hash }

// Frequencies returns a copy of the character frequency map.
func (r Record) Frequencies() Frequencies { return r.frequencies.clone() }
