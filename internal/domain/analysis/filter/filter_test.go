package filter

import (
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/stranalyzer/internal/domain"
	"github.com/kailas-cloud/stranalyzer/internal/domain/analysis"
)

func entries(t *testing.T, inputs ...string) []analysis.Entry {
	t.Helper()
	out := make([]analysis.Entry, len(inputs))
	for i, in := range inputs {
		r, err := analysis.Analyze(in)
		if err != nil {
			t.Fatalf("Analyze(%q): %v", in, err)
		}
		out[i] = analysis.NewEntry(r, time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC))
	}
	return out
}

func inputs(es []analysis.Entry) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Input()
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// --- Parse ---

func TestParse_Empty(t *testing.T) {
	spec, err := Parse(Raw{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !spec.IsEmpty() {
		t.Error("expected empty spec")
	}
}

func TestParse_AllFields(t *testing.T) {
	spec, err := Parse(Raw{
		IsPalindrome:      String("true"),
		MinLength:         String("5"),
		MaxLength:         String("20"),
		WordCount:         String("2"),
		ContainsCharacter: String("a"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.IsPalindrome == nil || !*spec.IsPalindrome {
		t.Error("is_palindrome not parsed")
	}
	if spec.MinLength == nil || *spec.MinLength != 5 {
		t.Error("min_length not parsed")
	}
	if spec.MaxLength == nil || *spec.MaxLength != 20 {
		t.Error("max_length not parsed")
	}
	if spec.WordCount == nil || *spec.WordCount != 2 {
		t.Error("word_count not parsed")
	}
	if spec.ContainsCharacter == nil || *spec.ContainsCharacter != "a" {
		t.Error("contains_character not parsed")
	}
}

func TestParse_BooleanStrings(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"true", true},
		{"1", true},
		{"false", false},
		{"0", false},
	}
	for _, tt := range tests {
		spec, err := Parse(Raw{IsPalindrome: String(tt.in)})
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.in, err)
		}
		if *spec.IsPalindrome != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, *spec.IsPalindrome, tt.want)
		}
	}
}

func TestParse_InvalidFields(t *testing.T) {
	tests := []struct {
		name  string
		raw   Raw
		field string
	}{
		{"bad bool", Raw{IsPalindrome: String("yes")}, FieldIsPalindrome},
		{"bad min", Raw{MinLength: String("abc")}, FieldMinLength},
		{"fractional max", Raw{MaxLength: String("3.5")}, FieldMaxLength},
		{"bad word count", Raw{WordCount: String("")}, FieldWordCount},
		{"long char", Raw{ContainsCharacter: String("ab")}, FieldContainsCharacter},
		{"empty char", Raw{ContainsCharacter: String("")}, FieldContainsCharacter},
		{
			"first invalid wins",
			Raw{IsPalindrome: String("maybe"), MinLength: String("x"), ContainsCharacter: String("xyz")},
			FieldIsPalindrome,
		},
		{
			"order min before word count",
			Raw{MinLength: String("x"), WordCount: String("y")},
			FieldMinLength,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			if !errors.Is(err, domain.ErrInvalidFilter) {
				t.Fatalf("expected ErrInvalidFilter, got %v", err)
			}
			var ife *domain.InvalidFilterError
			if !errors.As(err, &ife) {
				t.Fatalf("expected *InvalidFilterError, got %T", err)
			}
			if ife.Field != tt.field {
				t.Errorf("field = %q, want %q", ife.Field, tt.field)
			}
		})
	}
}

func TestParse_MultibyteCharacter(t *testing.T) {
	spec, err := Parse(Raw{ContainsCharacter: String("é")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *spec.ContainsCharacter != "é" {
		t.Errorf("contains_character = %q", *spec.ContainsCharacter)
	}
}

// --- Apply ---

func TestApply_EmptySpecReturnsAll(t *testing.T) {
	rs := entries(t, "madam", "hello world", "abc")
	got := Apply(Spec{}, rs)
	if !equalStrings(inputs(got), inputs(rs)) {
		t.Errorf("got %v", inputs(got))
	}
}

func TestApply_LengthRangeKeepsOrder(t *testing.T) {
	rs := entries(t, "abc", "madam", "xyz", "a", "hello world", "aba")
	got := Apply(Spec{MinLength: Int(3), MaxLength: Int(3)}, rs)

	want := []string{"abc", "xyz", "aba"}
	if !equalStrings(inputs(got), want) {
		t.Errorf("got %v, want %v", inputs(got), want)
	}
}

func TestApply_Fields(t *testing.T) {
	rs := entries(t, "madam", "Hello World", "racecar", "No lemon no melon", "abc")

	tests := []struct {
		name string
		spec Spec
		want []string
	}{
		{"palindrome", Spec{IsPalindrome: Bool(true)}, []string{"madam", "racecar", "No lemon no melon"}},
		{"not palindrome", Spec{IsPalindrome: Bool(false)}, []string{"Hello World", "abc"}},
		{"min length", Spec{MinLength: Int(7)}, []string{"Hello World", "racecar", "No lemon no melon"}},
		{"max length", Spec{MaxLength: Int(5)}, []string{"madam", "abc"}},
		{"word count exact", Spec{WordCount: Int(2)}, []string{"Hello World"}},
		{"contains ignores case", Spec{ContainsCharacter: String("H")}, []string{"Hello World"}},
		{"contains space", Spec{ContainsCharacter: String(" ")}, []string{"Hello World", "No lemon no melon"}},
		{
			"conjunction",
			Spec{IsPalindrome: Bool(true), WordCount: Int(1), ContainsCharacter: String("c")},
			[]string{"racecar"},
		},
		{"no match", Spec{WordCount: Int(10)}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(tt.spec, rs)
			if !equalStrings(inputs(got), tt.want) {
				t.Errorf("got %v, want %v", inputs(got), tt.want)
			}
		})
	}
}

func TestApply_DoesNotDeduplicate(t *testing.T) {
	rs := entries(t, "aa", "aa")
	if got := Apply(Spec{}, rs); len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestSpec_IsEmpty(t *testing.T) {
	if (Spec{}).IsEmpty() != true {
		t.Error("zero spec must be empty")
	}
	if (Spec{WordCount: Int(0)}).IsEmpty() {
		t.Error("zero-valued constraint is still a constraint")
	}
}

func TestSpec_Validate(t *testing.T) {
	if err := (Spec{MinLength: Int(-1), WordCount: Int(0)}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, c := range []string{"", "ab"} {
		err := Spec{ContainsCharacter: String(c)}.Validate()
		var ife *domain.InvalidFilterError
		if !errors.As(err, &ife) || ife.Field != FieldContainsCharacter {
			t.Errorf("Validate(%q) = %v, want invalid contains_character", c, err)
		}
	}
}
