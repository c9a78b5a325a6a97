package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// CharCount is a single character frequency entry.
type CharCount struct {
	Char  string
	Count int
}

// Frequencies is a character frequency map that keeps keys in first-occurrence order.
type Frequencies struct {
	entries []CharCount
}

func countFrequencies(s string) Frequencies {
	var f Frequencies
	index := make(map[rune]int)
	for _, r := range s {
		if i, ok := index[r]; ok {
			f.entries[i].Count++
			continue
		}
		index[r] = len(f.entries)
		f.entries = append(f.entries, CharCount{Char: string(r), Count: 1})
	}
	return f
}

// Len returns the number of distinct characters.
func (f Frequencies) Len() int { return len(f.entries) }

// Entries returns the entries in first-occurrence order.
func (f Frequencies) Entries() []CharCount {
	out := make([]CharCount, len(f.entries))
	copy(out, f.entries)
	return out
}

func (f Frequencies) clone() Frequencies {
	return Frequencies{entries: f.Entries()}
}

// MarshalJSON encodes the frequencies as a JSON object preserving key order.
func (f Frequencies) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range f.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Char)
		if err != nil {
			return nil, fmt.Errorf("marshal frequency key: %w", err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(e.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
