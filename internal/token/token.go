// Package token implements longest-match lookup over a fixed vocabulary.
//
// Tokens are bucketed by length.
// A lookup probes the buckets from the longest length down,
// so it costs one map lookup per distinct token length
// rather than one comparison per token.
// The result is the same as scanning the vocabulary sorted by
// descending length and taking the first token that matches:
// two distinct tokens of the same length can never both match
// at the same position.
package token

import "sort"

// Matcher finds the longest vocabulary token at the start of a byte slice.
// A Matcher is immutable and safe for concurrent use.
type Matcher struct {
	byLen   map[int]map[string]string // length => token => token
	lengths []int                     // distinct lengths, longest first
	size    int
}

// NewMatcher builds a Matcher for the given vocabulary.
// Empty and duplicate tokens are ignored.
func NewMatcher(vocab []string) *Matcher {
	m := Matcher{byLen: make(map[int]map[string]string)}
	for _, tok := range vocab {
		n := len(tok)
		if n == 0 {
			continue
		}

		bucket, ok := m.byLen[n]
		if !ok {
			bucket = make(map[string]string)
			m.byLen[n] = bucket
			m.lengths = append(m.lengths, n)
		}
		if _, ok := bucket[tok]; !ok {
			bucket[tok] = tok
			m.size++
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(m.lengths)))
	return &m
}

// Match returns the longest token that data starts with.
func (m *Matcher) Match(data []byte) (tok string, ok bool) {
	for _, n := range m.lengths {
		if n > len(data) {
			continue
		}
		// The compiler does not allocate for string(b) in map lookups.
		if tok, ok := m.byLen[n][string(data[:n])]; ok {
			return tok, true
		}
	}
	return "", false
}

// Len reports the number of distinct tokens in the vocabulary.
func (m *Matcher) Len() int { return m.size }

// MaxLen reports the length of the longest token,
// or 0 if the vocabulary is empty.
func (m *Matcher) MaxLen() int {
	if len(m.lengths) == 0 {
		return 0
	}
	return m.lengths[0]
}
