// Package freqtable reads, writes, and computes symbol frequency tables.
//
// A table file holds one record per line in the form
//
//	symbol:count
//
// The record is split on the last colon, so symbols may contain colons.
// An empty symbol stands for the newline character.
// No other escaping is performed.
package freqtable

import (
	"sort"
	"strconv"

	"github.com/abhinav/sempress/internal/huffman"
	"github.com/cespare/xxhash/v2"
)

// EOF is the reserved end-of-stream symbol.
// Every Table holds it with a frequency of 1,
// regardless of what the source says.
const EOF = "EOF"

// Newline is the symbol for the newline character.
// It is written to table files as an empty symbol.
const Newline = "\n"

// Table is an immutable mapping from symbols to their frequencies.
type Table struct {
	freqs map[string]int
}

// New builds a Table from the given frequencies.
// Symbols with a zero count are dropped.
// The EOF symbol is added with a frequency of 1.
//
// Returns an error if a count is negative,
// or if no symbols remain besides EOF.
func New(freqs map[string]int) (*Table, error) {
	t := Table{freqs: make(map[string]int, len(freqs)+1)}
	for sym, n := range freqs {
		switch {
		case n < 0:
			return nil, &huffman.InvalidFrequencyError{Symbol: sym, Freq: n}
		case n > 0 && len(sym) > 0:
			t.freqs[sym] = n
		}
	}
	return t.finish("")
}

func (t *Table) finish(path string) (*Table, error) {
	delete(t.freqs, EOF)
	if len(t.freqs) == 0 {
		return nil, &huffman.EmptyTableError{Path: path}
	}
	t.freqs[EOF] = 1
	return t, nil
}

// Len reports the number of symbols in the table, including EOF.
func (t *Table) Len() int { return len(t.freqs) }

// Freq returns the frequency of the given symbol,
// or 0 if the table doesn't have it.
func (t *Table) Freq(sym string) int { return t.freqs[sym] }

// Freqs returns a copy of the symbol frequencies.
func (t *Table) Freqs() map[string]int {
	freqs := make(map[string]int, len(t.freqs))
	for sym, n := range t.freqs {
		freqs[sym] = n
	}
	return freqs
}

// Symbols returns the symbols in the table in lexicographic order.
func (t *Table) Symbols() []string {
	syms := make([]string, 0, len(t.freqs))
	for sym := range t.freqs {
		syms = append(syms, sym)
	}
	sort.Strings(syms)
	return syms
}

// Fingerprint returns a hash of the table's contents.
// Two tables have the same fingerprint if they hold the same records,
// regardless of the order in which they were read.
func (t *Table) Fingerprint() uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 64)
	for _, sym := range t.Symbols() {
		buf = buf[:0]
		buf = strconv.AppendQuote(buf, sym)
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, int64(t.freqs[sym]), 10)
		buf = append(buf, '\n')
		_, _ = d.Write(buf)
	}
	return d.Sum64()
}
