// Package codec compresses text into a stream of Huffman codes
// and back.
//
// The input is split into symbols from a frequency table,
// preferring the longest symbol at each position,
// and each symbol is replaced by its code.
// Codes are packed most significant bit first,
// followed by the code of the EOF symbol,
// and the final byte is padded with zero bits.
// The stream carries no header:
// both directions must use the same table and UnknownPolicy.
package codec

import (
	"github.com/abhinav/sempress/internal/freqtable"
	"github.com/abhinav/sempress/internal/huffman"
)

// Escape is the symbol that prefixes a literal byte
// under UnknownEscape.
const Escape = "ESC"

// BuildTree builds the code tree for the given table.
// With UnknownEscape, the Escape symbol is added with a frequency of 1,
// replacing any Escape record in the table.
func BuildTree(table *freqtable.Table, policy UnknownPolicy) (*huffman.Tree, error) {
	freqs := table.Freqs()
	if policy == UnknownEscape {
		freqs[Escape] = 1
	}
	return huffman.Build(freqs)
}
