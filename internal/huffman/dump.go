package huffman

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Dump writes a human-readable listing of the code table to w:
// one symbol per line with its frequency and code,
// shortest codes first.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	type row struct {
		label string
		freq  int
		code  Code
	}

	rows := make([]row, 0, len(t.codes))
	var labelWidth, freqWidth int
	for _, n := range t.nodes {
		if !n.isLeaf() {
			continue
		}

		r := row{
			label: displaySymbol(n.Symbol),
			freq:  n.Freq,
			code:  t.codes[n.Symbol],
		}
		rows = append(rows, r)
		labelWidth = max(labelWidth, runewidth.StringWidth(r.label))
		freqWidth = max(freqWidth, len(strconv.Itoa(r.freq)))
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i].code, rows[j].code
		if a.Size != b.Size {
			return a.Size < b.Size
		}
		return a.Bits < b.Bits
	})

	var buf bytes.Buffer
	for _, r := range rows {
		buf.WriteString(runewidth.FillRight(r.label, labelWidth))
		fmt.Fprintf(&buf, "  %*d  %v\n", freqWidth, r.freq, r.code)
	}
	return buf.WriteTo(w)
}

// displaySymbol quotes symbols that would otherwise be invisible
// or ambiguous in a listing.
func displaySymbol(sym string) string {
	if len(sym) == 0 || sym[0] == '"' {
		return strconv.Quote(sym)
	}
	for _, r := range sym {
		if !unicode.IsPrint(r) || unicode.IsSpace(r) {
			return strconv.Quote(sym)
		}
	}
	return sym
}
