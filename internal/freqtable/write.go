package freqtable

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"go.uber.org/multierr"
)

// Write writes two groups of frequencies to w in the table format:
// character frequencies first, then word frequencies.
// Records are sorted by symbol within each group.
// Symbols with a zero count are omitted.
func Write(w io.Writer, chars, words map[string]int) error {
	bw := bufio.NewWriter(w)
	for _, group := range []map[string]int{chars, words} {
		syms := make([]string, 0, len(group))
		for sym, n := range group {
			if n > 0 {
				syms = append(syms, sym)
			}
		}
		sort.Strings(syms)

		for _, sym := range syms {
			if sym != Newline {
				bw.WriteString(sym)
			}
			bw.WriteByte(':')
			bw.WriteString(strconv.Itoa(group[sym]))
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

// Save writes the frequencies to the file at path,
// replacing it if it already exists.
func Save(path string, chars, words map[string]int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	return Write(f, chars, words)
}
