package codec

import (
	"bufio"
	"io"

	"github.com/abhinav/sempress/internal/freqtable"
	"github.com/abhinav/sempress/internal/huffman"
	"github.com/abhinav/sempress/internal/token"
	bitstream "github.com/dgryski/go-bitstream"
)

// Encoder compresses text with a fixed code tree.
type Encoder struct {
	cfg     config
	codes   map[string]huffman.Code
	matcher *token.Matcher
	eof     huffman.Code
	esc     huffman.Code
}

// NewEncoder builds an encoder for the given tree.
// The tree must hold the EOF symbol,
// and the Escape symbol if UnknownEscape is used.
func NewEncoder(tree *huffman.Tree, opts ...Option) (*Encoder, error) {
	return newEncoder(tree, newConfig(opts))
}

func newEncoder(tree *huffman.Tree, cfg config) (*Encoder, error) {
	codes := tree.Codes()

	eof, ok := codes[freqtable.EOF]
	if !ok {
		return nil, &MissingSymbolError{Symbol: freqtable.EOF}
	}

	var esc huffman.Code
	if cfg.unknown == UnknownEscape {
		esc, ok = codes[Escape]
		if !ok {
			return nil, &MissingSymbolError{Symbol: Escape}
		}
	}

	vocab := make([]string, 0, len(codes))
	for sym := range codes {
		if !cfg.reserved(sym) {
			vocab = append(vocab, sym)
		}
	}

	return &Encoder{
		cfg:     cfg,
		codes:   codes,
		matcher: token.NewMatcher(vocab),
		eof:     eof,
		esc:     esc,
	}, nil
}

// Encode writes the compressed form of src to w.
//
// On error, the returned Stats describe the input consumed so far,
// and w may have received a partial stream.
func (e *Encoder) Encode(w io.Writer, src []byte) (Stats, error) {
	stats := Stats{BytesIn: int64(len(src))}

	cw := countingWriter{W: w}
	buf := bufio.NewWriter(&cw)
	bits := bitstream.NewWriter(buf)

	for pos := 0; pos < len(src); {
		if tok, ok := e.matcher.Match(src[pos:]); ok {
			if err := writeCode(bits, e.codes[tok]); err != nil {
				return stats, err
			}
			stats.Tokens++
			pos += len(tok)
			continue
		}

		c := src[pos]
		switch e.cfg.unknown {
		case UnknownSkip:
			// Nothing to write.

		case UnknownEscape:
			if err := writeCode(bits, e.esc); err != nil {
				return stats, err
			}
			if err := bits.WriteByte(c); err != nil {
				return stats, err
			}

		default:
			return stats, &UnencodableCharacterError{Offset: pos, Char: c}
		}

		stats.Unknown++
		if e.cfg.onUnknown != nil {
			e.cfg.onUnknown(pos, c)
		}
		pos++
	}

	if err := writeCode(bits, e.eof); err != nil {
		return stats, err
	}
	if err := bits.Flush(bitstream.Zero); err != nil {
		return stats, err
	}
	err := buf.Flush()
	stats.BytesOut = cw.N
	return stats, err
}

func writeCode(w *bitstream.BitWriter, c huffman.Code) error {
	return w.WriteBits(c.Bits, int(c.Size))
}
