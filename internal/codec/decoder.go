package codec

import (
	"bufio"
	"errors"
	"io"

	"github.com/abhinav/sempress/internal/freqtable"
	"github.com/abhinav/sempress/internal/huffman"
	bitstream "github.com/dgryski/go-bitstream"
)

// Decoder decompresses streams written by an Encoder
// that used the same tree and UnknownPolicy.
type Decoder struct {
	cfg  config
	tree *huffman.Tree
}

// NewDecoder builds a decoder for the given tree.
// The tree must hold the EOF symbol,
// and the Escape symbol if UnknownEscape is used.
func NewDecoder(tree *huffman.Tree, opts ...Option) (*Decoder, error) {
	return newDecoder(tree, newConfig(opts))
}

func newDecoder(tree *huffman.Tree, cfg config) (*Decoder, error) {
	if _, ok := tree.Code(freqtable.EOF); !ok {
		return nil, &MissingSymbolError{Symbol: freqtable.EOF}
	}
	if cfg.unknown == UnknownEscape {
		if _, ok := tree.Code(Escape); !ok {
			return nil, &MissingSymbolError{Symbol: Escape}
		}
	}
	return &Decoder{cfg: cfg, tree: tree}, nil
}

// Decode reads a compressed stream from r
// and writes the decompressed text to w.
// Decoding stops at the EOF symbol; anything after it is ignored.
//
// Returns ErrTruncated if r ends before the EOF symbol.
//
// Stats.BytesIn counts the bytes consumed up to and including the one
// holding the end of the EOF code, not bytes buffered past it.
func (d *Decoder) Decode(w io.Writer, r io.Reader) (stats Stats, err error) {
	bits := bitstream.NewReader(bufio.NewReader(r))
	var nbits int64

	cw := countingWriter{W: w}
	buf := bufio.NewWriter(&cw)
	defer func() {
		if ferr := buf.Flush(); err == nil {
			err = ferr
		}
		stats.BytesIn = (nbits + 7) / 8
		stats.BytesOut = cw.N
	}()

	tree := d.tree
	root := tree.Root()
	_, loneLeaf := tree.Leaf(root)

	for n := root; ; {
		bit, err := bits.ReadBit()
		if err != nil {
			return stats, truncated(err)
		}
		nbits++

		// A lone leaf matches every bit.
		if !loneLeaf {
			if bit == bitstream.One {
				n = tree.Right(n)
			} else {
				n = tree.Left(n)
			}
		}

		sym, ok := tree.Leaf(n)
		if !ok {
			continue
		}
		n = root

		switch {
		case sym == freqtable.EOF:
			return stats, nil

		case sym == Escape && d.cfg.unknown == UnknownEscape:
			c, err := bits.ReadByte()
			if err != nil {
				return stats, truncated(err)
			}
			nbits += 8
			if err := buf.WriteByte(c); err != nil {
				return stats, err
			}
			stats.Unknown++

		default:
			if _, err := buf.WriteString(sym); err != nil {
				return stats, err
			}
			stats.Tokens++
		}
	}
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return err
}
