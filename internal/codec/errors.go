package codec

import (
	"errors"
	"fmt"
)

// ErrTruncated indicates that a compressed stream ended
// before the end-of-stream symbol.
// The stream is corrupt or was compressed with a different table.
var ErrTruncated = errors.New("compressed stream is truncated")

// ErrNoTable is returned by Compress and Decompress
// when a table path isn't specified.
var ErrNoTable = errors.New("no frequency table specified")

// ErrSameFile is returned by Compress and Decompress
// when the input and output paths refer to the same file.
var ErrSameFile = errors.New("input and output are the same file")

// UnencodableCharacterError is returned by the encoder
// when a byte in the input doesn't begin any symbol in the code table.
type UnencodableCharacterError struct {
	Offset int // byte offset in the input
	Char   byte
}

func (e *UnencodableCharacterError) Error() string {
	return fmt.Sprintf("cannot encode character %q at offset %d", e.Char, e.Offset)
}

// MissingSymbolError indicates that a code tree lacks a symbol
// the codec depends on.
type MissingSymbolError struct {
	Symbol string
}

func (e *MissingSymbolError) Error() string {
	return fmt.Sprintf("code table has no %q symbol", e.Symbol)
}
