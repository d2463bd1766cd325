package codec

import (
	"io"
	"log/slog"

	"github.com/abhinav/sempress/internal/stringobj"
)

// Stats reports on a single encode or decode.
type Stats struct {
	// Tokens is the number of symbols written or read,
	// not counting the end-of-stream symbol.
	Tokens int

	// Unknown is the number of bytes that were skipped or escaped.
	Unknown int

	// BytesIn is the number of input bytes consumed.
	// BytesOut is the number of bytes written.
	BytesIn, BytesOut int64
}

var _ slog.LogValuer = Stats{}

func (s Stats) String() string {
	var b stringobj.Builder
	b.PutAlways("tokens", s.Tokens)
	b.Put("unknown", s.Unknown)
	b.PutAlways("bytesIn", s.BytesIn)
	b.PutAlways("bytesOut", s.BytesOut)
	return b.String()
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("tokens", s.Tokens),
		slog.Int("unknown", s.Unknown),
		slog.Int64("bytesIn", s.BytesIn),
		slog.Int64("bytesOut", s.BytesOut),
	)
}

type countingWriter struct {
	W io.Writer
	N int64
}

func (w *countingWriter) Write(b []byte) (int, error) {
	n, err := w.W.Write(b)
	w.N += int64(n)
	return n, err
}
