package log

import (
	"bytes"
	"context"
)

// Writer is an io.Writer that writes to the provided logger,
// logging each line as a separate entry at the given level.
// Call Close to log a trailing partial line.
type Writer struct {
	Log   *Logger
	Level Level

	buff bytes.Buffer
}

func (w *Writer) Write(bs []byte) (int, error) {
	n := len(bs)
	for len(bs) > 0 {
		bs = w.takeNextLine(bs)
	}
	return n, nil
}

func (w *Writer) takeNextLine(line []byte) (remaining []byte) {
	idx := bytes.IndexByte(line, '\n')
	if idx < 0 {
		w.buff.Write(line)
		return nil
	}

	line, remaining = line[:idx], line[idx+1:]
	if w.buff.Len() == 0 {
		w.logLine(line)
		return remaining
	}

	w.buff.Write(line)
	w.flush(true /* allowEmpty */)
	return remaining
}

// Close flushes any buffered partial line to the underlying logger.
func (w *Writer) Close() error {
	// A trailing newline doesn't produce an empty entry.
	w.flush(false /* allowEmpty */)
	return nil
}

func (w *Writer) flush(allowEmpty bool) {
	if allowEmpty || w.buff.Len() > 0 {
		w.logLine(w.buff.Bytes())
	}
	w.buff.Reset()
}

func (w *Writer) logLine(b []byte) {
	w.Log.Log(context.Background(), w.Level, string(b))
}
