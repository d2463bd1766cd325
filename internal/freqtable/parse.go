package freqtable

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/multierr"
)

// Mode specifies how the parser treats malformed records.
type Mode int

const (
	// Strict aborts the load on the first malformed record.
	Strict Mode = iota

	// Lenient skips malformed records.
	Lenient
)

func (m Mode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Lenient:
		return "lenient"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

var (
	errNoSeparator   = errors.New("missing ':' separator")
	errNegativeCount = errors.New("count must not be negative")
)

// MalformedTableError is returned by Parse and Load in Strict mode
// when a record cannot be parsed.
type MalformedTableError struct {
	Path string // empty if unknown
	Line int    // 1-indexed
	Text string
	Err  error
}

func (e *MalformedTableError) Error() string {
	where := "line " + strconv.Itoa(e.Line)
	if len(e.Path) > 0 {
		where = e.Path + ":" + strconv.Itoa(e.Line)
	}
	return fmt.Sprintf("%v: malformed record %q: %v", where, e.Text, e.Err)
}

func (e *MalformedTableError) Unwrap() error { return e.Err }

// Option customizes Parse and Load.
type Option func(*parser)

// WithMode sets the parsing mode. Defaults to Strict.
func WithMode(m Mode) Option {
	return func(p *parser) {
		p.mode = m
	}
}

// OnSkip registers a function to be called for each record skipped in
// Lenient mode.
func OnSkip(fn func(line int, text string, err error)) Option {
	return func(p *parser) {
		p.onSkip = fn
	}
}

type parser struct {
	path   string
	mode   Mode
	onSkip func(line int, text string, err error)
}

// Load reads a table from the file at path.
func Load(path string, opts ...Option) (_ *Table, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	p := newParser(opts)
	p.path = path
	return p.parse(f)
}

// Parse reads a table from r.
//
// Empty lines are skipped, and a trailing carriage return is removed from
// every line. A record with an empty symbol specifies the frequency of
// the newline character. Records with a count of zero are dropped. If a
// symbol appears more than once, the last record wins.
//
// Whatever the source says, the returned table holds EOF with a
// frequency of 1.
func Parse(r io.Reader, opts ...Option) (*Table, error) {
	return newParser(opts).parse(r)
}

func newParser(opts []Option) *parser {
	var p parser
	for _, opt := range opts {
		opt(&p)
	}
	return &p
}

func (p *parser) parse(r io.Reader) (*Table, error) {
	t := Table{freqs: make(map[string]int)}

	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 0, 4096), 1<<20)
	var lineNum int
	for scan.Scan() {
		lineNum++
		line := bytes.TrimSuffix(scan.Bytes(), []byte{'\r'})
		if len(line) == 0 {
			continue
		}

		sym, n, err := parseRecord(line)
		if err != nil {
			if p.mode == Lenient {
				if p.onSkip != nil {
					p.onSkip(lineNum, string(line), err)
				}
				continue
			}

			return nil, &MalformedTableError{
				Path: p.path,
				Line: lineNum,
				Text: string(line),
				Err:  err,
			}
		}

		if n == 0 {
			delete(t.freqs, sym)
			continue
		}
		t.freqs[sym] = n
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}

	return t.finish(p.path)
}

func parseRecord(line []byte) (sym string, n int, err error) {
	idx := bytes.LastIndexByte(line, ':')
	if idx < 0 {
		return "", 0, errNoSeparator
	}

	n, err = strconv.Atoi(string(line[idx+1:]))
	if err != nil {
		return "", 0, err
	}
	if n < 0 {
		return "", 0, errNegativeCount
	}

	sym = string(line[:idx])
	if len(sym) == 0 {
		sym = Newline
	}
	return sym, n, nil
}
