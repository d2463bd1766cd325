package freqtable

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abhinav/sempress/internal/token"
	"go.uber.org/multierr"
)

// Counter counts keyword and character frequencies in source text.
//
// Text is segmented the same way the encoder segments it:
// at each position the longest matching keyword wins,
// and anything else counts as a single character.
// A table built from these counts can therefore encode the text it was
// computed from.
type Counter struct {
	matcher *token.Matcher
	chars   map[string]int
	words   map[string]int
}

// NewCounter builds a Counter that recognizes the given keywords.
// The reserved EOF symbol is never treated as a keyword.
func NewCounter(keywords []string) *Counter {
	vocab := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw != EOF {
			vocab = append(vocab, kw)
		}
	}

	return &Counter{
		matcher: token.NewMatcher(vocab),
		chars:   make(map[string]int),
		words:   make(map[string]int),
	}
}

// Count adds the frequencies of the text in r to the counter.
//
// A newline is counted only where the text has one,
// so a final line without a line break adds no newline.
func (c *Counter) Count(r io.Reader) error {
	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 0, 64*1024), 16<<20)
	scan.Split(scanRawLines)
	for scan.Scan() {
		line := scan.Bytes()
		eol := len(line) > 0 && line[len(line)-1] == '\n'
		if eol {
			line = line[:len(line)-1]
		}

		for pos := 0; pos < len(line); {
			if kw, ok := c.matcher.Match(line[pos:]); ok {
				c.words[kw]++
				pos += len(kw)
				continue
			}

			c.chars[string(line[pos])]++
			pos++
		}

		if eol {
			c.chars[Newline]++
		}
	}
	return scan.Err()
}

// scanRawLines splits lines like bufio.ScanLines,
// but keeps the line terminator, carriage return included.
// The encoder sees every byte of the input, so the counter must too.
func scanRawLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i+1], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// CountFile adds the frequencies of the text in the file at path.
func (c *Counter) CountFile(path string) (err error) {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	if err := c.Count(f); err != nil {
		return fmt.Errorf("count %q: %w", path, err)
	}
	return nil
}

// Chars returns a copy of the character frequencies.
func (c *Counter) Chars() map[string]int { return copyFreqs(c.chars) }

// Words returns a copy of the keyword frequencies.
func (c *Counter) Words() map[string]int { return copyFreqs(c.words) }

// Table builds a frequency table from the counts so far.
func (c *Counter) Table() (*Table, error) {
	freqs := copyFreqs(c.chars)
	for kw, n := range c.words {
		freqs[kw] = n
	}
	return New(freqs)
}

func copyFreqs(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ReadKeywords reads a keyword list from the file at path:
// one keyword per line, skipping empty lines.
func ReadKeywords(path string) (_ []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open keywords: %w", err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	var keywords []string
	scan := bufio.NewScanner(f)
	for scan.Scan() {
		kw := strings.TrimSuffix(scan.Text(), "\r")
		if len(kw) > 0 {
			keywords = append(keywords, kw)
		}
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("read keywords %q: %w", path, err)
	}
	return keywords, nil
}

// CollectFiles returns the files at or under root
// whose extension is one of exts, compared case-insensitively.
//
// If root is a regular file, it must have one of the extensions.
// Results are sorted.
func CollectFiles(root string, exts []string) ([]string, error) {
	matches := func(path string) bool {
		ext := strings.ToLower(filepath.Ext(path))
		for _, want := range exts {
			if ext == strings.ToLower(want) {
				return true
			}
		}
		return false
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if info.Mode().IsRegular() {
		if !matches(root) {
			ext := filepath.Ext(root)
			if len(ext) == 0 {
				return nil, fmt.Errorf("%v: file has no extension", root)
			}
			return nil, fmt.Errorf("%v: %q files are not supported", root, ext)
		}
		return []string{root}, nil
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%v: not a file or directory", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && matches(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

var errNoInput = errors.New("no input files")

// CountFiles counts every file matching exts under each of the given paths.
// It returns the list of files that were counted.
func (c *Counter) CountFiles(paths []string, exts []string) ([]string, error) {
	var all []string
	for _, root := range paths {
		files, err := CollectFiles(root, exts)
		if err != nil {
			return nil, err
		}
		all = append(all, files...)
	}
	if len(all) == 0 {
		return nil, errNoInput
	}

	for _, path := range all {
		if err := c.CountFile(path); err != nil {
			return nil, err
		}
	}
	return all, nil
}
