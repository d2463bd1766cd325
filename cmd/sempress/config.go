package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/abhinav/sempress/internal/codec"
)

// mode is the operation selected on the command line.
type mode int

const (
	modeCompress mode = iota
	modeDecompress
	modeCount
	modeDump
)

func (m mode) String() string {
	switch m {
	case modeCompress:
		return "compress"
	case modeDecompress:
		return "decompress"
	case modeCount:
		return "count"
	case modeDump:
		return "dump"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

const _defaultOutput = "frequency-table.txt"

var _defaultExts = extList{".cpp"}

type config struct {
	Table      string
	Decompress bool
	Lenient    bool
	Unknown    codec.UnknownPolicy

	Count    bool
	Keywords string
	Exts     extList
	Output   string

	Dump bool

	LogFile string
	Verbose bool

	// Positional arguments.
	Args []string
}

func (c *config) RegisterFlags(flag *flag.FlagSet) {
	// No help here because we put it all in _usage.
	flag.StringVar(&c.Table, "table", "", "")
	flag.BoolVar(&c.Decompress, "d", false, "")
	flag.BoolVar(&c.Lenient, "lenient", false, "")
	flag.Var(&c.Unknown, "unknown", "")
	flag.BoolVar(&c.Count, "count", false, "")
	flag.StringVar(&c.Keywords, "keywords", "", "")
	flag.Var(&c.Exts, "ext", "")
	flag.StringVar(&c.Output, "o", "", "")
	flag.BoolVar(&c.Dump, "dump", false, "")
	flag.StringVar(&c.LogFile, "log", c.LogFile, "")
	flag.BoolVar(&c.Verbose, "verbose", false, "")
}

// Mode reports the operation requested by the configuration.
func (c *config) Mode() mode {
	switch {
	case c.Count:
		return modeCount
	case c.Dump:
		return modeDump
	case c.Decompress:
		return modeDecompress
	default:
		return modeCompress
	}
}

var errModeConflict = errors.New("only one of -d, -count, or -dump may be used")

// Validate checks that the configuration is complete
// for the requested operation, filling in defaults.
func (c *config) Validate() error {
	var modes int
	for _, set := range []bool{c.Decompress, c.Count, c.Dump} {
		if set {
			modes++
		}
	}
	if modes > 1 {
		return errModeConflict
	}

	switch m := c.Mode(); m {
	case modeCount:
		if len(c.Args) == 0 {
			return errors.New("-count requires at least one PATH")
		}
		if len(c.Exts) == 0 {
			c.Exts = _defaultExts
		}
		if len(c.Output) == 0 {
			c.Output = _defaultOutput
		}

	case modeDump:
		if len(c.Table) == 0 {
			return errors.New("-dump requires -table")
		}
		if len(c.Args) > 0 {
			return fmt.Errorf("unexpected arguments %q", c.Args)
		}

	default:
		if len(c.Table) == 0 {
			return fmt.Errorf("%v: %w", m, codec.ErrNoTable)
		}
		if len(c.Args) != 2 {
			return fmt.Errorf("%v requires INPUT and OUTPUT, got %d arguments", m, len(c.Args))
		}
	}

	return nil
}

// extList is a comma-separated list of file extensions.
// Every extension starts with a ".".
type extList []string

var _ flag.Value = (*extList)(nil)

func (l extList) String() string {
	return strings.Join(l, ",")
}

// Set parses a comma-separated list of extensions,
// adding them to the list.
// The leading "." is optional.
func (l *extList) Set(v string) error {
	for _, ext := range strings.Split(v, ",") {
		ext = strings.TrimSpace(ext)
		if len(ext) == 0 {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		*l = append(*l, ext)
	}
	if len(*l) == 0 {
		return fmt.Errorf("no extensions in %q", v)
	}
	return nil
}
