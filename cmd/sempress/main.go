package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/abhinav/sempress/internal/log"
	"github.com/abhinav/sempress/internal/paniclog"
	"github.com/benbjohnson/clock"
	shellwords "github.com/mattn/go-shellwords"
	"go.uber.org/multierr"
)

var _version = "dev"

var _main = mainCmd{
	Stdout: os.Stdout,
	Stderr: os.Stderr,
	Getenv: os.Getenv,
}

func main() {
	if err := _main.Run(os.Args[1:]); err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(_main.Stderr, err)
		os.Exit(1)
	}
}

const (
	_name = "sempress"

	// Environment variable holding extra command line options.
	// These are parsed like shell arguments and precede the real ones.
	_optsEnv = "SEMPRESS_OPTS"

	// Environment variable specifying the log file
	// if -log isn't passed.
	_logfileEnv = "SEMPRESS_LOG"
)

type mainCmd struct {
	Stdout io.Writer
	Stderr io.Writer

	Getenv func(string) string // == os.Getenv
	Clock  clock.Clock         // defaults to the system clock
	Codec  Codec               // defaults to compressing files on disk
}

const _usage = `usage: %[1]v [options] -table FILE INPUT OUTPUT
       %[1]v -d [options] -table FILE INPUT OUTPUT
       %[1]v -count [-keywords FILE] [-ext EXTS] [-o FILE] PATH ...
       %[1]v -dump [options] -table FILE

Compresses source code with Huffman codes drawn from a frequency table
of characters and keywords.
Tables are built from sample code with -count.

The following flags are available:

	-table FILE
		frequency table to compress or decompress with.
		Each line of the table has the form SYMBOL:COUNT.
	-d
		decompress INPUT into OUTPUT instead of compressing it.
	-lenient
		skip malformed lines in the frequency table
		instead of failing.
	-unknown POLICY
		what to do with characters that aren't in the table.
		POLICY is one of:
			fail    stop with an error (default)
			skip    drop the character; it will be lost
			escape  store the character as-is
		Decompression must use the same policy.
	-count
		build a frequency table from the files at PATH.
		Directories are searched recursively.
	-keywords FILE
		file listing the keywords to count, one per line.
		Uses a list of C++ keywords by default.
	-ext EXTS
		comma-separated list of file extensions to count.
			-ext .cpp,.hpp,.h
		Defaults to .cpp.
	-o FILE
		file to write the frequency table to.
		Defaults to frequency-table.txt.
	-dump
		print the code assigned to each symbol in the table.
	-log FILE
		file to write logs to.
		Uses stderr by default.
	-verbose
		log more output.
	-version
		display version information.

Options are also read from the SEMPRESS_OPTS environment variable,
and SEMPRESS_LOG may be used in place of -log.
`

func (cmd *mainCmd) Run(args []string) (err error) {
	if opts := cmd.Getenv(_optsEnv); len(opts) > 0 {
		extra, err := shellwords.Parse(opts)
		if err != nil {
			return fmt.Errorf("parse $%v: %w", _optsEnv, err)
		}
		args = append(extra, args...)
	}

	flag := flag.NewFlagSet(_name, flag.ContinueOnError)
	flag.SetOutput(cmd.Stderr)
	flag.Usage = func() {
		fmt.Fprintf(flag.Output(), _usage, flag.Name())
	}

	cfg := config{LogFile: cmd.Getenv(_logfileEnv)}
	cfg.RegisterFlags(flag)
	version := flag.Bool("version", false, "")
	if err := flag.Parse(args); err != nil {
		return err
	}

	if *version {
		fmt.Fprintf(cmd.Stdout, "%v version %v\n", _name, _version)
		return nil
	}

	cfg.Args = flag.Args()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logW := cmd.Stderr
	if file := cfg.LogFile; len(file) > 0 {
		f, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log %q: %w", file, err)
		}
		defer multierr.AppendInvoke(&err, multierr.Close(f))
		logW = f
	}

	lvl := log.Info
	if cfg.Verbose {
		lvl = log.Debug
	}
	logger := log.New(logW, lvl)
	defer paniclog.Recover(&err, logger)

	clk := cmd.Clock
	if clk == nil {
		clk = clock.New()
	}

	codec := cmd.Codec
	if codec == nil {
		codec = fileCodec{}
	}

	return (&app{
		Log:    logger,
		Stdout: cmd.Stdout,
		Clock:  clk,
		Codec:  codec,
	}).Run(&cfg)
}
