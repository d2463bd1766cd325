package main

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/abhinav/sempress/internal/codec"
	"github.com/abhinav/sempress/internal/freqtable"
	"github.com/abhinav/sempress/internal/log"
	"github.com/benbjohnson/clock"
)

//go:generate mockgen -source=app.go -destination=mock_codec_test.go -package=main

// Codec compresses and decompresses files.
type Codec interface {
	Compress(input, output, table string, opts ...codec.Option) (codec.Stats, error)
	Decompress(input, output, table string, opts ...codec.Option) (codec.Stats, error)
}

// fileCodec is the Codec backed by the codec package.
type fileCodec struct{}

var _ Codec = fileCodec{}

func (fileCodec) Compress(input, output, table string, opts ...codec.Option) (codec.Stats, error) {
	return codec.Compress(input, output, table, opts...)
}

func (fileCodec) Decompress(input, output, table string, opts ...codec.Option) (codec.Stats, error) {
	return codec.Decompress(input, output, table, opts...)
}

//go:embed cpp-keywords.txt
var _cppKeywords string

// app runs the operation selected by a validated config.
type app struct {
	Log    *log.Logger
	Stdout io.Writer
	Clock  clock.Clock
	Codec  Codec
}

func (a *app) Run(cfg *config) error {
	m := cfg.Mode()
	start := a.Clock.Now()
	defer func() {
		a.Log.Debug("finished", "mode", m.String(), "elapsed", a.Clock.Since(start))
	}()

	switch m {
	case modeCount:
		return a.count(cfg)
	case modeDump:
		return a.dump(cfg)
	default:
		return a.transform(m, cfg)
	}
}

func (a *app) transform(m mode, cfg *config) error {
	input, output := cfg.Args[0], cfg.Args[1]
	opts := a.codecOptions(cfg)

	do := a.Codec.Compress
	if m == modeDecompress {
		do = a.Codec.Decompress
	}

	stats, err := do(input, output, cfg.Table, opts...)
	if err != nil {
		return err
	}

	a.Log.Info(m.String()+"ed",
		"input", input,
		"output", output,
		"bytesIn", stats.BytesIn,
		"bytesOut", stats.BytesOut,
		log.OmitEmpty(slog.Int, "unknown", stats.Unknown),
	)
	return nil
}

func (a *app) codecOptions(cfg *config) []codec.Option {
	opts := []codec.Option{
		codec.WithUnknownPolicy(cfg.Unknown),
		codec.WithLogger(a.Log.WithName("codec")),
	}
	if cfg.Lenient {
		opts = append(opts, codec.WithTableMode(freqtable.Lenient))
	}
	return opts
}

func (a *app) dump(cfg *config) error {
	tableMode := freqtable.Strict
	if cfg.Lenient {
		tableMode = freqtable.Lenient
	}

	table, err := freqtable.Load(cfg.Table,
		freqtable.WithMode(tableMode),
		freqtable.OnSkip(func(line int, text string, err error) {
			a.Log.Warn("skipping malformed record", "line", line, "text", text, "error", err)
		}),
	)
	if err != nil {
		return err
	}

	tree, err := codec.BuildTree(table, cfg.Unknown)
	if err != nil {
		return fmt.Errorf("build tree: %w", err)
	}

	a.Log.Debug("loaded table",
		"table", cfg.Table,
		"fingerprint", fmt.Sprintf("%016x", table.Fingerprint()))
	_, err = tree.Dump(a.Stdout)
	return err
}

func (a *app) count(cfg *config) error {
	keywords := defaultKeywords()
	if len(cfg.Keywords) > 0 {
		var err error
		keywords, err = freqtable.ReadKeywords(cfg.Keywords)
		if err != nil {
			return err
		}
	}

	counter := freqtable.NewCounter(keywords)
	files, err := counter.CountFiles(cfg.Args, cfg.Exts)
	if err != nil {
		return err
	}
	for _, f := range files {
		a.Log.Debug("counted", "file", f)
	}

	chars, words := counter.Chars(), counter.Words()
	if err := freqtable.Save(cfg.Output, chars, words); err != nil {
		return err
	}

	a.Log.Info("wrote frequency table",
		"output", cfg.Output,
		"files", len(files),
		"chars", len(chars),
		"keywords", len(words),
	)
	return nil
}

func defaultKeywords() []string {
	var keywords []string
	scan := bufio.NewScanner(strings.NewReader(_cppKeywords))
	for scan.Scan() {
		if kw := strings.TrimSpace(scan.Text()); len(kw) > 0 {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}
