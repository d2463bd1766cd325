package codec

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/abhinav/sempress/internal/freqtable"
	"github.com/abhinav/sempress/internal/huffman"
	"go.uber.org/multierr"
)

// Compress compresses the file at inputPath into outputPath
// with the frequency table at tablePath.
//
// If compression fails, the output file is removed.
func Compress(inputPath, outputPath, tablePath string, opts ...Option) (_ Stats, err error) {
	cfg := newConfig(opts)

	tree, err := loadTree(tablePath, &cfg)
	if err != nil {
		return Stats{}, err
	}

	enc, err := newEncoder(tree, cfg)
	if err != nil {
		return Stats{}, err
	}

	src, err := os.ReadFile(inputPath)
	if err != nil {
		return Stats{}, fmt.Errorf("read input: %w", err)
	}

	if err := checkDistinct(inputPath, outputPath); err != nil {
		return Stats{}, err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return Stats{}, fmt.Errorf("create output: %w", err)
	}
	defer removeOnError(&err, outputPath)
	defer multierr.AppendInvoke(&err, multierr.Close(out))

	stats, err := enc.Encode(out, src)
	if err != nil {
		return stats, fmt.Errorf("compress %v: %w", inputPath, err)
	}

	if stats.Unknown > 0 && cfg.unknown == UnknownSkip {
		cfg.log.Warn("skipped unencodable characters",
			"input", inputPath, "count", stats.Unknown)
	}
	cfg.log.Debug("compressed", "input", inputPath, "output", outputPath, "stats", stats)
	return stats, nil
}

// Decompress decompresses the file at inputPath into outputPath
// with the frequency table at tablePath.
// The table and UnknownPolicy must match those used to compress it.
//
// If decompression fails, the output file is removed.
func Decompress(inputPath, outputPath, tablePath string, opts ...Option) (_ Stats, err error) {
	cfg := newConfig(opts)

	tree, err := loadTree(tablePath, &cfg)
	if err != nil {
		return Stats{}, err
	}

	dec, err := newDecoder(tree, cfg)
	if err != nil {
		return Stats{}, err
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return Stats{}, fmt.Errorf("open input: %w", err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(in))

	if err := checkDistinct(inputPath, outputPath); err != nil {
		return Stats{}, err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return Stats{}, fmt.Errorf("create output: %w", err)
	}
	defer removeOnError(&err, outputPath)
	defer multierr.AppendInvoke(&err, multierr.Close(out))

	stats, err := dec.Decode(out, in)
	if err != nil {
		return stats, fmt.Errorf("decompress %v: %w", inputPath, err)
	}

	cfg.log.Debug("decompressed", "input", inputPath, "output", outputPath, "stats", stats)
	return stats, nil
}

func loadTree(path string, cfg *config) (*huffman.Tree, error) {
	if len(path) == 0 {
		return nil, ErrNoTable
	}

	logger := cfg.log
	table, err := freqtable.Load(path,
		freqtable.WithMode(cfg.tableMode),
		freqtable.OnSkip(func(line int, text string, err error) {
			logger.Warn("skipping malformed record",
				"table", path, "line", line, "text", text, "error", err)
		}),
	)
	if err != nil {
		return nil, err
	}

	tree, err := BuildTree(table, cfg.unknown)
	if err != nil {
		return nil, fmt.Errorf("build tree for %v: %w", path, err)
	}

	logger.Debug("loaded table",
		"table", path,
		"symbols", tree.Len(),
		"fingerprint", fmt.Sprintf("%016x", table.Fingerprint()),
	)
	return tree, nil
}

// checkDistinct reports ErrSameFile if outputPath already exists
// and is the same file as inputPath.
// Creating the output would otherwise truncate the input.
func checkDistinct(inputPath, outputPath string) error {
	in, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}

	out, err := os.Stat(outputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat output: %w", err)
	}

	if os.SameFile(in, out) {
		return fmt.Errorf("%v: %w", outputPath, ErrSameFile)
	}
	return nil
}

// removeOnError deletes the file at path if *err is non-nil.
// Defer it before the file is closed so that it runs after.
func removeOnError(err *error, path string) {
	if *err != nil {
		_ = os.Remove(path)
	}
}
