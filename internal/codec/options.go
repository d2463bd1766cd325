package codec

import (
	"fmt"
	"strings"

	"github.com/abhinav/sempress/internal/freqtable"
	"github.com/abhinav/sempress/internal/log"
)

// UnknownPolicy specifies what the encoder does with a byte
// that doesn't start any symbol in the code table.
type UnknownPolicy int

const (
	// UnknownFail fails the encode with an UnencodableCharacterError.
	UnknownFail UnknownPolicy = iota

	// UnknownSkip drops the byte from the output.
	// The decoded text will not match the input.
	UnknownSkip

	// UnknownEscape writes the Escape symbol's code followed by the
	// eight bits of the byte.
	// The table is given an Escape symbol for this,
	// so both directions must use this policy.
	UnknownEscape
)

var _unknownPolicies = []UnknownPolicy{UnknownFail, UnknownSkip, UnknownEscape}

func (p UnknownPolicy) String() string {
	switch p {
	case UnknownFail:
		return "fail"
	case UnknownSkip:
		return "skip"
	case UnknownEscape:
		return "escape"
	default:
		return fmt.Sprintf("UnknownPolicy(%d)", int(p))
	}
}

// Set parses the policy from its name.
// This implements flag.Value.
func (p *UnknownPolicy) Set(name string) error {
	for _, want := range _unknownPolicies {
		if strings.EqualFold(name, want.String()) {
			*p = want
			return nil
		}
	}
	return fmt.Errorf("unknown policy %q: must be one of fail, skip, or escape", name)
}

// Option customizes the behavior of encoders, decoders,
// and file operations.
type Option func(*config)

// WithUnknownPolicy sets the policy for unencodable bytes.
// Defaults to UnknownFail.
func WithUnknownPolicy(p UnknownPolicy) Option {
	return func(c *config) {
		c.unknown = p
	}
}

// OnUnknown registers a function called with the offset and value of
// every byte the encoder skips or escapes.
func OnUnknown(fn func(offset int, c byte)) Option {
	return func(c *config) {
		c.onUnknown = fn
	}
}

// WithTableMode sets how malformed records in table files are handled.
// Defaults to freqtable.Strict.
func WithTableMode(m freqtable.Mode) Option {
	return func(c *config) {
		c.tableMode = m
	}
}

// WithLogger sets the logger for file operations.
// Logs are discarded by default.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		c.log = l
	}
}

type config struct {
	unknown   UnknownPolicy
	onUnknown func(offset int, c byte)
	tableMode freqtable.Mode
	log       *log.Logger
}

func newConfig(opts []Option) config {
	cfg := config{log: log.Discard}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// reserved reports whether sym is handled by the codec itself
// rather than matched in the input.
func (c *config) reserved(sym string) bool {
	return sym == freqtable.EOF || (c.unknown == UnknownEscape && sym == Escape)
}
