package huffman

import (
	"fmt"
	"strings"
)

// Code is a sequence of up to MaxCodeSize bits.
type Code struct {
	// Size holds the number of valid bits.
	Size uint8

	// Bits holds the bits, right-aligned.
	// The most significant of the Size low bits is the first bit.
	Bits uint64
}

// ParseCode parses a string of '0' and '1' digits into a Code.
func ParseCode(s string) (Code, error) {
	if len(s) > MaxCodeSize {
		return Code{}, ErrCodeTooLong
	}

	var c Code
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			c = c.append(0)
		case '1':
			c = c.append(1)
		default:
			return Code{}, fmt.Errorf("invalid digit %q at %d in code %q", s[i], i, s)
		}
	}
	return c, nil
}

func (c Code) append(bit uint64) Code {
	return Code{Size: c.Size + 1, Bits: c.Bits<<1 | bit}
}

// HasPrefix reports whether p is a prefix of c.
func (c Code) HasPrefix(p Code) bool {
	if p.Size > c.Size {
		return false
	}
	if p.Size == 0 {
		return true
	}
	return c.Bits>>(c.Size-p.Size) == p.Bits
}

// String returns the code as a string of '0' and '1' digits.
func (c Code) String() string {
	if c.Size == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(int(c.Size))
	for i := int(c.Size) - 1; i >= 0; i-- {
		if c.Bits>>uint(i)&1 == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

var _ fmt.Stringer = Code{}
