package huffman

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give string
		want Code
	}{
		{give: "", want: Code{}},
		{give: "0", want: Code{Size: 1, Bits: 0}},
		{give: "1", want: Code{Size: 1, Bits: 1}},
		{give: "0110", want: Code{Size: 4, Bits: 0b0110}},
		{
			give: strings.Repeat("1", 64),
			want: Code{Size: 64, Bits: ^uint64(0)},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()

			got, err := ParseCode(tt.give)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.give, got.String())
		})
	}
}

func TestParseCode_errors(t *testing.T) {
	t.Parallel()

	_, err := ParseCode("012")
	assert.ErrorContains(t, err, `invalid digit '2' at 2`)

	_, err = ParseCode(strings.Repeat("0", 65))
	assert.ErrorIs(t, err, ErrCodeTooLong)
}

func TestCode_HasPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code, prefix string
		want         bool
	}{
		{"0110", "", true},
		{"0110", "0", true},
		{"0110", "01", true},
		{"0110", "0110", true},
		{"0110", "1", false},
		{"0110", "0111", false},
		{"01", "0110", false},
	}

	for _, tt := range tests {
		code, err := ParseCode(tt.code)
		require.NoError(t, err)
		prefix, err := ParseCode(tt.prefix)
		require.NoError(t, err)

		assert.Equal(t, tt.want, code.HasPrefix(prefix),
			"%q.HasPrefix(%q)", tt.code, tt.prefix)
	}
}
