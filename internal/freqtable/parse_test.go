package freqtable

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhinav/sempress/internal/huffman"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give []string // lines
		want map[string]int
	}{
		{
			desc: "simple",
			give: []string{"a:5", "b:9", "c:12"},
			want: map[string]int{"a": 5, "b": 9, "c": 12, EOF: 1},
		},
		{
			desc: "newline symbol",
			give: []string{":5", "x:1"},
			want: map[string]int{"\n": 5, "x": 1, EOF: 1},
		},
		{
			desc: "colon in symbol",
			give: []string{"::3", "a:b:4", "std::7"},
			want: map[string]int{":": 3, "a:b": 4, "std:": 7, EOF: 1},
		},
		{
			desc: "empty lines",
			give: []string{"", "a:1", "", "", "b:2", ""},
			want: map[string]int{"a": 1, "b": 2, EOF: 1},
		},
		{
			desc: "carriage returns",
			give: []string{"a:1\r", "\r:2\r", "b:3"},
			want: map[string]int{"a": 1, "\r": 2, "b": 3, EOF: 1},
		},
		{
			desc: "EOF is overwritten",
			give: []string{"a:1", "EOF:42"},
			want: map[string]int{"a": 1, EOF: 1},
		},
		{
			desc: "zero counts are dropped",
			give: []string{"a:1", "b:0", "c:0"},
			want: map[string]int{"a": 1, EOF: 1},
		},
		{
			desc: "last record wins",
			give: []string{"a:1", "b:2", "a:3", "b:0"},
			want: map[string]int{"a": 3, EOF: 1},
		},
		{
			desc: "whitespace symbols",
			give: []string{" :10", "\t:3", "if:2"},
			want: map[string]int{" ": 10, "\t": 3, "if": 2, EOF: 1},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			tbl, err := Parse(strings.NewReader(unlines(tt.give...)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, tbl.Freqs())
			assert.Equal(t, len(tt.want), tbl.Len())
		})
	}
}

func TestParse_strict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc     string
		give     []string
		wantLine int
		wantMsg  string
	}{
		{
			desc:     "missing separator",
			give:     []string{"a:1", "bogus"},
			wantLine: 2,
			wantMsg:  `line 2: malformed record "bogus": missing ':' separator`,
		},
		{
			desc:     "not a number",
			give:     []string{"", "a:x"},
			wantLine: 2,
			wantMsg:  `line 2: malformed record "a:x": strconv.Atoi: parsing "x": invalid syntax`,
		},
		{
			desc:     "negative",
			give:     []string{"a:1", "b:2", "c:-3"},
			wantLine: 3,
			wantMsg:  `line 3: malformed record "c:-3": count must not be negative`,
		},
		{
			desc:     "empty count",
			give:     []string{"a:"},
			wantLine: 1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(strings.NewReader(unlines(tt.give...)))
			require.Error(t, err)

			var malformed *MalformedTableError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tt.wantLine, malformed.Line)
			if len(tt.wantMsg) > 0 {
				assert.Equal(t, tt.wantMsg, err.Error())
			}
		})
	}
}

func TestParse_lenient(t *testing.T) {
	t.Parallel()

	type skip struct {
		Line int
		Text string
	}

	var skipped []skip
	tbl, err := Parse(
		strings.NewReader(unlines("a:1", "bogus", "b:x", "c:-1", "d:4")),
		WithMode(Lenient),
		OnSkip(func(line int, text string, err error) {
			assert.Error(t, err)
			skipped = append(skipped, skip{line, text})
		}),
	)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"a": 1, "d": 4, EOF: 1}, tbl.Freqs())
	assert.Equal(t, []skip{
		{2, "bogus"},
		{3, "b:x"},
		{4, "c:-1"},
	}, skipped)
}

func TestParse_lenientWithoutHook(t *testing.T) {
	t.Parallel()

	tbl, err := Parse(strings.NewReader("a:1\nbogus\n"), WithMode(Lenient))
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Freq("a"))
}

func TestParse_empty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give string
		mode Mode
	}{
		{desc: "no input"},
		{desc: "blank lines", give: "\n\n\n"},
		{desc: "only EOF", give: "EOF:3\n"},
		{desc: "only zero", give: "a:0\n"},
		{desc: "all malformed", give: "a\nb\n", mode: Lenient},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(strings.NewReader(tt.give), WithMode(tt.mode))
			var emptyErr *huffman.EmptyTableError
			assert.ErrorAs(t, err, &emptyErr)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(dir, "good.txt")
		require.NoError(t, os.WriteFile(path, []byte("a:2\n:3\n"), 0o644))

		tbl, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"a": 2, "\n": 3, EOF: 1}, tbl.Freqs())
	})

	t.Run("does not exist", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(dir, "missing.txt"))
		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.ErrorContains(t, err, "missing.txt")
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(dir, "bad.txt")
		require.NoError(t, os.WriteFile(path, []byte("a:2\nb\n"), 0o644))

		_, err := Load(path)
		var malformed *MalformedTableError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, path, malformed.Path)
		assert.Equal(t, 2, malformed.Line)
		assert.ErrorContains(t, err, path+":2:")
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(dir, "empty.txt")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		_, err := Load(path)
		var emptyErr *huffman.EmptyTableError
		require.ErrorAs(t, err, &emptyErr)
		assert.Equal(t, path, emptyErr.Path)
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	tbl, err := New(map[string]int{"a": 3, "b": 0, "": 4, EOF: 9})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 3, EOF: 1}, tbl.Freqs())
	assert.Equal(t, []string{EOF, "a"}, tbl.Symbols())

	_, err = New(map[string]int{"a": -1})
	var freqErr *huffman.InvalidFrequencyError
	assert.ErrorAs(t, err, &freqErr)

	_, err = New(nil)
	var emptyErr *huffman.EmptyTableError
	assert.ErrorAs(t, err, &emptyErr)
}

func TestTable_FreqsIsCopy(t *testing.T) {
	t.Parallel()

	tbl, err := New(map[string]int{"a": 3})
	require.NoError(t, err)

	freqs := tbl.Freqs()
	freqs["a"] = 100
	freqs["b"] = 1
	assert.Equal(t, 3, tbl.Freq("a"))
	assert.Equal(t, 0, tbl.Freq("b"))
}

func TestTable_Fingerprint(t *testing.T) {
	t.Parallel()

	parse := func(lines ...string) *Table {
		tbl, err := Parse(strings.NewReader(unlines(lines...)))
		require.NoError(t, err)
		return tbl
	}

	a := parse("a:1", "b:2", ":3")
	b := parse(":3", "b:2", "a:1", "EOF:7")
	c := parse("a:1", "b:3", ":3")

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestWrite(t *testing.T) {
	t.Parallel()

	chars := map[string]int{"\n": 2, "a": 1, ":": 5, "z": 0}
	words := map[string]int{"if": 3, "std::": 4, "while": 0}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, chars, words))
	assert.Equal(t, unlines(":2", "::5", "a:1", "if:3", "std:::4"), buf.String())

	tbl, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"\n": 2, "a": 1, ":": 5,
		"if": 3, "std::": 4,
		EOF: 1,
	}, tbl.Freqs())
}

func TestSave(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "table.txt")
	require.NoError(t, Save(path, map[string]int{"x": 1}, map[string]int{"int": 2}))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x:1\nint:2\n", string(got))

	err = Save(filepath.Join(t.TempDir(), "missing", "table.txt"), nil, nil)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMode_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "strict", Strict.String())
	assert.Equal(t, "lenient", Lenient.String())
	assert.Equal(t, "Mode(42)", Mode(42).String())
}

func unlines(lines ...string) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}
