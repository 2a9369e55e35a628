package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	pos, line, col int
}

func TestSourceLineCol(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 1, 1},
			{-1, 1, 1},
			{100, 1, 1},
		},
		"\n": {
			{0, 1, 1},
			{1, 2, 1},
			{100, 2, 1},
		},
		"ab\ncd\n": {
			{0, 1, 1},
			{1, 1, 2},
			{2, 1, 3},
			{3, 2, 1},
			{4, 2, 2},
			{5, 2, 3},
			{6, 3, 1},
		},
	}

	for text, results := range samples {
		s := New("", []byte(text))
		for _, res := range results {
			l, c := s.LineCol(res.pos)
			assert.Equal(t, res.line, l, "sample %q pos %d", text, res.pos)
			assert.Equal(t, res.col, c, "sample %q pos %d", text, res.pos)
		}
	}
}

func TestSourcePos(t *testing.T) {
	s := NewString("", "ab\ncd")
	assert.Equal(t, 0, s.Pos(1, 1))
	assert.Equal(t, 1, s.Pos(1, 2))
	assert.Equal(t, 3, s.Pos(2, 1))
	assert.Equal(t, 4, s.Pos(2, 2))
	assert.Equal(t, 0, s.Pos(0, 5))
	assert.Equal(t, 5, s.Pos(9, 1))
	assert.Equal(t, 5, s.Pos(2, 100))
}

func TestUnicodeColumns(t *testing.T) {
	s := NewString("", "привет\nмир")
	l, c := s.LineCol(len("привет"))
	assert.Equal(t, 1, l)
	assert.Equal(t, 7, c, "columns count runes")
}

func TestLineText(t *testing.T) {
	s := NewString("", "ab\r\ncd\nef")
	assert.Equal(t, "ab", s.LineText(1))
	assert.Equal(t, "cd", s.LineText(2))
	assert.Equal(t, "ef", s.LineText(3))
	assert.Equal(t, "", s.LineText(0))
	assert.Equal(t, "", s.LineText(4))

	empty := NewString("", "")
	assert.Equal(t, "", empty.LineText(1))
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.pex")
	require.NoError(t, os.WriteFile(path, []byte("a = 'x';"), 0o666))

	s, e := FromFile(path)
	require.NoError(t, e)
	assert.Equal(t, path, s.Name())
	assert.Equal(t, "a = 'x';", string(s.Content()))
	assert.Equal(t, 8, s.Len())

	_, e = FromFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, e)
}
