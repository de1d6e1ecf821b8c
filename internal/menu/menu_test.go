package menu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		label  string
		target string
		sep    bool
		err    error
	}{
		{name: "separator", line: "-", label: "-", sep: true},
		{name: "separator with trailing text", line: "--- tools ---", label: "-", sep: true},
		{name: "entry", line: `Notepad,C:\Windows\notepad.exe`, label: "Notepad", target: `C:\Windows\notepad.exe`},
		{name: "extra fields ignored", line: `a,b,c,d`, label: "a", target: "b"},
		{name: "fields are not trimmed", line: `Docs, D:\docs`, label: "Docs", target: ` D:\docs`},
		{name: "missing target", line: "Lonely", label: "Lonely", err: ErrMissingTarget},
		{name: "empty target", line: "Empty,", label: "Empty", err: ErrEmptyTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseLine(tt.line)
			assert.Equal(t, tt.label, res.Entry.Label)
			assert.Equal(t, tt.target, res.Entry.Target)
			assert.Equal(t, tt.sep, res.Entry.Separator)
			assert.ErrorIs(t, res.Err, tt.err)
			assert.Equal(t, tt.err != nil, res.Malformed())
			assert.Equal(t, tt.line, res.Raw)
		})
	}
}

func TestBuildSkipsBlankLinesAndKeepsOrder(t *testing.T) {
	m := Build([]string{
		"",
		"  One,C:\\one.exe  ",
		"   ",
		"-",
		"Two",
		"Three,D:\\",
	})

	entries := m.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, 6, m.ItemCount())

	assert.Equal(t, Entry{ID: 0, Line: 2, Label: "One", Target: `C:\one.exe`}, entries[0])
	assert.Equal(t, Entry{ID: 1, Line: 4, Label: "-", Separator: true}, entries[1])
	assert.Equal(t, Entry{ID: 2, Line: 5, Label: "Two"}, entries[2])
	assert.Equal(t, Entry{ID: 3, Line: 6, Label: "Three", Target: `D:\`}, entries[3])

	issues := m.Issues()
	require.Len(t, issues, 1)
	assert.Equal(t, 5, issues[0].Entry.Line)
	assert.ErrorIs(t, issues[0].Err, ErrMissingTarget)
}

func TestBuildLookupByID(t *testing.T) {
	m := Build([]string{"-", "A,a", "", "B,b"})

	e, ok := m.Lookup(2)
	require.True(t, ok)
	assert.Equal(t, "B", e.Label)

	e, ok = m.Lookup(0)
	require.True(t, ok)
	assert.True(t, e.Separator)

	_, ok = m.Lookup(3)
	assert.False(t, ok)
}

func TestBuildEmpty(t *testing.T) {
	m := Build(nil)
	assert.Empty(t, m.Entries())
	assert.Equal(t, 2, m.ItemCount())
}

func TestLoadMissingFile(t *testing.T) {
	lines, err := Load(filepath.Join(t.TempDir(), DefaultFileName))
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestLoadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("\ufeffA,a\r\n-\r\n\r\nB,b\r\n"), 0o644))

	lines, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"A,a", "-", "", "B,b"}, lines)

	assert.Equal(t, 5, Build(lines).ItemCount())
}

func TestLoadDirectoryFails(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.Error(t, err)
}
