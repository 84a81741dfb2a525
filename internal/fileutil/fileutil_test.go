package fileutil

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLines(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/list.txt", []byte("one\r\n\ntwo\nthree"), 0644))

	lines, err := ReadLines(fs, "/data/list.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, lines)

	_, err = ReadLines(fs, "/data/missing.txt")
	assert.Error(t, err)
}

func TestReadFirstLine(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a.txt", []byte("\n\nfirst\nsecond\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/empty.txt", nil, 0644))

	line, err := ReadFirstLine(fs, "/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	line, err = ReadFirstLine(fs, "/empty.txt")
	require.NoError(t, err)
	assert.Empty(t, line)
}

func TestAtomicWriteFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	require.NoError(t, AtomicWriteFile(fs, "/deep/dir/out.txt", []byte("hello"), 0644))
	require.NoError(t, AtomicWriteFile(fs, "/deep/dir/out.txt", []byte("again"), 0644))

	data, err := afero.ReadFile(fs, "/deep/dir/out.txt")
	require.NoError(t, err)
	assert.Equal(t, "again", string(data))

	entries, err := afero.ReadDir(fs, "/deep/dir")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should not be left behind")
}

func TestWriteLines(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, WriteLines(fs, "/lines.txt", []string{"a", "b\tc"}))

	data, err := afero.ReadFile(fs, "/lines.txt")
	require.NoError(t, err)
	assert.Equal(t, "a\nb\tc\n", string(data))
}

func TestRemoveIfExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/x", []byte("x"), 0644))

	assert.NoError(t, RemoveIfExists(fs, "/x"))
	assert.False(t, FileExists(fs, "/x"))
	assert.NoError(t, RemoveIfExists(fs, "/x"))
}

func TestListAndFilter(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/root/sub", 0755))
	require.NoError(t, afero.WriteFile(fs, "/root/b.gb", nil, 0644))
	require.NoError(t, afero.WriteFile(fs, "/root/.a.gb", nil, 0644))
	require.NoError(t, afero.WriteFile(fs, "/root/a.gb", nil, 0644))

	hidden := func(name string) bool { return name[0] == '.' }

	entries := ListDirectory(fs, "/root")
	assert.Len(t, entries, 4)
	assert.Equal(t, ".a.gb", entries[0].Name())

	visible := FilterVisible(entries, hidden)
	assert.Len(t, visible, 3)

	assert.Nil(t, ListDirectory(fs, "/nope"))
	assert.True(t, IsFile(fs, "/root/a.gb"))
	assert.False(t, IsFile(fs, "/root/sub"))
}
