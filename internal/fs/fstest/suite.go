// Package fstest provides a conformance suite for fs.FileSystem
// implementations. Both the disk-backed and the virtual file system run it
// so application code can rely on them behaving the same way.
//
// Example usage:
//
//	func TestMyFS(t *testing.T) {
//	    fstest.Run(t, func(t *testing.T) (fs.FileSystem, string) {
//	        return myfs.New(), "/root"
//	    })
//	}
package fstest

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artisanexperiences/swapfs/internal/fs"
)

// Factory returns a fresh file system and an existing, empty directory in it
// that the tests may use as their root.
type Factory func(t *testing.T) (fs.FileSystem, string)

// Run executes every conformance test against file systems built by newFS.
func Run(t *testing.T, newFS Factory) {
	t.Run("Directories", func(t *testing.T) {
		fsys, root := newFS(t)
		testDirectories(t, fsys, root)
	})
	t.Run("Files", func(t *testing.T) {
		fsys, root := newFS(t)
		testFiles(t, fsys, root)
	})
	t.Run("Copy", func(t *testing.T) {
		fsys, root := newFS(t)
		testCopy(t, fsys, root)
	})
	t.Run("Streams", func(t *testing.T) {
		fsys, root := newFS(t)
		testStreams(t, fsys, root)
	})
	t.Run("Text", func(t *testing.T) {
		fsys, root := newFS(t)
		testText(t, fsys, root)
	})
	t.Run("Listing", func(t *testing.T) {
		fsys, root := newFS(t)
		testListing(t, fsys, root)
	})
	t.Run("Metadata", func(t *testing.T) {
		fsys, root := newFS(t)
		testMetadata(t, fsys, root)
	})
}

func testDirectories(t *testing.T, fsys fs.FileSystem, root string) {
	dir := fsys.CombinePath(root, "dir")

	require.NoError(t, fsys.CreateDirectory(dir))
	assert.True(t, fsys.DirectoryExists(dir))
	assert.False(t, fsys.FileExists(dir))
	assert.ErrorIs(t, fsys.CreateDirectory(dir), fs.ErrAlreadyExists)

	nested := fsys.CombinePath(root, "x", "y", "z")
	require.NoError(t, fsys.EnsurePath(nested))
	require.NoError(t, fsys.EnsurePath(nested))

	dirs, err := fsys.GetDirectories(fsys.CombinePath(root, "x"))
	require.NoError(t, err)
	assert.Equal(t, []string{fsys.CombinePath(root, "x", "y")}, dirs)

	file := fsys.CombinePath(dir, "b.txt")
	require.NoError(t, fsys.WriteAllText(file, "b"))
	assert.ErrorIs(t, fsys.DeleteDirectory(dir, false), fs.ErrNotEmpty)
	assert.True(t, fsys.FileExists(file))

	require.NoError(t, fsys.DeleteDirectory(dir, true))
	assert.False(t, fsys.FileExists(file))
	assert.False(t, fsys.DirectoryExists(dir))

	assert.NoError(t, fsys.DeleteDirectory(dir, false), "missing directory is a no-op")
}

func testFiles(t *testing.T, fsys fs.FileSystem, root string) {
	file := fsys.CombinePath(root, "data.bin")
	payload := []byte{0x00, 0x01, 0xfe, 0xff, '\r', '\n'}

	require.NoError(t, fsys.WriteAllBytes(file, payload))
	assert.True(t, fsys.FileExists(file))
	assert.False(t, fsys.DirectoryExists(file))

	got, err := fsys.ReadAllBytes(file)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	size, err := fsys.GetFileSize(file)
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), size)

	assert.ErrorIs(t, fsys.DeleteDirectory(file, true), fs.ErrWrongKind)
	assert.ErrorIs(t, fsys.DeleteFile(root), fs.ErrWrongKind)

	require.NoError(t, fsys.DeleteFile(file))
	assert.False(t, fsys.FileExists(file))
	assert.NoError(t, fsys.DeleteFile(file), "missing file is a no-op")

	_, err = fsys.ReadAllBytes(file)
	assert.ErrorIs(t, err, fs.ErrNotFound)
}

func testCopy(t *testing.T, fsys fs.FileSystem, root string) {
	a := fsys.CombinePath(root, "a.txt")
	b := fsys.CombinePath(root, "b.txt")
	require.NoError(t, fsys.WriteAllText(a, "alpha"))
	require.NoError(t, fsys.WriteAllText(b, "beta"))

	assert.ErrorIs(t, fsys.CopyFile(a, b, false), fs.ErrAlreadyExists)

	require.NoError(t, fsys.CopyFile(a, b, true))
	require.NoError(t, fsys.WriteAllText(b, "rewritten"))

	text, err := fsys.ReadAllText(a)
	require.NoError(t, err)
	assert.Equal(t, "alpha", text)

	text, err = fsys.ReadAllText(b)
	require.NoError(t, err)
	assert.Equal(t, "rewritten", text)
}

func testStreams(t *testing.T, fsys fs.FileSystem, root string) {
	file := fsys.CombinePath(root, "stream.txt")

	_, err := fsys.OpenFile(file, fs.ModeOpen, fs.AccessRead, fs.ShareRead)
	assert.ErrorIs(t, err, fs.ErrNotFound)

	w, err := fsys.OpenFile(file, fs.ModeCreateNew, fs.AccessWrite, fs.ShareNone)
	require.NoError(t, err)
	_, err = io.WriteString(w, "streamed")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = fsys.OpenFile(file, fs.ModeCreateNew, fs.AccessWrite, fs.ShareNone)
	assert.ErrorIs(t, err, fs.ErrAlreadyExists)

	r, err := fsys.OpenFile(file, fs.ModeOpen, fs.AccessRead, fs.ShareRead)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, int64(len("streamed")), r.Len())
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "streamed", string(data))

	_, err = fsys.OpenFile(root, fs.ModeOpenOrCreate, fs.AccessRead, fs.ShareRead)
	assert.Error(t, err, "a directory cannot be opened as a file")
}

func testText(t *testing.T, fsys fs.FileSystem, root string) {
	file := fsys.CombinePath(root, "lines.txt")

	require.NoError(t, fsys.WriteAllLines(file, []string{"a", "b"}))
	lines, err := fsys.ReadAllLines(file)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, lines)

	require.NoError(t, fsys.AppendAllText(file, "\r\nc"))
	lines, err = fsys.ReadAllLines(file)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, lines)

	require.NoError(t, fsys.WriteAllLines(file, []string{""}))
	lines, err = fsys.ReadAllLines(file)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, lines)

	require.NoError(t, fsys.WriteAllText(file, "x"))
	text, err := fsys.ReadAllText(file)
	require.NoError(t, err)
	assert.Equal(t, "x", text)
}

func testListing(t *testing.T, fsys fs.FileSystem, root string) {
	for _, name := range []string{"report.txt", "report.csv", "notes.md"} {
		require.NoError(t, fsys.WriteAllText(fsys.CombinePath(root, name), name))
	}
	require.NoError(t, fsys.CreateDirectory(fsys.CombinePath(root, "sub")))

	files, err := fsys.GetFiles(root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		fsys.CombinePath(root, "report.txt"),
		fsys.CombinePath(root, "report.csv"),
		fsys.CombinePath(root, "notes.md"),
	}, files)

	files, err = fsys.GetFilesMatching(root, "report")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		fsys.CombinePath(root, "report.txt"),
		fsys.CombinePath(root, "report.csv"),
	}, files)

	dirs, err := fsys.GetDirectories(root)
	require.NoError(t, err)
	assert.Equal(t, []string{fsys.CombinePath(root, "sub")}, dirs)

	_, err = fsys.GetFiles(fsys.CombinePath(root, "missing"))
	assert.ErrorIs(t, err, fs.ErrNotFound)
}

func testMetadata(t *testing.T, fsys fs.FileSystem, root string) {
	file := fsys.CombinePath(root, "meta.txt")
	require.NoError(t, fsys.WriteAllText(file, "hash me"))

	sum, err := fsys.GetFileHash(file)
	require.NoError(t, err)
	assert.Equal(t, fsys.HashBytes([]byte("hash me")), sum)

	str, err := fsys.GetFileHashAsString(file)
	require.NoError(t, err)
	assert.NotEmpty(t, str)

	require.NoError(t, fsys.CombineAttributes(file, fs.AttrReadOnly))
	attrs, err := fsys.GetAttributes(file)
	require.NoError(t, err)
	assert.True(t, attrs.Has(fs.AttrReadOnly))

	require.NoError(t, fsys.RemoveAttributes(file, fs.AttrReadOnly))
	attrs, err = fsys.GetAttributes(file)
	require.NoError(t, err)
	assert.False(t, attrs.Has(fs.AttrReadOnly))

	dirAttrs, err := fsys.GetAttributes(root)
	require.NoError(t, err)
	assert.True(t, dirAttrs.Has(fs.AttrDirectory))

	_, err = fsys.GetAttributes(fsys.CombinePath(root, "missing"))
	assert.ErrorIs(t, err, fs.ErrNotFound)
}
