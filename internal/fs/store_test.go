package fs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_FindIsCaseInsensitive(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Insert(NewTextFileEntry("/Docs/ReadMe.md", "hi")))

	e := s.Find("/docs/README.MD")
	require.NotNil(t, e)
	assert.Equal(t, "/Docs/ReadMe.md", e.Path, "original casing is preserved")
	assert.Nil(t, s.Find("/docs/other.md"))
}

func TestStore_InsertRejectsDuplicates(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Insert(NewDirectoryEntry("/data")))

	err := s.Insert(NewDirectoryEntry("/DATA"))
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.Equal(t, 1, s.Len())
}

func TestStore_RemoveMatching(t *testing.T) {
	s := NewStore()
	for _, p := range []string{"/a", "/a/b", "/c"} {
		require.NoError(t, s.Insert(NewDirectoryEntry(p)))
	}

	removed := s.RemoveMatching(func(e *Entry) bool { return e.Path != "/c" })
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, s.Len())
	assert.Nil(t, s.Find("/a"))
	assert.Nil(t, s.Find("/a/b"))
	assert.NotNil(t, s.Find("/c"))

	// removing something absent is not an error
	s.Remove(NewDirectoryEntry("/zzz"))
	assert.Equal(t, 1, s.Len())
}

func TestStore_Descendants(t *testing.T) {
	s := NewStore()
	for _, e := range []*Entry{
		NewDirectoryEntry("/a"),
		NewTextFileEntry("/a/one.txt", "1"),
		NewDirectoryEntry("/a/sub"),
		NewTextFileEntry("/A/Sub/two.txt", "2"),
		NewDirectoryEntry("/ab"),
	} {
		require.NoError(t, s.Insert(e))
	}

	got := paths(s.Descendants("/a"))
	assert.Equal(t, []string{"/a/one.txt", "/a/sub", "/A/Sub/two.txt"}, got, "sibling /ab is not a descendant")
	assert.Len(t, s.Descendants("/a/"), 3)
}

func TestStore_ChildListings(t *testing.T) {
	s := NewStore()
	for _, e := range []*Entry{
		NewDirectoryEntry("/root"),
		NewDirectoryEntry("/root/dir"),
		NewDirectoryEntry("/root/dir/nested"),
		NewTextFileEntry("/root/report.txt", ""),
		NewTextFileEntry("/root/report.csv", ""),
		NewTextFileEntry("/root/notes.md", ""),
		NewTextFileEntry("/root/dir/deep.txt", ""),
	} {
		require.NoError(t, s.Insert(e))
	}

	t.Run("directories are immediate children only", func(t *testing.T) {
		assert.Equal(t, []string{"/root/dir"}, paths(s.ChildDirectories("/root")))
		assert.Equal(t, []string{"/root/dir"}, paths(s.ChildDirectories("/ROOT")))
	})

	t.Run("all pattern lists every file", func(t *testing.T) {
		got := paths(s.ChildFiles("/root", FilePatternAll))
		assert.Equal(t, []string{"/root/report.txt", "/root/report.csv", "/root/notes.md"}, got)
	})

	t.Run("other patterns match by substring, not glob", func(t *testing.T) {
		assert.Equal(t, []string{"/root/report.txt", "/root/report.csv"}, paths(s.ChildFiles("/root", "report")))
		assert.Equal(t, []string{"/root/report.txt"}, paths(s.ChildFiles("/root", ".txt")))
		assert.Empty(t, s.ChildFiles("/root", "*.txt"), "glob syntax is taken literally")
	})
}

func TestStore_ListingsFoldLikeFind(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Insert(NewDirectoryEntry("/ΣΟΦΙΑ")))
	require.NoError(t, s.Insert(NewDirectoryEntry("/ΣΟΦΙΑ/sub")))
	require.NoError(t, s.Insert(NewTextFileEntry("/ΣΟΦΙΑ/a.txt", "")))

	t.Run("lower-cased parent matches", func(t *testing.T) {
		require.NotNil(t, s.Find("/σοφια"))
		assert.Equal(t, []string{"/ΣΟΦΙΑ/sub"}, paths(s.ChildDirectories("/σοφια")))
		assert.Equal(t, []string{"/ΣΟΦΙΑ/a.txt"}, paths(s.ChildFiles("/σοφια", FilePatternAll)))
	})

	t.Run("final sigma is a different key", func(t *testing.T) {
		// ToLower keeps ς distinct from σ, so neither Find nor the listings match it.
		assert.Nil(t, s.Find("/ςοφια"))
		assert.Empty(t, s.ChildDirectories("/ςοφια"))
		assert.Empty(t, s.ChildFiles("/ςοφια", FilePatternAll))
	})
}
