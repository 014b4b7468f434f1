package fixture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artisanexperiences/swapfs/internal/fs"
)

const sample = `
user_data_path: /home/tester/.data
entries:
  - path: /project
    type: directory
    attributes: [hidden]
    modified: 2024-01-02T03:04:05Z
  - path: /project/readme.md
    content: "# Title"
    attributes: [readonly]
  - path: /project/bin/blob.bin
    base64: AAEC/w==
  - path: /project/empty
    type: directory
`

func TestParse(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		doc, err := Parse([]byte(sample))
		require.NoError(t, err)

		assert.Equal(t, "/home/tester/.data", doc.UserDataPath)
		require.Len(t, doc.Entries, 4)
		assert.Equal(t, TypeDirectory, doc.Entries[0].Type)
		require.NotNil(t, doc.Entries[0].Modified)
		assert.Equal(t, 2024, doc.Entries[0].Modified.Year())
		assert.Equal(t, []string{"readonly"}, doc.Entries[1].Attributes)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := Parse([]byte("entries:\n  - content: x\n"))
		assert.ErrorContains(t, err, "path is required")
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := Parse([]byte("entries:\n  - path: /a\n    type: socket\n"))
		assert.ErrorContains(t, err, "unknown type")
	})

	t.Run("content and base64 together", func(t *testing.T) {
		_, err := Parse([]byte("entries:\n  - path: /a\n    content: x\n    base64: eA==\n"))
		assert.ErrorContains(t, err, "mutually exclusive")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("entries: [\n"))
		assert.Error(t, err)
	})
}

func TestApply(t *testing.T) {
	doc, err := Parse([]byte(sample))
	require.NoError(t, err)

	v, err := New(doc)
	require.NoError(t, err)

	t.Run("files carry content", func(t *testing.T) {
		text, err := v.ReadAllText("/project/readme.md")
		require.NoError(t, err)
		assert.Equal(t, "# Title", text)

		data, err := v.ReadAllBytes("/project/bin/blob.bin")
		require.NoError(t, err)
		assert.Equal(t, []byte{0x00, 0x01, 0x02, 0xff}, data)
	})

	t.Run("parents are created", func(t *testing.T) {
		assert.True(t, v.DirectoryExists("/"))
		assert.True(t, v.DirectoryExists("/project/bin"))
		assert.True(t, v.DirectoryExists("/project/empty"))
	})

	t.Run("attributes and timestamps", func(t *testing.T) {
		attrs, err := v.GetAttributes("/project/readme.md")
		require.NoError(t, err)
		assert.True(t, attrs.Has(fs.AttrReadOnly))

		attrs, err = v.GetAttributes("/project")
		require.NoError(t, err)
		assert.True(t, attrs.Has(fs.AttrHidden|fs.AttrDirectory))

		mod, err := v.GetLastWriteTime("/project")
		require.NoError(t, err)
		assert.True(t, mod.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
	})

	t.Run("user data path", func(t *testing.T) {
		p, err := v.UserDataPath()
		require.NoError(t, err)
		assert.Equal(t, "/home/tester/.data", p)
		assert.True(t, v.DirectoryExists(p))
	})

	t.Run("existing directory listed after its children", func(t *testing.T) {
		doc := &Document{Entries: []Entry{
			{Path: "/a/b.txt", Content: "b"},
			{Path: "/a", Type: TypeDirectory, Attributes: []string{"system"}},
		}}
		v, err := New(doc)
		require.NoError(t, err)

		attrs, err := v.GetAttributes("/a")
		require.NoError(t, err)
		assert.True(t, attrs.Has(fs.AttrSystem|fs.AttrDirectory))
	})

	t.Run("duplicate file", func(t *testing.T) {
		doc := &Document{Entries: []Entry{
			{Path: "/a.txt", Content: "1"},
			{Path: "/A.TXT", Content: "2"},
		}}
		_, err := New(doc)
		assert.ErrorIs(t, err, fs.ErrAlreadyExists)
	})

	t.Run("unknown attribute", func(t *testing.T) {
		doc := &Document{Entries: []Entry{{Path: "/a.txt", Attributes: []string{"sticky"}}}}
		_, err := New(doc)
		assert.ErrorIs(t, err, fs.ErrInvalidOperation)
	})
}

func TestSnapshot(t *testing.T) {
	v := fs.NewVirtualFS()
	require.NoError(t, v.EnsurePath("/data/logs"))
	require.NoError(t, v.WriteAllText("/data/notes.txt", "line"))
	require.NoError(t, v.WriteAllBytes("/data/raw.bin", []byte{0xff, 0xfe}))
	require.NoError(t, v.SetAttributes("/data/notes.txt", fs.AttrReadOnly))

	doc := Snapshot(v)
	byPath := map[string]Entry{}
	for _, e := range doc.Entries {
		byPath[e.Path] = e
	}

	assert.Equal(t, TypeDirectory, byPath["/data/logs"].Type)
	assert.Equal(t, "line", byPath["/data/notes.txt"].Content)
	assert.Equal(t, []string{"readonly"}, byPath["/data/notes.txt"].Attributes)
	assert.Equal(t, "//4=", byPath["/data/raw.bin"].Base64)

	t.Run("round trip through yaml", func(t *testing.T) {
		out, err := Marshal(doc)
		require.NoError(t, err)

		parsed, err := Parse(out)
		require.NoError(t, err)

		restored, err := New(parsed)
		require.NoError(t, err)

		for _, e := range v.Entries() {
			got := restored.Entry(e.Path)
			require.NotNil(t, got, e.Path)
			assert.Equal(t, e.Kind, got.Kind, e.Path)
			assert.Equal(t, e.Attributes, got.Attributes, e.Path)
			assert.Equal(t, e.Content, got.Content, e.Path)
			assert.True(t, e.LastWriteTime.Equal(got.LastWriteTime), e.Path)
		}
	})
}

func TestLoadAndSave(t *testing.T) {
	v := fs.NewVirtualFS()
	require.NoError(t, v.EnsurePath("/fixtures"))

	doc := &Document{Entries: []Entry{{Path: "/x/y.txt", Content: "y"}}}
	require.NoError(t, Save(v, "/fixtures/seed.yaml", doc))

	loaded, err := Load(v, "/fixtures/seed.yaml")
	require.NoError(t, err)
	assert.Equal(t, doc.Entries[0].Path, loaded.Entries[0].Path)
	assert.Equal(t, "y", loaded.Entries[0].Content)

	_, err = Load(v, "/fixtures/missing.yaml")
	assert.ErrorIs(t, err, fs.ErrNotFound)
}
