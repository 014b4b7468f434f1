package fs

import "time"

// Entry is the in-memory record of one virtual file or directory.
type Entry struct {
	Path          string
	Kind          Kind
	Attributes    Attributes
	Content       []byte
	LastWriteTime time.Time
}

// NewFileEntry returns a file entry holding a private copy of content. Its
// LastWriteTime is zero until the entry is added to a VirtualFS.
func NewFileEntry(path string, content []byte) *Entry {
	return &Entry{
		Path:       path,
		Kind:       KindFile,
		Attributes: AttrNormal,
		Content:    cloneBytes(content),
	}
}

// NewTextFileEntry returns a file entry whose content is the UTF-8 bytes of text.
func NewTextFileEntry(path, text string) *Entry {
	return NewFileEntry(path, []byte(text))
}

// NewDirectoryEntry returns a directory entry with the default attributes.
func NewDirectoryEntry(path string) *Entry {
	return &Entry{
		Path:       path,
		Kind:       KindDirectory,
		Attributes: AttrNormal | AttrDirectory,
	}
}

// Name is the final component of the entry's path.
func (e *Entry) Name() string {
	return FileName(trimTrailingSeparator(e.Path))
}

// IsDir reports whether the entry is a directory.
func (e *Entry) IsDir() bool {
	return e.Kind == KindDirectory
}

// Size is the length of the content. Directories report zero.
func (e *Entry) Size() int64 {
	if e.IsDir() {
		return 0
	}
	return int64(len(e.Content))
}

// setAttributes keeps the directory bit on directories whatever the caller asks for.
func (e *Entry) setAttributes(a Attributes) {
	if e.IsDir() {
		a |= AttrDirectory
	}
	e.Attributes = a
}

// clone returns a deep copy of e placed at path.
func (e *Entry) clone(path string) *Entry {
	return &Entry{
		Path:       path,
		Kind:       e.Kind,
		Attributes: e.Attributes,
		Content:    cloneBytes(e.Content),
		LastWriteTime: e.LastWriteTime,
	}
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
