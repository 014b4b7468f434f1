package fs

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// VirtualFS implements FileSystem entirely in memory. It is a
// single-threaded test double: it does no locking and callers sharing one
// instance across goroutines must serialize access themselves.
type VirtualFS struct {
	store        *Store
	now          func() time.Time
	userDataPath string
}

// Option configures a VirtualFS.
type Option func(*VirtualFS)

// WithClock replaces time.Now as the source of last-write timestamps.
func WithClock(now func() time.Time) Option {
	return func(v *VirtualFS) {
		v.now = now
	}
}

// WithUserDataPath fixes the path returned by UserDataPath instead of a
// random one.
func WithUserDataPath(path string) Option {
	return func(v *VirtualFS) {
		v.userDataPath = path
	}
}

// NewVirtualFS creates an empty virtual file system.
func NewVirtualFS(opts ...Option) *VirtualFS {
	v := &VirtualFS{
		store: NewStore(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Store exposes the backing entry store.
func (v *VirtualFS) Store() *Store {
	return v.store
}

// Entries returns every entry in insertion order.
func (v *VirtualFS) Entries() []*Entry {
	return v.store.All()
}

// Entry returns the entry at path, or nil.
func (v *VirtualFS) Entry(path string) *Entry {
	return v.store.Find(path)
}

func (v *VirtualFS) newDirectory(path string) *Entry {
	e := NewDirectoryEntry(path)
	e.LastWriteTime = v.now()
	return e
}

// locate returns the entry at path or a NotFound error for op.
func (v *VirtualFS) locate(op, path string) (*Entry, error) {
	e := v.store.Find(path)
	if e == nil {
		return nil, pathErr(op, path, ErrNotFound)
	}
	return e, nil
}

func (v *VirtualFS) locateFile(op, path string) (*Entry, error) {
	e, err := v.locate(op, path)
	if err != nil {
		return nil, err
	}
	if e.IsDir() {
		return nil, pathErr(op, path, ErrWrongKind)
	}
	return e, nil
}

func (v *VirtualFS) FileExists(path string) bool {
	e := v.store.Find(path)
	return e != nil && !e.IsDir()
}

func (v *VirtualFS) DirectoryExists(path string) bool {
	e := v.store.Find(path)
	return e != nil && e.IsDir()
}

func (v *VirtualFS) CreateDirectory(path string) error {
	if v.store.Find(path) != nil {
		return pathErr("create directory", path, ErrAlreadyExists)
	}
	return v.store.Insert(v.newDirectory(path))
}

// EnsurePath inserts path and every missing ancestor. It never fails on
// an existing entry, whatever its kind.
func (v *VirtualFS) EnsurePath(path string) error {
	if path == "" || v.store.Find(path) != nil {
		return nil
	}
	v.AddDirectoryTree(path)
	return nil
}

func (v *VirtualFS) DeleteFile(path string) error {
	e := v.store.Find(path)
	if e == nil {
		return nil
	}
	if e.IsDir() {
		return pathErr("delete file", path, ErrWrongKind)
	}
	v.store.Remove(e)
	return nil
}

// DeleteDirectory removes the directory at path. With force, the directory
// and every descendant go in a single pass over the store.
func (v *VirtualFS) DeleteDirectory(path string, force bool) error {
	e := v.store.Find(path)
	if e == nil {
		return nil
	}
	if !e.IsDir() {
		return pathErr("delete directory", path, ErrWrongKind)
	}

	descendants := v.store.Descendants(e.Path)
	if len(descendants) > 0 && !force {
		return pathErr("delete directory", path, ErrNotEmpty)
	}

	doomed := make(map[*Entry]struct{}, len(descendants)+1)
	doomed[e] = struct{}{}
	for _, d := range descendants {
		doomed[d] = struct{}{}
	}
	v.store.RemoveMatching(func(candidate *Entry) bool {
		_, ok := doomed[candidate]
		return ok
	})
	return nil
}

// CopyFile copies the entry at source to target. The copy keeps the
// source's kind, attributes and timestamp and owns its own content buffer.
func (v *VirtualFS) CopyFile(source, target string, overwrite bool) error {
	existing := v.store.Find(target)
	if existing != nil && !overwrite {
		return pathErr("copy file", target, ErrAlreadyExists)
	}
	src, err := v.locate("copy file", source)
	if err != nil {
		return err
	}
	if existing == src {
		return nil
	}

	if existing != nil {
		v.store.Remove(existing)
	}
	return v.store.Insert(src.clone(target))
}

// OpenFile returns a BoundStream over the file at path. The share mode is
// accepted but not enforced. Opening with write access stamps the entry's
// last-write time immediately, whether or not anything is written.
func (v *VirtualFS) OpenFile(path string, mode Mode, access Access, _ Share) (Stream, error) {
	e := v.store.Find(path)

	switch {
	case mode.mustExist() && (e == nil || e.IsDir()):
		return nil, pathErr("open", path, ErrNotFound)
	case mode.mustNotExist() && e != nil:
		return nil, pathErr("open", path, ErrAlreadyExists)
	case e != nil && e.IsDir():
		return nil, pathErr("open", path, ErrWrongKind)
	}

	if e == nil {
		e = NewFileEntry(path, nil)
		e.LastWriteTime = v.now()
		if err := v.store.Insert(e); err != nil {
			return nil, err
		}
	}

	writable := access.canWrite()
	if writable {
		e.LastWriteTime = v.now()
	}

	// Writable streams replace the content on close; only append starts
	// from the current content.
	s := newBoundStream(e, writable, mode == ModeAppend)
	if mode == ModeAppend {
		if _, err := s.Seek(0, io.SeekEnd); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (v *VirtualFS) GetAttributes(path string) (Attributes, error) {
	e, err := v.locate("get attributes", path)
	if err != nil {
		return 0, err
	}
	return e.Attributes, nil
}

func (v *VirtualFS) SetAttributes(path string, attributes Attributes) error {
	e, err := v.locate("set attributes", path)
	if err != nil {
		return err
	}
	e.setAttributes(attributes)
	return nil
}

func (v *VirtualFS) CombineAttributes(path string, attributes Attributes) error {
	e, err := v.locate("combine attributes", path)
	if err != nil {
		return err
	}
	e.setAttributes(e.Attributes | attributes)
	return nil
}

func (v *VirtualFS) RemoveAttributes(path string, attributes Attributes) error {
	e, err := v.locate("remove attributes", path)
	if err != nil {
		return err
	}
	e.setAttributes(e.Attributes &^ attributes)
	return nil
}

func (v *VirtualFS) GetLastWriteTime(path string) (time.Time, error) {
	e, err := v.locate("get last write time", path)
	if err != nil {
		return time.Time{}, err
	}
	return e.LastWriteTime, nil
}

func (v *VirtualFS) SetLastWriteTime(path string, t time.Time) error {
	e, err := v.locate("set last write time", path)
	if err != nil {
		return err
	}
	e.LastWriteTime = t
	return nil
}

func (v *VirtualFS) GetFileSize(path string) (int64, error) {
	e, err := v.locateFile("get file size", path)
	if err != nil {
		return 0, err
	}
	return e.Size(), nil
}

// GetFileHash hashes the committed content of the entry at path. A
// directory hashes as empty content.
func (v *VirtualFS) GetFileHash(path string) ([]byte, error) {
	e, err := v.locate("hash", path)
	if err != nil {
		return nil, err
	}
	return hashBytes(e.Content), nil
}

func (v *VirtualFS) HashBytes(contents []byte) []byte {
	return hashBytes(contents)
}

func (v *VirtualFS) GetFileHashAsString(path string) (string, error) {
	sum, err := v.GetFileHash(path)
	if err != nil {
		return "", err
	}
	return encodeHash(sum), nil
}

// GetDirectories only requires something to exist at path; it does not
// check that it is a directory.
func (v *VirtualFS) GetDirectories(path string) ([]string, error) {
	if _, err := v.locate("get directories", path); err != nil {
		return nil, err
	}
	return paths(v.store.ChildDirectories(path)), nil
}

func (v *VirtualFS) GetFiles(path string) ([]string, error) {
	return v.GetFilesMatching(path, FilePatternAll)
}

// GetFilesMatching lists files under path. Patterns other than FilePatternAll
// are matched as plain substrings of the file name.
func (v *VirtualFS) GetFilesMatching(path, pattern string) ([]string, error) {
	if _, err := v.locate("get files", path); err != nil {
		return nil, err
	}
	return paths(v.store.ChildFiles(path, pattern)), nil
}

func paths(entries []*Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Path)
	}
	return out
}

func (v *VirtualFS) CombinePath(elements ...string) string { return CombinePath(elements...) }

func (v *VirtualFS) GetDirectoryName(path string) string { return DirectoryName(path) }

func (v *VirtualFS) GetFileName(path string) string { return FileName(path) }

func (v *VirtualFS) GetFullPath(path string) (string, error) { return FullPath(path) }

func (v *VirtualFS) GetName(path string) string { return FileName(path) }

// UserDataPath returns a per-instance directory, chosen at random on first
// use unless WithUserDataPath was given.
func (v *VirtualFS) UserDataPath() (string, error) {
	if v.userDataPath == "" {
		v.userDataPath = separator + uuid.NewString()
	}
	if err := v.EnsurePath(v.userDataPath); err != nil {
		return "", err
	}
	return v.userDataPath, nil
}

// AddEntry inserts a pre-built entry. With createTree, every missing
// ancestor directory is inserted first. Directory entries always get the
// directory attribute, and a zero LastWriteTime is stamped from the clock.
// A duplicate path fails before any ancestor is created.
func (v *VirtualFS) AddEntry(e *Entry, createTree bool) error {
	if v.store.Find(e.Path) != nil {
		return pathErr("insert", e.Path, ErrAlreadyExists)
	}
	if e.LastWriteTime.IsZero() {
		e.LastWriteTime = v.now()
	}
	if createTree {
		if parent := DirectoryName(e.Path); parent != "" {
			v.AddDirectoryTree(parent)
		}
	}
	e.setAttributes(e.Attributes)
	return v.store.Insert(e)
}

// AddDirectoryTree inserts dir and any missing ancestors. The walk goes up
// from dir and stops at the first ancestor that already exists or at the
// root.
func (v *VirtualFS) AddDirectoryTree(dir string) {
	var missing []string
	for p := dir; p != "" && v.store.Find(p) == nil; {
		missing = append(missing, p)
		parent := DirectoryName(p)
		if parent == p {
			break
		}
		p = parent
	}
	for i := len(missing) - 1; i >= 0; i-- {
		// Find above guarantees the path is free.
		_ = v.store.Insert(v.newDirectory(missing[i]))
	}
}
