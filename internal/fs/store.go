package fs

import "strings"

// FilePatternAll matches every file in GetFilesMatching.
const FilePatternAll = "*.*"

// Store owns the entries of one virtual file system. Paths are compared
// case-insensitively; the original casing is preserved. Entries are kept in
// insertion order so listings are deterministic.
type Store struct {
	index   map[string]*Entry
	entries []*Entry
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{index: make(map[string]*Entry)}
}

// Find returns the entry at path, or nil.
func (s *Store) Find(path string) *Entry {
	return s.index[foldKey(path)]
}

// Insert adds an entry. It fails when another entry already uses the path.
func (s *Store) Insert(e *Entry) error {
	key := foldKey(e.Path)
	if _, ok := s.index[key]; ok {
		return pathErr("insert", e.Path, ErrAlreadyExists)
	}
	s.index[key] = e
	s.entries = append(s.entries, e)
	return nil
}

// Remove deletes e if it is stored. Missing entries are ignored.
func (s *Store) Remove(e *Entry) {
	s.RemoveMatching(func(candidate *Entry) bool { return candidate == e })
}

// RemoveMatching deletes every entry for which match returns true and reports
// how many were removed.
func (s *Store) RemoveMatching(match func(*Entry) bool) int {
	kept := s.entries[:0]
	removed := 0
	for _, e := range s.entries {
		if match(e) {
			delete(s.index, foldKey(e.Path))
			removed++
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(s.entries); i++ {
		s.entries[i] = nil
	}
	s.entries = kept
	return removed
}

// Len is the number of stored entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// All returns the stored entries in insertion order. The slice is a copy; the
// entries are not.
func (s *Store) All() []*Entry {
	out := make([]*Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Descendants returns every entry strictly below dir.
func (s *Store) Descendants(dir string) []*Entry {
	prefix := foldKey(dir)
	if !strings.HasSuffix(prefix, "/") && !strings.HasSuffix(prefix, separator) {
		prefix += separator
	}
	var out []*Entry
	for _, e := range s.entries {
		if strings.HasPrefix(foldKey(e.Path), prefix) {
			out = append(out, e)
		}
	}
	return out
}

// ChildDirectories returns the directories whose parent is parent.
func (s *Store) ChildDirectories(parent string) []*Entry {
	key := foldKey(parent)
	var out []*Entry
	for _, e := range s.entries {
		if e.IsDir() && foldKey(DirectoryName(e.Path)) == key {
			out = append(out, e)
		}
	}
	return out
}

// ChildFiles returns the files whose parent is parent and whose name matches
// pattern. FilePatternAll matches everything; any other pattern is a plain
// substring test against the file name, not a glob.
func (s *Store) ChildFiles(parent, pattern string) []*Entry {
	key := foldKey(parent)
	var out []*Entry
	for _, e := range s.entries {
		if e.IsDir() || foldKey(DirectoryName(e.Path)) != key {
			continue
		}
		if pattern == FilePatternAll || strings.Contains(e.Name(), pattern) {
			out = append(out, e)
		}
	}
	return out
}
