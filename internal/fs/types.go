package fs

import (
	"fmt"
	"io"
	"strings"
)

// Kind classifies an entry as a file or a directory.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// Attributes is a bitmask of file and directory flags.
type Attributes uint32

const (
	AttrReadOnly  Attributes = 0x01
	AttrHidden    Attributes = 0x02
	AttrSystem    Attributes = 0x04
	AttrDirectory Attributes = 0x10
	AttrArchive   Attributes = 0x20
	AttrNormal    Attributes = 0x80
)

var attributeNames = []struct {
	attr Attributes
	name string
}{
	{AttrReadOnly, "readonly"},
	{AttrHidden, "hidden"},
	{AttrSystem, "system"},
	{AttrDirectory, "directory"},
	{AttrArchive, "archive"},
	{AttrNormal, "normal"},
}

// Has reports whether every bit of flag is set.
func (a Attributes) Has(flag Attributes) bool {
	return a&flag == flag
}

// Names returns the lower-case names of the set flags in a stable order.
func (a Attributes) Names() []string {
	var names []string
	for _, an := range attributeNames {
		if a.Has(an.attr) {
			names = append(names, an.name)
		}
	}
	return names
}

func (a Attributes) String() string {
	if a == 0 {
		return "none"
	}
	return strings.Join(a.Names(), "|")
}

// ParseAttributes converts flag names (as produced by Names) back into a bitmask.
// Unknown names are reported as an error.
func ParseAttributes(names []string) (Attributes, error) {
	var a Attributes
	for _, n := range names {
		found := false
		for _, an := range attributeNames {
			if strings.EqualFold(strings.TrimSpace(n), an.name) {
				a |= an.attr
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown attribute %q: %w", n, ErrInvalidOperation)
		}
	}
	return a, nil
}

// Mode selects how OpenFile treats an existing or missing file.
type Mode int

const (
	// ModeCreateNew creates a file and fails if one already exists.
	ModeCreateNew Mode = iota + 1
	// ModeCreate creates a file or truncates an existing one.
	ModeCreate
	// ModeOpen opens an existing file.
	ModeOpen
	// ModeOpenOrCreate opens a file, creating it when missing.
	ModeOpenOrCreate
	// ModeTruncate opens an existing file and discards its content.
	ModeTruncate
	// ModeAppend opens or creates a file and positions at its end.
	ModeAppend
)

func (m Mode) mustExist() bool { return m == ModeOpen || m == ModeTruncate }

func (m Mode) mustNotExist() bool { return m == ModeCreateNew }

// Access is the read/write intent of an opened stream.
type Access int

const (
	AccessRead Access = iota + 1
	AccessWrite
	AccessReadWrite
)

func (a Access) canWrite() bool { return a == AccessWrite || a == AccessReadWrite }

// Share is the sharing mode requested when opening a file. Implementations
// may ignore it.
type Share int

const (
	ShareNone Share = iota
	ShareRead
	ShareWrite
	ShareReadWrite
	ShareDelete
)

// Stream is an open file returned by OpenFile. Close must always be called;
// for writable streams it is the point where written data becomes visible.
type Stream interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer
	// Len returns the current length of the stream in bytes.
	Len() int64
}
