// Package fs provides a file system abstraction that application code can use
// without caring whether it talks to the real disk or to an in-memory
// virtual file system. RealFS passes every call through to the operating
// system; VirtualFS keeps a deterministic tree of entries in memory and is
// meant to be injected in tests.
package fs

import "time"

// FileSystem defines every operation shared by the disk-backed and the
// virtual implementation.
type FileSystem interface {
	// CreateDirectory creates a single directory. It fails if anything
	// already exists at path.
	CreateDirectory(path string) error

	// EnsurePath creates path and any missing parents. Existing entries are
	// left alone.
	EnsurePath(path string) error

	// DeleteDirectory removes a directory. Without force it refuses to remove
	// a directory that has descendants. Missing paths are ignored.
	DeleteDirectory(path string, force bool) error

	// DirectoryExists reports whether a directory exists at path.
	DirectoryExists(path string) bool

	// GetDirectories lists the immediate child directories of path.
	GetDirectories(path string) ([]string, error)

	// OpenFile opens a stream on path.
	OpenFile(path string, mode Mode, access Access, share Share) (Stream, error)

	// DeleteFile removes a file. Missing paths are ignored.
	DeleteFile(path string) error

	// FileExists reports whether a file exists at path.
	FileExists(path string) bool

	// CopyFile copies source to target, replacing target only when overwrite is set.
	CopyFile(source, target string, overwrite bool) error

	// GetFiles lists the files directly inside path.
	GetFiles(path string) ([]string, error)

	// GetFilesMatching lists the files directly inside path that match pattern.
	GetFilesMatching(path, pattern string) ([]string, error)

	// GetFileSize returns the size of a file in bytes.
	GetFileSize(path string) (int64, error)

	GetAttributes(path string) (Attributes, error)
	SetAttributes(path string, attributes Attributes) error
	CombineAttributes(path string, attributes Attributes) error
	RemoveAttributes(path string, attributes Attributes) error

	GetLastWriteTime(path string) (time.Time, error)
	SetLastWriteTime(path string, t time.Time) error

	// GetFileHash returns the content digest of a file.
	GetFileHash(path string) ([]byte, error)

	// HashBytes returns the digest of contents using the same algorithm as GetFileHash.
	HashBytes(contents []byte) []byte

	// GetFileHashAsString returns the base64-encoded GetFileHash.
	GetFileHashAsString(path string) (string, error)

	ReadAllText(path string) (string, error)
	WriteAllText(path, text string) error
	AppendAllText(path, text string) error
	ReadAllLines(path string) ([]string, error)
	WriteAllLines(path string, lines []string) error
	ReadAllBytes(path string) ([]byte, error)
	WriteAllBytes(path string, contents []byte) error

	CombinePath(elements ...string) string
	GetDirectoryName(path string) string
	GetFileName(path string) string
	GetFullPath(path string) (string, error)
	GetName(path string) string

	// UserDataPath returns the directory where the application keeps its
	// per-user data, creating it if needed.
	UserDataPath() (string, error)
}

// LineTerminator separates lines in ReadAllLines and WriteAllLines on every
// platform.
const LineTerminator = "\r\n"

var (
	_ FileSystem = (*RealFS)(nil)
	_ FileSystem = (*VirtualFS)(nil)
)
