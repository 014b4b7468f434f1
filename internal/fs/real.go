package fs

import (
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/opencontainers/go-digest"
)

// DefaultAppName names the user data directory when RealFS.AppName is empty.
const DefaultAppName = "swapfs"

// RealFS implements FileSystem using the actual operating system.
// This is the production implementation. Errors are translated to the
// package sentinels so callers can handle both implementations alike.
type RealFS struct {
	// AppName is the directory created under the platform data directory
	// by UserDataPath.
	AppName string

	userDataPath string
}

// NewRealFS creates a RealFS whose user data lives under appName.
func NewRealFS(appName string) *RealFS {
	return &RealFS{AppName: appName}
}

// Default is the default RealFS instance for convenience.
var Default = &RealFS{AppName: DefaultAppName}

// realStream adapts *os.File to Stream.
type realStream struct {
	*os.File
}

func (s realStream) Len() int64 {
	info, err := s.Stat()
	if err != nil {
		return 0
	}
	return info.Size()
}

func (r *RealFS) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (r *RealFS) DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (r *RealFS) CreateDirectory(path string) error {
	return translateOSError("create directory", path, os.Mkdir(path, 0o755))
}

func (r *RealFS) EnsurePath(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return translateOSError("ensure path", path, os.MkdirAll(path, 0o755))
}

// DeleteFile clears the read-only flag before removing the file so the
// result matches the virtual implementation.
func (r *RealFS) DeleteFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	if info.IsDir() {
		return pathErr("delete file", path, ErrWrongKind)
	}
	if err := os.Chmod(path, info.Mode().Perm()|0o200); err != nil {
		return translateOSError("delete file", path, err)
	}
	return translateOSError("delete file", path, os.Remove(path))
}

func (r *RealFS) DeleteDirectory(path string, force bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	if !info.IsDir() {
		return pathErr("delete directory", path, ErrWrongKind)
	}
	if !force {
		return translateOSError("delete directory", path, os.Remove(path))
	}
	if err := makeWritable(path); err != nil {
		return translateOSError("delete directory", path, err)
	}
	return translateOSError("delete directory", path, os.RemoveAll(path))
}

// makeWritable restores owner write permission below root so RemoveAll
// cannot trip over read-only entries.
func makeWritable(root string) error {
	return filepath.WalkDir(root, func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.Mode().Perm()&0o200 == 0 {
			return os.Chmod(p, info.Mode().Perm()|0o200)
		}
		return nil
	})
}

func (r *RealFS) CopyFile(source, target string, overwrite bool) error {
	if _, err := os.Stat(target); err == nil && !overwrite {
		return pathErr("copy file", target, ErrAlreadyExists)
	}
	info, err := os.Stat(source)
	if err != nil {
		return translateOSError("copy file", source, err)
	}
	if info.IsDir() {
		return pathErr("copy file", source, ErrWrongKind)
	}

	in, err := os.Open(source)
	if err != nil {
		return translateOSError("copy file", source, err)
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm()|0o200)
	if err != nil {
		return translateOSError("copy file", target, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copying %s to %s: %w", source, target, err)
	}
	if err := out.Close(); err != nil {
		return translateOSError("copy file", target, err)
	}
	if err := os.Chmod(target, info.Mode().Perm()); err != nil {
		return translateOSError("copy file", target, err)
	}
	return translateOSError("copy file", target, os.Chtimes(target, info.ModTime(), info.ModTime()))
}

func openFlags(mode Mode, access Access) int {
	var flag int
	switch access {
	case AccessWrite:
		flag = os.O_WRONLY
	case AccessReadWrite:
		flag = os.O_RDWR
	default:
		flag = os.O_RDONLY
	}
	switch mode {
	case ModeCreateNew:
		flag |= os.O_CREATE | os.O_EXCL
	case ModeCreate:
		flag |= os.O_CREATE | os.O_TRUNC
	case ModeOpenOrCreate:
		flag |= os.O_CREATE
	case ModeTruncate:
		flag |= os.O_TRUNC
	case ModeAppend:
		flag |= os.O_CREATE | os.O_APPEND
	}
	if !access.canWrite() {
		flag &^= os.O_TRUNC
	}
	return flag
}

// OpenFile opens path through os.OpenFile. The share mode is not enforced.
func (r *RealFS) OpenFile(path string, mode Mode, access Access, _ Share) (Stream, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		if mode.mustExist() {
			return nil, pathErr("open", path, ErrNotFound)
		}
		if mode.mustNotExist() {
			return nil, pathErr("open", path, ErrAlreadyExists)
		}
		return nil, pathErr("open", path, ErrWrongKind)
	}

	f, err := os.OpenFile(path, openFlags(mode, access), 0o644)
	if err != nil {
		return nil, translateOSError("open", path, err)
	}
	if access.canWrite() {
		now := time.Now()
		if err := os.Chtimes(path, now, now); err != nil {
			_ = f.Close()
			return nil, translateOSError("open", path, err)
		}
	}
	return realStream{f}, nil
}

// diskAttributes derives the attribute bitmask from what the platform
// exposes: the directory bit, owner write permission, and a leading dot.
func diskAttributes(path string, info os.FileInfo) Attributes {
	var a Attributes
	if info.IsDir() {
		a |= AttrDirectory
	}
	if info.Mode().Perm()&0o200 == 0 {
		a |= AttrReadOnly
	}
	if strings.HasPrefix(FileName(trimTrailingSeparator(path)), ".") {
		a |= AttrHidden
	}
	if a == 0 {
		a = AttrNormal
	}
	return a
}

func (r *RealFS) GetAttributes(path string) (Attributes, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, translateOSError("get attributes", path, err)
	}
	return diskAttributes(path, info), nil
}

// SetAttributes applies the read-only flag as owner write permission. Other
// flags have no on-disk representation and are ignored.
func (r *RealFS) SetAttributes(path string, attributes Attributes) error {
	info, err := os.Stat(path)
	if err != nil {
		return translateOSError("set attributes", path, err)
	}
	perm := info.Mode().Perm()
	if attributes.Has(AttrReadOnly) {
		perm &^= 0o222
	} else {
		perm |= 0o200
	}
	return translateOSError("set attributes", path, os.Chmod(path, perm))
}

func (r *RealFS) CombineAttributes(path string, attributes Attributes) error {
	existing, err := r.GetAttributes(path)
	if err != nil {
		return err
	}
	return r.SetAttributes(path, existing|attributes)
}

func (r *RealFS) RemoveAttributes(path string, attributes Attributes) error {
	existing, err := r.GetAttributes(path)
	if err != nil {
		return err
	}
	return r.SetAttributes(path, existing&^attributes)
}

func (r *RealFS) GetLastWriteTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, translateOSError("get last write time", path, err)
	}
	return info.ModTime(), nil
}

func (r *RealFS) SetLastWriteTime(path string, t time.Time) error {
	return translateOSError("set last write time", path, os.Chtimes(path, t, t))
}

func (r *RealFS) GetFileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, translateOSError("get file size", path, err)
	}
	if info.IsDir() {
		return 0, pathErr("get file size", path, ErrWrongKind)
	}
	return info.Size(), nil
}

// GetFileHash streams the file through the digest. A directory hashes as
// empty content, as it does in VirtualFS.
func (r *RealFS) GetFileHash(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, translateOSError("hash", path, err)
	}
	if info.IsDir() {
		return hashBytes(nil), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, translateOSError("hash", path, err)
	}
	defer f.Close()

	h := digest.Canonical.Hash()
	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf("hashing %s: %w", path, err)
	}
	return h.Sum(nil), nil
}

func (r *RealFS) HashBytes(contents []byte) []byte {
	return hashBytes(contents)
}

func (r *RealFS) GetFileHashAsString(path string) (string, error) {
	sum, err := r.GetFileHash(path)
	if err != nil {
		return "", err
	}
	return encodeHash(sum), nil
}

// list returns the children of path that satisfy keep. A file at path has
// no children, which matches VirtualFS.
func (r *RealFS) list(op, path string, keep func(iofs.DirEntry) bool) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, translateOSError(op, path, err)
	}
	if !info.IsDir() {
		return []string{}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, translateOSError(op, path, err)
	}
	out := []string{}
	for _, e := range entries {
		if keep(e) {
			out = append(out, CombinePath(path, e.Name()))
		}
	}
	return out, nil
}

func (r *RealFS) GetDirectories(path string) ([]string, error) {
	return r.list("get directories", path, func(e iofs.DirEntry) bool { return e.IsDir() })
}

func (r *RealFS) GetFiles(path string) ([]string, error) {
	return r.GetFilesMatching(path, FilePatternAll)
}

// GetFilesMatching uses the same substring matching as VirtualFS rather
// than shell globbing.
func (r *RealFS) GetFilesMatching(path, pattern string) ([]string, error) {
	return r.list("get files", path, func(e iofs.DirEntry) bool {
		if e.IsDir() {
			return false
		}
		return pattern == FilePatternAll || strings.Contains(e.Name(), pattern)
	})
}

func (r *RealFS) ReadAllBytes(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, translateOSError("read", path, err)
	}
	return data, nil
}

func (r *RealFS) WriteAllBytes(path string, contents []byte) error {
	return translateOSError("write", path, os.WriteFile(path, contents, 0o644))
}

func (r *RealFS) ReadAllText(path string) (string, error) {
	data, err := r.ReadAllBytes(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (r *RealFS) WriteAllText(path, text string) error {
	return r.WriteAllBytes(path, []byte(text))
}

func (r *RealFS) AppendAllText(path, text string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return translateOSError("append", path, err)
	}
	if _, err := f.WriteString(text); err != nil {
		_ = f.Close()
		return fmt.Errorf("appending to %s: %w", path, err)
	}
	return translateOSError("append", path, f.Close())
}

func (r *RealFS) ReadAllLines(path string) ([]string, error) {
	text, err := r.ReadAllText(path)
	if err != nil {
		return nil, err
	}
	return splitLines(text), nil
}

func (r *RealFS) WriteAllLines(path string, lines []string) error {
	return r.WriteAllText(path, joinLines(lines))
}

func (r *RealFS) CombinePath(elements ...string) string { return CombinePath(elements...) }

func (r *RealFS) GetDirectoryName(path string) string { return DirectoryName(path) }

func (r *RealFS) GetFileName(path string) string { return FileName(path) }

func (r *RealFS) GetFullPath(path string) (string, error) { return FullPath(path) }

func (r *RealFS) GetName(path string) string { return FileName(path) }

// UserDataPath resolves $XDG_DATA_HOME/<app>, falling back to
// ~/.local/share/<app>, and creates it on first use.
func (r *RealFS) UserDataPath() (string, error) {
	if r.userDataPath != "" {
		return r.userDataPath, nil
	}
	app := r.AppName
	if app == "" {
		app = DefaultAppName
	}

	var base string
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		base = xdg
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}

	path := filepath.Join(base, app)
	if err := r.EnsurePath(path); err != nil {
		return "", fmt.Errorf("creating user data directory: %w", err)
	}
	r.userDataPath = path
	return path, nil
}

// SetUserDataPath overrides the resolved user data directory.
func (r *RealFS) SetUserDataPath(path string) {
	r.userDataPath = path
}
