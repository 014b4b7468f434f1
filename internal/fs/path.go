package fs

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Path helpers are pure string computations shared by every implementation.
// They never consult a store or the disk, except GetFullPath which needs the
// working directory for relative input.

const separator = string(filepath.Separator)

func isSeparator(c byte) bool {
	return c == '/' || c == filepath.Separator
}

// trimTrailingSeparator removes exactly one trailing separator.
func trimTrailingSeparator(p string) string {
	if p != "" && isSeparator(p[len(p)-1]) {
		return p[:len(p)-1]
	}
	return p
}

func lastSeparator(p string) int {
	for i := len(p) - 1; i >= 0; i-- {
		if isSeparator(p[i]) {
			return i
		}
	}
	return -1
}

// CombinePath joins path elements. An element that is itself rooted discards
// everything before it; empty elements are skipped. The result is not cleaned.
func CombinePath(elements ...string) string {
	result := ""
	for _, e := range elements {
		switch {
		case e == "":
			continue
		case filepath.IsAbs(e) || isSeparator(e[0]):
			result = e
		case result == "":
			result = e
		case isSeparator(result[len(result)-1]):
			result += e
		default:
			result += separator + e
		}
	}
	return result
}

// DirectoryName returns the parent directory of p. One trailing separator is
// stripped first, so "/a/b/" yields "/a". An empty path, a root, or a bare
// name without a separator yields "".
func DirectoryName(p string) string {
	p = trimTrailingSeparator(p)
	if p == "" {
		return ""
	}
	i := lastSeparator(p)
	if i < 0 {
		return ""
	}
	if i == 0 {
		return p[:1]
	}
	return p[:i]
}

// FileName returns the component after the last separator. A path ending in a
// separator has an empty file name.
func FileName(p string) string {
	return p[lastSeparator(p)+1:]
}

// FullPath resolves p against the working directory and cleans it.
func FullPath(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", fmt.Errorf("resolving full path: %w", pathErr("full path", p, ErrInvalidOperation))
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolving full path: %w", err)
	}
	return abs, nil
}

// foldKey is the case-insensitive identity of a path.
func foldKey(p string) string {
	return strings.ToLower(p)
}
