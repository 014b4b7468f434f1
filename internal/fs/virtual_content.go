package fs

import (
	"fmt"
	"io"
	"strings"
)

// Bulk content helpers. Each one opens a BoundStream and releases it with
// defer so a writable stream commits on every return path.

func (v *VirtualFS) ReadAllBytes(path string) ([]byte, error) {
	s, err := v.OpenFile(path, ModeOpen, AccessRead, ShareRead)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	data, err := io.ReadAll(s)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func (v *VirtualFS) WriteAllBytes(path string, contents []byte) error {
	return v.write(path, ModeCreate, contents)
}

func (v *VirtualFS) ReadAllText(path string) (string, error) {
	data, err := v.ReadAllBytes(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (v *VirtualFS) WriteAllText(path, text string) error {
	return v.write(path, ModeCreate, []byte(text))
}

func (v *VirtualFS) AppendAllText(path, text string) error {
	return v.write(path, ModeAppend, []byte(text))
}

// ReadAllLines splits the file on CRLF. An empty file reads as a single
// empty line, so WriteAllLines with []string{""} round-trips.
func (v *VirtualFS) ReadAllLines(path string) ([]string, error) {
	text, err := v.ReadAllText(path)
	if err != nil {
		return nil, err
	}
	return splitLines(text), nil
}

// WriteAllLines joins lines with CRLF, without a trailing terminator.
func (v *VirtualFS) WriteAllLines(path string, lines []string) error {
	return v.WriteAllText(path, joinLines(lines))
}

func (v *VirtualFS) write(path string, mode Mode, data []byte) (err error) {
	s, err := v.OpenFile(path, mode, AccessWrite, ShareNone)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if _, err := s.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func splitLines(text string) []string {
	return strings.Split(text, LineTerminator)
}

func joinLines(lines []string) string {
	return strings.Join(lines, LineTerminator)
}
