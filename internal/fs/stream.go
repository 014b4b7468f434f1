package fs

import (
	"errors"
	"io"
	"math"
	"os"
)

// maxStreamLen bounds the buffer so growth never overflows an allocation size.
const maxStreamLen = int64(math.MaxInt / 2)

// BoundStream is a byte stream over a private copy of one entry's content.
// A writable stream commits its buffer back to the entry when it is first
// closed; until then nothing written is visible through the entry.
type BoundStream struct {
	entry    *Entry
	writable bool
	buf      []byte
	pos      int64
	closed   bool
}

var _ Stream = (*BoundStream)(nil)

// newBoundStream creates a stream over e. Read-only streams always start
// with the entry's content. Writable streams start with it only when
// preload is set; otherwise they start empty.
func newBoundStream(e *Entry, writable, preload bool) *BoundStream {
	s := &BoundStream{entry: e, writable: writable}
	if !writable || preload {
		s.buf = cloneBytes(e.Content)
	}
	return s
}

// CanWrite reports whether the stream accepts writes.
func (s *BoundStream) CanWrite() bool { return s.writable }

// Len returns the length of the buffer.
func (s *BoundStream) Len() int64 { return int64(len(s.buf)) }

// Bytes returns a copy of the buffered data.
func (s *BoundStream) Bytes() []byte { return cloneBytes(s.buf) }

func (s *BoundStream) Read(p []byte) (int, error) {
	if s.closed {
		return 0, os.ErrClosed
	}
	if s.pos >= int64(len(s.buf)) {
		return 0, io.EOF
	}
	n := copy(p, s.buf[s.pos:])
	s.pos += int64(n)
	return n, nil
}

func (s *BoundStream) Write(p []byte) (int, error) {
	if s.closed {
		return 0, os.ErrClosed
	}
	if !s.writable {
		return 0, pathErr("write", s.entry.Path, ErrInvalidOperation)
	}
	end := s.pos + int64(len(p))
	if end < s.pos || end > maxStreamLen {
		return 0, pathErr("write", s.entry.Path, ErrInvalidOperation)
	}
	if end > int64(len(s.buf)) {
		oldLen := int64(len(s.buf))
		if end > int64(cap(s.buf)) {
			grown := make([]byte, end, 2*end)
			copy(grown, s.buf)
			s.buf = grown
		} else {
			s.buf = s.buf[:end]
		}
		// a seek past the end leaves a zero-filled gap
		if s.pos > oldLen {
			clear(s.buf[oldLen:s.pos])
		}
	}
	n := copy(s.buf[s.pos:], p)
	s.pos = end
	return n, nil
}

// WriteString writes the bytes of str.
func (s *BoundStream) WriteString(str string) (int, error) {
	return s.Write([]byte(str))
}

func (s *BoundStream) Seek(offset int64, whence int) (int64, error) {
	if s.closed {
		return 0, os.ErrClosed
	}
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = s.pos + offset
	case io.SeekEnd:
		abs = int64(len(s.buf)) + offset
	default:
		return 0, errors.New("seek: invalid whence")
	}
	if abs < 0 {
		return 0, errors.New("seek: negative position")
	}
	s.pos = abs
	return abs, nil
}

// Truncate changes the buffer length to size, zero-filling when it grows.
func (s *BoundStream) Truncate(size int64) error {
	if s.closed {
		return os.ErrClosed
	}
	if !s.writable {
		return pathErr("truncate", s.entry.Path, ErrInvalidOperation)
	}
	if size < 0 {
		return errors.New("truncate: negative size")
	}
	if size > maxStreamLen {
		return pathErr("truncate", s.entry.Path, ErrInvalidOperation)
	}
	if size <= int64(len(s.buf)) {
		s.buf = s.buf[:size]
		return nil
	}
	grown := make([]byte, size)
	copy(grown, s.buf)
	s.buf = grown
	return nil
}

// Close releases the stream. A writable stream copies its buffer into the
// entry. Closing twice is a no-op.
func (s *BoundStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.writable {
		s.entry.Content = s.buf
	}
	s.buf = nil
	return nil
}
