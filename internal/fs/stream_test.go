package fs

import (
	"io"
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundStream_ReadOnly(t *testing.T) {
	e := NewTextFileEntry("/f.txt", "content")
	s := newBoundStream(e, false, false)

	data, err := io.ReadAll(s)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	_, err = s.Write([]byte("x"))
	assert.ErrorIs(t, err, ErrInvalidOperation)
	assert.Equal(t, CodeInvalidOperation, CodeOf(err))

	require.NoError(t, s.Close())
	assert.Equal(t, "content", string(e.Content), "closing a read-only stream commits nothing")
}

func TestBoundStream_WritableCommitsOnClose(t *testing.T) {
	e := NewTextFileEntry("/f.txt", "old")
	s := newBoundStream(e, true, false)

	_, err := s.Write([]byte("new data"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(e.Content), "nothing visible before close")

	require.NoError(t, s.Close())
	assert.Equal(t, "new data", string(e.Content))
}

func TestBoundStream_CloseIsIdempotent(t *testing.T) {
	e := NewTextFileEntry("/f.txt", "")
	s := newBoundStream(e, true, false)
	_, err := s.Write([]byte("once"))
	require.NoError(t, err)

	require.NoError(t, s.Close())
	e.Content = []byte("changed elsewhere")
	require.NoError(t, s.Close())
	assert.Equal(t, "changed elsewhere", string(e.Content), "second close must not commit again")

	_, err = s.Write([]byte("late"))
	assert.ErrorIs(t, err, os.ErrClosed)
	_, err = s.Read(make([]byte, 1))
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestBoundStream_SeekAndOverwrite(t *testing.T) {
	e := NewTextFileEntry("/f.txt", "hello world")
	s := newBoundStream(e, true, true)

	pos, err := s.Seek(6, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(6), pos)

	_, err = s.Write([]byte("gophers"))
	require.NoError(t, err)
	assert.Equal(t, int64(13), s.Len())

	_, err = s.Seek(0, io.SeekStart)
	require.NoError(t, err)
	data, err := io.ReadAll(s)
	require.NoError(t, err)
	assert.Equal(t, "hello gophers", string(data))

	_, err = s.Seek(-1, io.SeekStart)
	assert.Error(t, err)
}

func TestBoundStream_SeekPastEndZeroFills(t *testing.T) {
	e := NewFileEntry("/f.bin", nil)
	s := newBoundStream(e, true, false)

	_, err := s.Seek(3, io.SeekEnd)
	require.NoError(t, err)
	_, err = s.Write([]byte{0xff})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.Equal(t, []byte{0, 0, 0, 0xff}, e.Content)
}

func TestBoundStream_Truncate(t *testing.T) {
	e := NewTextFileEntry("/f.txt", "abcdef")
	s := newBoundStream(e, true, true)

	require.NoError(t, s.Truncate(3))
	assert.Equal(t, "abc", string(s.Bytes()))
	require.NoError(t, s.Truncate(5))
	assert.Equal(t, []byte{'a', 'b', 'c', 0, 0}, s.Bytes())

	ro := newBoundStream(e, false, false)
	assert.ErrorIs(t, ro.Truncate(0), ErrInvalidOperation)
}

func TestBoundStream_OversizedWriteFails(t *testing.T) {
	e := NewTextFileEntry("/f.txt", "keep")
	s := newBoundStream(e, true, true)

	_, err := s.Seek(1<<62, io.SeekStart)
	require.NoError(t, err)

	var n int
	assert.NotPanics(t, func() {
		n, err = s.Write([]byte("x"))
	})
	assert.Zero(t, n)
	assert.ErrorIs(t, err, ErrInvalidOperation)
	assert.Equal(t, CodeInvalidOperation, CodeOf(err))
	assert.Equal(t, int64(4), s.Len(), "buffer is untouched")

	_, err = s.Seek(math.MaxInt64, io.SeekStart)
	require.NoError(t, err)
	_, err = s.Write([]byte("x"))
	assert.ErrorIs(t, err, ErrInvalidOperation, "position overflow")

	assert.ErrorIs(t, s.Truncate(math.MaxInt64), ErrInvalidOperation)

	require.NoError(t, s.Close())
	assert.Equal(t, "keep", string(e.Content))
}
