package fs

import (
	"errors"
	iofs "io/fs"
	"syscall"
)

// ErrorCode identifies a class of file system failure. Codes are strings so
// they read well in logs and serialized output.
type ErrorCode string

const (
	// CodeNotFound indicates a required file or directory does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeWrongKind indicates the path exists but names a file where a
	// directory was expected, or the other way round.
	CodeWrongKind ErrorCode = "WRONG_KIND"

	// CodeAlreadyExists indicates a creation or non-overwriting copy targeted an occupied path.
	CodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// CodeNotEmpty indicates a non-forced delete of a directory with descendants.
	CodeNotEmpty ErrorCode = "NOT_EMPTY"

	// CodeInvalidOperation indicates the operation is not allowed in the current state,
	// such as writing to a read-only stream.
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// CodeUnknown indicates an unclassified failure from the underlying system.
	CodeUnknown ErrorCode = "UNKNOWN"
)

type codedError struct {
	code ErrorCode
	msg  string
	std  error
}

func (e *codedError) Error() string { return e.msg }

// Is lets the sentinels match their io/fs counterparts so callers written
// against the os package keep working.
func (e *codedError) Is(target error) bool {
	return e.std != nil && target == e.std
}

var (
	ErrNotFound         error = &codedError{code: CodeNotFound, msg: "file or directory not found", std: iofs.ErrNotExist}
	ErrWrongKind        error = &codedError{code: CodeWrongKind, msg: "path is of the wrong kind", std: iofs.ErrNotExist}
	ErrAlreadyExists    error = &codedError{code: CodeAlreadyExists, msg: "file or directory already exists", std: iofs.ErrExist}
	ErrNotEmpty         error = &codedError{code: CodeNotEmpty, msg: "directory not empty"}
	ErrInvalidOperation error = &codedError{code: CodeInvalidOperation, msg: "invalid operation", std: iofs.ErrInvalid}
)

// PathError records a failed operation and the path it was applied to.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error { return e.Err }

// Code returns the ErrorCode of the wrapped error.
func (e *PathError) Code() ErrorCode {
	return CodeOf(e.Err)
}

// CodeOf returns the ErrorCode carried by err, or CodeUnknown.
func CodeOf(err error) ErrorCode {
	var ce *codedError
	if errors.As(err, &ce) {
		return ce.code
	}
	return CodeUnknown
}

func pathErr(op, path string, err error) error {
	return &PathError{Op: op, Path: path, Err: err}
}

// translateOSError maps errors from the os package onto the package sentinels.
// Errors without a counterpart are wrapped unchanged.
func translateOSError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, syscall.ENOTEMPTY):
		return pathErr(op, path, ErrNotEmpty)
	case errors.Is(err, iofs.ErrNotExist):
		return pathErr(op, path, ErrNotFound)
	case errors.Is(err, iofs.ErrExist):
		return pathErr(op, path, ErrAlreadyExists)
	case errors.Is(err, syscall.EISDIR), errors.Is(err, syscall.ENOTDIR):
		return pathErr(op, path, ErrWrongKind)
	}
	return &PathError{Op: op, Path: path, Err: err}
}
