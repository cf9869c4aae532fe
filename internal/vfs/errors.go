// SPDX-License-Identifier: MPL-2.0

package vfs

import (
	"errors"
	"io/fs"
	"syscall"

	"github.com/sandterm/sandterm/pkg/vpath"
)

// Kind classifies a filesystem failure.
type Kind int

const (
	// Other is an I/O failure that does not fit any classic reason; the
	// underlying error text is used as the reason.
	Other Kind = iota
	// NotFound means the path does not exist.
	NotFound
	// NotADirectory means a directory was required but a file was found.
	NotADirectory
	// IsADirectory means a file was required but a directory was found.
	IsADirectory
	// AlreadyExists means the target path is already taken.
	AlreadyExists
	// DirectoryNotEmpty means a directory still has entries.
	DirectoryNotEmpty
	// PermissionDenied means the host refused the operation.
	PermissionDenied
	// SandboxDenied means the path resolves outside the sandbox root.
	SandboxDenied
)

var (
	// ErrNotFound is the sentinel for NotFound.
	ErrNotFound = errors.New("no such file or directory")
	// ErrNotADirectory is the sentinel for NotADirectory.
	ErrNotADirectory = errors.New("not a directory")
	// ErrIsADirectory is the sentinel for IsADirectory.
	ErrIsADirectory = errors.New("is a directory")
	// ErrAlreadyExists is the sentinel for AlreadyExists.
	ErrAlreadyExists = errors.New("file exists")
	// ErrDirectoryNotEmpty is the sentinel for DirectoryNotEmpty.
	ErrDirectoryNotEmpty = errors.New("directory not empty")
	// ErrPermissionDenied is the sentinel for PermissionDenied.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrOther is the sentinel for Other.
	ErrOther = errors.New("i/o error")

	reasons = map[Kind]string{
		NotFound:          "No such file or directory",
		NotADirectory:     "Not a directory",
		IsADirectory:      "Is a directory",
		AlreadyExists:     "File exists",
		DirectoryNotEmpty: "Directory not empty",
		PermissionDenied:  "Permission denied",
		SandboxDenied:     "Access denied",
	}
)

// PathError records a failed operation on a virtual path.
type PathError struct {
	// Op is the FS method that failed (e.g. "read", "mkdir").
	Op string
	// Path is the virtual path as given by the caller.
	Path string
	// Kind classifies the failure.
	Kind Kind
	// Err is the underlying cause, if any.
	Err error
}

// Error returns "<path>: <reason>", the form commands embed after their name.
func (e *PathError) Error() string {
	return e.Path + ": " + e.Reason()
}

// Reason returns the classic message text for the failure kind.
func (e *PathError) Reason() string {
	if r, ok := reasons[e.Kind]; ok {
		return r
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "Input/output error"
}

// Unwrap exposes both the kind sentinel and the underlying cause, so
// errors.Is matches either ErrNotFound or fs.ErrNotExist.
func (e *PathError) Unwrap() []error {
	errs := []error{e.Kind.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func (k Kind) sentinel() error {
	switch k {
	case NotFound:
		return ErrNotFound
	case NotADirectory:
		return ErrNotADirectory
	case IsADirectory:
		return ErrIsADirectory
	case AlreadyExists:
		return ErrAlreadyExists
	case DirectoryNotEmpty:
		return ErrDirectoryNotEmpty
	case PermissionDenied:
		return ErrPermissionDenied
	case SandboxDenied:
		return vpath.ErrSandboxDenied
	default:
		return ErrOther
	}
}

// KindOf returns the Kind carried by err, or Other when err is not a
// *PathError.
func KindOf(err error) Kind {
	var pe *PathError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return Other
}

// Reason returns the classic reason text for err. Errors that are not
// *PathError values yield their own message.
func Reason(err error) string {
	var pe *PathError
	if errors.As(err, &pe) {
		return pe.Reason()
	}
	return err.Error()
}

func newError(op, path string, kind Kind) *PathError {
	return &PathError{Op: op, Path: path, Kind: kind}
}

// wrapOS converts an error from the os package into a *PathError.
func wrapOS(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PathError
	if errors.As(err, &pe) {
		return pe
	}
	return &PathError{Op: op, Path: path, Kind: classify(err), Err: err}
}

func classify(err error) Kind {
	switch {
	case errors.Is(err, vpath.ErrSandboxDenied):
		return SandboxDenied
	case errors.Is(err, syscall.ENOTDIR):
		return NotADirectory
	case errors.Is(err, syscall.EISDIR):
		return IsADirectory
	case errors.Is(err, syscall.ENOTEMPTY):
		return DirectoryNotEmpty
	case errors.Is(err, fs.ErrNotExist):
		return NotFound
	case errors.Is(err, fs.ErrExist):
		return AlreadyExists
	case errors.Is(err, fs.ErrPermission):
		return PermissionDenied
	default:
		return Other
	}
}
