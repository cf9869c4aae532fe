// SPDX-License-Identifier: MPL-2.0

package vpath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// maxLinkHops bounds how many dangling symlinks canonicalize follows by hand.
const maxLinkHops = 255

var (
	// ErrSandboxDenied is the sentinel wrapped by DeniedError.
	ErrSandboxDenied = errors.New("access denied")
	// ErrInvalidRoot is the sentinel wrapped by InvalidRootError.
	ErrInvalidRoot = errors.New("invalid sandbox root")
	// errTooManyLinks is returned when dangling symlinks form a loop.
	errTooManyLinks = errors.New("too many levels of symbolic links")
)

type (
	// Resolver converts virtual paths into real paths confined to a sandbox
	// root. The root is fixed at construction and never changes. A Resolver is
	// immutable and safe for concurrent use.
	Resolver struct {
		root string
	}

	// DeniedError is returned when a virtual path would resolve outside the
	// sandbox root. It wraps ErrSandboxDenied for errors.Is() compatibility.
	DeniedError struct {
		// Path is the virtual path as given by the caller.
		Path string
	}

	// InvalidRootError is returned by NewResolver when the sandbox root cannot
	// be used. It wraps ErrInvalidRoot for errors.Is() compatibility.
	InvalidRootError struct {
		Root   string
		Reason string
	}
)

// Error implements the error interface for DeniedError.
func (e *DeniedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, ErrSandboxDenied)
}

// Unwrap returns ErrSandboxDenied for errors.Is() compatibility.
func (e *DeniedError) Unwrap() error { return ErrSandboxDenied }

// Error implements the error interface for InvalidRootError.
func (e *InvalidRootError) Error() string {
	return fmt.Sprintf("invalid sandbox root %q: %s", e.Root, e.Reason)
}

// Unwrap returns ErrInvalidRoot for errors.Is() compatibility.
func (e *InvalidRootError) Unwrap() error { return ErrInvalidRoot }

// NewResolver creates a Resolver for root. The root must be an existing
// directory; it is made absolute and symlink-free so containment checks compare
// canonical paths on both sides.
func NewResolver(root string) (*Resolver, error) {
	if strings.TrimSpace(root) == "" {
		return nil, &InvalidRootError{Root: root, Reason: "must be non-empty"}
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, &InvalidRootError{Root: root, Reason: err.Error()}
	}

	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &InvalidRootError{Root: root, Reason: "does not exist"}
		}
		return nil, &InvalidRootError{Root: root, Reason: err.Error()}
	}

	info, err := os.Stat(canonical)
	if err != nil {
		return nil, &InvalidRootError{Root: root, Reason: err.Error()}
	}
	if !info.IsDir() {
		return nil, &InvalidRootError{Root: root, Reason: "not a directory"}
	}

	return &Resolver{root: canonical}, nil
}

// Root returns the canonical real path of the sandbox root.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve maps path (absolute or relative to cwd) onto the real filesystem.
// The returned path is the sandbox root or one of its descendants; anything
// else yields a *DeniedError.
func (r *Resolver) Resolve(path, cwd string) (string, error) {
	virtual := Normalize(path, cwd)
	joined := filepath.Join(r.root, filepath.FromSlash(strings.TrimPrefix(virtual, "/")))

	canonical, err := canonicalize(joined)
	if err != nil {
		return "", &DeniedError{Path: path}
	}
	if !Within(r.root, canonical) {
		return "", &DeniedError{Path: path}
	}
	return canonical, nil
}

// ResolveNoFollow is like Resolve but leaves the final path component
// unevaluated, so a symlink at path is addressed itself rather than its target.
// Only the parent directory is canonicalized and checked for containment.
func (r *Resolver) ResolveNoFollow(path, cwd string) (string, error) {
	virtual := Normalize(path, cwd)
	if virtual == Root {
		return r.root, nil
	}

	parent, err := r.Resolve(Dir(virtual), Root)
	if err != nil {
		return "", &DeniedError{Path: path}
	}
	return filepath.Join(parent, Base(virtual)), nil
}

// Within reports whether target equals root or lies below it. The comparison
// is made on whole path components: "/data2" is not within "/data".
func Within(root, target string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(target))
	if err != nil || filepath.IsAbs(rel) {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// canonicalize resolves every symlink along p, including the part of p that
// does not exist yet. Missing trailing components are re-appended verbatim and
// dangling links are followed by hand so a write through them cannot land
// outside the evaluated location.
func canonicalize(p string) (string, error) {
	cur := filepath.Clean(p)
	var missing []string // innermost component first
	hops := 0

	for {
		resolved, err := filepath.EvalSymlinks(cur)
		if err == nil {
			return appendMissing(resolved, missing), nil
		}

		if info, lerr := os.Lstat(cur); lerr == nil && info.Mode()&os.ModeSymlink != 0 {
			hops++
			if hops > maxLinkHops {
				return "", errTooManyLinks
			}
			target, rerr := os.Readlink(cur)
			if rerr != nil {
				return "", rerr
			}
			if !filepath.IsAbs(target) {
				target = filepath.Join(filepath.Dir(cur), target)
			}
			cur = filepath.Clean(target)
			continue
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return appendMissing(cur, missing), nil
		}
		missing = append(missing, filepath.Base(cur))
		cur = parent
	}
}

func appendMissing(base string, missing []string) string {
	parts := make([]string, 0, len(missing)+1)
	parts = append(parts, base)
	for i := len(missing) - 1; i >= 0; i-- {
		parts = append(parts, missing[i])
	}
	return filepath.Join(parts...)
}
