// SPDX-License-Identifier: MPL-2.0

package vfs

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/sandterm/sandterm/pkg/vpath"
)

var (
	// ErrSameFile is returned when source and destination are one file.
	ErrSameFile = errors.New("are the same file")
	// ErrIntoItself is returned when a directory would be copied or moved
	// below itself.
	ErrIntoItself = errors.New("cannot copy a directory into itself")
)

// Copy copies src to dst. Directories require recursive. When dst is an
// existing directory the source is copied into it under its own base name.
func (f *FS) Copy(src, dst string, recursive bool) error {
	srcReal, err := f.RealPath(src)
	if err != nil {
		return err
	}
	info, err := os.Stat(srcReal)
	if err != nil {
		return wrapOS("copy", src, err)
	}
	if info.IsDir() && !recursive {
		return newError("copy", src, IsADirectory)
	}

	dstReal, dstPath, err := f.destination(src, dst, f.RealPath)
	if err != nil {
		return err
	}
	if dstInfo, err := os.Stat(dstReal); err == nil && os.SameFile(info, dstInfo) {
		return &PathError{Op: "copy", Path: dstPath, Kind: Other, Err: ErrSameFile}
	}

	if !info.IsDir() {
		return wrapOS("copy", dstPath, copyFile(srcReal, dstReal, info.Mode().Perm()))
	}
	if vpath.Within(srcReal, dstReal) {
		return &PathError{Op: "copy", Path: dstPath, Kind: Other, Err: ErrIntoItself}
	}
	return wrapOS("copy", dstPath, copyTree(f.resolver.Root(), srcReal, dstReal))
}

// Move renames src to dst with the same into-directory rule as Copy. When a
// rename crosses devices the tree is copied and the source removed.
func (f *FS) Move(src, dst string) error {
	srcReal, err := f.realNoFollow(src)
	if err != nil {
		return err
	}
	if srcReal == f.resolver.Root() {
		return newError("move", src, PermissionDenied)
	}
	info, err := os.Lstat(srcReal)
	if err != nil {
		return wrapOS("move", src, err)
	}

	dstReal, dstPath, err := f.destination(src, dst, f.realNoFollow)
	if err != nil {
		return err
	}
	if dstReal == srcReal {
		return &PathError{Op: "move", Path: dstPath, Kind: Other, Err: ErrSameFile}
	}
	if info.IsDir() && vpath.Within(srcReal, dstReal) {
		return &PathError{Op: "move", Path: dstPath, Kind: Other, Err: ErrIntoItself}
	}
	if err := os.MkdirAll(filepath.Dir(dstReal), dirPerm); err != nil {
		return wrapOS("move", dstPath, err)
	}

	err = os.Rename(srcReal, dstReal)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return wrapOS("move", dstPath, err)
	}
	if info.IsDir() {
		err = copyTree(f.resolver.Root(), srcReal, dstReal)
	} else {
		err = copyFile(srcReal, dstReal, info.Mode().Perm())
	}
	if err != nil {
		return wrapOS("move", dstPath, err)
	}
	return wrapOS("move", src, os.RemoveAll(srcReal))
}

// destination applies the into-directory rule and returns the real and
// virtual destination paths.
func (f *FS) destination(src, dst string, resolve func(string) (string, error)) (real, virtual string, err error) {
	virtual = f.Abs(dst)
	if f.IsDir(dst) {
		virtual = vpath.Join(virtual, vpath.Base(f.Abs(src)))
	}
	real, err = resolve(virtual)
	if err != nil {
		return "", "", err
	}
	return real, virtual, nil
}

func copyFile(src, dst string, perm os.FileMode) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := in.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := os.MkdirAll(filepath.Dir(dst), dirPerm); err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}

// copyTree copies the directory src to dst. Symlinks are recreated with
// their original target text. Every destination must stay below root even if
// dst already holds links that point elsewhere.
func copyTree(root, src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if !contained(root, target) {
			return &fs.PathError{Op: "copy", Path: target, Err: fs.ErrPermission}
		}

		switch {
		case d.IsDir():
			return os.MkdirAll(target, dirPerm)
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		default:
			info, err := d.Info()
			if err != nil {
				return err
			}
			return copyFile(path, target, info.Mode().Perm())
		}
	})
}

// contained reports whether target, with its parent directory's symlinks
// evaluated, still lies below root.
func contained(root, target string) bool {
	parent, err := filepath.EvalSymlinks(filepath.Dir(target))
	if err != nil {
		// Not created yet; the walk creates parents before children.
		return vpath.Within(root, target)
	}
	if !vpath.Within(root, parent) {
		return false
	}
	info, err := os.Lstat(target)
	if err != nil || info.Mode()&fs.ModeSymlink == 0 {
		return true
	}
	resolved, err := filepath.EvalSymlinks(target)
	return err == nil && vpath.Within(root, resolved)
}
