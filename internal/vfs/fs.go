// SPDX-License-Identifier: MPL-2.0

package vfs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sandterm/sandterm/pkg/vpath"
)

const (
	filePerm os.FileMode = 0o644
	dirPerm  os.FileMode = 0o755
)

type (
	// FS is the filesystem adapter used by command handlers. Relative paths
	// are interpreted against the directory returned by the cwd function.
	FS struct {
		resolver *vpath.Resolver
		cwd      func() string
	}

	// Entry is one row of a detailed listing.
	Entry struct {
		Name string
		// Mode is the synthesized permission string, e.g. "drwxr-xr-x".
		Mode    string
		Size    int64
		ModTime time.Time
		IsDir   bool
	}
)

// New creates an FS bound to resolver. cwd supplies the current virtual
// directory; a nil cwd means the sandbox root.
func New(resolver *vpath.Resolver, cwd func() string) *FS {
	if cwd == nil {
		cwd = func() string { return vpath.Root }
	}
	return &FS{resolver: resolver, cwd: cwd}
}

// Resolver returns the resolver backing this FS.
func (f *FS) Resolver() *vpath.Resolver {
	return f.resolver
}

// Abs returns the normalized virtual form of path.
func (f *FS) Abs(path string) string {
	return vpath.Normalize(path, f.cwd())
}

// RealPath maps path onto the real filesystem.
func (f *FS) RealPath(path string) (string, error) {
	real, err := f.resolver.Resolve(path, f.cwd())
	if err != nil {
		return "", &PathError{Op: "resolve", Path: path, Kind: SandboxDenied, Err: err}
	}
	return real, nil
}

func (f *FS) realNoFollow(path string) (string, error) {
	real, err := f.resolver.ResolveNoFollow(path, f.cwd())
	if err != nil {
		return "", &PathError{Op: "resolve", Path: path, Kind: SandboxDenied, Err: err}
	}
	return real, nil
}

// Stat returns file information for path, following symlinks.
func (f *FS) Stat(path string) (fs.FileInfo, error) {
	real, err := f.RealPath(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(real)
	if err != nil {
		return nil, wrapOS("stat", path, err)
	}
	return info, nil
}

// Lstat returns file information for path without following a final symlink.
func (f *FS) Lstat(path string) (fs.FileInfo, error) {
	real, err := f.realNoFollow(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Lstat(real)
	if err != nil {
		return nil, wrapOS("lstat", path, err)
	}
	return info, nil
}

// Exists reports whether path resolves inside the sandbox and exists.
func (f *FS) Exists(path string) bool {
	_, err := f.Stat(path)
	return err == nil
}

// IsDir reports whether path is an existing directory.
func (f *FS) IsDir(path string) bool {
	info, err := f.Stat(path)
	return err == nil && info.IsDir()
}

// Read returns the contents of the file at path as text. Invalid UTF-8 is
// replaced so binary files never corrupt terminal output.
func (f *FS) Read(path string) (string, error) {
	data, err := f.ReadBytes(path)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(data), "\uFFFD"), nil
}

// ReadBytes returns the raw contents of the file at path.
func (f *FS) ReadBytes(path string) ([]byte, error) {
	real, err := f.RealPath(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(real)
	if err != nil {
		return nil, wrapOS("read", path, err)
	}
	if info.IsDir() {
		return nil, newError("read", path, IsADirectory)
	}
	data, err := os.ReadFile(real)
	if err != nil {
		return nil, wrapOS("read", path, err)
	}
	return data, nil
}

// Write replaces the contents of path, creating it and any missing parent
// directories.
func (f *FS) Write(path, content string) error {
	return f.WriteBytes(path, []byte(content))
}

// WriteBytes is Write for binary content.
func (f *FS) WriteBytes(path string, data []byte) error {
	return f.writeFile("write", path, data, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
}

// Append adds content to the end of path, creating it and any missing parent
// directories.
func (f *FS) Append(path, content string) error {
	return f.writeFile("append", path, []byte(content), os.O_WRONLY|os.O_CREATE|os.O_APPEND)
}

func (f *FS) writeFile(op, path string, data []byte, flag int) (err error) {
	file, err := f.openForWrite(op, path, flag)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = wrapOS(op, path, closeErr)
		}
	}()

	if _, err = file.Write(data); err != nil {
		return wrapOS(op, path, err)
	}
	return nil
}

func (f *FS) openForWrite(op, path string, flag int) (*os.File, error) {
	real, err := f.RealPath(path)
	if err != nil {
		return nil, err
	}
	if info, statErr := os.Stat(real); statErr == nil && info.IsDir() {
		return nil, newError(op, path, IsADirectory)
	}
	if err := os.MkdirAll(filepath.Dir(real), dirPerm); err != nil {
		return nil, wrapOS(op, path, err)
	}
	file, err := os.OpenFile(real, flag, filePerm)
	if err != nil {
		return nil, wrapOS(op, path, err)
	}
	return file, nil
}

// Open opens path for streaming reads. The caller closes the file.
func (f *FS) Open(path string) (*os.File, error) {
	real, err := f.RealPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(real)
	if err != nil {
		return nil, wrapOS("open", path, err)
	}
	return file, nil
}

// Create truncates or creates path for streaming writes, creating parent
// directories. The caller closes the file.
func (f *FS) Create(path string) (*os.File, error) {
	return f.openForWrite("create", path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
}

// CreateFile creates an empty file at path if nothing exists there. An
// existing entry only has its modification time refreshed.
func (f *FS) CreateFile(path string) error {
	real, err := f.RealPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(real); err == nil {
		now := time.Now()
		return wrapOS("touch", path, os.Chtimes(real, now, now))
	}
	if err := os.MkdirAll(filepath.Dir(real), dirPerm); err != nil {
		return wrapOS("touch", path, err)
	}
	file, err := os.OpenFile(real, os.O_WRONLY|os.O_CREATE, filePerm)
	if err != nil {
		return wrapOS("touch", path, err)
	}
	return wrapOS("touch", path, file.Close())
}

// Mkdir creates the directory path. With parents, missing intermediate
// directories are created too. An existing entry of any type is an error.
func (f *FS) Mkdir(path string, parents bool) error {
	real, err := f.RealPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Lstat(real); err == nil {
		return newError("mkdir", path, AlreadyExists)
	}
	if parents {
		return wrapOS("mkdir", path, os.MkdirAll(real, dirPerm))
	}
	return wrapOS("mkdir", path, os.Mkdir(real, dirPerm))
}

// RemoveFile deletes a single non-directory entry. A symlink is removed
// itself, never its target.
func (f *FS) RemoveFile(path string) error {
	real, err := f.realNoFollow(path)
	if err != nil {
		return err
	}
	info, err := os.Lstat(real)
	if err != nil {
		return wrapOS("remove", path, err)
	}
	if info.IsDir() {
		return newError("remove", path, IsADirectory)
	}
	return wrapOS("remove", path, os.Remove(real))
}

// RemoveDir deletes an empty directory.
func (f *FS) RemoveDir(path string) error {
	real, err := f.realNoFollow(path)
	if err != nil {
		return err
	}
	if real == f.resolver.Root() {
		return newError("rmdir", path, PermissionDenied)
	}
	info, err := os.Lstat(real)
	if err != nil {
		return wrapOS("rmdir", path, err)
	}
	if !info.IsDir() {
		return newError("rmdir", path, NotADirectory)
	}
	if err := os.Remove(real); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return &PathError{Op: "rmdir", Path: path, Kind: DirectoryNotEmpty, Err: err}
		}
		return wrapOS("rmdir", path, err)
	}
	return nil
}

// RemoveAll deletes path and everything below it. The sandbox root itself
// cannot be removed.
func (f *FS) RemoveAll(path string) error {
	real, err := f.realNoFollow(path)
	if err != nil {
		return err
	}
	if real == f.resolver.Root() {
		return newError("remove", path, PermissionDenied)
	}
	if _, err := os.Lstat(real); err != nil {
		return wrapOS("remove", path, err)
	}
	return wrapOS("remove", path, os.RemoveAll(real))
}

// List returns the names in directory path, sorted.
func (f *FS) List(path string) ([]string, error) {
	entries, err := f.readDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names, nil
}

// DetailedList returns one Entry per item in directory path, sorted by name.
func (f *FS) DetailedList(path string) ([]Entry, error) {
	entries, err := f.readDir(path)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, EntryOf(info))
	}
	return out, nil
}

// EntryOf builds a listing Entry from file information.
func EntryOf(info fs.FileInfo) Entry {
	return Entry{
		Name:    info.Name(),
		Mode:    PermString(info),
		Size:    info.Size(),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
	}
}

// PermString synthesizes a permission column. Only the entry type is
// modelled; files all read -rw-r--r--.
func PermString(info fs.FileInfo) string {
	switch {
	case info.IsDir():
		return "drwxr-xr-x"
	case info.Mode()&fs.ModeSymlink != 0:
		return "lrwxrwxrwx"
	default:
		return "-rw-r--r--"
	}
}

func (f *FS) readDir(path string) ([]fs.DirEntry, error) {
	real, err := f.RealPath(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(real)
	if err != nil {
		return nil, wrapOS("list", path, err)
	}
	if !info.IsDir() {
		return nil, newError("list", path, NotADirectory)
	}
	entries, err := os.ReadDir(real)
	if err != nil {
		return nil, wrapOS("list", path, err)
	}
	return entries, nil
}

// Chmod changes the mode bits of path.
func (f *FS) Chmod(path string, mode os.FileMode) error {
	real, err := f.RealPath(path)
	if err != nil {
		return err
	}
	return wrapOS("chmod", path, os.Chmod(real, mode))
}

// Link creates newPath as a hard link to oldPath.
func (f *FS) Link(oldPath, newPath string) error {
	oldReal, err := f.RealPath(oldPath)
	if err != nil {
		return err
	}
	newReal, err := f.realNoFollow(newPath)
	if err != nil {
		return err
	}
	if _, err := os.Lstat(newReal); err == nil {
		return newError("link", newPath, AlreadyExists)
	}
	return wrapOS("link", newPath, os.Link(oldReal, newReal))
}

// Symlink creates linkPath pointing at target. The target must lie inside
// the sandbox; it is stored relative to the link so the tree stays
// relocatable.
func (f *FS) Symlink(target, linkPath string) error {
	resolved := target
	if !strings.HasPrefix(target, "/") {
		resolved = vpath.Join(vpath.Dir(f.Abs(linkPath)), target)
	}
	targetReal, err := f.RealPath(resolved)
	if err != nil {
		return err
	}
	linkReal, err := f.realNoFollow(linkPath)
	if err != nil {
		return err
	}
	if _, err := os.Lstat(linkReal); err == nil {
		return newError("symlink", linkPath, AlreadyExists)
	}
	rel, err := filepath.Rel(filepath.Dir(linkReal), targetReal)
	if err != nil {
		return wrapOS("symlink", linkPath, err)
	}
	return wrapOS("symlink", linkPath, os.Symlink(rel, linkReal))
}

// Usage returns the total size in bytes of the files below path.
func (f *FS) Usage(path string) (int64, error) {
	real, err := f.RealPath(path)
	if err != nil {
		return 0, err
	}
	var total int64
	walkErr := filepath.WalkDir(real, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			if d == nil {
				return err
			}
			return nil
		}
		if d.Type().IsRegular() {
			if info, err := d.Info(); err == nil {
				total += info.Size()
			}
		}
		return nil
	})
	if walkErr != nil {
		return 0, wrapOS("du", path, walkErr)
	}
	return total, nil
}
