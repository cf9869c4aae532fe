// SPDX-License-Identifier: MPL-2.0

package vfs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"github.com/sandterm/sandterm/internal/testutil"
	"github.com/sandterm/sandterm/pkg/vpath"
)

func newTestFS(t *testing.T) (*FS, string) {
	t.Helper()
	r := testutil.NewSandbox(t)
	return New(r, nil), r.Root()
}

func TestFS_WriteRead(t *testing.T) {
	t.Parallel()

	fsys, root := newTestFS(t)

	if err := fsys.Write("/f", "hello"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, err := fsys.Read("/f")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got != "hello" {
		t.Errorf("Read() = %q, want %q", got, "hello")
	}

	if err := fsys.Write("/deep/nested/file.txt", "x"); err != nil {
		t.Fatalf("Write() with missing parents error = %v", err)
	}
	if got := testutil.MustReadFile(t, root, "/deep/nested/file.txt"); got != "x" {
		t.Errorf("nested content = %q", got)
	}
}

func TestFS_AppendAccumulates(t *testing.T) {
	t.Parallel()

	fsys, _ := newTestFS(t)

	if err := fsys.Write("/f", "x"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := fsys.Append("/f", "y"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if got, _ := fsys.Read("/f"); got != "xy" {
		t.Errorf("Read() = %q, want %q", got, "xy")
	}

	if err := fsys.Append("/new", "z"); err != nil {
		t.Fatalf("Append() to missing file error = %v", err)
	}
	if got, _ := fsys.Read("/new"); got != "z" {
		t.Errorf("Read() = %q, want %q", got, "z")
	}
}

func TestFS_ReadErrors(t *testing.T) {
	t.Parallel()

	fsys, root := newTestFS(t)
	testutil.MustMkdirAll(t, filepath.Join(root, "dir"), 0o755)

	tests := []struct {
		path   string
		kind   Kind
		target error
		reason string
	}{
		{path: "/missing", kind: NotFound, target: ErrNotFound, reason: "No such file or directory"},
		{path: "/dir", kind: IsADirectory, target: ErrIsADirectory, reason: "Is a directory"},
	}

	for _, tt := range tests {
		_, err := fsys.Read(tt.path)
		if KindOf(err) != tt.kind {
			t.Errorf("Read(%q) kind = %v, want %v (err %v)", tt.path, KindOf(err), tt.kind, err)
		}
		if !errors.Is(err, tt.target) {
			t.Errorf("Read(%q) error should wrap %v", tt.path, tt.target)
		}
		if got := Reason(err); got != tt.reason {
			t.Errorf("Reason() = %q, want %q", got, tt.reason)
		}
		if want := tt.path + ": " + tt.reason; err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	}

	_, err := fsys.Read("/missing")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("NotFound error should also wrap fs.ErrNotExist")
	}
}

func TestFS_WriteToDirectory(t *testing.T) {
	t.Parallel()

	fsys, root := newTestFS(t)
	testutil.MustMkdirAll(t, filepath.Join(root, "dir"), 0o755)

	if err := fsys.Write("/dir", "x"); KindOf(err) != IsADirectory {
		t.Errorf("Write() to directory error = %v, want IsADirectory", err)
	}
}

func TestFS_Mkdir(t *testing.T) {
	t.Parallel()

	fsys, root := newTestFS(t)

	if err := fsys.Mkdir("/d", false); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}
	err := fsys.Mkdir("/d", false)
	if !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("second Mkdir() error = %v, want AlreadyExists", err)
	}

	if err := fsys.Mkdir("/a/b/c", true); err != nil {
		t.Fatalf("Mkdir(parents) error = %v", err)
	}
	for _, p := range []string{"/a", "/a/b", "/a/b/c"} {
		if !fsys.IsDir(p) {
			t.Errorf("%s should be a directory", p)
		}
	}

	if err := fsys.Mkdir("/x/y", false); KindOf(err) != NotFound {
		t.Errorf("Mkdir() without parents error = %v, want NotFound", err)
	}

	testutil.MustWriteFile(t, root, "/file", "")
	if err := fsys.Mkdir("/file", true); KindOf(err) != AlreadyExists {
		t.Errorf("Mkdir() over file error = %v, want AlreadyExists", err)
	}
}

func TestFS_CreateFile(t *testing.T) {
	t.Parallel()

	fsys, root := newTestFS(t)

	if err := fsys.CreateFile("/p/q/empty"); err != nil {
		t.Fatalf("CreateFile() error = %v", err)
	}
	if got := testutil.MustReadFile(t, root, "/p/q/empty"); got != "" {
		t.Errorf("new file content = %q, want empty", got)
	}

	testutil.MustWriteFile(t, root, "/keep", "data")
	if err := fsys.CreateFile("/keep"); err != nil {
		t.Fatalf("CreateFile() on existing file error = %v", err)
	}
	if got := testutil.MustReadFile(t, root, "/keep"); got != "data" {
		t.Errorf("existing content changed to %q", got)
	}
}

func TestFS_Remove(t *testing.T) {
	t.Parallel()

	fsys, root := newTestFS(t)
	testutil.MustWriteFile(t, root, "/full/file", "x")
	testutil.MustMkdirAll(t, filepath.Join(root, "empty"), 0o755)

	tests := []struct {
		name string
		op   func() error
		kind Kind
	}{
		{name: "remove missing file", op: func() error { return fsys.RemoveFile("/nope") }, kind: NotFound},
		{name: "remove directory as file", op: func() error { return fsys.RemoveFile("/full") }, kind: IsADirectory},
		{name: "rmdir non-empty", op: func() error { return fsys.RemoveDir("/full") }, kind: DirectoryNotEmpty},
		{name: "rmdir file", op: func() error { return fsys.RemoveDir("/full/file") }, kind: NotADirectory},
		{name: "rmdir missing", op: func() error { return fsys.RemoveDir("/nope") }, kind: NotFound},
		{name: "rmdir root", op: func() error { return fsys.RemoveDir("/") }, kind: PermissionDenied},
		{name: "remove all root", op: func() error { return fsys.RemoveAll("/") }, kind: PermissionDenied},
		{name: "remove all missing", op: func() error { return fsys.RemoveAll("/nope") }, kind: NotFound},
	}

	for _, tt := range tests {
		if err := tt.op(); KindOf(err) != tt.kind {
			t.Errorf("%s: error = %v, want kind %v", tt.name, err, tt.kind)
		}
	}

	if err := fsys.RemoveDir("/empty"); err != nil {
		t.Errorf("RemoveDir(empty) error = %v", err)
	}
	if err := fsys.RemoveFile("/full/file"); err != nil {
		t.Errorf("RemoveFile() error = %v", err)
	}
	testutil.MustWriteFile(t, root, "/full/again", "x")
	if err := fsys.RemoveAll("/full"); err != nil {
		t.Errorf("RemoveAll() error = %v", err)
	}
	if fsys.Exists("/full") {
		t.Error("/full should be gone")
	}
}

func TestFS_CopyIntoDirectory(t *testing.T) {
	t.Parallel()

	fsys, root := newTestFS(t)
	testutil.MustWriteFile(t, root, "/f", "original")
	testutil.MustMkdirAll(t, filepath.Join(root, "existingDir"), 0o755)

	if err := fsys.Copy("/f", "/existingDir", false); err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	if got := testutil.MustReadFile(t, root, "/existingDir/f"); got != "original" {
		t.Errorf("copied content = %q", got)
	}
	if !fsys.Exists("/f") {
		t.Error("source should still exist after copy")
	}

	if err := fsys.Copy("/f", "/renamed", false); err != nil {
		t.Fatalf("Copy() to new name error = %v", err)
	}
	if got := testutil.MustReadFile(t, root, "/renamed"); got != "original" {
		t.Errorf("copied content = %q", got)
	}
}

func TestFS_CopyDirectory(t *testing.T) {
	t.Parallel()

	fsys, root := newTestFS(t)
	testutil.MustWriteFile(t, root, "/src/a.txt", "a")
	testutil.MustWriteFile(t, root, "/src/sub/b.txt", "b")

	if err := fsys.Copy("/src", "/dst", false); KindOf(err) != IsADirectory {
		t.Errorf("Copy() directory without recursive error = %v, want IsADirectory", err)
	}
	if err := fsys.Copy("/src", "/dst", true); err != nil {
		t.Fatalf("Copy(recursive) error = %v", err)
	}
	if got := testutil.MustReadFile(t, root, "/dst/sub/b.txt"); got != "b" {
		t.Errorf("nested copy = %q", got)
	}
	if err := fsys.Copy("/src", "/src/sub", true); !errors.Is(err, ErrIntoItself) {
		t.Errorf("Copy() into itself error = %v, want ErrIntoItself", err)
	}
	if err := fsys.Copy("/src/a.txt", "/src/a.txt", false); !errors.Is(err, ErrSameFile) {
		t.Errorf("Copy() onto itself error = %v, want ErrSameFile", err)
	}
}

func TestFS_Move(t *testing.T) {
	t.Parallel()

	fsys, root := newTestFS(t)
	testutil.MustWriteFile(t, root, "/f", "data")
	testutil.MustMkdirAll(t, filepath.Join(root, "dir"), 0o755)

	if err := fsys.Move("/f", "/dir"); err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if fsys.Exists("/f") {
		t.Error("source should be gone after move")
	}
	if got := testutil.MustReadFile(t, root, "/dir/f"); got != "data" {
		t.Errorf("moved content = %q", got)
	}

	if err := fsys.Move("/dir", "/dir/inner"); !errors.Is(err, ErrIntoItself) {
		t.Errorf("Move() into itself error = %v, want ErrIntoItself", err)
	}
	if err := fsys.Move("/missing", "/x"); KindOf(err) != NotFound {
		t.Errorf("Move() missing source error = %v, want NotFound", err)
	}
}

func TestFS_Lists(t *testing.T) {
	t.Parallel()

	fsys, root := newTestFS(t)
	testutil.MustWriteFile(t, root, "/b.txt", "bb")
	testutil.MustWriteFile(t, root, "/a.txt", "a")
	testutil.MustMkdirAll(t, filepath.Join(root, "c"), 0o755)

	names, err := fsys.List("/")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if want := []string{"a.txt", "b.txt", "c"}; !slices.Equal(names, want) {
		t.Errorf("List() = %v, want %v", names, want)
	}

	entries, err := fsys.DetailedList("/")
	if err != nil {
		t.Fatalf("DetailedList() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("DetailedList() returned %d entries", len(entries))
	}
	if entries[1].Mode != "-rw-r--r--" || entries[1].Size != 2 {
		t.Errorf("file entry = %+v", entries[1])
	}
	if entries[2].Mode != "drwxr-xr-x" || !entries[2].IsDir {
		t.Errorf("dir entry = %+v", entries[2])
	}

	if _, err := fsys.List("/a.txt"); KindOf(err) != NotADirectory {
		t.Errorf("List() on file error = %v, want NotADirectory", err)
	}
}

func TestFS_Walk(t *testing.T) {
	t.Parallel()

	fsys, root := newTestFS(t)
	testutil.MustWriteFile(t, root, "/w/a.txt", "")
	testutil.MustWriteFile(t, root, "/w/sub/b.txt", "")

	seq, err := fsys.Walk("/w")
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	var got []string
	for e := range seq {
		got = append(got, e.Kind.String()+" "+e.Path)
	}
	want := []string{"d /w", "f /w/a.txt", "d /w/sub", "f /w/sub/b.txt"}
	if !slices.Equal(got, want) {
		t.Errorf("Walk() = %v, want %v", got, want)
	}

	count := 0
	for range seq {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("early stop visited %d entries", count)
	}

	if _, err := fsys.Walk("/missing"); KindOf(err) != NotFound {
		t.Errorf("Walk() on missing path error = %v", err)
	}
}

func TestFS_RelativeToCwd(t *testing.T) {
	t.Parallel()

	r := testutil.NewSandbox(t)
	cwd := "/home"
	fsys := New(r, func() string { return cwd })

	if err := fsys.Write("notes.txt", "n"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got := testutil.MustReadFile(t, r.Root(), "/home/notes.txt"); got != "n" {
		t.Errorf("content = %q", got)
	}
	if got := fsys.Abs("../etc"); got != "/etc" {
		t.Errorf("Abs() = %q, want /etc", got)
	}
}

func TestFS_SandboxDenied(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on Windows")
	}
	t.Parallel()

	fsys, root := newTestFS(t)
	outside := t.TempDir()
	if err := os.Symlink(outside, filepath.Join(root, "escape")); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}

	err := fsys.Write("/escape/pwned", "x")
	if KindOf(err) != SandboxDenied || !errors.Is(err, vpath.ErrSandboxDenied) {
		t.Errorf("Write() through escaping link error = %v, want SandboxDenied", err)
	}
	if Reason(err) != "Access denied" {
		t.Errorf("Reason() = %q", Reason(err))
	}
	if _, statErr := os.Stat(filepath.Join(outside, "pwned")); statErr == nil {
		t.Error("file was written outside the sandbox")
	}

	if err := fsys.RemoveFile("/escape"); err != nil {
		t.Errorf("RemoveFile() on the link itself error = %v", err)
	}
	if _, statErr := os.Stat(outside); statErr != nil {
		t.Error("removing the link must not touch its target")
	}
}

func TestFS_Symlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on Windows")
	}
	t.Parallel()

	fsys, root := newTestFS(t)
	testutil.MustWriteFile(t, root, "/data/real.txt", "payload")

	if err := fsys.Symlink("/data/real.txt", "/links/alias"); KindOf(err) != NotFound {
		t.Errorf("Symlink() into missing dir error = %v, want NotFound", err)
	}
	if err := fsys.Symlink("real.txt", "/data/alias"); err != nil {
		t.Fatalf("Symlink() error = %v", err)
	}
	if got, _ := fsys.Read("/data/alias"); got != "payload" {
		t.Errorf("Read() via link = %q", got)
	}
	if err := fsys.Symlink("real.txt", "/data/alias"); KindOf(err) != AlreadyExists {
		t.Errorf("second Symlink() error = %v, want AlreadyExists", err)
	}

	if err := fsys.Link("/data/real.txt", "/data/hard"); err != nil {
		t.Fatalf("Link() error = %v", err)
	}
	if got, _ := fsys.Read("/data/hard"); got != "payload" {
		t.Errorf("Read() via hard link = %q", got)
	}
}

func TestFS_Usage(t *testing.T) {
	t.Parallel()

	fsys, root := newTestFS(t)
	testutil.MustWriteFile(t, root, "/u/a", "12345")
	testutil.MustWriteFile(t, root, "/u/b/c", "123")

	got, err := fsys.Usage("/u")
	if err != nil {
		t.Fatalf("Usage() error = %v", err)
	}
	if got != 8 {
		t.Errorf("Usage() = %d, want 8", got)
	}
}
