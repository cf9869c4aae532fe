// SPDX-License-Identifier: MPL-2.0

package vpath

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func newTestResolver(t *testing.T) (*Resolver, string) {
	t.Helper()

	parent := t.TempDir()
	root := filepath.Join(parent, "data")
	if err := os.Mkdir(root, 0o755); err != nil {
		t.Fatalf("failed to create root: %v", err)
	}

	r, err := NewResolver(root)
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
	return r, parent
}

func TestNewResolver_Invalid(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	file := filepath.Join(tmp, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	for _, root := range []string{"", "   ", filepath.Join(tmp, "missing"), file} {
		_, err := NewResolver(root)
		if !errors.Is(err, ErrInvalidRoot) {
			t.Errorf("NewResolver(%q) error = %v, want ErrInvalidRoot", root, err)
		}
	}
}

func TestResolve_InsideSandbox(t *testing.T) {
	t.Parallel()

	r, _ := newTestResolver(t)

	tests := []struct {
		path string
		cwd  string
		want string
	}{
		{path: "/", cwd: "/", want: r.Root()},
		{path: "..", cwd: "/", want: r.Root()},
		{path: "/a/file", cwd: "/", want: filepath.Join(r.Root(), "a", "file")},
		{path: "file", cwd: "/a", want: filepath.Join(r.Root(), "a", "file")},
		{path: "../../../../etc/passwd", cwd: "/a", want: filepath.Join(r.Root(), "etc", "passwd")},
	}

	for _, tt := range tests {
		got, err := r.Resolve(tt.path, tt.cwd)
		if err != nil {
			t.Errorf("Resolve(%q, %q) error = %v", tt.path, tt.cwd, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%q, %q) = %q, want %q", tt.path, tt.cwd, got, tt.want)
		}
	}
}

func TestResolve_EquivalentRoutes(t *testing.T) {
	t.Parallel()

	r, _ := newTestResolver(t)
	if err := os.MkdirAll(filepath.Join(r.Root(), "a"), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}

	viaParent, err := r.Resolve("a/../a/file", "/")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	direct, err := r.Resolve("a/file", "/")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if viaParent != direct {
		t.Errorf("equivalent routes differ: %q vs %q", viaParent, direct)
	}
}

func TestResolve_SymlinkEscapeDenied(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on Windows")
	}
	t.Parallel()

	r, parent := newTestResolver(t)

	// A sibling directory whose name starts with the root's name.
	sibling := filepath.Join(parent, "data2")
	if err := os.Mkdir(sibling, 0o755); err != nil {
		t.Fatalf("failed to create sibling: %v", err)
	}
	if err := os.Symlink(sibling, filepath.Join(r.Root(), "sib")); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}
	if err := os.Symlink(filepath.Join(parent, "nowhere"), filepath.Join(r.Root(), "dangling")); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}
	if err := os.Symlink("/", filepath.Join(r.Root(), "slash")); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}

	for _, p := range []string{"/sib", "/sib/secret", "/dangling", "/dangling/new", "/slash/etc"} {
		_, err := r.Resolve(p, "/")
		if !errors.Is(err, ErrSandboxDenied) {
			t.Errorf("Resolve(%q) error = %v, want ErrSandboxDenied", p, err)
		}
		var denied *DeniedError
		if errors.As(err, &denied) && denied.Path != p {
			t.Errorf("DeniedError.Path = %q, want %q", denied.Path, p)
		}
	}
}

func TestResolve_SymlinkInsideAllowed(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on Windows")
	}
	t.Parallel()

	r, _ := newTestResolver(t)
	target := filepath.Join(r.Root(), "real")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.Symlink(target, filepath.Join(r.Root(), "alias")); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}

	got, err := r.Resolve("/alias/file", "/")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if want := filepath.Join(target, "file"); got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestWithin(t *testing.T) {
	t.Parallel()

	sep := string(filepath.Separator)
	root := sep + "data"

	tests := []struct {
		target string
		want   bool
	}{
		{target: root, want: true},
		{target: root + sep + "x", want: true},
		{target: root + sep + "x" + sep + "..", want: true},
		{target: sep + "data2", want: false},
		{target: sep + "data2" + sep + "x", want: false},
		{target: sep, want: false},
		{target: root + sep + "..", want: false},
		{target: root + sep + "..data", want: true},
	}

	for _, tt := range tests {
		if got := Within(root, tt.target); got != tt.want {
			t.Errorf("Within(%q, %q) = %v, want %v", root, tt.target, got, tt.want)
		}
	}
}

func TestResolveNoFollow(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on Windows")
	}
	t.Parallel()

	r, parent := newTestResolver(t)
	link := filepath.Join(r.Root(), "out")
	if err := os.Symlink(parent, link); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}

	got, err := r.ResolveNoFollow("/out", "/")
	if err != nil {
		t.Fatalf("ResolveNoFollow() error = %v", err)
	}
	if got != link {
		t.Errorf("ResolveNoFollow() = %q, want %q", got, link)
	}

	if _, err := r.ResolveNoFollow("/out/child", "/"); !errors.Is(err, ErrSandboxDenied) {
		t.Errorf("ResolveNoFollow() through escaping link error = %v, want ErrSandboxDenied", err)
	}

	if got, err := r.ResolveNoFollow("/", "/"); err != nil || got != r.Root() {
		t.Errorf("ResolveNoFollow(/) = %q, %v", got, err)
	}
}
