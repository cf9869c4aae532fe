// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sandterm/sandterm/pkg/vpath"
)

// Stopper is implemented by servers that can be shut down.
type Stopper interface {
	Stop() error
}

// NewSandbox creates an empty sandbox root under t.TempDir() and returns a
// resolver bound to it.
func NewSandbox(t testing.TB) *vpath.Resolver {
	t.Helper()
	r, err := vpath.NewResolver(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create sandbox: %v", err)
	}
	return r
}

// RealPath maps the virtual path onto root without any containment checks.
func RealPath(root, virtual string) string {
	return filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(vpath.Normalize(virtual, vpath.Root), "/")))
}

// MustWriteFile writes content to the virtual path below root, creating
// parent directories.
func MustWriteFile(t testing.TB, root, virtual, content string) {
	t.Helper()
	path := RealPath(root, virtual)
	MustMkdirAll(t, filepath.Dir(path), 0o755)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", virtual, err)
	}
}

// MustReadFile returns the content of the virtual path below root.
func MustReadFile(t testing.TB, root, virtual string) string {
	t.Helper()
	data, err := os.ReadFile(RealPath(root, virtual))
	if err != nil {
		t.Fatalf("failed to read %s: %v", virtual, err)
	}
	return string(data)
}

// MustMkdirAll creates a directory along with any necessary parents.
func MustMkdirAll(t testing.TB, path string, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(path, perm); err != nil {
		t.Fatalf("failed to create directory %s: %v", path, err)
	}
}

// MustSetenv sets key to value for the duration of the test.
// It returns a cleanup function that restores the original value (or unsets it).
func MustSetenv(t testing.TB, key, value string) func() {
	t.Helper()
	originalValue, hadValue := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set env %s: %v", key, err)
	}
	return func() {
		if hadValue {
			if err := os.Setenv(key, originalValue); err != nil {
				t.Errorf("failed to restore env %s: %v", key, err)
			}
			return
		}
		if err := os.Unsetenv(key); err != nil {
			t.Errorf("failed to unset env %s: %v", key, err)
		}
	}
}

// MustStop stops s, logging instead of failing since shutdown errors during
// cleanup are rarely interesting.
func MustStop(t testing.TB, s Stopper) {
	t.Helper()
	if err := s.Stop(); err != nil {
		t.Logf("warning: stop returned error: %v", err)
	}
}
