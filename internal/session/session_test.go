// SPDX-License-Identifier: MPL-2.0

package session

import (
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/sandterm/sandterm/internal/testutil"
	"github.com/sandterm/sandterm/internal/vfs"
)

func newTestSession(t *testing.T) (*Session, string) {
	t.Helper()
	r := testutil.NewSandbox(t)
	return New(r, DefaultConfig()), r.Root()
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	s := New(testutil.NewSandbox(t), Config{HistoryLimit: -1})
	if s.Cwd() != "/" {
		t.Errorf("Cwd() = %q, want /", s.Cwd())
	}
	if s.User() != DefaultUser || s.Hostname() != DefaultHostname {
		t.Errorf("identity = %s@%s", s.User(), s.Hostname())
	}
	if s.ID() == "" {
		t.Error("ID() should not be empty")
	}
	if other := New(s.Resolver(), DefaultConfig()); other.ID() == s.ID() {
		t.Error("sessions should have distinct IDs")
	}
}

func TestSession_Chdir(t *testing.T) {
	t.Parallel()

	s, root := newTestSession(t)
	testutil.MustMkdirAll(t, filepath.Join(root, "a", "b"), 0o755)
	testutil.MustWriteFile(t, root, "/a/file", "x")

	if err := s.Chdir("a/b"); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	if s.Cwd() != "/a/b" {
		t.Errorf("Cwd() = %q, want /a/b", s.Cwd())
	}

	if err := s.Chdir("../file"); vfs.KindOf(err) != vfs.NotADirectory {
		t.Errorf("Chdir() to file error = %v, want NotADirectory", err)
	}
	if err := s.Chdir("/missing"); vfs.KindOf(err) != vfs.NotFound {
		t.Errorf("Chdir() to missing error = %v, want NotFound", err)
	}
	if s.Cwd() != "/a/b" {
		t.Errorf("failed Chdir changed Cwd to %q", s.Cwd())
	}

	if err := s.Chdir("../../../.."); err != nil || s.Cwd() != "/" {
		t.Errorf("Chdir() above root = %q, %v", s.Cwd(), err)
	}

	_ = s.Chdir("/a")
	if err := s.Chdir("~"); err != nil || s.Cwd() != "/" {
		t.Errorf("Chdir(~) = %q, %v", s.Cwd(), err)
	}
}

func TestSession_FSUsesCwd(t *testing.T) {
	t.Parallel()

	s, root := newTestSession(t)
	testutil.MustMkdirAll(t, filepath.Join(root, "docs"), 0o755)
	if err := s.Chdir("/docs"); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	if err := s.FS().Write("readme", "hi"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got := testutil.MustReadFile(t, root, "/docs/readme"); got != "hi" {
		t.Errorf("content = %q", got)
	}
}

func TestSession_Prompt(t *testing.T) {
	t.Parallel()

	s, root := newTestSession(t)
	if got := s.Prompt(); got != "user@terminal:/$ " {
		t.Errorf("Prompt() = %q", got)
	}

	testutil.MustMkdirAll(t, filepath.Join(root, "home", "user"), 0o755)
	if err := s.Chdir("/home/user"); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	if got := s.Prompt(); got != "user@terminal:/home/user$ " {
		t.Errorf("Prompt() in /home/user = %q", got)
	}
}

func TestSession_HomeIsRoot(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t)
	if got := s.Home(); got != "/" {
		t.Errorf("Home() = %q, want %q", got, "/")
	}
	if err := s.Chdir("/"); err != nil {
		t.Fatalf("Chdir(/) error = %v", err)
	}
	for _, kv := range s.Env() {
		if kv[0] == "HOME" && kv[1] != s.Home() {
			t.Errorf("HOME = %q, want %q", kv[1], s.Home())
		}
	}
	if err := s.Chdir("~"); err != nil || s.Cwd() != s.Home() {
		t.Errorf("Chdir(~) = %v, cwd %q, want %q", err, s.Cwd(), s.Home())
	}
}

func TestSession_HistoryLimit(t *testing.T) {
	t.Parallel()

	s := New(testutil.NewSandbox(t), Config{HistoryLimit: 2})
	for _, line := range []string{"one", "two", "three"} {
		s.AddHistory(line)
	}
	if got := s.History(); !slices.Equal(got, []string{"two", "three"}) {
		t.Errorf("History() = %v", got)
	}
	s.ClearHistory()
	if len(s.History()) != 0 {
		t.Error("ClearHistory() left entries behind")
	}
}

func TestSession_Flags(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t)
	s.RequestClear()
	if !s.TakeClear() || s.TakeClear() {
		t.Error("TakeClear() should report once")
	}
	s.RequestExit()
	if !s.ExitRequested() {
		t.Error("ExitRequested() = false")
	}
	s.Record("a", "b")
	if got := s.Transcript(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Transcript() = %v", got)
	}
}

func TestSession_Uptime(t *testing.T) {
	t.Parallel()

	clock := testutil.NewFakeClock(time.Time{})
	s := New(testutil.NewSandbox(t), Config{Clock: clock})
	clock.Advance(83 * time.Minute)
	if got := s.Uptime(); got != 83*time.Minute {
		t.Errorf("Uptime() = %v", got)
	}
}
