// SPDX-License-Identifier: MPL-2.0

package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sandterm/sandterm/internal/vfs"
	"github.com/sandterm/sandterm/pkg/vpath"
)

const (
	// DefaultUser is the login name used when none is configured.
	DefaultUser = "user"
	// DefaultHostname is the host name used when none is configured.
	DefaultHostname = "terminal"
	// DefaultHistoryLimit caps the number of remembered command lines.
	DefaultHistoryLimit = 1000
)

type (
	// Config controls how a Session is initialised.
	Config struct {
		User     string
		Hostname string
		// HistoryLimit caps the history length; 0 means unlimited.
		HistoryLimit int
		// Clock defaults to SystemClock.
		Clock Clock
	}

	// Session is the state of one interactive shell.
	Session struct {
		mu sync.Mutex

		id        string
		resolver  *vpath.Resolver
		fs        *vfs.FS
		cwd       string
		user      string
		hostname  string
		clock     Clock
		startedAt time.Time

		history      []string
		historyLimit int
		transcript   []string
		procs        *ProcessTable

		exitRequested  bool
		clearRequested bool
	}
)

// DefaultConfig returns the configuration used when nothing is customised.
func DefaultConfig() Config {
	return Config{
		User:         DefaultUser,
		Hostname:     DefaultHostname,
		HistoryLimit: DefaultHistoryLimit,
		Clock:        SystemClock{},
	}
}

// New creates a Session rooted at resolver's sandbox with its working
// directory at "/".
func New(resolver *vpath.Resolver, cfg Config) *Session {
	defaults := DefaultConfig()
	if cfg.User == "" {
		cfg.User = defaults.User
	}
	if cfg.Hostname == "" {
		cfg.Hostname = defaults.Hostname
	}
	if cfg.HistoryLimit < 0 {
		cfg.HistoryLimit = defaults.HistoryLimit
	}
	if cfg.Clock == nil {
		cfg.Clock = defaults.Clock
	}

	s := &Session{
		id:           uuid.NewString(),
		resolver:     resolver,
		cwd:          vpath.Root,
		user:         cfg.User,
		hostname:     cfg.Hostname,
		clock:        cfg.Clock,
		startedAt:    cfg.Clock.Now(),
		historyLimit: cfg.HistoryLimit,
		procs:        NewProcessTable(cfg.User),
	}
	s.fs = vfs.New(resolver, s.Cwd)
	return s
}

// Lock acquires exclusive access to the session.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session.
func (s *Session) Unlock() { s.mu.Unlock() }

// ID returns the unique identifier of this session.
func (s *Session) ID() string { return s.id }

// FS returns the filesystem adapter bound to this session's directory.
func (s *Session) FS() *vfs.FS { return s.fs }

// Resolver returns the sandbox resolver.
func (s *Session) Resolver() *vpath.Resolver { return s.resolver }

// User returns the login name.
func (s *Session) User() string { return s.user }

// Hostname returns the simulated host name.
func (s *Session) Hostname() string { return s.hostname }

// Home returns the virtual home directory, which is the sandbox root like
// HOME and "cd ~".
func (s *Session) Home() string { return vpath.Root }

// Clock returns the session clock.
func (s *Session) Clock() Clock { return s.clock }

// StartedAt returns when the session was created.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Uptime returns how long the session has been running.
func (s *Session) Uptime() time.Duration { return s.clock.Since(s.startedAt) }

// Processes returns the simulated process table.
func (s *Session) Processes() *ProcessTable { return s.procs }

// Cwd returns the current virtual directory.
func (s *Session) Cwd() string { return s.cwd }

// Chdir changes the current directory. "~" means the sandbox root. The
// directory is only updated once the target is known to be a directory.
func (s *Session) Chdir(path string) error {
	if path == "~" {
		path = vpath.Root
	}
	info, err := s.fs.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &vfs.PathError{Op: "chdir", Path: path, Kind: vfs.NotADirectory}
	}
	s.cwd = vpath.Normalize(path, s.cwd)
	return nil
}

// Prompt renders "user@host:cwd$ ".
func (s *Session) Prompt() string {
	return fmt.Sprintf("%s@%s:%s$ ", s.user, s.hostname, s.cwd)
}

// Env returns the simulated environment in display order.
func (s *Session) Env() [][2]string {
	return [][2]string{
		{"USER", s.user},
		{"HOME", vpath.Root},
		{"PWD", s.cwd},
		{"SHELL", "/bin/bash"},
		{"PATH", "/usr/local/sbin:/usr/local/bin:/usr/sbin:/usr/bin:/sbin:/bin"},
	}
}

// AddHistory records a command line, dropping the oldest entries beyond the
// configured limit.
func (s *Session) AddHistory(line string) {
	s.history = append(s.history, line)
	if s.historyLimit > 0 && len(s.history) > s.historyLimit {
		s.history = append([]string(nil), s.history[len(s.history)-s.historyLimit:]...)
	}
}

// History returns a copy of the recorded command lines, oldest first.
func (s *Session) History() []string {
	return append([]string(nil), s.history...)
}

// ClearHistory forgets all recorded command lines.
func (s *Session) ClearHistory() {
	s.history = nil
}

// Record appends lines to the session transcript.
func (s *Session) Record(lines ...string) {
	s.transcript = append(s.transcript, lines...)
}

// Transcript returns a copy of the session transcript.
func (s *Session) Transcript() []string {
	return append([]string(nil), s.transcript...)
}

// RequestExit marks the session as finished.
func (s *Session) RequestExit() { s.exitRequested = true }

// ExitRequested reports whether exit has been called.
func (s *Session) ExitRequested() bool { return s.exitRequested }

// RequestClear asks the front end to clear the screen.
func (s *Session) RequestClear() { s.clearRequested = true }

// TakeClear reports and resets a pending clear request.
func (s *Session) TakeClear() bool {
	pending := s.clearRequested
	s.clearRequested = false
	return pending
}
