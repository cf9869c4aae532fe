// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"context"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/sandterm/sandterm/internal/session"
)

// Shell binds a Dispatcher to one session. It serializes lines on the
// session lock and keeps the session's history and transcript.
type Shell struct {
	sess       *session.Session
	dispatcher *Dispatcher
}

// New creates a Shell for sess.
func New(sess *session.Session, dispatcher *Dispatcher) *Shell {
	return &Shell{sess: sess, dispatcher: dispatcher}
}

// Session returns the session the shell runs in.
func (s *Shell) Session() *session.Session {
	return s.sess
}

// Execute runs line and returns its output. Non-blank lines are added to the
// history; the prompt, the line and its output are appended to the
// transcript.
func (s *Shell) Execute(ctx context.Context, line string) string {
	s.sess.Lock()
	defer s.sess.Unlock()

	if strings.TrimSpace(line) != "" {
		s.sess.AddHistory(line)
	}
	s.sess.Record(s.sess.Prompt() + line)

	out := s.dispatcher.Execute(ctx, s.sess, line)
	if out != "" {
		s.sess.Record(strings.Split(ansi.Strip(out), "\n")...)
	}
	return out
}

// Prompt returns the plain "user@host:cwd$ " prompt.
func (s *Shell) Prompt() string {
	s.sess.Lock()
	defer s.sess.Unlock()
	return s.sess.Prompt()
}

// Cwd returns the current working directory.
func (s *Shell) Cwd() string {
	s.sess.Lock()
	defer s.sess.Unlock()
	return s.sess.Cwd()
}

// ExitRequested reports whether the exit command has run.
func (s *Shell) ExitRequested() bool {
	s.sess.Lock()
	defer s.sess.Unlock()
	return s.sess.ExitRequested()
}

// TakeClear reports and resets a pending clear-screen request.
func (s *Shell) TakeClear() bool {
	s.sess.Lock()
	defer s.sess.Unlock()
	return s.sess.TakeClear()
}
