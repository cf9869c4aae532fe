// SPDX-License-Identifier: MPL-2.0

package sshserver

import (
	"fmt"
	"io"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"

	"github.com/sandterm/sandterm/internal/shell"
)

// shellKey stores the connection's shell in the ssh.Context.
type shellKey struct{}

// connectionMiddleware creates the connection's shell and logs its lifetime.
func (s *Server) connectionMiddleware() wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			sh, err := s.newShell(sess.User())
			if err != nil {
				s.logger.Error("failed to create session", "user", sess.User(), "error", err)
				wish.Fatalln(sess, "sandterm: cannot start session")
				return
			}
			sess.Context().SetValue(shellKey{}, sh)

			s.sessions.Add(1)
			defer s.sessions.Add(-1)
			id := sh.Session().ID()
			s.logger.Info("session opened", "id", id, "user", sess.User(), "remote", sess.RemoteAddr())
			defer s.logger.Info("session closed", "id", id, "user", sess.User())

			next(sess)
		}
	}
}

// execMiddleware runs "ssh host LINE" requests and ends the connection;
// requests without a command continue to the interactive handler.
func (s *Server) execMiddleware() wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			if len(sess.Command()) == 0 {
				next(sess)
				return
			}
			sh := shellFrom(sess)
			out := sh.Execute(sess.Context(), sess.RawCommand())
			if out != "" {
				if _, err := fmt.Fprintln(sess, out); err != nil {
					s.logger.Debug("write failed", "error", err)
				}
			}
			_ = sess.Exit(0) //nolint:errcheck // Terminal operation; error non-critical
		}
	}
}

// interactiveMiddleware runs the line editor until exit or disconnect.
func (s *Server) interactiveMiddleware() wish.Middleware {
	return func(_ ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			sh := shellFrom(sess)
			cfg := s.cfg.REPL
			pty, winCh, _ := sess.Pty()
			cfg.Width, cfg.Height = pty.Window.Width, pty.Window.Height

			repl := shell.NewREPL(sh, sess, cfg)
			go func() {
				for win := range winCh {
					_ = repl.Resize(win.Width, win.Height) //nolint:errcheck // only fails for non-positive sizes
				}
			}()

			if err := repl.Run(sess.Context()); err != nil && err != io.EOF {
				s.logger.Debug("session ended", "id", sh.Session().ID(), "error", err)
			}
			_ = sess.Exit(0) //nolint:errcheck // Terminal operation; error non-critical
		}
	}
}

func shellFrom(sess ssh.Session) *shell.Shell {
	sh, _ := sess.Context().Value(shellKey{}).(*shell.Shell)
	return sh
}
