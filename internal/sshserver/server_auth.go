// SPDX-License-Identifier: MPL-2.0

package sshserver

import (
	"crypto/subtle"

	"github.com/charmbracelet/ssh"
	gossh "golang.org/x/crypto/ssh"
)

// passwordHandler accepts clients presenting the configured password.
func (s *Server) passwordHandler(ctx ssh.Context, password string) bool {
	if !s.checkPassword(password) {
		s.logger.Warn("rejected password", "user", ctx.User(), "remote", ctx.RemoteAddr())
		return false
	}
	s.logger.Debug("password accepted", "user", ctx.User(), "remote", ctx.RemoteAddr())
	return true
}

// keyboardInteractiveHandler asks for the password once, for clients that
// prefer keyboard-interactive over password authentication.
func (s *Server) keyboardInteractiveHandler(ctx ssh.Context, challenge gossh.KeyboardInteractiveChallenge) bool {
	answers, err := challenge(ctx.User(), "", []string{"Password: "}, []bool{false})
	if err != nil || len(answers) != 1 {
		return false
	}
	return s.passwordHandler(ctx, answers[0])
}

func (s *Server) checkPassword(password string) bool {
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Password)) == 1
}
