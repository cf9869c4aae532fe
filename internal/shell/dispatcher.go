// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/sandterm/sandterm/internal/cmdline"
	"github.com/sandterm/sandterm/internal/coreutils"
	"github.com/sandterm/sandterm/internal/session"
	"github.com/sandterm/sandterm/internal/vfs"
)

// Dispatcher runs parsed command lines through a command registry. It holds
// no session state and may be shared by any number of sessions.
type Dispatcher struct {
	registry *coreutils.Registry
	logger   *log.Logger
}

// NewDispatcher creates a Dispatcher over registry. A nil logger discards
// log output.
func NewDispatcher(registry *coreutils.Registry, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{registry: registry, logger: logger}
}

// Registry returns the command table the dispatcher looks names up in.
func (d *Dispatcher) Registry() *coreutils.Registry {
	return d.registry
}

// Execute runs one command line in sess and returns the text to show the
// user. It never fails: syntax errors, unknown commands, handler failures and
// even handler panics all come back as text. The caller must hold the
// session lock.
func (d *Dispatcher) Execute(ctx context.Context, sess *session.Session, line string) string {
	inv, err := cmdline.Parse(line)
	if err != nil {
		return err.Error()
	}
	if inv.Empty() {
		return ""
	}

	cmd, ok := d.registry.Lookup(inv.Name)
	if !ok {
		d.logger.Debug("unknown command", "command", inv.Name)
		return fmt.Sprintf("bash: %s: command not found", inv.Name)
	}

	d.logger.Debug("executing command", "session", sess.ID(), "command", inv.Name, "args", inv.Args, "cwd", sess.Cwd())
	res := d.invoke(ctx, sess, cmd, inv)

	if inv.Redirect == nil || !res.HasOutput() {
		return res.Text
	}
	return d.redirect(sess.FS(), inv.Redirect, res.Text)
}

// invoke calls the handler, turning a panic into an "Error: ..." failure so
// the session survives it.
func (d *Dispatcher) invoke(ctx context.Context, sess *session.Session, cmd coreutils.Command, inv cmdline.Invocation) (res coreutils.Result) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("command panicked", "command", inv.Name, "panic", r)
			res = coreutils.Failuref("Error: %v", r)
		}
	}()

	hc := &coreutils.HandlerContext{Session: sess, Registry: d.registry}
	args := make([]string, 0, len(inv.Args)+1)
	args = append(args, inv.Name)
	args = append(args, inv.Args...)
	return cmd.Run(coreutils.WithHandlerContext(ctx, hc), args)
}

// redirect writes text to the target and returns what the caller sees:
// nothing on success, a bash-style message on failure.
func (d *Dispatcher) redirect(fsys *vfs.FS, r *cmdline.Redirect, text string) string {
	if text != "" {
		text += "\n"
	}
	var err error
	switch r.Mode {
	case cmdline.Append:
		err = fsys.Append(r.Target, text)
	default:
		err = fsys.Write(r.Target, text)
	}
	if err != nil {
		d.logger.Debug("redirect failed", "target", r.Target, "mode", r.Mode, "error", err)
		return fmt.Sprintf("bash: %s: %s", r.Target, vfs.Reason(err))
	}
	return ""
}
