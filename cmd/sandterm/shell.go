// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sandterm/sandterm/internal/issue"
	"github.com/sandterm/sandterm/internal/shell"
)

// stdio joins the terminal's input and output for the line editor.
type stdio struct {
	io.Reader
	io.Writer
}

func newShellCommand(app *App) *cobra.Command {
	var root string
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Long: `Start an interactive session on this terminal.

The line editor supports history (Up/Down), Tab completion of command names
and paths, and the usual Emacs-style keys. Type 'exit' or press Ctrl-D on an
empty line to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd.Context(), app, root)
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "sandbox directory (default: sandbox_root, then the current directory)")
	return cmd
}

func runShell(ctx context.Context, app *App, root string) error {
	env, err := app.prepare(ctx, root)
	if err != nil {
		return err
	}

	in, ok := app.stdin.(*os.File)
	if !ok || !term.IsTerminal(int(in.Fd())) {
		app.renderIssue(issue.TerminalRequiredId, env.cfg.UI.ColorScheme)
		return &ExitError{Code: 2, Err: fmt.Errorf("standard input is not a terminal")}
	}

	state, err := term.MakeRaw(int(in.Fd()))
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer func() { _ = term.Restore(int(in.Fd()), state) }() //nolint:errcheck // best-effort terminal restore

	sh, err := env.newShell("")
	if err != nil {
		return err
	}
	cfg := shell.REPLConfig{
		Welcome:     env.cfg.UI.Welcome,
		ColorScheme: string(env.cfg.UI.ColorScheme),
	}
	if out, ok := app.stdout.(*os.File); ok {
		cfg.Width, cfg.Height, _ = term.GetSize(int(out.Fd()))
	}

	repl := shell.NewREPL(sh, stdio{Reader: in, Writer: app.stdout}, cfg)
	stop := watchResize(app.stdout, repl)
	defer stop()

	env.logger.Info("interactive session started", "id", sh.Session().ID(), "root", env.resolver.Root())
	return repl.Run(ctx)
}
