// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/sandterm/sandterm/internal/config"
	"github.com/sandterm/sandterm/internal/coreutils"
	"github.com/sandterm/sandterm/internal/issue"
	"github.com/sandterm/sandterm/internal/session"
	"github.com/sandterm/sandterm/internal/shell"
	"github.com/sandterm/sandterm/pkg/vpath"
)

type (
	// App wires CLI services and shared dependencies. Every Cobra handler
	// receives the App and reaches configuration and I/O through it.
	App struct {
		Config config.Provider
		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer

		// Global flag values, bound by newRootCommand.
		configFile string
		verbose    bool
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// environment is what a sandbox command needs: configuration, a resolver
	// for the sandbox root and a dispatcher shared by all sessions.
	environment struct {
		cfg        *config.Config
		resolver   *vpath.Resolver
		dispatcher *shell.Dispatcher
		logger     *log.Logger
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	return &App{
		Config: deps.Config,
		stdin:  deps.Stdin,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}, nil
}

// loadConfig loads configuration honoring --config and --verbose. Failures
// print the matching catalog entry before returning.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.configFile})
	if err != nil {
		a.renderIssue(issue.ConfigLoadFailedId, config.ColorSchemeAuto)
		return nil, err
	}
	if a.verbose {
		cfg.UI.Verbose = true
		cfg.LogLevel = config.LogLevelDebug
	}
	return cfg, nil
}

// newLogger creates a stderr logger for one component.
func (a *App) newLogger(cfg *config.Config, prefix string) *log.Logger {
	return log.NewWithOptions(a.stderr, log.Options{
		Prefix:          prefix,
		Level:           cfg.LogLevel.Level(),
		ReportTimestamp: cfg.UI.Verbose,
	})
}

// prepare loads configuration and opens the sandbox at root, falling back
// to the configured sandbox_root and then the working directory.
func (a *App) prepare(ctx context.Context, root string) (*environment, error) {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	if root == "" {
		root = cfg.SandboxRoot
	}
	if root == "" {
		if root, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}
	resolver, err := vpath.NewResolver(root)
	if err != nil {
		a.renderIssue(issue.SandboxRootInvalidId, cfg.UI.ColorScheme)
		return nil, issue.NewErrorContext().
			WithOperation("open sandbox").
			WithResource(root).
			WithSuggestion("Create the directory or choose another one with --root").
			Wrap(err).
			BuildError()
	}

	logger := a.newLogger(cfg, "shell")
	logger.Debug("sandbox opened", "root", resolver.Root())
	return &environment{
		cfg:        cfg,
		resolver:   resolver,
		dispatcher: shell.NewDispatcher(coreutils.NewDefaultRegistry(), logger),
		logger:     logger,
	}, nil
}

// newShell creates a session for user (the configured identity when
// empty) over the environment's sandbox.
func (e *environment) newShell(user string) (*shell.Shell, error) {
	if user == "" {
		user = e.cfg.Identity.User
	}
	sess := session.New(e.resolver, session.Config{
		User:         user,
		Hostname:     e.cfg.Identity.Hostname,
		HistoryLimit: e.cfg.HistoryLimit,
	})
	e.logger.Debug("session created", "id", sess.ID(), "user", user)
	return shell.New(sess, e.dispatcher), nil
}

// renderIssue writes a catalog entry to stderr, styled when stderr is a
// terminal.
func (a *App) renderIssue(id issue.Id, scheme config.ColorScheme) {
	style := "notty"
	if f, ok := a.stderr.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		style = "dark"
		if scheme == config.ColorSchemeLight {
			style = "light"
		}
	}
	rendered, err := issue.Get(id).Render(style)
	if err != nil {
		return
	}
	fmt.Fprint(a.stderr, rendered)
}

// formatErrorForDisplay formats an error for user display, listing the
// suggestions of an ActionableError.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
