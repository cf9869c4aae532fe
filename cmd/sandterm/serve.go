// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sandterm/sandterm/internal/config"
	"github.com/sandterm/sandterm/internal/issue"
	"github.com/sandterm/sandterm/internal/shell"
	"github.com/sandterm/sandterm/internal/sshserver"
)

type serveOptions struct {
	root     string
	host     string
	port     int
	password string
}

func newServeCommand(app *App) *cobra.Command {
	var opts serveOptions
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve sandbox sessions over SSH",
		Long: `Serve sandbox sessions over SSH.

Every client gets its own session, named after its SSH login, over the same
sandbox directory. Clients that send a command ('ssh -p 2222 host ls -l') run
that single line. The host key is created on first start.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), app, cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.root, "root", "", "sandbox directory (default: sandbox_root, then the current directory)")
	cmd.Flags().StringVar(&opts.host, "host", "", "address to bind (default from ssh.host)")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "port to listen on (default from ssh.port)")
	cmd.Flags().StringVar(&opts.password, "password", "", "require this password from clients (default from ssh.password)")
	return cmd
}

func runServe(ctx context.Context, app *App, cmd *cobra.Command, opts serveOptions) error {
	env, err := app.prepare(ctx, opts.root)
	if err != nil {
		return err
	}
	cfg := serverConfig(env.cfg, cmd, opts)

	srv, err := sshserver.New(cfg, env.newShell, app.newLogger(env.cfg, "ssh-server"))
	if err != nil {
		return err
	}
	if err := srv.Start(ctx); err != nil {
		app.renderIssue(issue.SSHServerFailedId, env.cfg.UI.ColorScheme)
		return issue.NewErrorContext().
			WithOperation("start SSH server").
			WithResource(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)).
			WithSuggestion("Choose a free port with --port").
			Wrap(err).
			BuildError()
	}

	fmt.Fprintf(app.stdout, "%s Serving %s on %s\n",
		SuccessStyle.Render("✓"), CmdStyle.Render(env.resolver.Root()), CmdStyle.Render(srv.Address()))

	select {
	case <-ctx.Done():
	case err := <-srv.Err():
		if err != nil {
			_ = srv.Stop() //nolint:errcheck // already failing
			return err
		}
	}
	return srv.Stop()
}

// serverConfig merges explicitly set flags over the ssh section of the
// configuration. A relative host key path is kept under the config directory.
func serverConfig(cfg *config.Config, cmd *cobra.Command, opts serveOptions) sshserver.Config {
	out := sshserver.DefaultConfig()
	out.Host = cfg.SSH.Host
	out.Port = cfg.SSH.Port
	out.Password = cfg.SSH.Password
	out.HostKeyPath = cfg.SSH.HostKeyPath
	out.REPL = shell.REPLConfig{Welcome: cfg.UI.Welcome, ColorScheme: string(cfg.UI.ColorScheme)}

	if cmd.Flags().Changed("host") {
		out.Host = opts.host
	}
	if cmd.Flags().Changed("port") {
		out.Port = opts.port
	}
	if cmd.Flags().Changed("password") {
		out.Password = opts.password
	}
	if out.HostKeyPath != "" && !filepath.IsAbs(out.HostKeyPath) {
		if dir, err := config.ConfigDir(); err == nil {
			out.HostKeyPath = filepath.Join(dir, out.HostKeyPath)
		}
	}
	return out
}
