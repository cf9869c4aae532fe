// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sandterm/sandterm/internal/config"
)

// newConfigCommand creates the `sandterm config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage sandterm configuration",
		Long: `Manage sandterm configuration.

Configuration is stored in:
  - Linux: ~/.config/sandterm/config.cue
  - macOS: ~/Library/Application Support/sandterm/config.cue
  - Windows: %APPDATA%\sandterm\config.cue

Every key can be overridden with a SANDTERM_ environment variable, e.g.
SANDTERM_SSH_PORT=2200 or SANDTERM_IDENTITY_USER=alice.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	var asYAML bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd.Context(), app, asYAML)
		},
	}
	show.Flags().BoolVar(&asYAML, "yaml", false, "print as YAML")

	cfgCmd.AddCommand(
		show,
		&cobra.Command{
			Use:   "init",
			Short: "Create the default configuration file",
			RunE: func(_ *cobra.Command, _ []string) error {
				path, err := config.CreateDefaultConfig()
				if err != nil {
					return fmt.Errorf("failed to create config: %w", err)
				}
				fmt.Fprintf(app.stdout, "%s Configuration at %s\n", SuccessStyle.Render("✓"), path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Show the configuration file path",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return showConfigPath(cmd.Context(), app)
			},
		},
		&cobra.Command{
			Use:   "dump",
			Short: "Output the effective configuration as CUE",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := app.loadConfig(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
				return nil
			},
		},
	)
	return cfgCmd
}

func showConfig(ctx context.Context, app *App, asYAML bool) error {
	cfg, err := app.loadConfig(ctx)
	if err != nil {
		return err
	}
	if asYAML {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		_, err = app.stdout.Write(out)
		return err
	}

	path, err := app.Config.Path(ctx, config.LoadOptions{ConfigFilePath: app.configFile})
	if err != nil {
		return err
	}
	if path == "" {
		path = SubtitleStyle.Render("(using defaults)")
	}

	w := app.stdout
	key := func(k string) string { return CmdStyle.Render(k) }
	val := func(v any) string { return SuccessStyle.Render(fmt.Sprint(v)) }

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s: %s\n\n", key("Config file"), path)

	root := cfg.SandboxRoot
	if root == "" {
		root = "(current directory)"
	}
	fmt.Fprintf(w, "%s: %s\n", key("sandbox_root"), val(root))
	fmt.Fprintf(w, "%s: %s\n", key("history_limit"), val(cfg.HistoryLimit))
	fmt.Fprintf(w, "%s: %s\n", key("log_level"), val(cfg.LogLevel))

	fmt.Fprintf(w, "\n%s:\n", key("identity"))
	fmt.Fprintf(w, "  user: %s\n", val(cfg.Identity.User))
	fmt.Fprintf(w, "  hostname: %s\n", val(cfg.Identity.Hostname))

	fmt.Fprintf(w, "\n%s:\n", key("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", val(cfg.UI.ColorScheme))
	fmt.Fprintf(w, "  verbose: %s\n", val(cfg.UI.Verbose))
	fmt.Fprintf(w, "  welcome: %s\n", val(cfg.UI.Welcome))

	password := "(none)"
	if cfg.SSH.Password != "" {
		password = "(set)"
	}
	fmt.Fprintf(w, "\n%s:\n", key("ssh"))
	fmt.Fprintf(w, "  host: %s\n", val(cfg.SSH.Host))
	fmt.Fprintf(w, "  port: %s\n", val(cfg.SSH.Port))
	fmt.Fprintf(w, "  host_key_path: %s\n", val(cfg.SSH.HostKeyPath))
	fmt.Fprintf(w, "  password: %s\n", val(password))
	return nil
}

func showConfigPath(ctx context.Context, app *App) error {
	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	file, err := config.FilePath()
	if err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "Config directory: %s\n", dir)
	fmt.Fprintf(app.stdout, "Config file: %s\n", file)

	if loaded, err := app.Config.Path(ctx, config.LoadOptions{ConfigFilePath: app.configFile}); err == nil && loaded != "" && loaded != file {
		fmt.Fprintf(app.stdout, "Loaded from: %s\n", loaded)
	}
	return nil
}
