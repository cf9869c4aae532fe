// SPDX-License-Identifier: MPL-2.0

package main

import (
	"github.com/spf13/cobra"
)

// newRootCommand builds the command tree. Running sandterm without a
// subcommand starts an interactive shell.
func newRootCommand(app *App) *cobra.Command {
	shellCmd := newShellCommand(app)

	root := &cobra.Command{
		Use:   "sandterm",
		Short: "A Unix-style shell confined to one directory",
		Long: TitleStyle.Render("sandterm") + SubtitleStyle.Render(" - a Unix-style shell confined to one directory") + `

sandterm emulates a familiar command line (ls, cat, grep, tar, ps and about a
hundred more) on top of a single host directory. Paths are virtual: "/" is the
sandbox root and nothing outside it can be read or written.

` + SubtitleStyle.Render("Examples:") + `
  sandterm                          Start a shell in the current directory
  sandterm shell --root ./play      Start a shell in ./play
  sandterm exec -- "ls -l" "du -h"  Run lines without a terminal
  sandterm serve --port 2222        Serve sessions over SSH
  sandterm config show              Show the effective configuration`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         shellCmd.RunE,
	}
	root.Flags().AddFlagSet(shellCmd.Flags())

	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().StringVar(&app.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/sandterm/config.cue)")

	root.AddCommand(
		shellCmd,
		newExecCommand(app),
		newServeCommand(app),
		newConfigCommand(app),
		newCommandsCommand(app),
	)
	return root
}
