// SPDX-License-Identifier: MPL-2.0

package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newExecCommand(app *App) *cobra.Command {
	var (
		root       string
		showPrompt bool
	)
	cmd := &cobra.Command{
		Use:   "exec [flags] [--] [LINE...]",
		Short: "Run command lines without a terminal",
		Long: `Run each LINE in one session, in order, and print its output.

Without LINE arguments, lines are read from standard input. The session
persists between lines, so 'cd' and redirections affect later lines.`,
		Example: `  sandterm exec -- "mkdir -p docs" "echo hello > docs/a.txt" "cat docs/a.txt"
  printf 'ls -l\ndf -h\n' | sandterm exec --prompt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(cmd.Context(), app, root, showPrompt, args)
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "sandbox directory (default: sandbox_root, then the current directory)")
	cmd.Flags().BoolVar(&showPrompt, "prompt", false, "echo each line after the prompt before its output")
	return cmd
}

func runExec(ctx context.Context, app *App, root string, showPrompt bool, lines []string) error {
	env, err := app.prepare(ctx, root)
	if err != nil {
		return err
	}
	sh, err := env.newShell("")
	if err != nil {
		return err
	}

	run := func(line string) bool {
		if showPrompt {
			fmt.Fprintln(app.stdout, sh.Prompt()+line)
		}
		if out := sh.Execute(ctx, line); out != "" {
			fmt.Fprintln(app.stdout, out)
		}
		return !sh.ExitRequested() && ctx.Err() == nil
	}

	if len(lines) > 0 {
		for _, line := range lines {
			if !run(line) {
				break
			}
		}
		return ctx.Err()
	}

	scanner := bufio.NewScanner(app.stdin)
	for scanner.Scan() {
		if !run(strings.TrimRight(scanner.Text(), "\r")) {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return ctx.Err()
}
