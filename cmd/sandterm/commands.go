// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sandterm/sandterm/internal/coreutils"
)

func newCommandsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the commands available inside a session",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Fprint(app.stdout, renderCommandList(coreutils.NewDefaultRegistry()))
			return nil
		},
	}
}

// renderCommandList groups commands by category with aliases and synopsis.
func renderCommandList(reg *coreutils.Registry) string {
	groups := make(map[coreutils.Category][]coreutils.Command)
	var order []coreutils.Category
	width := 0
	for _, cmd := range reg.Commands() {
		c := cmd.Category()
		if _, seen := groups[c]; !seen {
			order = append(order, c)
		}
		groups[c] = append(groups[c], cmd)
		width = max(width, len(commandLabel(reg, cmd)))
	}

	var b strings.Builder
	for _, c := range sortedCategories(order) {
		b.WriteString(TitleStyle.Render(c.String()))
		b.WriteString("\n")
		for _, cmd := range groups[c] {
			label := commandLabel(reg, cmd)
			b.WriteString("  ")
			b.WriteString(CmdStyle.Render(label))
			b.WriteString(strings.Repeat(" ", width-lipgloss.Width(label)+2))
			b.WriteString(SubtitleStyle.Render(cmd.Synopsis()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func commandLabel(reg *coreutils.Registry, cmd coreutils.Command) string {
	if aliases := reg.Aliases(cmd.Name()); len(aliases) > 0 {
		return cmd.Name() + ", " + strings.Join(aliases, ", ")
	}
	return cmd.Name()
}

func sortedCategories(cs []coreutils.Category) []coreutils.Category {
	out := make([]coreutils.Category, 0, len(cs))
	for c := coreutils.CategoryFileSystem; c <= coreutils.CategoryUtility; c++ {
		if slices.Contains(cs, c) {
			out = append(out, c)
		}
	}
	return out
}
