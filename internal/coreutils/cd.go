// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"

	"github.com/sandterm/sandterm/pkg/vpath"
)

func newCdCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:        "cd",
			synopsis:    "Change directory",
			usage:       "cd [DIRECTORY]",
			description: "Change the current working directory to DIRECTORY.\nWith no DIRECTORY, or with ~, change to /.",
			category:    CategoryFileSystem,
		},
		run: func(_ context.Context, hc *HandlerContext, args []string) Result {
			target := vpath.Root
			if ops := operands(args); len(ops) > 0 {
				target = ops[0]
			}
			if err := hc.Session.Chdir(target); err != nil {
				return Failuref("cd: %v", err)
			}
			return NoOutput()
		},
	}
}

func newPwdCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     "pwd",
			synopsis: "Print working directory",
			category: CategoryFileSystem,
		},
		run: func(_ context.Context, hc *HandlerContext, _ []string) Result {
			return Output(hc.Session.Cwd())
		},
	}
}
