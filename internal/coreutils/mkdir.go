// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"

	"github.com/sandterm/sandterm/internal/vfs"
)

// mkdirCommand implements the mkdir utility.
type mkdirCommand struct {
	commandInfo
}

// newMkdirCommand creates a new mkdir command.
func newMkdirCommand() *mkdirCommand {
	return &mkdirCommand{commandInfo{
		name:     "mkdir",
		synopsis: "Create directories",
		usage:    "mkdir [-p] DIRECTORY...",
		category: CategoryFileSystem,
		flags: []FlagInfo{
			{Name: "parents", ShortName: "p", Description: "create parent directories as needed"},
			{Name: "verbose", ShortName: "v", Description: "print a message for each created directory"},
		},
	}}
}

// Run executes the mkdir command.
func (c *mkdirCommand) Run(ctx context.Context, args []string) Result {
	hc := GetHandlerContext(ctx)

	fs := newFlagSet(c.name)
	parents := fs.BoolP("parents", "p", false, "create parents")
	verbose := fs.BoolP("verbose", "v", false, "verbose")
	dirs, res, ok := parseFlags(c, fs, args)
	if !ok {
		return res
	}
	if len(dirs) == 0 {
		return Failure("mkdir: missing operand")
	}

	var w lineWriter
	for _, d := range dirs {
		// With -p an existing directory is not an error.
		if *parents && hc.FS().IsDir(d) {
			continue
		}
		if err := hc.FS().Mkdir(d, *parents); err != nil {
			w.fail("mkdir: cannot create directory '%s': %s", d, vfs.Reason(err))
			continue
		}
		if *verbose {
			w.addf("mkdir: created directory '%s'", d)
		}
	}
	return w.result()
}

func newRmdirCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     "rmdir",
			synopsis: "Remove empty directories",
			usage:    "rmdir DIRECTORY...",
			category: CategoryFileSystem,
		},
		run: func(_ context.Context, hc *HandlerContext, args []string) Result {
			dirs := operands(args)
			if len(dirs) == 0 {
				return Failure("rmdir: missing operand")
			}
			var w lineWriter
			for _, d := range dirs {
				if err := hc.FS().RemoveDir(d); err != nil {
					w.fail("rmdir: failed to remove '%s': %s", d, vfs.Reason(err))
				}
			}
			return w.result()
		},
	}
}
