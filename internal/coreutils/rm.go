// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"

	"github.com/sandterm/sandterm/internal/vfs"
)

// rmCommand implements the rm utility.
type rmCommand struct {
	commandInfo
}

// newRmCommand creates a new rm command.
func newRmCommand() *rmCommand {
	return &rmCommand{commandInfo{
		name:     "rm",
		synopsis: "Remove files or directories",
		usage:    "rm [-r] [-f] FILE...",
		category: CategoryFileSystem,
		flags: []FlagInfo{
			{Name: "recursive", ShortName: "r", Description: "remove directories and their contents recursively"},
			{Name: "force", ShortName: "f", Description: "ignore nonexistent files"},
		},
	}}
}

// Run executes the rm command.
func (c *rmCommand) Run(ctx context.Context, args []string) Result {
	hc := GetHandlerContext(ctx)

	fs := newFlagSet(c.name)
	recursive := fs.BoolP("recursive", "r", false, "recursive")
	fs.BoolVarP(recursive, "Recursive", "R", false, "recursive")
	force := fs.BoolP("force", "f", false, "force")
	files, res, ok := parseFlags(c, fs, args)
	if !ok {
		return res
	}
	if len(files) == 0 {
		if *force {
			return NoOutput()
		}
		return Failure("rm: missing operand")
	}

	var w lineWriter
	for _, f := range files {
		var err error
		if *recursive {
			err = hc.FS().RemoveAll(f)
		} else {
			err = hc.FS().RemoveFile(f)
		}
		if err == nil || (*force && vfs.KindOf(err) == vfs.NotFound) {
			continue
		}
		w.fail("rm: cannot remove '%s': %s", f, vfs.Reason(err))
	}
	return w.result()
}
