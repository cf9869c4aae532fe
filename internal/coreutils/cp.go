// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"errors"

	"github.com/sandterm/sandterm/internal/vfs"
)

// copyCommand implements cp and mv, which share operand handling: the last
// operand is the destination and several sources require it to be a
// directory.
type copyCommand struct {
	commandInfo
	move bool
}

// newCpCommand creates a new cp command.
func newCpCommand() *copyCommand {
	return &copyCommand{commandInfo: commandInfo{
		name:        "cp",
		synopsis:    "Copy files and directories",
		usage:       "cp [-r] SOURCE... DEST",
		description: "Copy SOURCE to DEST, or several SOURCEs into the directory DEST.\nAn existing directory DEST receives the source under its own name.",
		category:    CategoryFileSystem,
		flags: []FlagInfo{
			{Name: "recursive", ShortName: "r", Description: "copy directories recursively"},
			{Name: "verbose", ShortName: "v", Description: "explain what is being done"},
		},
	}}
}

// newMvCommand creates a new mv command.
func newMvCommand() *copyCommand {
	return &copyCommand{commandInfo: commandInfo{
		name:     "mv",
		synopsis: "Move or rename files and directories",
		usage:    "mv SOURCE... DEST",
		category: CategoryFileSystem,
		flags: []FlagInfo{
			{Name: "verbose", ShortName: "v", Description: "explain what is being done"},
		},
	}, move: true}
}

// Run executes the command.
func (c *copyCommand) Run(ctx context.Context, args []string) Result {
	hc := GetHandlerContext(ctx)

	fs := newFlagSet(c.name)
	recursive := new(bool)
	if !c.move {
		fs.BoolVarP(recursive, "recursive", "r", false, "recursive")
		fs.BoolVarP(recursive, "Recursive", "R", false, "recursive")
	}
	verbose := fs.BoolP("verbose", "v", false, "verbose")
	ops, res, ok := parseFlags(c, fs, args)
	if !ok {
		return res
	}
	switch len(ops) {
	case 0:
		return Failuref("%s: missing file operand", c.name)
	case 1:
		return Failuref("%s: missing destination file operand after '%s'", c.name, ops[0])
	}

	sources, dest := ops[:len(ops)-1], ops[len(ops)-1]
	if len(sources) > 1 && !hc.FS().IsDir(dest) {
		return Failuref("%s: target '%s' is not a directory", c.name, dest)
	}

	var w lineWriter
	for _, src := range sources {
		var err error
		if c.move {
			err = hc.FS().Move(src, dest)
		} else {
			err = hc.FS().Copy(src, dest, *recursive)
		}
		if err != nil {
			w.fail("%s", c.describe(src, dest, err))
			continue
		}
		if *verbose {
			w.addf("'%s' -> '%s'", src, dest)
		}
	}
	return w.result()
}

func (c *copyCommand) describe(src, dest string, err error) string {
	switch {
	case vfs.KindOf(err) == vfs.NotFound:
		return c.name + ": cannot stat '" + src + "': " + vfs.Reason(err)
	case !c.move && vfs.KindOf(err) == vfs.IsADirectory:
		return "cp: -r not specified; omitting directory '" + src + "'"
	case errors.Is(err, vfs.ErrSameFile):
		return c.name + ": '" + src + "' and '" + dest + "' are the same file"
	case errors.Is(err, vfs.ErrIntoItself):
		return c.name + ": cannot " + c.verb() + " '" + src + "' to a subdirectory of itself, '" + dest + "'"
	default:
		return c.name + ": cannot " + c.verb() + " '" + src + "': " + vfs.Reason(err)
	}
}

func (c *copyCommand) verb() string {
	if c.move {
		return "move"
	}
	return "copy"
}
