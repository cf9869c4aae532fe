// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"

	"github.com/sandterm/sandterm/internal/vfs"
	"github.com/sandterm/sandterm/pkg/vpath"
)

// lnCommand implements the ln utility.
type lnCommand struct {
	commandInfo
}

// newLnCommand creates a new ln command.
func newLnCommand() *lnCommand {
	return &lnCommand{commandInfo{
		name:     "ln",
		synopsis: "Create links between files",
		usage:    "ln [-s] [-f] TARGET LINK_NAME",
		description: "Create LINK_NAME as a hard link to TARGET, or a symbolic link with -s.\n" +
			"When LINK_NAME is a directory the link is created inside it. Symbolic link\n" +
			"targets must stay inside the sandbox.",
		category: CategoryFileSystem,
		flags: []FlagInfo{
			{Name: "symbolic", ShortName: "s", Description: "make symbolic links instead of hard links"},
			{Name: "force", ShortName: "f", Description: "remove existing destination files"},
		},
	}}
}

// Run executes the ln command.
func (c *lnCommand) Run(ctx context.Context, args []string) Result {
	fsys := GetHandlerContext(ctx).FS()

	fs := newFlagSet(c.name)
	symbolic := fs.BoolP("symbolic", "s", false, "symbolic")
	force := fs.BoolP("force", "f", false, "force")
	ops, res, ok := parseFlags(c, fs, args)
	if !ok {
		return res
	}
	switch len(ops) {
	case 0:
		return Failure("ln: missing file operand")
	case 1:
		return Failuref("ln: missing destination file operand after '%s'", ops[0])
	case 2:
	default:
		return Failuref("ln: extra operand '%s'", ops[2])
	}

	target, link := ops[0], ops[1]
	if !*symbolic && !fsys.Exists(target) {
		return Failuref("ln: failed to access '%s': No such file or directory", target)
	}
	if fsys.IsDir(link) {
		link = vpath.Join(fsys.Abs(link), vpath.Base(target))
	}
	if *force {
		if _, err := fsys.Lstat(link); err == nil {
			if err := fsys.RemoveFile(link); err != nil {
				return Failuref("ln: cannot remove '%s': %s", link, vfs.Reason(err))
			}
		}
	}

	var err error
	if *symbolic {
		err = fsys.Symlink(target, link)
	} else {
		err = fsys.Link(target, link)
	}
	if err != nil {
		kind := "hard link"
		if *symbolic {
			kind = "symbolic link"
		}
		return Failuref("ln: failed to create %s '%s': %s", kind, link, vfs.Reason(err))
	}
	return NoOutput()
}
