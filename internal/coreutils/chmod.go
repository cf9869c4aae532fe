// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"errors"
	"io/fs"
	"strconv"
	"strings"

	"github.com/sandterm/sandterm/internal/vfs"
)

var errBadMode = errors.New("invalid mode")

// chmodCommand implements the chmod utility.
type chmodCommand struct {
	commandInfo
}

// newChmodCommand creates a new chmod command.
func newChmodCommand() *chmodCommand {
	return &chmodCommand{commandInfo{
		name:     "chmod",
		synopsis: "Change file mode bits",
		usage:    "chmod MODE FILE...",
		description: "Change the permission bits of each FILE. MODE is either an octal number\n" +
			"such as 644 or a symbolic expression such as u+x,go-w.",
		category: CategoryFileSystem,
	}}
}

// Run executes the chmod command.
func (c *chmodCommand) Run(ctx context.Context, args []string) Result {
	fsys := GetHandlerContext(ctx).FS()

	ops := operands(args)
	switch len(ops) {
	case 0:
		return Failure("chmod: missing operand")
	case 1:
		return Failuref("chmod: missing operand after '%s'", ops[0])
	}

	mode := ops[0]
	var w lineWriter
	for _, f := range ops[1:] {
		info, err := fsys.Stat(f)
		if err != nil {
			w.fail("chmod: cannot access '%s': %s", f, vfs.Reason(err))
			continue
		}
		perm, err := applyMode(info.Mode().Perm(), mode)
		if err != nil {
			return Failuref("chmod: invalid mode: '%s'", mode)
		}
		if err := fsys.Chmod(f, perm); err != nil {
			w.fail("chmod: changing permissions of '%s': %s", f, vfs.Reason(err))
		}
	}
	return w.result()
}

// applyMode computes the new permission bits for an octal or symbolic mode
// expression.
func applyMode(cur fs.FileMode, expr string) (fs.FileMode, error) {
	if isOctal(expr) {
		n, err := strconv.ParseUint(expr, 8, 32)
		if err != nil || n > 0o777 {
			return 0, errBadMode
		}
		return fs.FileMode(n), nil
	}

	perm := cur
	for clause := range strings.SplitSeq(expr, ",") {
		i := strings.IndexAny(clause, "+-=")
		if i < 0 || i == len(clause)-1 && clause[i] != '=' {
			return 0, errBadMode
		}
		who, err := whoMask(clause[:i])
		if err != nil {
			return 0, err
		}
		var bits fs.FileMode
		for _, r := range clause[i+1:] {
			switch r {
			case 'r':
				bits |= 0o444
			case 'w':
				bits |= 0o222
			case 'x':
				bits |= 0o111
			default:
				return 0, errBadMode
			}
		}
		bits &= who
		switch clause[i] {
		case '+':
			perm |= bits
		case '-':
			perm &^= bits
		case '=':
			perm = perm&^who | bits
		}
	}
	return perm, nil
}

func whoMask(who string) (fs.FileMode, error) {
	if who == "" {
		return 0o777, nil
	}
	var mask fs.FileMode
	for _, r := range who {
		switch r {
		case 'u':
			mask |= 0o700
		case 'g':
			mask |= 0o070
		case 'o':
			mask |= 0o007
		case 'a':
			mask |= 0o777
		default:
			return 0, errBadMode
		}
	}
	return mask, nil
}

func isOctal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '7' {
			return false
		}
	}
	return true
}

// newOwnerCommand builds chown and chgrp. The sandbox has a single user, so
// they only check that the files exist.
func newOwnerCommand(name, synopsis, operand string) *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:        name,
			synopsis:    synopsis,
			usage:       name + " " + operand + " FILE...",
			description: "Accepted for compatibility. Every file in the sandbox belongs to the session user.",
			category:    CategoryFileSystem,
		},
		run: func(_ context.Context, hc *HandlerContext, args []string) Result {
			ops := operands(args)
			switch len(ops) {
			case 0:
				return Failuref("%s: missing operand", name)
			case 1:
				return Failuref("%s: missing operand after '%s'", name, ops[0])
			}
			var w lineWriter
			for _, f := range ops[1:] {
				if !hc.FS().Exists(f) {
					w.fail("%s: cannot access '%s': No such file or directory", name, f)
				}
			}
			return w.result()
		},
	}
}
