// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"fmt"
	"strings"
)

// catCommand implements cat, and less/more/ex which only ever display one
// file here since output is never paged.
type catCommand struct {
	commandInfo
}

// newCatCommand creates a new cat command.
func newCatCommand() *catCommand {
	return &catCommand{commandInfo{
		name:     "cat",
		synopsis: "Concatenate and display files",
		usage:    "cat [-n] FILE...",
		category: CategoryFileSystem,
		flags: []FlagInfo{
			{Name: "number", ShortName: "n", Description: "number all output lines"},
		},
	}}
}

// newLessCommand creates the pager stand-in registered as less and more.
func newLessCommand() *catCommand {
	return &catCommand{commandInfo{
		name:     "less",
		synopsis: "View file content (no paging)",
		usage:    "less FILE",
		category: CategoryText,
	}}
}

// Run executes the command.
func (c *catCommand) Run(ctx context.Context, args []string) Result {
	hc := GetHandlerContext(ctx)
	name := invokedAs(c, args)

	fs := newFlagSet(name)
	number := fs.BoolP("number", "n", false, "number lines")
	files, res, ok := parseFlags(c, fs, args)
	if !ok {
		return res
	}
	if len(files) == 0 {
		return Failuref("%s: missing file operand", name)
	}

	var w lineWriter
	line := 0
	for _, f := range files {
		text, err := hc.FS().Read(f)
		if err != nil {
			w.fail("%s: %v", name, err)
			continue
		}
		if !*number {
			w.add(display(text))
			continue
		}
		var b strings.Builder
		for i, l := range splitLines(text) {
			if i > 0 {
				b.WriteByte('\n')
			}
			line++
			fmt.Fprintf(&b, "%6d\t%s", line, l)
		}
		w.add(b.String())
	}
	return w.result()
}

func newExCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     "ex",
			synopsis: "Line editor (print mode only)",
			usage:    "ex -p FILE",
			category: CategoryText,
		},
		run: func(_ context.Context, hc *HandlerContext, args []string) Result {
			ops := operands(args)
			if len(ops) == 0 {
				return Failure("ex: missing operand")
			}
			if ops[0] != "-p" || len(ops) < 2 {
				return Failure("ex: only '-p FILE' supported")
			}
			text, err := hc.FS().Read(ops[1])
			if err != nil {
				return Failuref("ex: %v", err)
			}
			return Output(display(text))
		},
	}
}
