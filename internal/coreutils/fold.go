// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// defaultFoldWidth is the line width fold wraps at without -w.
const defaultFoldWidth = 80

// foldCommand implements the fold utility.
type foldCommand struct {
	commandInfo
}

// newFoldCommand creates a new fold command.
func newFoldCommand() *foldCommand {
	return &foldCommand{commandInfo{
		name:     "fold",
		synopsis: "Wrap each input line to fit in specified width",
		usage:    "fold [-w WIDTH] FILE",
		description: "Wrap the lines of FILE at WIDTH display columns (80 by default). Wide\n" +
			"characters count as two columns.",
		category: CategoryText,
		flags: []FlagInfo{
			{Name: "width", ShortName: "w", Description: "use WIDTH columns instead of 80", TakesValue: true},
		},
	}}
}

// Run executes the fold command.
func (c *foldCommand) Run(ctx context.Context, args []string) Result {
	fsys := GetHandlerContext(ctx).FS()

	fs := newFlagSet(c.name)
	width := fs.StringP("width", "w", "", "width")
	files, res, ok := parseFlags(c, fs, legacyCount(args))
	if !ok {
		return res
	}
	n := defaultFoldWidth
	if *width != "" {
		v, err := parseInt(*width)
		if err != nil || v < 1 {
			return Failuref("fold: invalid number of columns: '%s'", *width)
		}
		n = v
	}
	if len(files) == 0 {
		return Failure("fold: missing file operand")
	}

	var w lineWriter
	for _, f := range files {
		lines, res, ok := readLines(fsys, c.name, f)
		if !ok {
			w.fail("%s", res.Text)
			continue
		}
		for _, l := range lines {
			w.add(strings.Split(ansi.Hardwrap(l, n, false), "\n")...)
		}
	}
	if len(w.lines) == 0 {
		return Output("")
	}
	return w.result()
}

func newTeeCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     "tee",
			synopsis: "Create or truncate files",
			usage:    "tee [-a] FILE...",
			description: "There is no standard input in the sandbox, so tee writes empty FILEs;\n" +
				"with -a existing FILEs are left untouched.",
			category: CategoryText,
		},
		run: func(_ context.Context, hc *HandlerContext, args []string) Result {
			files := operands(args)
			appendMode := len(files) > 0 && files[0] == "-a"
			if appendMode {
				files = files[1:]
			}
			var w lineWriter
			for _, f := range files {
				var err error
				if appendMode {
					err = hc.FS().Append(f, "")
				} else {
					err = hc.FS().Write(f, "")
				}
				if err != nil {
					w.fail("tee: %v", err)
				}
			}
			return w.result()
		},
	}
}
