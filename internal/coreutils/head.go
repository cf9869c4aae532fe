// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
)

// defaultLineCount is how many lines head and tail print without -n.
const defaultLineCount = 10

// headCommand implements head and tail, which differ only in which end of
// the file they keep.
type headCommand struct {
	commandInfo
	tail bool
}

// newHeadCommand creates a new head command.
func newHeadCommand() *headCommand {
	return &headCommand{commandInfo: commandInfo{
		name:        "head",
		synopsis:    "Output the first part of files",
		usage:       "head [-n NUM] FILE...",
		description: "Print the first 10 lines of each FILE. With more than one FILE, precede each\nwith a header giving the file name.",
		category:    CategoryText,
		flags: []FlagInfo{
			{Name: "lines", ShortName: "n", Description: "print the first NUM lines", TakesValue: true},
		},
	}}
}

// newTailCommand creates a new tail command.
func newTailCommand() *headCommand {
	return &headCommand{commandInfo: commandInfo{
		name:        "tail",
		synopsis:    "Output the last part of files",
		usage:       "tail [-n NUM] FILE...",
		description: "Print the last 10 lines of each FILE. With more than one FILE, precede each\nwith a header giving the file name.",
		category:    CategoryText,
		flags: []FlagInfo{
			{Name: "lines", ShortName: "n", Description: "print the last NUM lines", TakesValue: true},
		},
	}, tail: true}
}

// Run executes the command.
func (c *headCommand) Run(ctx context.Context, args []string) Result {
	fsys := GetHandlerContext(ctx).FS()

	fs := newFlagSet(c.name)
	count := fs.StringP("lines", "n", "", "number of lines")
	files, res, ok := parseFlags(c, fs, legacyCount(args))
	if !ok {
		return res
	}

	n := defaultLineCount
	if *count != "" {
		v, err := parseInt(*count)
		if err != nil {
			return Failuref("%s: invalid number of lines: '%s'", c.name, *count)
		}
		n = v
	}
	if len(files) == 0 {
		return Failuref("%s: missing file operand", c.name)
	}

	var w lineWriter
	for i, f := range files {
		lines, res, ok := readLines(fsys, c.name, f)
		if !ok {
			w.fail("%s", res.Text)
			continue
		}
		if len(files) > 1 {
			if i > 0 {
				w.add("")
			}
			w.addf("==> %s <==", f)
		}
		w.add(c.slice(lines, n)...)
	}
	if len(w.lines) == 0 {
		return Output("")
	}
	return w.result()
}

// slice keeps n lines from the relevant end. A negative n makes head print
// all but the last -n lines; tail ignores the sign.
func (c *headCommand) slice(lines []string, n int) []string {
	if n < 0 {
		if c.tail {
			n = -n
		} else {
			return lines[:max(len(lines)+n, 0)]
		}
	}
	if n >= len(lines) {
		return lines
	}
	if c.tail {
		return lines[len(lines)-n:]
	}
	return lines[:n]
}
