// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"slices"
	"strings"
)

// pasteCommand implements the paste utility.
type pasteCommand struct {
	commandInfo
}

// newPasteCommand creates a new paste command.
func newPasteCommand() *pasteCommand {
	return &pasteCommand{commandInfo{
		name:     "paste",
		synopsis: "Merge lines of files",
		usage:    "paste [-d DELIM] FILE1 FILE2...",
		category: CategoryText,
		flags: []FlagInfo{
			{Name: "delimiters", ShortName: "d", Description: "use DELIM instead of TAB", TakesValue: true},
		},
	}}
}

// Run executes the paste command.
func (c *pasteCommand) Run(ctx context.Context, args []string) Result {
	fsys := GetHandlerContext(ctx).FS()

	fs := newFlagSet(c.name)
	delim := fs.StringP("delimiters", "d", "\t", "delimiter")
	files, res, ok := parseFlags(c, fs, args)
	if !ok {
		return res
	}
	if len(files) < 2 {
		return Failure("paste: missing operand")
	}

	columns := make([][]string, len(files))
	rows := 0
	for i, f := range files {
		lines, res, ok := readLines(fsys, c.name, f)
		if !ok {
			return res
		}
		columns[i] = lines
		rows = max(rows, len(lines))
	}

	out := make([]string, rows)
	cells := make([]string, len(columns))
	for r := range rows {
		for i, col := range columns {
			cells[i] = lineAt(col, r)
		}
		out[r] = strings.Join(cells, unquote(*delim))
	}
	return Lines(out)
}

// newJoinCommand joins the lines of two files that share a first field.
func newJoinCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     "join",
			synopsis: "Join lines of two files on a common field",
			usage:    "join FILE1 FILE2",
			description: "For each first field present in both files, print the FILE1 line followed by\n" +
				"the remaining fields of the FILE2 line. Output is ordered by key.",
			category: CategoryText,
		},
		run: func(_ context.Context, hc *HandlerContext, args []string) Result {
			ops := operands(args)
			if len(ops) < 2 {
				return Failure("join: missing operand")
			}
			a, res, ok := readLines(hc.FS(), "join", ops[0])
			if !ok {
				return res
			}
			b, res, ok := readLines(hc.FS(), "join", ops[1])
			if !ok {
				return res
			}
			left, right := keyed(a), keyed(b)
			var keys []string
			for k := range left {
				if _, ok := right[k]; ok {
					keys = append(keys, k)
				}
			}
			slices.Sort(keys)

			out := make([]string, 0, len(keys))
			for _, k := range keys {
				out = append(out, left[k]+" "+strings.Join(strings.Fields(right[k])[1:], " "))
			}
			if len(out) == 0 {
				return NoOutput()
			}
			return Lines(out)
		},
	}
}

// keyed indexes lines by their first whitespace separated field. Later
// lines win on duplicate keys.
func keyed(lines []string) map[string]string {
	m := make(map[string]string, len(lines))
	for _, l := range lines {
		if f := strings.Fields(l); len(f) > 0 {
			m[f[0]] = l
		}
	}
	return m
}
