// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"bytes"
	"context"
)

// newDiffCommand compares two files position by position, printing each
// differing pair of lines.
func newDiffCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     "diff",
			synopsis: "Compare files line by line",
			usage:    "diff FILE1 FILE2",
			description: "Compare FILE1 and FILE2 line by line. For every line number where they\n" +
				"differ, print the FILE1 line prefixed by '<' and the FILE2 line prefixed by '>'.",
			category: CategoryText,
		},
		run: func(_ context.Context, hc *HandlerContext, args []string) Result {
			ops := operands(args)
			if len(ops) < 2 {
				return Failure("diff: missing operand")
			}
			a, res, ok := readLines(hc.FS(), "diff", ops[0])
			if !ok {
				return res
			}
			b, res, ok := readLines(hc.FS(), "diff", ops[1])
			if !ok {
				return res
			}
			var out []string
			for i := range max(len(a), len(b)) {
				la, lb := lineAt(a, i), lineAt(b, i)
				if la != lb {
					out = append(out, "< "+la, "> "+lb)
				}
			}
			if len(out) == 0 {
				return NoOutput()
			}
			return Lines(out)
		},
	}
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

func newCmpCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     "cmp",
			synopsis: "Compare two files byte by byte",
			usage:    "cmp FILE1 FILE2",
			category: CategoryText,
		},
		run: func(_ context.Context, hc *HandlerContext, args []string) Result {
			ops := operands(args)
			if len(ops) < 2 {
				return Failure("cmp: missing operand")
			}
			a, err := hc.FS().ReadBytes(ops[0])
			if err != nil {
				return Failuref("cmp: %v", err)
			}
			b, err := hc.FS().ReadBytes(ops[1])
			if err != nil {
				return Failuref("cmp: %v", err)
			}
			if bytes.Equal(a, b) {
				return NoOutput()
			}
			offset, line := 1, 1
			for i := 0; i < min(len(a), len(b)) && a[i] == b[i]; i++ {
				offset++
				if a[i] == '\n' {
					line++
				}
			}
			if offset > min(len(a), len(b)) {
				short := ops[0]
				if len(b) < len(a) {
					short = ops[1]
				}
				return Outputf("cmp: EOF on %s after byte %d", short, offset-1)
			}
			return Outputf("%s %s differ: byte %d, line %d", ops[0], ops[1], offset, line)
		},
	}
}
