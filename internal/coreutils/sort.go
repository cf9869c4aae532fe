// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// sortCommand implements the sort utility.
type sortCommand struct {
	commandInfo
}

// newSortCommand creates a new sort command.
func newSortCommand() *sortCommand {
	return &sortCommand{commandInfo{
		name:     "sort",
		synopsis: "Sort lines of text files",
		usage:    "sort [-r] [-u] [-n] [-f] FILE...",
		category: CategoryText,
		flags: []FlagInfo{
			{Name: "reverse", ShortName: "r", Description: "reverse the result of comparisons"},
			{Name: "unique", ShortName: "u", Description: "output only the first of equal lines"},
			{Name: "numeric-sort", ShortName: "n", Description: "compare according to numerical value"},
			{Name: "ignore-case", ShortName: "f", Description: "fold lower case to upper case characters"},
		},
	}}
}

// Run executes the sort command.
func (c *sortCommand) Run(ctx context.Context, args []string) Result {
	fsys := GetHandlerContext(ctx).FS()

	fs := newFlagSet(c.name)
	reverse := fs.BoolP("reverse", "r", false, "reverse")
	unique := fs.BoolP("unique", "u", false, "unique")
	numeric := fs.BoolP("numeric-sort", "n", false, "numeric")
	foldCase := fs.BoolP("ignore-case", "f", false, "fold case")
	files, res, ok := parseFlags(c, fs, args)
	if !ok {
		return res
	}
	if len(files) == 0 {
		return Failure("sort: missing file operand")
	}

	var lines []string
	for _, f := range files {
		fileLines, res, ok := readLines(fsys, c.name, f)
		if !ok {
			return res
		}
		lines = append(lines, fileLines...)
	}

	key := func(s string) string {
		if *foldCase {
			return strings.ToLower(s)
		}
		return s
	}
	compare := func(a, b string) int {
		if *numeric {
			if r := cmp.Compare(leadingNumber(a), leadingNumber(b)); r != 0 {
				return r
			}
		}
		return strings.Compare(key(a), key(b))
	}
	slices.SortStableFunc(lines, func(a, b string) int {
		if *reverse {
			return compare(b, a)
		}
		return compare(a, b)
	})
	if *unique {
		lines = slices.CompactFunc(lines, func(a, b string) bool { return compare(a, b) == 0 })
	}
	return Lines(lines)
}

// leadingNumber extracts the numeric prefix of s; lines without one sort
// as zero.
func leadingNumber(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	for i, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || (i == 0 && (r == '-' || r == '+')) {
			end = i + 1
			continue
		}
		break
	}
	n, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return n
}

// uniqCommand implements the uniq utility.
type uniqCommand struct {
	commandInfo
}

// newUniqCommand creates a new uniq command.
func newUniqCommand() *uniqCommand {
	return &uniqCommand{commandInfo{
		name:        "uniq",
		synopsis:    "Report or omit repeated lines",
		usage:       "uniq [-c] [-d] [-u] [-i] FILE",
		description: "Collapse adjacent identical lines of FILE into one.",
		category:    CategoryText,
		flags: []FlagInfo{
			{Name: "count", ShortName: "c", Description: "prefix lines by the number of occurrences"},
			{Name: "repeated", ShortName: "d", Description: "only print duplicate lines"},
			{Name: "unique", ShortName: "u", Description: "only print unique lines"},
			{Name: "ignore-case", ShortName: "i", Description: "ignore differences in case"},
		},
	}}
}

// Run executes the uniq command.
func (c *uniqCommand) Run(ctx context.Context, args []string) Result {
	fsys := GetHandlerContext(ctx).FS()

	fs := newFlagSet(c.name)
	showCount := fs.BoolP("count", "c", false, "count")
	repeated := fs.BoolP("repeated", "d", false, "duplicates only")
	uniqueOnly := fs.BoolP("unique", "u", false, "unique only")
	ignoreCase := fs.BoolP("ignore-case", "i", false, "ignore case")
	files, res, ok := parseFlags(c, fs, args)
	if !ok {
		return res
	}
	if len(files) == 0 {
		return Failure("uniq: missing file operand")
	}
	lines, res, ok := readLines(fsys, c.name, files[0])
	if !ok {
		return res
	}

	same := func(a, b string) bool {
		if *ignoreCase {
			return strings.EqualFold(a, b)
		}
		return a == b
	}
	var out []string
	emit := func(line string, n int) {
		if (*repeated && n < 2) || (*uniqueOnly && n > 1) {
			return
		}
		if *showCount {
			out = append(out, fmt.Sprintf("%7d %s", n, line))
			return
		}
		out = append(out, line)
	}
	for i := 0; i < len(lines); {
		j := i + 1
		for j < len(lines) && same(lines[i], lines[j]) {
			j++
		}
		emit(lines[i], j-i)
		i = j
	}
	return Lines(out)
}
