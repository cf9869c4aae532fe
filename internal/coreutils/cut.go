// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

type (
	// cutCommand implements the cut utility.
	cutCommand struct {
		commandInfo
	}

	// cutRange is a 1-based inclusive range; end -1 means to the end of line.
	cutRange struct {
		start int
		end   int
	}
)

// newCutCommand creates a new cut command.
func newCutCommand() *cutCommand {
	return &cutCommand{commandInfo{
		name:        "cut",
		synopsis:    "Remove sections from each line of files",
		usage:       "cut -d DELIM -f LIST FILE | cut -c LIST FILE",
		description: "Print the selected fields (-f) or characters (-c) of each line. LIST is a\ncomma separated list of positions or ranges such as 1,3-5,7-.",
		category:    CategoryText,
		flags: []FlagInfo{
			{Name: "delimiter", ShortName: "d", Description: "use DELIM instead of TAB", TakesValue: true},
			{Name: "fields", ShortName: "f", Description: "select only these fields", TakesValue: true},
			{Name: "characters", ShortName: "c", Description: "select only these characters", TakesValue: true},
		},
	}}
}

// Run executes the cut command.
func (c *cutCommand) Run(ctx context.Context, args []string) Result {
	fsys := GetHandlerContext(ctx).FS()

	fs := newFlagSet(c.name)
	delim := fs.StringP("delimiter", "d", "\t", "delimiter")
	fields := fs.StringP("fields", "f", "", "fields")
	chars := fs.StringP("characters", "c", "", "characters")
	files, res, ok := parseFlags(c, fs, args)
	if !ok {
		return res
	}

	list := *fields
	if list == "" {
		list = *chars
	}
	if list == "" {
		return Failure("cut: you must specify a list of characters or fields")
	}
	if *delim == "" {
		return Failure("cut: the delimiter must be a single character")
	}
	ranges, err := parseRanges(list)
	if err != nil {
		return Failuref("cut: %v", err)
	}
	if len(files) == 0 {
		return Failure("cut: missing file operand")
	}

	var w lineWriter
	for _, f := range files {
		lines, res, ok := readLines(fsys, c.name, f)
		if !ok {
			w.fail("%s", res.Text)
			continue
		}
		for _, l := range lines {
			if *fields != "" {
				w.add(cutFields(l, ranges, *delim))
			} else {
				w.add(cutChars(l, ranges))
			}
		}
	}
	if len(w.lines) == 0 {
		return Output("")
	}
	return w.result()
}

// parseRanges parses a list such as "1,3-5,7-".
func parseRanges(list string) ([]cutRange, error) {
	var ranges []cutRange
	for part := range strings.SplitSeq(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		before, after, isRange := strings.Cut(part, "-")
		if !isRange {
			n, err := strconv.Atoi(part)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("invalid field value '%s'", part)
			}
			ranges = append(ranges, cutRange{start: n, end: n})
			continue
		}
		r := cutRange{start: 1, end: -1}
		var err error
		if before != "" {
			if r.start, err = strconv.Atoi(before); err != nil || r.start < 1 {
				return nil, fmt.Errorf("invalid field range '%s'", part)
			}
		}
		if after != "" {
			if r.end, err = strconv.Atoi(after); err != nil || r.end < r.start {
				return nil, fmt.Errorf("invalid field range '%s'", part)
			}
		}
		ranges = append(ranges, r)
	}
	if len(ranges) == 0 {
		return nil, fmt.Errorf("invalid field list '%s'", list)
	}
	return ranges, nil
}

func selectRange[T any](items []T, ranges []cutRange) []T {
	var out []T
	for _, r := range ranges {
		end := r.end
		if end == -1 || end > len(items) {
			end = len(items)
		}
		for i := r.start; i <= end; i++ {
			out = append(out, items[i-1])
		}
	}
	return out
}

func cutFields(line string, ranges []cutRange, delim string) string {
	return strings.Join(selectRange(strings.Split(line, delim), ranges), delim)
}

func cutChars(line string, ranges []cutRange) string {
	return string(selectRange([]rune(line), ranges))
}
