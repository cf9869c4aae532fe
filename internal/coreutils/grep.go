// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// grepCommand implements grep. The same value serves egrep and fgrep; fgrep
// always matches literally.
type grepCommand struct {
	commandInfo
}

// newGrepCommand creates a new grep command.
func newGrepCommand() *grepCommand {
	return &grepCommand{commandInfo{
		name:     "grep",
		synopsis: "Print lines that match patterns",
		usage:    "grep [-n] [-i] [-v] [-c] [-F] PATTERN FILE...",
		description: "Print the lines of each FILE that match the regular expression PATTERN.\n" +
			"A PATTERN that is not a valid expression is matched literally. egrep is the\n" +
			"same command; fgrep always matches literally.",
		category: CategoryText,
		flags: []FlagInfo{
			{Name: "line-number", ShortName: "n", Description: "prefix each line with its line number"},
			{Name: "ignore-case", ShortName: "i", Description: "ignore case distinctions"},
			{Name: "invert-match", ShortName: "v", Description: "select non-matching lines"},
			{Name: "count", ShortName: "c", Description: "print only a count of matching lines per file"},
			{Name: "fixed-strings", ShortName: "F", Description: "treat PATTERN as a literal string"},
		},
	}}
}

// Run executes the grep command.
func (c *grepCommand) Run(ctx context.Context, args []string) Result {
	fsys := GetHandlerContext(ctx).FS()
	name := invokedAs(c, args)

	fs := newFlagSet(name)
	lineNumbers := fs.BoolP("line-number", "n", false, "line numbers")
	ignoreCase := fs.BoolP("ignore-case", "i", false, "ignore case")
	invert := fs.BoolP("invert-match", "v", false, "invert")
	countOnly := fs.BoolP("count", "c", false, "count")
	fixed := fs.BoolP("fixed-strings", "F", name == "fgrep", "literal")
	rest, res, ok := parseFlags(c, fs, args)
	if !ok {
		return res
	}
	if len(rest) < 2 {
		return Failuref("%s: missing operand", name)
	}

	match := compileMatcher(unquote(rest[0]), *fixed, *ignoreCase)
	files := rest[1:]

	var w lineWriter
	for _, f := range files {
		lines, res, ok := readLines(fsys, name, f)
		if !ok {
			w.fail("%s", res.Text)
			continue
		}
		prefix := ""
		if len(files) > 1 {
			prefix = f + ":"
		}
		n := 0
		for i, l := range lines {
			if match(l) == *invert {
				continue
			}
			n++
			if *countOnly {
				continue
			}
			if *lineNumbers {
				w.addf("%s%d: %s", prefix, i+1, l)
			} else {
				w.add(prefix + l)
			}
		}
		if *countOnly {
			w.add(prefix + strconv.Itoa(n))
		}
	}
	if len(w.lines) == 0 {
		return Output("")
	}
	return w.result()
}

// compileMatcher returns a line predicate for pattern. Invalid regular
// expressions fall back to substring matching.
func compileMatcher(pattern string, literal, ignoreCase bool) func(string) bool {
	if !literal {
		expr := pattern
		if ignoreCase {
			expr = "(?i)" + expr
		}
		if re, err := regexp.Compile(expr); err == nil {
			return re.MatchString
		}
	}
	if ignoreCase {
		lower := strings.ToLower(pattern)
		return func(s string) bool { return strings.Contains(strings.ToLower(s), lower) }
	}
	return func(s string) bool { return strings.Contains(s, pattern) }
}
