// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"strings"

	"github.com/sandterm/sandterm/internal/vfs"
	"github.com/sandterm/sandterm/pkg/vpath"
)

// findCommand implements a small find: start points followed by -name and
// -type predicates.
type findCommand struct {
	commandInfo
}

// newFindCommand creates a new find command.
func newFindCommand() *findCommand {
	return &findCommand{commandInfo{
		name:     "find",
		synopsis: "Search for files in a directory hierarchy",
		usage:    "find [PATH...] [-name PATTERN] [-type f|d]",
		description: "Walk each PATH (default .) and print the entries that match every predicate.\n" +
			"PATTERN matches any name containing it once '*' characters are removed.",
		category: CategoryFileSystem,
		flags: []FlagInfo{
			{Name: "name", Description: "match the entry name against PATTERN", TakesValue: true},
			{Name: "type", Description: "match only files (f) or directories (d)", TakesValue: true},
		},
	}}
}

// Run executes the find command. Predicates use single-dash long names, so
// the arguments are scanned by hand instead of through a flag set.
func (c *findCommand) Run(ctx context.Context, args []string) Result {
	fsys := GetHandlerContext(ctx).FS()

	var starts []string
	var pattern, kind string
	inPreds := false
	ops := operands(args)
	for i := 0; i < len(ops); i++ {
		a := ops[i]
		if !strings.HasPrefix(a, "-") || a == "-" {
			if inPreds {
				return Failuref("find: paths must precede expression: '%s'", a)
			}
			starts = append(starts, a)
			continue
		}
		inPreds = true
		switch a {
		case "-name", "-type":
			if i+1 >= len(ops) {
				return Failuref("find: missing argument to '%s'", a)
			}
			i++
			if a == "-name" {
				pattern = ops[i]
				continue
			}
			if ops[i] != "f" && ops[i] != "d" {
				return Failuref("find: Unknown argument to -type: %s", ops[i])
			}
			kind = ops[i]
		default:
			return Failuref("find: unknown predicate '%s'", a)
		}
	}
	if len(starts) == 0 {
		starts = []string{"."}
	}

	var w lineWriter
	for _, start := range starts {
		entries, err := fsys.Walk(start)
		if err != nil {
			w.fail("find: '%s': %s", start, vfs.Reason(err))
			continue
		}
		startAbs := fsys.Abs(start)
		for e := range entries {
			if kind != "" && e.Kind.String() != kind {
				continue
			}
			if pattern != "" && (e.Path == startAbs || !matchName(pattern, vpath.Base(e.Path))) {
				continue
			}
			w.add(displayPath(start, startAbs, e.Path))
		}
	}
	return w.result()
}

func newLocateCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     "locate",
			synopsis: "Find files by name anywhere in the sandbox",
			usage:    "locate PATTERN",
			category: CategoryFileSystem,
		},
		run: func(_ context.Context, hc *HandlerContext, args []string) Result {
			ops := operands(args)
			if len(ops) == 0 {
				return Failure("locate: no pattern to search for specified")
			}
			entries, err := hc.FS().Walk(vpath.Root)
			if err != nil {
				return Failuref("locate: %v", err)
			}
			var lines []string
			for e := range entries {
				if e.Path != vpath.Root && matchName(ops[0], vpath.Base(e.Path)) {
					lines = append(lines, e.Path)
				}
			}
			if len(lines) == 0 {
				return NoOutput()
			}
			return Lines(lines)
		},
	}
}
