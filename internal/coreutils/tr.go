// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"slices"
	"strings"
)

// trCommand implements tr over a file operand: the sandbox has no pipes, so
// the input is the last argument instead of standard input.
type trCommand struct {
	commandInfo
}

// newTrCommand creates a new tr command.
func newTrCommand() *trCommand {
	return &trCommand{commandInfo{
		name:     "tr",
		synopsis: "Translate or delete characters",
		usage:    "tr [-d] [-s] SET1 [SET2] FILE",
		description: "Translate the characters of FILE that appear in SET1 into the matching\n" +
			"characters of SET2. Ranges such as a-z and escapes such as \\n are expanded.",
		category: CategoryText,
		flags: []FlagInfo{
			{Name: "delete", ShortName: "d", Description: "delete characters in SET1"},
			{Name: "squeeze-repeats", ShortName: "s", Description: "replace repeated characters with a single one"},
		},
	}}
}

// Run executes the tr command.
func (c *trCommand) Run(ctx context.Context, args []string) Result {
	fsys := GetHandlerContext(ctx).FS()

	fs := newFlagSet(c.name)
	deleteMode := fs.BoolP("delete", "d", false, "delete")
	squeeze := fs.BoolP("squeeze-repeats", "s", false, "squeeze")
	ops, res, ok := parseFlags(c, fs, args)
	if !ok {
		return res
	}

	needed := 3
	if *deleteMode || *squeeze {
		needed = 2
	}
	if len(ops) < needed {
		return Failure("tr: usage: tr SET1 SET2 FILE")
	}
	file := ops[len(ops)-1]
	set1 := []rune(expandSet(ops[0]))
	var set2 []rune
	if len(ops) > 2 {
		set2 = []rune(expandSet(ops[1]))
	}

	text, err := fsys.Read(file)
	if err != nil {
		return Failuref("tr: %v", err)
	}
	return Output(display(translate(text, set1, set2, *deleteMode, *squeeze)))
}

func translate(text string, set1, set2 []rune, deleteMode, squeeze bool) string {
	index := make(map[rune]int, len(set1))
	for i, r := range set1 {
		if _, dup := index[r]; !dup {
			index[r] = i
		}
	}
	squeezeSet := set1
	if len(set2) > 0 {
		squeezeSet = set2
	}

	var (
		b    strings.Builder
		last rune
		have bool
	)
	for _, r := range text {
		i, in := index[r]
		if in && deleteMode {
			continue
		}
		out := r
		if in && !deleteMode && len(set2) > 0 {
			out = set2[min(i, len(set2)-1)]
		}
		if squeeze && have && out == last && slices.Contains(squeezeSet, out) {
			continue
		}
		b.WriteRune(out)
		last, have = out, true
	}
	return b.String()
}

// expandSet expands ranges like a-z and escape sequences like \n.
func expandSet(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		switch {
		case i+2 < len(runes) && runes[i+1] == '-' && runes[i] <= runes[i+2]:
			for r := runes[i]; r <= runes[i+2]; r++ {
				b.WriteRune(r)
			}
			i += 2
		case runes[i] == '\\' && i+1 < len(runes):
			i++
			switch runes[i] {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case 'r':
				b.WriteRune('\r')
			default:
				b.WriteRune(runes[i])
			}
		default:
			b.WriteRune(runes[i])
		}
	}
	return b.String()
}
