// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type (
	// wcCommand implements the wc utility.
	wcCommand struct {
		commandInfo
	}

	// wcCounts holds the counts for a single file.
	wcCounts struct {
		lines int
		words int
		chars int
		bytes int
	}
)

// newWcCommand creates a new wc command.
func newWcCommand() *wcCommand {
	return &wcCommand{commandInfo{
		name:     "wc",
		synopsis: "Print newline, word and byte counts",
		usage:    "wc [-l] [-w] [-c] [-m] FILE...",
		description: "Print the line, word and byte counts of each FILE, and a total line when\n" +
			"more than one FILE is given.",
		category: CategoryText,
		flags: []FlagInfo{
			{Name: "lines", ShortName: "l", Description: "print the line counts"},
			{Name: "words", ShortName: "w", Description: "print the word counts"},
			{Name: "bytes", ShortName: "c", Description: "print the byte counts"},
			{Name: "chars", ShortName: "m", Description: "print the character counts"},
		},
	}}
}

// Run executes the wc command.
func (c *wcCommand) Run(ctx context.Context, args []string) Result {
	fsys := GetHandlerContext(ctx).FS()

	fs := newFlagSet(c.name)
	showLines := fs.BoolP("lines", "l", false, "lines")
	showWords := fs.BoolP("words", "w", false, "words")
	showBytes := fs.BoolP("bytes", "c", false, "bytes")
	showChars := fs.BoolP("chars", "m", false, "chars")
	files, res, ok := parseFlags(c, fs, args)
	if !ok {
		return res
	}
	if len(files) == 0 {
		return Failure("wc: missing file operand")
	}
	if !*showLines && !*showWords && !*showBytes && !*showChars {
		*showLines, *showWords, *showBytes = true, true, true
	}
	format := func(n wcCounts, name string) string {
		var fields []string
		if *showLines {
			fields = append(fields, strconv.Itoa(n.lines))
		}
		if *showWords {
			fields = append(fields, strconv.Itoa(n.words))
		}
		if *showChars {
			fields = append(fields, strconv.Itoa(n.chars))
		}
		if *showBytes {
			fields = append(fields, strconv.Itoa(n.bytes))
		}
		return strings.Join(append(fields, name), " ")
	}

	var (
		w     lineWriter
		total wcCounts
	)
	for _, f := range files {
		text, err := fsys.Read(f)
		if err != nil {
			w.fail("wc: %v", err)
			continue
		}
		n := countText(text)
		total.lines += n.lines
		total.words += n.words
		total.chars += n.chars
		total.bytes += n.bytes
		w.add(format(n, f))
	}
	if len(files) > 1 {
		w.add(format(total, "total"))
	}
	return w.result()
}

// countText computes the counts for text. Lines are counted like splitlines: a
// final line without a newline still counts.
func countText(text string) wcCounts {
	n := wcCounts{
		lines: len(splitLines(text)),
		words: len(strings.FieldsFunc(text, unicode.IsSpace)),
		chars: utf8.RuneCountInString(text),
		bytes: len(text),
	}
	return n
}
