// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/sandterm/sandterm/internal/vfs"
)

const (
	lsColumns     = 3
	lsColumnWidth = 20
	// lsInlineMax is the largest listing printed on a single line.
	lsInlineMax = 4
)

// lsCommand implements the ls utility.
type lsCommand struct {
	commandInfo
}

// newLsCommand creates a new ls command.
func newLsCommand() *lsCommand {
	return &lsCommand{commandInfo{
		name:     "ls",
		synopsis: "List directory contents",
		usage:    "ls [-l] [-a] [-h] [FILE]...",
		description: "List information about the FILEs (the current directory by default).\n" +
			"Entries are sorted by name; names starting with '.' are hidden unless -a is given.",
		category: CategoryFileSystem,
		flags: []FlagInfo{
			{Name: "long", ShortName: "l", Description: "use a long listing format"},
			{Name: "all", ShortName: "a", Description: "do not ignore entries starting with ."},
			{Name: "human-readable", ShortName: "h", Description: "with -l, print sizes like 1.0 KiB"},
		},
	}}
}

// Run executes the ls command.
func (c *lsCommand) Run(ctx context.Context, args []string) Result {
	hc := GetHandlerContext(ctx)

	fs := newFlagSet(c.name)
	long := fs.BoolP("long", "l", false, "long listing")
	all := fs.BoolP("all", "a", false, "show hidden")
	human := fs.BoolP("human-readable", "h", false, "human sizes")
	paths, res, ok := parseFlags(c, fs, args)
	if !ok {
		return res
	}
	if len(paths) == 0 {
		paths = []string{"."}
	}

	opts := lsOptions{long: *long, all: *all, human: *human, user: hc.Session.User()}
	var w lineWriter
	for i, p := range paths {
		info, err := hc.FS().Stat(p)
		if err != nil {
			w.fail("%s", accessFailure(c.name, p, err))
			continue
		}
		if !info.IsDir() {
			if opts.long {
				w.add(opts.longLine(vfs.EntryOf(info), p))
			} else {
				w.add(p)
			}
			continue
		}

		entries, err := hc.FS().DetailedList(p)
		if err != nil {
			w.fail("ls: cannot open directory '%s': %s", p, vfs.Reason(err))
			continue
		}
		if len(paths) > 1 {
			if i > 0 {
				w.add("")
			}
			w.addf("%s:", p)
		}
		if listing := opts.format(entries); listing != "" {
			w.add(listing)
		}
	}
	return w.result()
}

type lsOptions struct {
	long, all, human bool
	user             string
}

func (o lsOptions) format(entries []vfs.Entry) string {
	visible := make([]vfs.Entry, 0, len(entries))
	for _, e := range entries {
		if o.all || !strings.HasPrefix(e.Name, ".") {
			visible = append(visible, e)
		}
	}

	if o.long {
		lines := make([]string, len(visible))
		for i, e := range visible {
			lines[i] = o.longLine(e, e.Name)
		}
		return strings.Join(lines, "\n")
	}

	names := make([]string, len(visible))
	for i, e := range visible {
		names[i] = e.Name
	}
	return columns(names)
}

func (o lsOptions) longLine(e vfs.Entry, name string) string {
	size := fmt.Sprintf("%d", e.Size)
	if o.human {
		size = humanize.IBytes(uint64(max(e.Size, 0))) //nolint:gosec // clamped to non-negative
	}
	return fmt.Sprintf("%s 1 %s %s %8s %s %s",
		e.Mode, o.user, o.user, size, e.ModTime.Format("Jan 02 15:04"), name)
}

// columns lays names out column-major in three columns. Short listings stay
// on one line.
func columns(names []string) string {
	if len(names) <= lsInlineMax {
		return strings.Join(names, "  ")
	}

	rows := (len(names) + lsColumns - 1) / lsColumns
	lines := make([]string, rows)
	for row := range rows {
		var b strings.Builder
		for col := range lsColumns {
			idx := col*rows + row
			if idx >= len(names) {
				continue
			}
			name := names[idx]
			b.WriteString(name)
			if pad := lsColumnWidth - ansi.StringWidth(name); pad > 0 {
				b.WriteString(strings.Repeat(" ", pad))
			} else {
				b.WriteString("  ")
			}
		}
		lines[row] = strings.TrimRight(b.String(), " ")
	}
	return strings.Join(lines, "\n")
}
