// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
)

// duCommand implements the du utility.
type duCommand struct {
	commandInfo
}

// newDuCommand creates a new du command.
func newDuCommand() *duCommand {
	return &duCommand{commandInfo{
		name:     "du",
		synopsis: "Estimate file space usage",
		usage:    "du [-h] [FILE]...",
		description: "Print the total size of each FILE (the current directory by default) in\n" +
			"kilobytes, rounded up.",
		category: CategoryFileSystem,
		flags: []FlagInfo{
			{Name: "human-readable", ShortName: "h", Description: "print sizes like 1.0 KiB"},
			{Name: "summarize", ShortName: "s", Description: "display only a total for each argument"},
		},
	}}
}

// Run executes the du command.
func (c *duCommand) Run(ctx context.Context, args []string) Result {
	fsys := GetHandlerContext(ctx).FS()

	fs := newFlagSet(c.name)
	human := fs.BoolP("human-readable", "h", false, "human sizes")
	fs.BoolP("summarize", "s", false, "summarize")
	paths, res, ok := parseFlags(c, fs, args)
	if !ok {
		return res
	}
	if len(paths) == 0 {
		paths = []string{fsys.Abs(".")}
	}

	var w lineWriter
	for _, p := range paths {
		if !fsys.Exists(p) {
			w.fail("du: cannot access '%s': No such file or directory", p)
			continue
		}
		size, err := fsys.Usage(p)
		if err != nil {
			w.fail("du: cannot read directory '%s'", p)
			continue
		}
		if *human {
			w.addf("%s\t%s", humanize.IBytes(uint64(size)), p)
		} else {
			w.addf("%d\t%s", (size+1023)/1024, p)
		}
	}
	return w.result()
}

// dfCommand implements the df utility.
type dfCommand struct {
	commandInfo
}

// newDfCommand creates a new df command.
func newDfCommand() *dfCommand {
	return &dfCommand{commandInfo{
		name:     "df",
		synopsis: "Report file system disk space usage",
		usage:    "df [-h]",
		category: CategoryFileSystem,
		flags: []FlagInfo{
			{Name: "human-readable", ShortName: "h", Description: "print sizes like 1.0 GiB"},
		},
	}}
}

// Run executes the df command.
func (c *dfCommand) Run(ctx context.Context, args []string) Result {
	fsys := GetHandlerContext(ctx).FS()

	fs := newFlagSet(c.name)
	human := fs.BoolP("human-readable", "h", false, "human sizes")
	if _, res, ok := parseFlags(c, fs, args); !ok {
		return res
	}

	stats, err := fsys.DiskUsage()
	if err != nil {
		return Failuref("df: %v", err)
	}
	var pct uint64
	if stats.Total > 0 {
		pct = stats.Used * 100 / stats.Total
	}
	if *human {
		return Outputf("Filesystem      Size  Used Avail Use%% Mounted on\nfilesystem %8s %5s %5s %3d%% /",
			humanize.IBytes(stats.Total), humanize.IBytes(stats.Used), humanize.IBytes(stats.Free), pct)
	}
	return Output("Filesystem     1K-blocks    Used Available Use% Mounted on\n" +
		fmt.Sprintf("filesystem     %10d %7d %9d %3d%% /", stats.Total/1024, stats.Used/1024, stats.Free/1024, pct))
}
