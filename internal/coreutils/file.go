// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"strings"

	"github.com/sandterm/sandterm/internal/vfs"
)

// fileSniffLen is how much of a file the type check looks at.
const fileSniffLen = 512

func newFileCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:        "file",
			synopsis:    "Determine file type",
			usage:       "file FILE...",
			description: "Classify each FILE as a directory, ASCII text or data.",
			category:    CategoryFileSystem,
		},
		run: func(_ context.Context, hc *HandlerContext, args []string) Result {
			ops := operands(args)
			if len(ops) == 0 {
				return Failure("file: missing file operand")
			}
			var w lineWriter
			for _, p := range ops {
				kind, err := fileKind(hc.FS(), p)
				if err != nil {
					w.fail("file: %s: cannot open (%s)", p, vfs.Reason(err))
					continue
				}
				w.addf("%s: %s", p, kind)
			}
			return w.result()
		},
	}
}

func fileKind(fsys *vfs.FS, path string) (string, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "directory", nil
	}
	if info.Size() == 0 {
		return "empty", nil
	}
	data, err := fsys.ReadBytes(path)
	if err != nil {
		return "", err
	}
	if len(data) > fileSniffLen {
		data = data[:fileSniffLen]
	}
	for _, b := range data {
		if b >= 0x80 {
			return "data", nil
		}
	}
	return "ASCII text", nil
}

// minStringLen is the shortest printable run strings reports.
const minStringLen = 4

func newStringsCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:        "strings",
			synopsis:    "Print the printable character sequences in files",
			usage:       "strings FILE",
			description: "Print every run of at least four printable characters found in FILE.",
			category:    CategoryFileSystem,
		},
		run: func(_ context.Context, hc *HandlerContext, args []string) Result {
			ops := operands(args)
			if len(ops) == 0 {
				return Failure("strings: missing file operand")
			}
			data, err := hc.FS().ReadBytes(ops[0])
			if err != nil {
				return Failuref("strings: %v", err)
			}
			runs := printableRuns(data, minStringLen)
			if len(runs) == 0 {
				return NoOutput()
			}
			return Output(strings.Join(runs, "\n"))
		},
	}
}

// printableRuns splits data on non-printable bytes and keeps the pieces of
// at least minLen bytes. Newlines and tabs count as printable.
func printableRuns(data []byte, minLen int) []string {
	var (
		runs []string
		cur  []byte
	)
	flush := func() {
		if len(cur) >= minLen {
			runs = append(runs, strings.TrimSuffix(string(cur), "\n"))
		}
		cur = cur[:0]
	}
	for _, b := range data {
		if (b >= 32 && b <= 126) || b == '\n' || b == '\t' {
			cur = append(cur, b)
			continue
		}
		flush()
	}
	flush()
	return runs
}
