// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"strings"

	"github.com/sandterm/sandterm/internal/vfs"
)

// splitLines splits text into lines the way a line-oriented utility sees
// them: a final newline does not start an extra empty line and CRLF endings
// are accepted.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// display drops the single trailing newline a file usually ends with, so
// printing it does not leave a blank line behind.
func display(text string) string {
	return strings.TrimSuffix(text, "\n")
}

// readLines reads path through fsys and splits it into lines. On failure
// the returned Result is the command's failure message.
func readLines(fsys *vfs.FS, cmd, path string) ([]string, Result, bool) {
	text, err := fsys.Read(path)
	if err != nil {
		return nil, Failuref("%s: %v", cmd, err), false
	}
	return splitLines(text), Result{}, true
}

// accessFailure renders the "cannot access" form used by ls, du and friends.
func accessFailure(cmd, path string, err error) string {
	return cmd + ": cannot access '" + path + "': " + vfs.Reason(err)
}

// displayPath renders the virtual path of a walk entry relative to how the
// user named the starting point, so "find ." prints "./a" like find does.
func displayPath(start, startAbs, entry string) string {
	if strings.HasPrefix(start, "/") {
		return entry
	}
	prefix := strings.TrimSuffix(start, "/")
	if prefix == "" {
		prefix = "."
	}
	if entry == startAbs {
		return prefix
	}
	return prefix + "/" + strings.TrimPrefix(entry, strings.TrimSuffix(startAbs, "/")+"/")
}

// matchName implements the single-wildcard matching used by find, locate and
// ls: every "*" is removed and the remainder must appear in name.
func matchName(pattern, name string) bool {
	if pattern == "" {
		return true
	}
	return strings.Contains(name, strings.ReplaceAll(pattern, "*", ""))
}
