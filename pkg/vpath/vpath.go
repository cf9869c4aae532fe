// SPDX-License-Identifier: MPL-2.0

package vpath

import "strings"

// Root is the virtual path of the sandbox root.
const Root = "/"

// Normalize turns path into an absolute virtual path. Relative paths are
// interpreted against cwd. Empty and "." segments are dropped and ".." pops the
// previous segment; popping past the root is a no-op.
func Normalize(path, cwd string) string {
	if !strings.HasPrefix(path, "/") {
		if cwd == "" {
			cwd = Root
		}
		path = cwd + "/" + path
	}

	segments := make([]string, 0, strings.Count(path, "/"))
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(segments) > 0 {
				segments = segments[:len(segments)-1]
			}
		default:
			segments = append(segments, seg)
		}
	}

	if len(segments) == 0 {
		return Root
	}
	return "/" + strings.Join(segments, "/")
}

// Join appends elem to the virtual directory dir and normalizes the result.
func Join(dir string, elem ...string) string {
	return Normalize(strings.Join(append([]string{dir}, elem...), "/"), Root)
}

// Dir returns the parent of a normalized virtual path. The parent of the root
// is the root.
func Dir(path string) string {
	path = Normalize(path, Root)
	idx := strings.LastIndex(path, "/")
	if idx <= 0 {
		return Root
	}
	return path[:idx]
}

// Base returns the last segment of path with trailing slashes removed, the
// way basename(1) does. The base of "/" is "/".
func Base(path string) string {
	trimmed := strings.TrimRight(path, "/")
	if trimmed == "" {
		if path == "" {
			return ""
		}
		return Root
	}
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
