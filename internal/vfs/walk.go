// SPDX-License-Identifier: MPL-2.0

package vfs

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/sandterm/sandterm/pkg/vpath"
)

// EntryKind tells files and directories apart in a walk.
type EntryKind int

const (
	// KindFile is any non-directory entry.
	KindFile EntryKind = iota
	// KindDir is a directory.
	KindDir
)

// WalkEntry is one item produced by Walk.
type WalkEntry struct {
	// Path is the virtual path of the entry.
	Path string
	Kind EntryKind
}

// String returns "f" or "d", the letters find -type uses.
func (k EntryKind) String() string {
	if k == KindDir {
		return "d"
	}
	return "f"
}

// Walk returns a lazy depth-first sequence of the entries below path,
// starting with path itself. Entries are visited in lexical order within each
// directory; unreadable subdirectories are skipped. Stopping the range loop
// stops the walk.
func (f *FS) Walk(path string) (iter.Seq[WalkEntry], error) {
	start, err := f.RealPath(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(start); err != nil {
		return nil, wrapOS("walk", path, err)
	}
	base := f.Abs(path)

	return func(yield func(WalkEntry) bool) {
		_ = filepath.WalkDir(start, func(p string, d fs.DirEntry, err error) error { //nolint:errcheck // walk errors skip entries
			if err != nil {
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			rel, err := filepath.Rel(start, p)
			if err != nil {
				return nil
			}
			entry := WalkEntry{Path: base, Kind: KindFile}
			if rel != "." {
				entry.Path = vpath.Join(base, filepath.ToSlash(rel))
			}
			if d.IsDir() {
				entry.Kind = KindDir
			}
			if !yield(entry) {
				return fs.SkipAll
			}
			return nil
		})
	}, nil
}
