// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"hash/crc32"
	"io"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/sandterm/sandterm/internal/vfs"
)

// sumCommand implements the digest utilities sha256sum and b3sum.
type sumCommand struct {
	commandInfo
	newHash func() hash.Hash
}

func newSha256Command() *sumCommand {
	return newSumCommand("sha256sum", "Compute and check SHA-256 message digests", sha256.New)
}

func newB3sumCommand() *sumCommand {
	return newSumCommand("b3sum", "Compute and check BLAKE3 message digests", func() hash.Hash { return blake3.New() })
}

func newSumCommand(name, synopsis string, newHash func() hash.Hash) *sumCommand {
	return &sumCommand{
		commandInfo: commandInfo{
			name:     name,
			synopsis: synopsis,
			usage:    name + " [-c] FILE...",
			description: "Print the digest and name of each FILE. With -c, read digests from the FILEs\n" +
				"and check them against the named files.",
			category: CategoryFileSystem,
			flags: []FlagInfo{
				{Name: "check", ShortName: "c", Description: "read checksums from the FILEs and check them"},
			},
		},
		newHash: newHash,
	}
}

// Run executes the command.
func (c *sumCommand) Run(ctx context.Context, args []string) Result {
	fsys := GetHandlerContext(ctx).FS()
	name := invokedAs(c, args)

	fs := newFlagSet(name)
	check := fs.BoolP("check", "c", false, "check")
	files, res, ok := parseFlags(c, fs, args)
	if !ok {
		return res
	}
	if len(files) == 0 {
		return Failuref("%s: missing file operand", name)
	}

	var w lineWriter
	for _, f := range files {
		if *check {
			c.verify(fsys, name, f, &w)
			continue
		}
		sum, err := c.digest(fsys, f)
		if err != nil {
			w.fail("%s: %v", name, err)
			continue
		}
		w.addf("%s  %s", sum, f)
	}
	return w.result()
}

func (c *sumCommand) digest(fsys *vfs.FS, path string) (string, error) {
	if fsys.IsDir(path) {
		return "", &vfs.PathError{Op: "read", Path: path, Kind: vfs.IsADirectory}
	}
	in, err := fsys.Open(path)
	if err != nil {
		return "", err
	}
	defer in.Close()
	h := c.newHash()
	if _, err := io.Copy(h, in); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (c *sumCommand) verify(fsys *vfs.FS, name, list string, w *lineWriter) {
	lines, res, ok := readLines(fsys, name, list)
	if !ok {
		w.fail("%s", res.Text)
		return
	}
	for _, l := range lines {
		want, path, found := strings.Cut(l, "  ")
		if !found {
			continue
		}
		got, err := c.digest(fsys, path)
		switch {
		case err != nil:
			w.fail("%s: FAILED open or read", path)
		case got != want:
			w.fail("%s: FAILED", path)
		default:
			w.addf("%s: OK", path)
		}
	}
}

func newCksumCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:        "cksum",
			synopsis:    "Checksum and count the bytes in a file",
			usage:       "cksum FILE...",
			description: "Print the CRC-32 checksum, byte count and name of each FILE.",
			category:    CategoryText,
		},
		run: func(_ context.Context, hc *HandlerContext, args []string) Result {
			files := operands(args)
			if len(files) == 0 {
				return Failure("cksum: missing file operand")
			}
			var w lineWriter
			for _, f := range files {
				data, err := hc.FS().ReadBytes(f)
				if err != nil {
					w.fail("cksum: %v", err)
					continue
				}
				w.add(fmt.Sprintf("%d %d %s", crc32.ChecksumIEEE(data), len(data), f))
			}
			return w.result()
		},
	}
}
