// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/sandterm/sandterm/internal/vfs"
)

type (
	// codec is one compression format.
	codec struct {
		suffix    string
		newWriter func(io.Writer) (io.WriteCloser, error)
		newReader func(io.Reader) (io.ReadCloser, error)
	}

	// compressCommand implements gzip/gunzip and zstd/unzstd. The input file
	// is replaced by its (de)compressed counterpart unless -k is given.
	compressCommand struct {
		commandInfo
		codec      codec
		decompress bool
	}
)

var (
	gzipCodec = codec{
		suffix: ".gz",
		newWriter: func(w io.Writer) (io.WriteCloser, error) {
			return gzip.NewWriter(w), nil
		},
		newReader: func(r io.Reader) (io.ReadCloser, error) {
			return gzip.NewReader(r)
		},
	}

	zstdCodec = codec{
		suffix: ".zst",
		newWriter: func(w io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(w)
		},
		newReader: func(r io.Reader) (io.ReadCloser, error) {
			dec, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}
			return dec.IOReadCloser(), nil
		},
	}
)

func newCompressCommand(name string, c codec, decompress bool) *compressCommand {
	synopsis, usage := "Compress files", name+" [-d] [-k] [-f] FILE..."
	if decompress {
		synopsis, usage = "Decompress files", name+" [-k] [-f] FILE..."
	}
	flags := []FlagInfo{
		{Name: "keep", ShortName: "k", Description: "keep (don't delete) input files"},
		{Name: "force", ShortName: "f", Description: "overwrite existing output files"},
	}
	if !decompress {
		flags = append([]FlagInfo{{Name: "decompress", ShortName: "d", Description: "decompress"}}, flags...)
	}
	return &compressCommand{
		commandInfo: commandInfo{
			name:        name,
			synopsis:    synopsis,
			usage:       usage,
			description: "Compressed files get the " + c.suffix + " suffix, which is removed again on decompression.",
			category:    CategoryFileSystem,
			flags:       flags,
		},
		codec:      c,
		decompress: decompress,
	}
}

// Run executes the command.
func (c *compressCommand) Run(ctx context.Context, args []string) Result {
	fsys := GetHandlerContext(ctx).FS()

	fs := newFlagSet(c.name)
	decompress := new(bool)
	*decompress = c.decompress
	if !c.decompress {
		fs.BoolVarP(decompress, "decompress", "d", false, "decompress")
	}
	keep := fs.BoolP("keep", "k", false, "keep input")
	force := fs.BoolP("force", "f", false, "overwrite")
	files, res, ok := parseFlags(c, fs, args)
	if !ok {
		return res
	}
	if len(files) == 0 {
		return Failuref("%s: missing file operand", c.name)
	}

	var w lineWriter
	for _, src := range files {
		dst := src + c.codec.suffix
		if *decompress {
			if !strings.HasSuffix(src, c.codec.suffix) {
				w.fail("%s: %s: unknown suffix -- ignored", c.name, src)
				continue
			}
			dst = strings.TrimSuffix(src, c.codec.suffix)
		}
		if fsys.IsDir(src) {
			w.fail("%s: %s is a directory -- ignored", c.name, src)
			continue
		}
		if !*force && fsys.Exists(dst) {
			w.fail("%s: %s already exists", c.name, dst)
			continue
		}
		if err := c.convert(fsys, src, dst, *decompress); err != nil {
			w.fail("%s: %s: %s", c.name, src, vfs.Reason(err))
			continue
		}
		if !*keep {
			if err := fsys.RemoveFile(src); err != nil {
				w.fail("%s: %s: %s", c.name, src, vfs.Reason(err))
			}
		}
	}
	return w.result()
}

func (c *compressCommand) convert(fsys *vfs.FS, src, dst string, decompress bool) (err error) {
	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fsys.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, out.Close())
		if err != nil {
			_ = fsys.RemoveFile(dst) //nolint:errcheck // best-effort cleanup of a partial output
		}
	}()

	if decompress {
		r, err := c.codec.newReader(in)
		if err != nil {
			return err
		}
		defer r.Close()
		_, err = io.Copy(out, r)
		return err
	}

	zw, err := c.codec.newWriter(out)
	if err != nil {
		return err
	}
	_, err = io.Copy(zw, in)
	return errors.Join(err, zw.Close())
}
