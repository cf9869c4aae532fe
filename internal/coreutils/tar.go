// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"archive/tar"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/sandterm/sandterm/internal/vfs"
	"github.com/sandterm/sandterm/pkg/vpath"
)

// tarCommand implements tar for regular files and directories. Members are
// always written and extracted through vfs, so an archive cannot place files
// outside the sandbox.
type tarCommand struct {
	commandInfo
}

type tarOptions struct {
	archive  string
	compress bool
	verbose  bool
}

// newTarCommand creates a new tar command.
func newTarCommand() *tarCommand {
	return &tarCommand{commandInfo{
		name:     "tar",
		synopsis: "Create, list or extract tar archives",
		usage:    "tar -c|-x|-t [-z] [-v] -f ARCHIVE [FILE]...",
		description: "Create ARCHIVE from the FILEs, list its members or extract it into the\n" +
			"current directory. The leading dash may be omitted (tar cf a.tar dir).",
		category: CategoryFileSystem,
		flags: []FlagInfo{
			{Name: "create", ShortName: "c", Description: "create a new archive"},
			{Name: "extract", ShortName: "x", Description: "extract files from an archive"},
			{Name: "list", ShortName: "t", Description: "list the contents of an archive"},
			{Name: "gzip", ShortName: "z", Description: "filter the archive through gzip"},
			{Name: "verbose", ShortName: "v", Description: "list the files processed"},
			{Name: "file", ShortName: "f", Description: "use archive file ARCHIVE", TakesValue: true},
		},
	}}
}

// Run executes the tar command.
func (c *tarCommand) Run(ctx context.Context, args []string) Result {
	fsys := GetHandlerContext(ctx).FS()

	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		args = append([]string{args[0], "-" + args[1]}, args[2:]...)
	}

	fs := newFlagSet(c.name)
	create := fs.BoolP("create", "c", false, "create")
	extract := fs.BoolP("extract", "x", false, "extract")
	list := fs.BoolP("list", "t", false, "list")
	var opts tarOptions
	fs.BoolVarP(&opts.compress, "gzip", "z", false, "gzip")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose")
	fs.StringVarP(&opts.archive, "file", "f", "", "archive")
	files, res, ok := parseFlags(c, fs, args)
	if !ok {
		return res
	}

	modes := 0
	for _, m := range []bool{*create, *extract, *list} {
		if m {
			modes++
		}
	}
	switch {
	case modes == 0:
		return Failure("tar: You must specify one of the '-c', '-x' or '-t' options")
	case modes > 1:
		return Failure("tar: You may not specify more than one '-c', '-x' or '-t' option")
	case opts.archive == "":
		return Failure("tar: missing archive operand (-f)")
	}

	switch {
	case *create:
		if len(files) == 0 {
			return Failure("tar: Cowardly refusing to create an empty archive")
		}
		return c.create(fsys, opts, files)
	case *extract:
		return c.read(fsys, opts, true)
	default:
		return c.read(fsys, opts, false)
	}
}

func (c *tarCommand) create(fsys *vfs.FS, opts tarOptions, files []string) Result {
	out, err := fsys.Create(opts.archive)
	if err != nil {
		return Failuref("tar: %v", err)
	}
	archiveAbs := fsys.Abs(opts.archive)

	var (
		sink io.Writer = out
		gz   *gzip.Writer
	)
	if opts.compress {
		gz = gzip.NewWriter(out)
		sink = gz
	}
	tw := tar.NewWriter(sink)

	var w lineWriter
	for _, f := range files {
		entries, err := fsys.Walk(f)
		if err != nil {
			w.fail("tar: %s: Cannot stat: %s", f, vfs.Reason(err))
			continue
		}
		parent := vpath.Dir(fsys.Abs(f))
		for e := range entries {
			if e.Path == archiveAbs {
				continue
			}
			name := strings.TrimPrefix(strings.TrimPrefix(e.Path, parent), "/")
			if err := addTarMember(fsys, tw, e.Path, name); err != nil {
				w.fail("tar: %s: %s", name, vfs.Reason(err))
				continue
			}
			if opts.verbose {
				w.add(memberName(name, e.Kind == vfs.KindDir))
			}
		}
	}

	closeErr := tw.Close()
	if gz != nil {
		closeErr = errors.Join(closeErr, gz.Close())
	}
	if closeErr = errors.Join(closeErr, out.Close()); closeErr != nil {
		return Failuref("tar: %s: %v", opts.archive, closeErr)
	}
	return w.result()
}

func addTarMember(fsys *vfs.FS, tw *tar.Writer, path, name string) error {
	info, err := fsys.Stat(path)
	if err != nil {
		return err
	}
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = memberName(name, info.IsDir())
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return nil
	}
	in, err := fsys.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()
	_, err = io.Copy(tw, in)
	return err
}

func memberName(name string, dir bool) string {
	if dir {
		return name + "/"
	}
	return name
}

// read lists the archive or, when extract is set, unpacks it relative to
// the current directory.
func (c *tarCommand) read(fsys *vfs.FS, opts tarOptions, extract bool) Result {
	in, err := fsys.Open(opts.archive)
	if err != nil {
		return Failuref("tar: %s: Cannot open: %s", opts.archive, vfs.Reason(err))
	}
	defer in.Close()

	var src io.Reader = in
	if opts.compress {
		gz, err := gzip.NewReader(in)
		if err != nil {
			return Failuref("tar: %s: %v", opts.archive, err)
		}
		defer gz.Close()
		src = gz
	}

	tr := tar.NewReader(src)
	cwd := fsys.Abs(".")
	var w lineWriter
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			w.fail("tar: %s: %v", opts.archive, err)
			break
		}
		if !extract || opts.verbose {
			w.add(hdr.Name)
		}
		if !extract {
			continue
		}
		if err := extractMember(fsys, tr, hdr, cwd); err != nil {
			w.fail("tar: %s: %s", hdr.Name, vfs.Reason(err))
		}
	}
	return w.result()
}

var errUnsafeMember = errors.New("member name contains '..'")

func extractMember(fsys *vfs.FS, tr *tar.Reader, hdr *tar.Header, cwd string) error {
	rel := strings.TrimLeft(hdr.Name, "/")
	for _, seg := range strings.Split(rel, "/") {
		if seg == ".." {
			return errUnsafeMember
		}
	}
	target := vpath.Normalize(rel, cwd)

	switch hdr.Typeflag {
	case tar.TypeDir:
		if fsys.IsDir(target) {
			return nil
		}
		return fsys.Mkdir(target, true)
	case tar.TypeReg:
		out, err := fsys.Create(target)
		if err != nil {
			return err
		}
		_, copyErr := io.Copy(out, tr)
		if err := errors.Join(copyErr, out.Close()); err != nil {
			return err
		}
		if perm := hdr.FileInfo().Mode().Perm(); perm != 0 {
			return fsys.Chmod(target, perm)
		}
		return nil
	default:
		// Links and devices are not restored.
		return nil
	}
}
