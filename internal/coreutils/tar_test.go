// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"archive/tar"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/sandterm/sandterm/internal/testutil"
)

func TestTar_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, flags := range []string{"cf", "-czf"} {
		t.Run(flags, func(t *testing.T) {
			t.Parallel()
			e := newTestEnv(t)
			e.write("/proj/a.txt", "alpha")
			e.write("/proj/sub/b.txt", "beta")

			archive := "/proj.tar"
			extract := "-xf"
			list := "-tf"
			if strings.Contains(flags, "z") {
				archive, extract, list = "/proj.tgz", "-xzf", "-tzf"
			}

			e.output(fmt.Sprintf("tar %s %s proj", flags, archive))
			if got := e.output(fmt.Sprintf("tar %s %s", list, archive)); got != "proj/\nproj/a.txt\nproj/sub/\nproj/sub/b.txt" {
				t.Errorf("tar list = %q", got)
			}

			e.output("mkdir out")
			e.output("cd out")
			if res := e.run(fmt.Sprintf("tar %s %s", extract, archive)); res.IsFailure() {
				t.Fatalf("tar extract failed: %s", res.Text)
			}
			if got := e.read("/out/proj/sub/b.txt"); got != "beta" {
				t.Errorf("extracted b.txt = %q", got)
			}
			if got := e.read("/out/proj/a.txt"); got != "alpha" {
				t.Errorf("extracted a.txt = %q", got)
			}
		})
	}
}

func TestTar_Errors(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	if got := e.failure("tar -f x.tar"); got != "tar: You must specify one of the '-c', '-x' or '-t' options" {
		t.Errorf("no mode = %q", got)
	}
	if got := e.failure("tar -cf x.tar"); got != "tar: Cowardly refusing to create an empty archive" {
		t.Errorf("empty create = %q", got)
	}
	if got := e.failure("tar -xf nope.tar"); got != "tar: nope.tar: Cannot open: No such file or directory" {
		t.Errorf("missing archive = %q", got)
	}
}

func TestTar_RejectsParentMembers(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	f, err := os.Create(testutil.RealPath(e.root, "/evil.tar"))
	if err != nil {
		t.Fatal(err)
	}
	tw := tar.NewWriter(f)
	body := "pwned"
	if err := tw.WriteHeader(&tar.Header{Name: "../escape.txt", Mode: 0o644, Size: int64(len(body)), Typeflag: tar.TypeReg}); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write([]byte(body)); err != nil {
		t.Fatal(err)
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	e.output("mkdir inner")
	e.output("cd inner")
	got := e.failure("tar -xf /evil.tar")
	if got != "tar: ../escape.txt: member name contains '..'" {
		t.Errorf("extract = %q", got)
	}
	if e.exists("/escape.txt") {
		t.Error("member escaped the extraction directory")
	}
}
