// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"strings"
	"testing"
)

func TestCdPwd(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	e.write("/dir/sub/file", "x")

	e.output("cd dir/sub")
	if got := e.output("pwd"); got != "/dir/sub" {
		t.Errorf("pwd = %q, want /dir/sub", got)
	}
	e.output("cd ..")
	if got := e.output("pwd"); got != "/dir" {
		t.Errorf("pwd after cd .. = %q", got)
	}
	if got := e.failure("cd sub/file"); got != "cd: sub/file: Not a directory" {
		t.Errorf("cd file = %q", got)
	}
	if got := e.failure("cd nope"); !strings.Contains(got, "No such file or directory") {
		t.Errorf("cd nope = %q", got)
	}
	e.output("cd")
	if got := e.output("pwd"); got != "/" {
		t.Errorf("pwd after bare cd = %q", got)
	}
	e.output("cd dir")
	e.output("cd ~")
	if got := e.output("pwd"); got != "/" {
		t.Errorf("pwd after cd ~ = %q", got)
	}
}
