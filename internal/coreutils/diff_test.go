// SPDX-License-Identifier: MPL-2.0

package coreutils

import "testing"

func TestDiffCmp(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	e.write("/a", "same\nold\nend\n")
	e.write("/b", "same\nnew\nend\n")
	e.write("/c", "same\nold\nend\n")
	e.write("/prefix", "same\n")

	if got := e.output("diff a b"); got != "< old\n> new" {
		t.Errorf("diff = %q", got)
	}
	if res := e.run("diff a c"); res.Kind != KindNoOutput {
		t.Errorf("diff identical = %+v, want NoOutput", res)
	}
	if got := e.output("diff a prefix"); got != "< old\n> \n< end\n> " {
		t.Errorf("diff shorter = %q", got)
	}
	if got := e.output("cmp a b"); got != "a b differ: byte 6, line 2" {
		t.Errorf("cmp = %q", got)
	}
	if got := e.output("cmp a prefix"); got != "cmp: EOF on prefix after byte 5" {
		t.Errorf("cmp prefix = %q", got)
	}
	if res := e.run("cmp a c"); res.Kind != KindNoOutput {
		t.Errorf("cmp identical = %+v", res)
	}
	if got := e.failure("diff a nope"); got != "diff: nope: No such file or directory" {
		t.Errorf("diff missing = %q", got)
	}
}
