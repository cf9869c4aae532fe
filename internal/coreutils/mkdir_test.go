// SPDX-License-Identifier: MPL-2.0

package coreutils

import "testing"

func TestTouchMkdirRmdir(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)

	e.output("touch new/file.txt")
	if !e.exists("/new/file.txt") {
		t.Error("touch did not create the file")
	}
	e.output("touch new/file.txt")

	e.output("mkdir d")
	if got := e.failure("mkdir d"); got != "mkdir: cannot create directory 'd': File exists" {
		t.Errorf("mkdir twice = %q", got)
	}
	e.output("mkdir -p a/b/c")
	e.output("mkdir -p a/b/c")
	if !e.sess.FS().IsDir("/a/b/c") {
		t.Error("mkdir -p did not create /a/b/c")
	}
	if got := e.output("mkdir -v v"); got != "mkdir: created directory 'v'" {
		t.Errorf("mkdir -v = %q", got)
	}

	if got := e.failure("rmdir a"); got != "rmdir: failed to remove 'a': Directory not empty" {
		t.Errorf("rmdir a = %q", got)
	}
	e.output("rmdir d")
	if e.exists("/d") {
		t.Error("rmdir left the directory behind")
	}
}
