// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"strings"
	"testing"
)

func TestFoldTee(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	e.write("/long", strings.Repeat("x", 12)+"\n")

	if got := e.output("fold -w 5 long"); got != "xxxxx\nxxxxx\nxx" {
		t.Errorf("fold -w 5 = %q", got)
	}
	if got := e.output("fold long"); got != strings.Repeat("x", 12) {
		t.Errorf("fold default = %q", got)
	}
	if got := e.failure("fold -w 0 long"); got != "fold: invalid number of columns: '0'" {
		t.Errorf("fold -w 0 = %q", got)
	}

	e.write("/keep", "data")
	e.output("tee -a keep new")
	if got := e.read("/keep"); got != "data" {
		t.Errorf("tee -a changed the file: %q", got)
	}
	if !e.exists("/new") {
		t.Error("tee -a did not create the missing file")
	}
	e.output("tee keep")
	if got := e.read("/keep"); got != "" {
		t.Errorf("tee did not truncate: %q", got)
	}
}
