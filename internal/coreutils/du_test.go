// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"strings"
	"testing"
)

func TestDuDf(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	e.write("/d/f", strings.Repeat("x", 2000))
	e.write("/d/g", strings.Repeat("x", 100))

	if got := e.output("du d/f"); got != "2\td/f" {
		t.Errorf("du file = %q", got)
	}
	if got := e.output("du d"); got != "3\td" {
		t.Errorf("du dir = %q", got)
	}
	if got := e.output("du -h d/f"); got != "2.0 kB\td/f" && got != "2.0 KiB\td/f" {
		t.Errorf("du -h = %q", got)
	}
	if got := e.failure("du nope"); got != "du: cannot access 'nope': No such file or directory" {
		t.Errorf("du missing = %q", got)
	}

	df := e.output("df")
	if !strings.HasPrefix(df, "Filesystem     1K-blocks    Used Available Use% Mounted on\nfilesystem ") {
		t.Errorf("df = %q", df)
	}
}
