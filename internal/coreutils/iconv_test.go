// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"strings"
	"testing"
)

func TestIconv(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	e.write("/utf8", "café\n")
	e.write("/latin1", "caf\xe9\n")

	if got := e.output("iconv -f UTF-8 -t ISO-8859-1 utf8"); got != "caf\xe9" {
		t.Errorf("to latin1 = %q", got)
	}
	if got := e.output("iconv -f ISO-8859-1 -t UTF-8 latin1"); got != "café" {
		t.Errorf("from latin1 = %q", got)
	}
	if got := e.failure("iconv -f UTF-8 utf8"); got != "iconv: usage: iconv -f FROM -t TO FILE" {
		t.Errorf("missing -t = %q", got)
	}
	if got := e.failure("iconv -f NOPE-1 -t UTF-8 utf8"); !strings.Contains(got, "NOPE-1") {
		t.Errorf("unknown encoding = %q", got)
	}
}
