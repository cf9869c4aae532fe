// SPDX-License-Identifier: MPL-2.0

package coreutils

import "testing"

func TestGrep(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	e.write("/log", "INFO start\nERROR disk full\ninfo done\nERROR again\n")
	e.write("/other", "nothing here\nERROR x\n")

	tests := []struct {
		line string
		want string
	}{
		{"grep ERROR log", "ERROR disk full\nERROR again"},
		{"grep -n ERROR log", "2: ERROR disk full\n4: ERROR again"},
		{"grep -i info log", "INFO start\ninfo done"},
		{"grep -v ERROR log", "INFO start\ninfo done"},
		{"grep -c ERROR log", "2"},
		{"grep ^ERROR.*full$ log", "ERROR disk full"},
		{"grep ERROR log other", "log:ERROR disk full\nlog:ERROR again\nother:ERROR x"},
		{"grep nomatch log", ""},
		{"fgrep .* log", ""},
		{"grep ( log", ""},
	}
	for _, tt := range tests {
		if got := e.output(tt.line); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.line, got, tt.want)
		}
	}

	if got := e.failure("grep x nope"); got != "grep: nope: No such file or directory" {
		t.Errorf("grep missing file = %q", got)
	}
	if got := e.failure("egrep x"); got != "egrep: missing operand" {
		t.Errorf("egrep one operand = %q", got)
	}
}
