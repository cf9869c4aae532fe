// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"errors"
	"slices"
	"testing"
)

func TestTextCommands_HelpFlag(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	for _, name := range []string{"head", "wc", "grep", "sort", "cut", "tr", "sed"} {
		cmd, _ := e.reg.Lookup(name)
		if got := e.output(name + " --help"); got != "Usage: "+cmd.Usage() {
			t.Errorf("%s --help = %q", name, got)
		}
	}
}

func TestLegacyCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"head", "-5", "file", "-x"}, []string{"head", "-n", "5", "file", "-x"}},
		{[]string{"head", "-n", "-1", "file"}, []string{"head", "-n", "-1", "file"}},
		{[]string{"head", "--lines", "-2", "file"}, []string{"head", "--lines", "-2", "file"}},
		{[]string{"-3"}, []string{"-3"}},
	}
	for _, tt := range tests {
		if got := legacyCount(tt.args); !slices.Equal(got, tt.want) {
			t.Errorf("legacyCount(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestParseInt(t *testing.T) {
	t.Parallel()

	if n, err := parseInt(" 42 "); err != nil || n != 42 {
		t.Errorf("parseInt(42) = %d, %v", n, err)
	}
	if _, err := parseInt("x"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("parseInt(x) error = %v, want ErrInvalidArgument", err)
	}
}

func TestUnquote(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"'abc'":  "abc",
		`"abc"`:  "abc",
		"'abc\"": "'abc\"",
		"'":      "'",
		"abc":    "abc",
	}
	for in, want := range tests {
		if got := unquote(in); got != want {
			t.Errorf("unquote(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseFlags_Errors(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	if got := e.failure("mkdir --bogus d"); got != "mkdir: unknown flag: --bogus\nUsage: mkdir [-p] DIRECTORY..." {
		t.Errorf("unknown flag = %q", got)
	}
	if got := e.output("mkdir --help"); got != "Usage: mkdir [-p] DIRECTORY..." {
		t.Errorf("--help = %q", got)
	}
}
