// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"strings"
	"testing"
)

func TestHelpCommands(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)

	help := e.output("help")
	for _, want := range []string{
		"Sandbox Terminal - Command Help\n",
		"\nFILE SYSTEM COMMANDS:\n",
		"  ls          List directory contents\n",
		"  shasum      Alias for sha256sum\n",
		"\nHELP COMMANDS:\n",
		"TIPS & SHORTCUTS:",
	} {
		if !strings.Contains(help, want) {
			t.Errorf("help output is missing %q", want)
		}
	}

	man := e.output("man ls")
	if !strings.HasPrefix(man, "NAME\n    ls - list directory contents\n\nSYNOPSIS\n    ls [-l] [-a] [-h] [FILE]...") {
		t.Errorf("man ls = %q", man)
	}
	if !strings.Contains(man, "-l, --long") {
		t.Errorf("man ls has no options section: %q", man)
	}
	if !strings.Contains(e.output("man sha256sum"), "ALIASES\n    shasum") {
		t.Error("man sha256sum does not list its alias")
	}
	if got := e.failure("man"); got != "What manual page do you want?" {
		t.Errorf("man = %q", got)
	}
	if got := e.failure("man nope"); got != "No manual entry for nope" {
		t.Errorf("man nope = %q", got)
	}

	tests := []struct {
		line string
		want string
	}{
		{"whatis ls", "ls - list directory contents"},
		{"whatis ls nope", "ls - list directory contents\nnope: nothing appropriate"},
		{"whereis ls", "ls: /bin/ls /usr/share/man/ls.1"},
		{"whereis nope", "nope:"},
		{"which ls nope", "/bin/ls"},
		{"type cd ls nope", "cd is a shell builtin\nls is /bin/ls\nbash: type: nope: not found"},
	}
	for _, tt := range tests {
		if got := e.output(tt.line); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.line, got, tt.want)
		}
	}
	if res := e.run("which nope"); res.Kind != KindNoOutput {
		t.Errorf("which nope = %+v", res)
	}
}

func TestFlagSignature(t *testing.T) {
	t.Parallel()

	tests := []struct {
		flag FlagInfo
		want string
	}{
		{FlagInfo{Name: "long", ShortName: "l"}, "-l, --long"},
		{FlagInfo{Name: "name", TakesValue: true}, "--name VALUE"},
		{FlagInfo{Name: "x"}, "-x"},
		{FlagInfo{Name: "lines", ShortName: "n", TakesValue: true}, "-n, --lines VALUE"},
	}
	for _, tt := range tests {
		if got := flagSignature(tt.flag); got != tt.want {
			t.Errorf("flagSignature(%+v) = %q, want %q", tt.flag, got, tt.want)
		}
	}
}
