// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"slices"
	"testing"
)

func newNamedCommand(name string) *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{name: name, synopsis: "test"},
		run: func(_ context.Context, _ *HandlerContext, args []string) Result {
			return Output(args[0])
		},
	}
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register(newNamedCommand("Greet"), "hello")

	for _, name := range []string{"greet", "GREET", "hello", "Hello"} {
		if _, ok := r.Lookup(name); !ok {
			t.Errorf("Lookup(%q) not found", name)
		}
	}
	if _, ok := r.Lookup("missing"); ok {
		t.Error("Lookup(missing) should fail")
	}
	if got := r.Names(); !slices.Equal(got, []string{"greet", "hello"}) {
		t.Errorf("Names() = %v", got)
	}
	if got := r.Commands(); len(got) != 1 {
		t.Errorf("Commands() returned %d commands, want 1", len(got))
	}
	if got := r.Aliases("greet"); !slices.Equal(got, []string{"hello"}) {
		t.Errorf("Aliases() = %v", got)
	}
}

func TestRegistry_RegisterPanics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cmd     Command
		aliases []string
	}{
		{"empty name", newNamedCommand(""), nil},
		{"duplicate name", newNamedCommand("one"), nil},
		{"duplicate alias", newNamedCommand("two"), []string{"ONE"}},
		{"empty alias", newNamedCommand("three"), []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := NewRegistry()
			r.Register(newNamedCommand("one"))
			defer func() {
				if recover() == nil {
					t.Error("Register() did not panic")
				}
			}()
			r.Register(tt.cmd, tt.aliases...)
		})
	}
}

func TestRegistry_RunUnknown(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	res := e.reg.Run(e.ctx, "zzz", []string{"zzz"})
	if !res.IsFailure() || res.Text != "bash: zzz: command not found" {
		t.Errorf("Run(zzz) = %+v", res)
	}
}

func TestRegistry_RunPassesInvokedName(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register(newNamedCommand("greet"), "hello")
	ctx := WithHandlerContext(context.Background(), &HandlerContext{Registry: r})
	if got := r.Run(ctx, "hello", []string{"hello"}).Text; got != "hello" {
		t.Errorf("Run(hello) = %q, want %q", got, "hello")
	}
}

func TestRegisterBuiltins(t *testing.T) {
	t.Parallel()

	r := NewDefaultRegistry()
	want := []string{
		"ls", "cd", "pwd", "cat", "touch", "mkdir", "rmdir", "rm", "cp", "mv", "ln",
		"chmod", "chown", "chgrp", "find", "locate", "du", "df", "file", "strings",
		"tar", "gzip", "gunzip", "zstd", "unzstd", "sha256sum", "shasum", "b3sum",
		"head", "tail", "wc", "grep", "egrep", "fgrep", "sort", "uniq", "cut", "diff",
		"cmp", "tr", "fold", "cksum", "tee", "less", "more", "paste", "join", "awk",
		"sed", "iconv", "ex", "echo", "uname", "hostname", "whoami", "logname", "id",
		"who", "w", "finger", "date", "uptime", "env", "locale", "history", "download",
		"ps", "top", "kill", "killall", "pkill", "pgrep", "pidof", "lsof", "help",
		"man", "whatis", "whereis", "which", "type", "banner", "cal", "yes", "seq",
		"dirname", "basename", "clear", "exit", "sleep", "true", "false", "time",
		"passwd", "su", "sudo", "nice", "nohup",
	}
	for _, name := range want {
		cmd, ok := r.Lookup(name)
		if !ok {
			t.Errorf("builtin %q is not registered", name)
			continue
		}
		if cmd.Synopsis() == "" {
			t.Errorf("builtin %q has no synopsis", name)
		}
	}
}

func TestGetHandlerContext_PanicsWithoutContext(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("GetHandlerContext() did not panic")
		}
	}()
	GetHandlerContext(context.Background())
}
