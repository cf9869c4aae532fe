// SPDX-License-Identifier: MPL-2.0

package cmdline

import (
	"errors"
	"slices"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantName string
		wantArgs []string
		redirect *Redirect
	}{
		{
			name:     "simple command",
			input:    "echo hello",
			wantName: "echo",
			wantArgs: []string{"hello"},
		},
		{
			name:     "name is case-folded, args are not",
			input:    "ECHO Hello",
			wantName: "echo",
			wantArgs: []string{"Hello"},
		},
		{
			name:     "runs of whitespace",
			input:    "  ls \t -l   /home  ",
			wantName: "ls",
			wantArgs: []string{"-l", "/home"},
		},
		{
			name:     "overwrite redirect",
			input:    "echo hi > /out.txt",
			wantName: "echo",
			wantArgs: []string{"hi"},
			redirect: &Redirect{Mode: Overwrite, Target: "/out.txt"},
		},
		{
			name:     "append redirect",
			input:    "echo hi >> log",
			wantName: "echo",
			wantArgs: []string{"hi"},
			redirect: &Redirect{Mode: Append, Target: "log"},
		},
		{
			name:     "last operator wins",
			input:    "echo a > b >> c",
			wantName: "echo",
			wantArgs: []string{"a", ">", "b"},
			redirect: &Redirect{Mode: Append, Target: "c"},
		},
		{
			name:     "tokens after target are dropped",
			input:    "echo a > f extra",
			wantName: "echo",
			wantArgs: []string{"a"},
			redirect: &Redirect{Mode: Overwrite, Target: "f"},
		},
		{
			name:     "operator glued to a word is not a redirect",
			input:    "echo a>b",
			wantName: "echo",
			wantArgs: []string{"a>b"},
		},
		{
			name:     "no arguments",
			input:    "pwd",
			wantName: "pwd",
			wantArgs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			inv, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if inv.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", inv.Name, tt.wantName)
			}
			if !slices.Equal(inv.Args, tt.wantArgs) {
				t.Errorf("Args = %q, want %q", inv.Args, tt.wantArgs)
			}
			switch {
			case tt.redirect == nil && inv.Redirect != nil:
				t.Errorf("Redirect = %+v, want nil", inv.Redirect)
			case tt.redirect != nil && (inv.Redirect == nil || *inv.Redirect != *tt.redirect):
				t.Errorf("Redirect = %+v, want %+v", inv.Redirect, tt.redirect)
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	for _, line := range []string{"", "   ", "\t\n", "> file"} {
		inv, err := Parse(line)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", line, err)
		}
		if !inv.Empty() {
			t.Errorf("Parse(%q) = %+v, want empty", line, inv)
		}
	}
}

func TestParse_SyntaxError(t *testing.T) {
	t.Parallel()

	for _, line := range []string{"echo hi >", "echo hi >>", ">"} {
		_, err := Parse(line)
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("Parse(%q) error = %v, want ErrSyntax", line, err)
			continue
		}
		if want := "bash: syntax error near unexpected token 'newline'"; err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	}
}

func TestExtractRedirect_NoOperator(t *testing.T) {
	t.Parallel()

	tokens := []string{"cat", "file"}
	rest, redirect, err := ExtractRedirect(tokens)
	if err != nil || redirect != nil {
		t.Fatalf("ExtractRedirect() = %v, %v", redirect, err)
	}
	if !slices.Equal(rest, tokens) {
		t.Errorf("rest = %q, want %q", rest, tokens)
	}
}

func TestMode_String(t *testing.T) {
	t.Parallel()

	if Overwrite.String() != ">" || Append.String() != ">>" {
		t.Errorf("Mode strings = %q, %q", Overwrite, Append)
	}
}
