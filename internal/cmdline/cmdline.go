// SPDX-License-Identifier: MPL-2.0

// Package cmdline turns a raw input line into a command invocation.
//
// Lines are split on whitespace only: there is no quoting, escaping or
// expansion. The one piece of syntax recognised is a single trailing output
// redirection, "> target" or ">> target".
package cmdline

import (
	"errors"
	"strings"
)

// Redirect modes.
const (
	// Overwrite replaces the target's contents (">").
	Overwrite Mode = iota
	// Append adds to the end of the target (">>").
	Append
)

const (
	opOverwrite = ">"
	opAppend    = ">>"
)

// ErrSyntax is the sentinel wrapped by SyntaxError.
var ErrSyntax = errors.New("syntax error")

type (
	// Mode selects how redirected output is written.
	Mode int

	// Redirect sends a command's output to a file.
	Redirect struct {
		Mode Mode
		// Target is the virtual path as typed by the user.
		Target string
	}

	// Invocation is one parsed command line.
	Invocation struct {
		// Name is the command name, lower-cased.
		Name string
		// Args are the remaining tokens, verbatim.
		Args []string
		// Redirect is nil when the output goes back to the caller.
		Redirect *Redirect
	}

	// SyntaxError reports a malformed line. Token is the offending token as
	// bash would name it.
	SyntaxError struct {
		Token string
	}
)

// Error returns the message bash prints for the same mistake.
func (e *SyntaxError) Error() string {
	return "bash: syntax error near unexpected token '" + e.Token + "'"
}

// Unwrap returns ErrSyntax for errors.Is() compatibility.
func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// String returns the operator spelling of the mode.
func (m Mode) String() string {
	if m == Append {
		return opAppend
	}
	return opOverwrite
}

// Empty reports whether the line carried no command.
func (inv Invocation) Empty() bool {
	return inv.Name == ""
}

// Tokenize splits line on runs of whitespace.
func Tokenize(line string) []string {
	return strings.Fields(line)
}

// ExtractRedirect scans tokens right to left for the last ">" or ">>". The
// token after it is the target; tokens from the operator onwards are removed.
// A trailing operator with no target is a *SyntaxError.
func ExtractRedirect(tokens []string) ([]string, *Redirect, error) {
	for i := len(tokens) - 1; i >= 0; i-- {
		var mode Mode
		switch tokens[i] {
		case opOverwrite:
			mode = Overwrite
		case opAppend:
			mode = Append
		default:
			continue
		}

		if i+1 >= len(tokens) {
			return nil, nil, &SyntaxError{Token: "newline"}
		}
		return tokens[:i], &Redirect{Mode: mode, Target: tokens[i+1]}, nil
	}
	return tokens, nil, nil
}

// Parse tokenizes line and extracts its redirection. An empty or blank line,
// or one that holds only a redirection, yields an empty Invocation.
func Parse(line string) (Invocation, error) {
	tokens, redirect, err := ExtractRedirect(Tokenize(line))
	if err != nil {
		return Invocation{}, err
	}
	if len(tokens) == 0 {
		return Invocation{}, nil
	}
	return Invocation{
		Name:     strings.ToLower(tokens[0]),
		Args:     tokens[1:],
		Redirect: redirect,
	}, nil
}
