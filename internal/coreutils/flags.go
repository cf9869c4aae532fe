// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// ErrInvalidArgument is reported for malformed numeric operands and counts.
var ErrInvalidArgument = errors.New("invalid argument")

// newFlagSet returns a quiet pflag set for one invocation of a command.
func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	return fs
}

// parseFlags parses args[1:] into fs. When parsing stops early (--help or a
// bad flag) ok is false and res is what the command should return.
func parseFlags(c Command, fs *pflag.FlagSet, args []string) (rest []string, res Result, ok bool) {
	if err := fs.Parse(operands(args)); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, Output(usageLine(c)), false
		}
		return nil, Failuref("%s: %v\n%s", invokedAs(c, args), err, usageLine(c)), false
	}
	return fs.Args(), Result{}, true
}

func usageLine(c Command) string {
	return "Usage: " + c.Usage()
}

// legacyCount rewrites the historical "-NUM" form accepted by head and tail
// into "-n NUM". A "-NUM" that is the value of a preceding -n is left alone.
func legacyCount(args []string) []string {
	out := make([]string, 0, len(args)+1)
	for i, a := range args {
		if i > 0 && args[i-1] != "-n" && args[i-1] != "--lines" &&
			len(a) > 1 && a[0] == '-' && isDigits(a[1:]) {
			out = append(out, "-n", a[1:])
			continue
		}
		out = append(out, a)
	}
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseInt parses a decimal integer operand, wrapping failures in
// ErrInvalidArgument.
func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Join(ErrInvalidArgument, err)
	}
	return n, nil
}

// unquote strips one pair of matching surrounding quotes. The tokenizer does
// not interpret quotes, so scripts like '{print $1}' arrive with them.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
