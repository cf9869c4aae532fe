// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"fmt"
	"strings"
)

// Result kinds.
const (
	// KindNoOutput means the command succeeded and produced nothing; any
	// redirection on the line is skipped.
	KindNoOutput ResultKind = iota
	// KindOutput means the command produced text (possibly empty).
	KindOutput
	// KindFailure means the command failed; Text is the error message.
	KindFailure
)

type (
	// ResultKind tags a Result.
	ResultKind int

	// Result is what a command hands back to the dispatcher.
	Result struct {
		Kind ResultKind
		Text string
	}

	// lineWriter accumulates the lines of a multi-operand command, keeping
	// errors in order with regular output the way a terminal would show them.
	lineWriter struct {
		lines    []string
		failures int
	}
)

// NoOutput is a successful result with nothing to print.
func NoOutput() Result { return Result{Kind: KindNoOutput} }

// Output is a successful result carrying text.
func Output(text string) Result { return Result{Kind: KindOutput, Text: text} }

// Outputf formats an Output result.
func Outputf(format string, args ...any) Result { return Output(fmt.Sprintf(format, args...)) }

// Lines joins lines with newlines into an Output result.
func Lines(lines []string) Result { return Output(strings.Join(lines, "\n")) }

// Failure is a failed result carrying the error message.
func Failure(text string) Result { return Result{Kind: KindFailure, Text: text} }

// Failuref formats a Failure result.
func Failuref(format string, args ...any) Result { return Failure(fmt.Sprintf(format, args...)) }

// IsFailure reports whether the result is a Failure.
func (r Result) IsFailure() bool { return r.Kind == KindFailure }

// HasOutput reports whether a redirection should receive this result. Only
// NoOutput is skipped; failure text is written like any other output.
func (r Result) HasOutput() bool { return r.Kind != KindNoOutput }

// String returns the text shown to the user.
func (r Result) String() string { return r.Text }

func (w *lineWriter) add(lines ...string) {
	w.lines = append(w.lines, lines...)
}

func (w *lineWriter) addf(format string, args ...any) {
	w.lines = append(w.lines, fmt.Sprintf(format, args...))
}

func (w *lineWriter) fail(format string, args ...any) {
	w.failures++
	w.lines = append(w.lines, fmt.Sprintf(format, args...))
}

// result is Failure when every line is an error, NoOutput when nothing was
// written, and Output otherwise.
func (w *lineWriter) result() Result {
	switch {
	case len(w.lines) == 0:
		return NoOutput()
	case w.failures == len(w.lines):
		return Failure(strings.Join(w.lines, "\n"))
	default:
		return Lines(w.lines)
	}
}
