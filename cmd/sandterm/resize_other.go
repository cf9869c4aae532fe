// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package main

import (
	"io"

	"github.com/sandterm/sandterm/internal/shell"
)

// watchResize is a no-op where terminals do not signal size changes.
func watchResize(io.Writer, *shell.REPL) (stop func()) {
	return func() {}
}
