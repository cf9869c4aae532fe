// SPDX-License-Identifier: MPL-2.0

//go:build unix

package main

import (
	"io"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/sandterm/sandterm/internal/shell"
)

// watchResize forwards SIGWINCH to the REPL until stop is called.
func watchResize(out io.Writer, repl *shell.REPL) (stop func()) {
	f, ok := out.(*os.File)
	if !ok {
		return func() {}
	}
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGWINCH)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ch:
				if w, h, err := term.GetSize(int(f.Fd())); err == nil {
					_ = repl.Resize(w, h) //nolint:errcheck // only fails for non-positive sizes
				}
			}
		}
	}()
	return func() {
		signal.Stop(ch)
		close(done)
	}
}
