// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

const keyTab = '\t'

type (
	// REPL reads lines from an interactive terminal and runs them in a
	// Shell. It works on any io.ReadWriter in raw mode: a local TTY or an
	// SSH channel.
	REPL struct {
		shell  *Shell
		term   *term.Terminal
		styles *Styles
		cfg    REPLConfig
	}

	// REPLConfig controls the interactive front end.
	REPLConfig struct {
		// Welcome prints the banner before the first prompt.
		Welcome bool
		// ColorScheme is one of SchemeAuto, SchemeDark or SchemeLight.
		ColorScheme string
		// Width and Height are the initial terminal size; zero leaves the
		// x/term default.
		Width, Height int
	}
)

// NewREPL creates a REPL for sh that talks over rw.
func NewREPL(sh *Shell, rw io.ReadWriter, cfg REPLConfig) *REPL {
	r := &REPL{
		shell:  sh,
		term:   term.NewTerminal(rw, ""),
		styles: NewStyles(rw, cfg.ColorScheme),
		cfg:    cfg,
	}
	r.term.AutoCompleteCallback = r.autoComplete
	if cfg.Width > 0 && cfg.Height > 0 {
		_ = r.term.SetSize(cfg.Width, cfg.Height) //nolint:errcheck // only fails for non-positive sizes
	}
	return r
}

// Resize updates the terminal dimensions used for line editing.
func (r *REPL) Resize(width, height int) error {
	return r.term.SetSize(width, height)
}

// Run reads and executes lines until exit is called, the input ends or ctx
// is canceled.
func (r *REPL) Run(ctx context.Context) error {
	if r.cfg.Welcome {
		sess := r.shell.Session()
		if _, err := fmt.Fprintf(r.term, "%s\n\n", r.styles.Banner(sess.User(), sess.Hostname())); err != nil {
			return err
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.term.SetPrompt(r.styles.Prompt(r.shell.Prompt()))
		line, err := r.term.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}

		out := r.shell.Execute(ctx, line)
		if r.shell.TakeClear() {
			if _, err := io.WriteString(r.term, ansi.EraseEntireScreen+ansi.CursorHomePosition); err != nil {
				return err
			}
		}
		if out != "" {
			if _, err := fmt.Fprintln(r.term, out); err != nil {
				return err
			}
		}
		if r.shell.ExitRequested() {
			return nil
		}
	}
}

// autoComplete implements the x/term completion hook: Tab extends the word
// under the cursor to the longest prefix its candidates share.
func (r *REPL) autoComplete(line string, pos int, key rune) (string, int, bool) {
	if key != keyTab || pos != len(line) {
		return "", 0, false
	}
	candidates := r.shell.Complete(line)
	if len(candidates) == 0 {
		return "", 0, false
	}
	completed := completeLine(line, candidates)
	if completed == line {
		return "", 0, false
	}
	return completed, len(completed), true
}

// completeLine replaces the last word of line with the common prefix of the
// candidates, adding a space when exactly one non-directory candidate fits.
func completeLine(line string, candidates []string) string {
	start := len(line)
	for start > 0 && line[start-1] != ' ' && line[start-1] != '\t' {
		start--
	}
	word := commonPrefix(candidates)
	if len(candidates) == 1 && word[len(word)-1] != '/' {
		word += " "
	}
	if len(word) < len(line)-start {
		return line
	}
	return line[:start] + word
}
