// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette shared by the prompt and banner.
const (
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorHighlight = lipgloss.Color("#3B82F6")
)

// Color schemes accepted by NewStyles.
const (
	SchemeAuto  = "auto"
	SchemeDark  = "dark"
	SchemeLight = "light"
)

// Styles renders the prompt and welcome banner for one output stream.
type Styles struct {
	user   lipgloss.Style
	path   lipgloss.Style
	title  lipgloss.Style
	muted  lipgloss.Style
	border lipgloss.Style
}

// NewStyles builds styles for w. scheme forces a dark or light background;
// SchemeAuto (or "") asks the terminal.
func NewStyles(w io.Writer, scheme string) *Styles {
	r := lipgloss.NewRenderer(w)
	switch scheme {
	case SchemeDark:
		r.SetHasDarkBackground(true)
	case SchemeLight:
		r.SetHasDarkBackground(false)
	}
	return &Styles{
		user:  r.NewStyle().Bold(true).Foreground(ColorSuccess),
		path:  r.NewStyle().Bold(true).Foreground(ColorHighlight),
		title: r.NewStyle().Bold(true).Foreground(ColorPrimary),
		muted: r.NewStyle().Foreground(ColorMuted),
		border: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 2),
	}
}

// Prompt colors a plain "user@host:cwd$ " prompt.
func (s *Styles) Prompt(plain string) string {
	ident, rest, ok := strings.Cut(plain, ":")
	if !ok {
		return plain
	}
	dir := strings.TrimSuffix(rest, "$ ")
	return s.user.Render(ident) + ":" + s.path.Render(dir) + "$ "
}

// Banner renders the welcome box shown when an interactive session starts.
func (s *Styles) Banner(user, hostname string) string {
	body := s.title.Render("Sandbox Terminal") + "\n" +
		s.muted.Render("Logged in as "+user+"@"+hostname) + "\n\n" +
		"Type " + s.path.Render("help") + " for a list of commands, " +
		s.path.Render("man <command>") + " for details."
	return s.border.Render(body)
}
