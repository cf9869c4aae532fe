// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Catalog identifiers.
const (
	SandboxRootInvalidId Id = iota + 1
	ConfigLoadFailedId
	SSHServerFailedId
	HostKeyFailedId
	TerminalRequiredId
)

type (
	// Id identifies an entry of the issue catalog.
	Id int

	// MarkdownMsg is the Markdown body of an issue.
	MarkdownMsg string

	// HttpLink is a documentation URL.
	HttpLink string

	// Issue is a longer, rendered explanation of a startup failure.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
		extLinks []HttpLink
	}
)

var (
	render = glamour.Render

	sandboxRootInvalidIssue = &Issue{
		id: SandboxRootInvalidId,
		mdMsg: `
# The sandbox root is not usable

Every session is confined to one host directory. It must exist and be a
directory that the current user can read and write.

## Things you can try
- Create it first:
~~~
$ mkdir -p /path/to/sandbox
~~~
- Start in another directory:
~~~
$ sandterm shell --root /path/to/sandbox
~~~
- Set ` + "`sandbox_root`" + ` in your config file.`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration

The configuration file could not be read or does not match the schema.

## Things you can try
- Print the effective configuration:
~~~
$ sandterm config show
~~~
- Write a fresh default file:
~~~
$ sandterm config init
~~~
- Check the file location:
~~~
$ sandterm config path
~~~`,
	}

	sshServerFailedIssue = &Issue{
		id: SSHServerFailedId,
		mdMsg: `
# The SSH server could not start

Usually the address is already in use or the port needs privileges.

## Things you can try
- Pick another port:
~~~
$ sandterm serve --port 2222
~~~
- Bind to loopback only with ` + "`--host 127.0.0.1`" + `.`,
	}

	hostKeyFailedIssue = &Issue{
		id: HostKeyFailedId,
		mdMsg: `
# The SSH host key could not be loaded

The server creates an ed25519 key on first start and reuses it afterwards.

## Things you can try
- Make sure the directory of ` + "`ssh.host_key_path`" + ` is writable.
- Delete a corrupted key file so a new one is generated.`,
	}

	terminalRequiredIssue = &Issue{
		id: TerminalRequiredId,
		mdMsg: `
# An interactive terminal is required

` + "`sandterm shell`" + ` needs a TTY on standard input.

## Things you can try
- Run single lines without a terminal:
~~~
$ sandterm exec -- "ls -l" "cat notes.txt"
~~~`,
	}

	issues = map[Id]*Issue{
		sandboxRootInvalidIssue.Id(): sandboxRootInvalidIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		sshServerFailedIssue.Id():    sshServerFailedIssue,
		hostKeyFailedIssue.Id():      hostKeyFailedIssue,
		terminalRequiredIssue.Id():   terminalRequiredIssue,
	}
)

// Id returns the catalog identifier.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw Markdown body.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// DocLinks returns the documentation links.
func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// ExtLinks returns external reference links.
func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue with the glamour style at stylePath ("dark",
// "light", "notty" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range slices.Concat(i.docLinks, i.extLinks) {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	return slices.SortedFunc(maps.Values(issues), func(a, b *Issue) int { return int(a.id - b.id) })
}

// Get returns the issue for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
