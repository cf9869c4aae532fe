// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"fmt"
	"strings"
)

// shellBuiltins are the commands type reports as builtins rather than
// binaries in /bin.
var shellBuiltins = map[string]bool{
	"cd": true, "pwd": true, "echo": true, "exit": true, "history": true,
	"type": true, "help": true, "kill": true, "true": true, "false": true,
	"time": true,
}

const helpTips = `TIPS & SHORTCUTS:
  Tab           Auto-complete commands and file names
  Up/Down       Navigate command history
  Ctrl+C        Clear current input
  man <cmd>     View the manual for any command
  cmd > file    Redirect output to file
  cmd >> file   Append output to file

Type 'man <command>' for detailed help on specific commands.`

// describer is implemented by commands that carry a long description.
type describer interface {
	Description() string
}

func newHelpCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     "help",
			synopsis: "Display this help message",
			category: CategoryHelp,
		},
		run: func(_ context.Context, hc *HandlerContext, _ []string) Result {
			return Output(renderHelp(hc.Registry))
		},
	}
}

// renderHelp lists every command grouped by category, aliases included.
func renderHelp(reg *Registry) string {
	sections := make(map[Category][]string)
	for _, cmd := range reg.Commands() {
		cat := cmd.Category()
		sections[cat] = append(sections[cat], fmt.Sprintf("  %-11s %s", cmd.Name(), cmd.Synopsis()))
		for _, alias := range reg.Aliases(cmd.Name()) {
			sections[cat] = append(sections[cat], fmt.Sprintf("  %-11s Alias for %s", alias, cmd.Name()))
		}
	}

	var b strings.Builder
	b.WriteString("Sandbox Terminal - Command Help\n")
	for cat := CategoryFileSystem; cat <= CategoryUtility; cat++ {
		lines, ok := sections[cat]
		if !ok {
			continue
		}
		b.WriteString("\n" + cat.String() + ":\n")
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteString("\n")
	}
	b.WriteString("\n" + helpTips)
	return b.String()
}

func newManCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     "man",
			synopsis: "Display the manual page for a command",
			usage:    "man COMMAND",
			category: CategoryHelp,
		},
		run: func(_ context.Context, hc *HandlerContext, args []string) Result {
			ops := operands(args)
			if len(ops) == 0 {
				return Failure("What manual page do you want?")
			}
			cmd, ok := hc.Registry.Lookup(ops[0])
			if !ok {
				return Failuref("No manual entry for %s", strings.ToLower(ops[0]))
			}
			return Output(manPage(cmd, hc.Registry.Aliases(cmd.Name())))
		},
	}
}

// manPage renders a manual page from the command's own metadata.
func manPage(cmd Command, aliases []string) string {
	var b strings.Builder
	section := func(title string, lines ...string) {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(title)
		for _, l := range lines {
			b.WriteString("\n    " + l)
		}
	}

	section("NAME", cmd.Name()+" - "+lowerFirst(cmd.Synopsis()))
	section("SYNOPSIS", cmd.Usage())

	desc := cmd.Synopsis() + "."
	if d, ok := cmd.(describer); ok && d.Description() != "" {
		desc = d.Description()
	}
	section("DESCRIPTION", strings.Split(desc, "\n")...)

	if flags := cmd.SupportedFlags(); len(flags) > 0 {
		lines := make([]string, len(flags))
		for i, f := range flags {
			lines[i] = fmt.Sprintf("%-24s %s", flagSignature(f), f.Description)
		}
		section("OPTIONS", lines...)
	}
	if len(aliases) > 0 {
		section("ALIASES", strings.Join(aliases, ", "))
	}
	return b.String()
}

func flagSignature(f FlagInfo) string {
	var parts []string
	if f.ShortName != "" {
		parts = append(parts, "-"+f.ShortName)
	}
	if len(f.Name) > 1 {
		parts = append(parts, "--"+f.Name)
	} else if f.ShortName == "" {
		parts = append(parts, "-"+f.Name)
	}
	sig := strings.Join(parts, ", ")
	if f.TakesValue {
		sig += " VALUE"
	}
	return sig
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func newWhatisCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     "whatis",
			synopsis: "Display one-line manual page descriptions",
			usage:    "whatis COMMAND...",
			category: CategoryHelp,
		},
		run: func(_ context.Context, hc *HandlerContext, args []string) Result {
			ops := operands(args)
			if len(ops) == 0 {
				return Failure("whatis: missing operand")
			}
			var w lineWriter
			for _, name := range ops {
				cmd, ok := hc.Registry.Lookup(name)
				if !ok {
					w.fail("%s: nothing appropriate", name)
					continue
				}
				w.addf("%s - %s", strings.ToLower(name), lowerFirst(cmd.Synopsis()))
			}
			return w.result()
		},
	}
}

func newWhereisCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     "whereis",
			synopsis: "Locate the binary and manual page for a command",
			usage:    "whereis COMMAND",
			category: CategoryHelp,
		},
		run: func(_ context.Context, hc *HandlerContext, args []string) Result {
			ops := operands(args)
			if len(ops) == 0 {
				return Failure("whereis: missing operand")
			}
			var w lineWriter
			for _, name := range ops {
				name = strings.ToLower(name)
				if _, ok := hc.Registry.Lookup(name); !ok {
					w.add(name + ":")
					continue
				}
				w.addf("%s: /bin/%s /usr/share/man/%s.1", name, name, name)
			}
			return w.result()
		},
	}
}

func newWhichCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     "which",
			synopsis: "Show the path of a command",
			usage:    "which COMMAND...",
			category: CategoryHelp,
		},
		run: func(_ context.Context, hc *HandlerContext, args []string) Result {
			ops := operands(args)
			if len(ops) == 0 {
				return Failure("which: missing argument")
			}
			var w lineWriter
			for _, name := range ops {
				if _, ok := hc.Registry.Lookup(name); ok {
					w.add("/bin/" + strings.ToLower(name))
				}
			}
			return w.result()
		},
	}
}

func newTypeCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     "type",
			synopsis: "Describe how a command name would be interpreted",
			usage:    "type COMMAND...",
			category: CategoryHelp,
		},
		run: func(_ context.Context, hc *HandlerContext, args []string) Result {
			ops := operands(args)
			if len(ops) == 0 {
				return NoOutput()
			}
			var w lineWriter
			for _, name := range ops {
				lower := strings.ToLower(name)
				switch _, ok := hc.Registry.Lookup(lower); {
				case !ok:
					w.fail("bash: type: %s: not found", name)
				case shellBuiltins[lower]:
					w.addf("%s is a shell builtin", lower)
				default:
					w.addf("%s is /bin/%s", lower, lower)
				}
			}
			return w.result()
		},
	}
}
