// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandterm/sandterm/internal/session"
	"github.com/sandterm/sandterm/internal/vfs"
	"github.com/sandterm/sandterm/pkg/vpath"
)

func newPsCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     "ps",
			synopsis: "Report a snapshot of the current processes",
			category: CategoryProcess,
		},
		run: func(_ context.Context, hc *HandlerContext, _ []string) Result {
			lines := []string{"  PID TTY          TIME CMD"}
			for _, p := range hc.Session.Processes().Snapshot() {
				lines = append(lines, fmt.Sprintf("%5d pts/0    00:00:00 %s", p.PID, p.Command))
			}
			return Lines(lines)
		},
	}
}

func newTopCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     "top",
			synopsis: "Display processes",
			category: CategoryProcess,
		},
		run: func(_ context.Context, hc *HandlerContext, _ []string) Result {
			lines := []string{
				fmt.Sprintf("top - %s up %s, 1 user, %s",
					hc.Session.Clock().Now().Format(time.TimeOnly), formatUptime(hc.Session.Uptime()), loadAverage),
				"  PID USER      %CPU %MEM COMMAND",
			}
			for _, p := range hc.Session.Processes().Snapshot() {
				lines = append(lines, fmt.Sprintf("%5d %-9s %4.1f %4.1f %s", p.PID, p.User, p.CPU, p.Mem, p.Command))
			}
			return Lines(lines)
		},
	}
}

func newKillCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:        "kill",
			synopsis:    "Terminate processes by PID",
			usage:       "kill [-SIGNAL] PID...",
			description: "Remove each PID from the process table. Signal options are accepted and ignored.",
			category:    CategoryProcess,
		},
		run: func(_ context.Context, hc *HandlerContext, args []string) Result {
			ops := operands(args)
			if len(ops) == 0 {
				return Failure("kill: usage: kill [-signal] pid")
			}
			var w lineWriter
			for _, a := range ops {
				if strings.HasPrefix(a, "-") {
					continue
				}
				pid, err := strconv.Atoi(a)
				if err != nil {
					w.fail("kill: %s: arguments must be process IDs", a)
					continue
				}
				if !hc.Session.Processes().Kill(pid) {
					w.fail("kill: (%d) - No such process", pid)
				}
			}
			return w.result()
		},
	}
}

// newKillByNameCommand builds killall and pkill, which remove every
// process whose command contains the operand.
func newKillByNameCommand(name, synopsis, missing string) *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     name,
			synopsis: synopsis,
			usage:    name + " NAME",
			category: CategoryProcess,
		},
		run: func(_ context.Context, hc *HandlerContext, args []string) Result {
			ops := operands(args)
			if len(ops) == 0 {
				return Failuref("%s: missing %s", name, missing)
			}
			if hc.Session.Processes().KillMatching(ops[0]) == 0 {
				return Failuref("%s: %s: no process found", name, ops[0])
			}
			return NoOutput()
		},
	}
}

// newPidLookupCommand builds pgrep and pidof, which differ in how they
// separate the PIDs they print.
func newPidLookupCommand(name, synopsis, missing, sep string) *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     name,
			synopsis: synopsis,
			usage:    name + " NAME",
			category: CategoryProcess,
		},
		run: func(_ context.Context, hc *HandlerContext, args []string) Result {
			ops := operands(args)
			if len(ops) == 0 {
				return Failuref("%s: missing %s", name, missing)
			}
			matches := hc.Session.Processes().Match(ops[0])
			if len(matches) == 0 {
				return NoOutput()
			}
			pids := make([]string, len(matches))
			for i, p := range matches {
				pids[i] = strconv.Itoa(p.PID)
			}
			return Output(strings.Join(pids, sep))
		},
	}
}

func newLsofCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:        "lsof",
			synopsis:    "List open files",
			description: "Show which sandbox files the simulated processes hold open.",
			category:    CategoryProcess,
		},
		run: func(_ context.Context, hc *HandlerContext, _ []string) Result {
			files, err := sandboxFiles(hc.FS())
			if err != nil {
				return Failuref("lsof: %v", err)
			}
			lines := []string{"COMMAND PID USER FD TYPE NAME"}
			for i, p := range hc.Session.Processes().Snapshot() {
				lines = append(lines, lsofLine(p, files, i))
			}
			return Lines(lines)
		},
	}
}

func lsofLine(p session.Process, files []string, i int) string {
	if len(files) == 0 {
		return fmt.Sprintf("%s %d %s - ", p.Command, p.PID, p.User)
	}
	return fmt.Sprintf("%s %d %s 3r REG %s", p.Command, p.PID, p.User, files[i%len(files)])
}

// sandboxFiles lists the virtual paths of every regular file in the sandbox.
func sandboxFiles(fsys *vfs.FS) ([]string, error) {
	entries, err := fsys.Walk(vpath.Root)
	if err != nil {
		return nil, err
	}
	var files []string
	for e := range entries {
		if e.Kind == vfs.KindFile {
			files = append(files, e.Path)
		}
	}
	return files, nil
}
