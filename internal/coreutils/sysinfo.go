// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	kernelRelease = "5.10.0"
	machine       = "x86_64"
	loadAverage   = "load average: 0.15, 0.12, 0.08"
	dateLayout    = "Mon Jan 02 15:04:05 MST 2006"
	loginLayout   = "Jan 02 15:04"
)

func newEchoCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     "echo",
			synopsis: "Display a line of text",
			usage:    "echo [STRING]...",
			category: CategorySystem,
		},
		run: func(_ context.Context, _ *HandlerContext, args []string) Result {
			return Output(strings.Join(operands(args), " "))
		},
	}
}

// unameCommand implements the uname utility.
type unameCommand struct {
	commandInfo
}

// newUnameCommand creates a new uname command.
func newUnameCommand() *unameCommand {
	return &unameCommand{commandInfo{
		name:     "uname",
		synopsis: "Print system information",
		usage:    "uname [-a] [-s] [-n] [-r] [-m]",
		category: CategorySystem,
		flags: []FlagInfo{
			{Name: "all", ShortName: "a", Description: "print all information"},
			{Name: "kernel-name", ShortName: "s", Description: "print the kernel name"},
			{Name: "nodename", ShortName: "n", Description: "print the network node hostname"},
			{Name: "kernel-release", ShortName: "r", Description: "print the kernel release"},
			{Name: "machine", ShortName: "m", Description: "print the machine hardware name"},
		},
	}}
}

// Run executes the uname command.
func (c *unameCommand) Run(ctx context.Context, args []string) Result {
	hc := GetHandlerContext(ctx)

	fs := newFlagSet(c.name)
	all := fs.BoolP("all", "a", false, "all")
	kernel := fs.BoolP("kernel-name", "s", false, "kernel name")
	node := fs.BoolP("nodename", "n", false, "node name")
	release := fs.BoolP("kernel-release", "r", false, "release")
	mach := fs.BoolP("machine", "m", false, "machine")
	if _, res, ok := parseFlags(c, fs, args); !ok {
		return res
	}

	if *all {
		return Outputf("Linux %s %s #1 SMP PREEMPT %s GNU/Linux", hc.Session.Hostname(), kernelRelease, machine)
	}
	var parts []string
	if *kernel || !(*node || *release || *mach) {
		parts = append(parts, "Linux")
	}
	if *node {
		parts = append(parts, hc.Session.Hostname())
	}
	if *release {
		parts = append(parts, kernelRelease)
	}
	if *mach {
		parts = append(parts, machine)
	}
	return Output(strings.Join(parts, " "))
}

// newIdentityCommand builds the commands whose whole output derives from
// the session identity.
func newIdentityCommand(name, synopsis string, render func(hc *HandlerContext) string) *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     name,
			synopsis: synopsis,
			category: CategorySystem,
		},
		run: func(_ context.Context, hc *HandlerContext, _ []string) Result {
			return Output(render(hc))
		},
	}
}

func identityCommands() []*funcCommand {
	return []*funcCommand{
		newIdentityCommand("hostname", "Show the system's host name", func(hc *HandlerContext) string {
			return hc.Session.Hostname()
		}),
		newIdentityCommand("whoami", "Print effective user name", func(hc *HandlerContext) string {
			return hc.Session.User()
		}),
		newIdentityCommand("logname", "Print the user's login name", func(hc *HandlerContext) string {
			return hc.Session.User()
		}),
		newIdentityCommand("id", "Print user and group identity", func(hc *HandlerContext) string {
			u := hc.Session.User()
			return fmt.Sprintf("uid=1000(%s) gid=1000(%s) groups=1000(%s)", u, u, u)
		}),
		newIdentityCommand("who", "Show who is logged on", func(hc *HandlerContext) string {
			return fmt.Sprintf("%s tty7    %s (:0)", hc.Session.User(), hc.Session.StartedAt().Format(loginLayout))
		}),
		newIdentityCommand("w", "Show who is logged on and what they are doing", func(hc *HandlerContext) string {
			up := formatUptime(hc.Session.Uptime())
			return fmt.Sprintf("%s tty7    :0               %s   %s  0.00s bash", hc.Session.User(), up, up)
		}),
		newIdentityCommand("finger", "User information lookup", func(hc *HandlerContext) string {
			return fmt.Sprintf("Login: %s\t\tName: Student User\nDirectory: %s  Shell: /bin/bash",
				hc.Session.User(), hc.Session.Home())
		}),
		newIdentityCommand("date", "Print the system date and time", func(hc *HandlerContext) string {
			return hc.Session.Clock().Now().Format(dateLayout)
		}),
		newIdentityCommand("uptime", "Tell how long the session has been running", func(hc *HandlerContext) string {
			now := hc.Session.Clock().Now().Format(time.TimeOnly)
			return fmt.Sprintf("%s up %s, 1 user, %s", now, formatUptime(hc.Session.Uptime()), loadAverage)
		}),
		newIdentityCommand("env", "Print the environment", func(hc *HandlerContext) string {
			return renderVars(hc.Session.Env())
		}),
		newIdentityCommand("locale", "Print locale information", func(*HandlerContext) string {
			return renderVars([][2]string{
				{"LANG", "en_US.UTF-8"},
				{"LC_CTYPE", "en_US.UTF-8"},
				{"LC_NUMERIC", "en_US.UTF-8"},
				{"LC_TIME", "en_US.UTF-8"},
				{"LC_COLLATE", "en_US.UTF-8"},
			})
		}),
	}
}

func renderVars(vars [][2]string) string {
	lines := make([]string, len(vars))
	for i, kv := range vars {
		lines[i] = kv[0] + "=" + kv[1]
	}
	return strings.Join(lines, "\n")
}

// formatUptime renders d as H:MM.
func formatUptime(d time.Duration) string {
	minutes := int(d.Minutes())
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

func newHistoryCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     "history",
			synopsis: "Show command history",
			usage:    "history [-c] [N]",
			category: CategorySystem,
			flags: []FlagInfo{
				{Name: "clear", ShortName: "c", Description: "clear the history list"},
			},
		},
		run: func(_ context.Context, hc *HandlerContext, args []string) Result {
			ops := operands(args)
			if len(ops) > 0 && ops[0] == "-c" {
				hc.Session.ClearHistory()
				return NoOutput()
			}
			history := hc.Session.History()
			first := 0
			if len(ops) > 0 {
				n, err := parseInt(ops[0])
				if err != nil || n < 0 {
					return Failuref("history: %s: numeric argument required", ops[0])
				}
				first = max(0, len(history)-n)
			}
			lines := make([]string, 0, len(history)-first)
			for i := first; i < len(history); i++ {
				lines = append(lines, fmt.Sprintf("%d  %s", i+1, history[i]))
			}
			return Lines(lines)
		},
	}
}

func newDownloadCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     "download",
			synopsis: "Save the session transcript to a file",
			usage:    "download [PATH]",
			description: "Write everything shown in this session so far to PATH, by default\n" +
				"/session_YYYYMMDD_HHMMSS.txt in the sandbox root.",
			category: CategoryUtility,
		},
		run: func(_ context.Context, hc *HandlerContext, args []string) Result {
			transcript := hc.Session.Transcript()
			if len(transcript) == 0 {
				return Failure("download: nothing to save")
			}
			target := "/session_" + hc.Session.Clock().Now().Format("20060102_150405") + ".txt"
			if ops := operands(args); len(ops) > 0 {
				target = ops[0]
			}
			if err := hc.FS().Write(target, strings.Join(transcript, "\n")+"\n"); err != nil {
				return Failuref("download: %v", err)
			}
			return Outputf("Saved session to %s", hc.FS().Abs(target))
		},
	}
}
