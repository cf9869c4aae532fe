// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandterm/sandterm/pkg/vpath"
)

const (
	// seqLimit caps how many numbers seq may print.
	seqLimit = 1000
	// yesRepeat is how many lines yes prints; there is no pipe to stop it.
	yesRepeat = 20
)

func newBannerCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     "banner",
			synopsis: "Display text in a large frame",
			usage:    "banner TEXT...",
			category: CategoryUtility,
		},
		run: func(_ context.Context, _ *HandlerContext, args []string) Result {
			ops := operands(args)
			if len(ops) == 0 {
				return NoOutput()
			}
			text := strings.ToUpper(strings.Join(ops, " "))
			rule := " " + strings.Repeat("=", len([]rune(text))+2)
			return Lines([]string{rule, "| " + text + " |", rule})
		},
	}
}

func newCalCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     "cal",
			synopsis: "Display a calendar",
			usage:    "cal [[MONTH] YEAR]",
			category: CategoryUtility,
		},
		run: func(_ context.Context, hc *HandlerContext, args []string) Result {
			now := hc.Session.Clock().Now()
			month, year := now.Month(), now.Year()
			ops := operands(args)
			switch len(ops) {
			case 0:
			case 2:
				m, err := parseInt(ops[0])
				if err != nil || m < 1 || m > 12 {
					return Failuref("cal: %s is not a valid month", ops[0])
				}
				month = time.Month(m)
				ops = ops[1:]
				fallthrough
			case 1:
				y, err := parseInt(ops[0])
				if err != nil || y < 1 || y > 9999 {
					return Failuref("cal: year '%s' not in range 1..9999", ops[0])
				}
				year = y
			default:
				return Failure("cal: too many arguments")
			}
			return Output(renderMonth(year, month))
		},
	}
}

// renderMonth lays out one month, weeks starting on Sunday.
func renderMonth(year int, month time.Month) string {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()

	title := fmt.Sprintf("%s %d", month, year)
	pad := (20 - len(title)) / 2
	lines := []string{strings.Repeat(" ", pad) + title, "Su Mo Tu We Th Fr Sa"}

	var week strings.Builder
	week.WriteString(strings.Repeat("   ", int(first.Weekday())))
	for d := 1; d <= days; d++ {
		fmt.Fprintf(&week, "%2d", d)
		if (int(first.Weekday())+d)%7 == 0 || d == days {
			lines = append(lines, week.String())
			week.Reset()
			continue
		}
		week.WriteByte(' ')
	}
	return strings.Join(lines, "\n")
}

func newYesCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:        "yes",
			synopsis:    "Output a string repeatedly",
			usage:       "yes [STRING]...",
			description: "Print STRING (default y) 20 times.",
			category:    CategoryUtility,
		},
		run: func(_ context.Context, _ *HandlerContext, args []string) Result {
			text := "y"
			if ops := operands(args); len(ops) > 0 {
				text = strings.Join(ops, " ")
			}
			return Output(strings.TrimSuffix(strings.Repeat(text+"\n", yesRepeat), "\n"))
		},
	}
}

// newSeqCommand prints integer sequences. Operands are parsed by hand since
// negative increments look like flags.
func newSeqCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:        "seq",
			synopsis:    "Print a sequence of numbers",
			usage:       "seq [FIRST [INCREMENT]] LAST",
			description: "Print the integers from FIRST (default 1) to LAST in steps of INCREMENT\n(default 1). At most 1000 numbers are printed.",
			category:    CategoryUtility,
		},
		run: func(_ context.Context, _ *HandlerContext, args []string) Result {
			ops := operands(args)
			if len(ops) == 0 {
				return Failure("seq: missing operand")
			}
			if len(ops) > 3 {
				return Failuref("seq: extra operand '%s'", ops[3])
			}
			nums := make([]int, len(ops))
			for i, o := range ops {
				n, err := parseInt(o)
				if err != nil {
					return Failure("seq: invalid number")
				}
				nums[i] = n
			}
			first, step, last := 1, 1, nums[0]
			switch len(nums) {
			case 2:
				first, last = nums[0], nums[1]
			case 3:
				first, step, last = nums[0], nums[1], nums[2]
			}
			if step == 0 {
				return Failure("seq: step must not be zero")
			}

			var out []string
			for n := first; (step > 0 && n <= last) || (step < 0 && n >= last); n += step {
				if len(out) == seqLimit {
					return Failuref("seq: sequence too large (limit: %d numbers)", seqLimit)
				}
				out = append(out, strconv.Itoa(n))
			}
			if len(out) == 0 {
				return NoOutput()
			}
			return Lines(out)
		},
	}
}

func newDirnameCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     "dirname",
			synopsis: "Strip the last component from a path",
			usage:    "dirname PATH",
			category: CategoryUtility,
		},
		run: func(_ context.Context, hc *HandlerContext, args []string) Result {
			ops := operands(args)
			if len(ops) == 0 {
				return Failure("dirname: missing operand")
			}
			return Output(vpath.Dir(hc.FS().Abs(ops[0])))
		},
	}
}

func newBasenameCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     "basename",
			synopsis: "Strip directory and suffix from a path",
			usage:    "basename PATH [SUFFIX]",
			category: CategoryUtility,
		},
		run: func(_ context.Context, _ *HandlerContext, args []string) Result {
			ops := operands(args)
			if len(ops) == 0 {
				return Failure("basename: missing operand")
			}
			base := vpath.Base(strings.TrimRight(ops[0], "/"))
			if ops[0] != "" && strings.Trim(ops[0], "/") == "" {
				base = "/"
			}
			if len(ops) > 1 && ops[1] != base {
				base = strings.TrimSuffix(base, ops[1])
			}
			return Output(base)
		},
	}
}

func newClearCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     "clear",
			synopsis: "Clear the terminal screen",
			category: CategoryUtility,
		},
		run: func(_ context.Context, hc *HandlerContext, _ []string) Result {
			hc.Session.RequestClear()
			return NoOutput()
		},
	}
}

func newExitCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     "exit",
			synopsis: "Quit the terminal",
			category: CategoryUtility,
		},
		run: func(_ context.Context, hc *HandlerContext, _ []string) Result {
			hc.Session.RequestExit()
			return Output("Goodbye!")
		},
	}
}

func newSleepCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:        "sleep",
			synopsis:    "Delay for a specified amount of time",
			usage:       "sleep NUMBER[s|m|h]",
			description: "Pause for NUMBER seconds, or minutes or hours with the m and h suffixes.",
			category:    CategoryProcess,
		},
		run: func(ctx context.Context, hc *HandlerContext, args []string) Result {
			ops := operands(args)
			if len(ops) == 0 {
				return Failure("sleep: missing operand")
			}
			d, err := parseSleepDuration(ops[0])
			if err != nil {
				return Failuref("sleep: %v", err)
			}
			select {
			case <-ctx.Done():
				return Failuref("sleep: %v", ctx.Err())
			case <-hc.Session.Clock().After(d):
				return NoOutput()
			}
		},
	}
}

// parseSleepDuration parses "5", "5s", "1.5m" or "2h".
func parseSleepDuration(s string) (time.Duration, error) {
	unit := time.Second
	num := s
	if s != "" {
		switch s[len(s)-1] {
		case 's':
			num = s[:len(s)-1]
		case 'm':
			unit, num = time.Minute, s[:len(s)-1]
		case 'h':
			unit, num = time.Hour, s[:len(s)-1]
		}
	}
	val, err := strconv.ParseFloat(num, 64)
	if err != nil || val < 0 {
		return 0, fmt.Errorf("invalid time interval '%s'", s)
	}
	return time.Duration(val * float64(unit)), nil
}

func newStatusCommand(name string, ok bool) *funcCommand {
	synopsis := "Do nothing, successfully"
	if !ok {
		synopsis = "Do nothing, unsuccessfully"
	}
	return &funcCommand{
		commandInfo: commandInfo{name: name, synopsis: synopsis, category: CategoryUtility},
		run: func(context.Context, *HandlerContext, []string) Result {
			if ok {
				return NoOutput()
			}
			return Failure("")
		},
	}
}

// newWrapperCommand builds time and nice, which run the rest of the line as
// a command of its own.
func newWrapperCommand(name, synopsis string, after func(hc *HandlerContext, started time.Time, res Result) Result) *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     name,
			synopsis: synopsis,
			usage:    name + " COMMAND [ARG]...",
			category: CategoryProcess,
		},
		run: func(ctx context.Context, hc *HandlerContext, args []string) Result {
			ops := operands(args)
			if name == "nice" {
				ops = skipNiceness(ops)
			}
			started := hc.Session.Clock().Now()
			res := NoOutput()
			if len(ops) > 0 {
				res = hc.Registry.Run(ctx, ops[0], ops)
			} else if name == "nice" {
				return Failure("nice: missing operand")
			}
			return after(hc, started, res)
		},
	}
}

// skipNiceness drops the -n N or -N adjustment nice accepts.
func skipNiceness(ops []string) []string {
	switch {
	case len(ops) >= 2 && ops[0] == "-n":
		return ops[2:]
	case len(ops) >= 1 && strings.HasPrefix(ops[0], "-") && isDigits(ops[0][1:]):
		return ops[1:]
	}
	return ops
}

func timeReport(hc *HandlerContext, started time.Time, res Result) Result {
	elapsed := hc.Session.Clock().Since(started)
	report := fmt.Sprintf("real\t%dm%.3fs\nuser\t0m0.000s\nsys\t0m0.000s",
		int(elapsed.Minutes()), elapsed.Seconds()-60*float64(int(elapsed.Minutes())))
	if res.Text != "" {
		report = res.Text + "\n" + report
	}
	kind := res.Kind
	if kind == KindNoOutput {
		kind = KindOutput
	}
	return Result{Kind: kind, Text: report}
}

func newNohupCommand() *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:        "nohup",
			synopsis:    "Run a command immune to hangups",
			usage:       "nohup COMMAND [ARG]...",
			description: "Run COMMAND and append its output to nohup.out in the current directory.",
			category:    CategoryProcess,
		},
		run: func(ctx context.Context, hc *HandlerContext, args []string) Result {
			ops := operands(args)
			if len(ops) == 0 {
				return Failure("nohup: missing operand")
			}
			res := hc.Registry.Run(ctx, ops[0], ops)
			if res.Text != "" {
				if err := hc.FS().Append("nohup.out", res.Text+"\n"); err != nil {
					return Failuref("nohup: %v", err)
				}
			}
			return Output("nohup: ignoring input and appending output to 'nohup.out'")
		},
	}
}

// newStubCommand builds commands that need privileges or other users, which
// the sandbox does not have.
func newStubCommand(name, synopsis string) *funcCommand {
	return &funcCommand{
		commandInfo: commandInfo{
			name:     name,
			synopsis: synopsis,
			category: CategorySystem,
		},
		run: func(context.Context, *HandlerContext, []string) Result {
			return Failuref("%s: not available in the sandbox", name)
		},
	}
}
