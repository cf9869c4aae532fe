// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	awkPrintRe = regexp.MustCompile(`^\{\s*print\s*(.*?)\s*\}$`)
	awkFieldRe = regexp.MustCompile(`^\$(\d+)$`)
	sedBackref = regexp.MustCompile(`\\(\d)`)

	errAwkProgram = errors.New("only simple '{print $N}' programs are supported")
)

// awkCommand implements the print-fields subset of awk.
type awkCommand struct {
	commandInfo
}

// newAwkCommand creates a new awk command.
func newAwkCommand() *awkCommand {
	return &awkCommand{commandInfo{
		name:     "awk",
		synopsis: "Print selected fields of each line",
		usage:    "awk [-F SEP] '{print $N[, $M...]}' FILE",
		description: "Only print programs are understood: each $N is the Nth field of the line\n" +
			"($0 is the whole line). Fields are split on whitespace unless -F is given.",
		category: CategoryText,
		flags: []FlagInfo{
			{Name: "field-separator", ShortName: "F", Description: "use SEP as the input field separator", TakesValue: true},
		},
	}}
}

// Run executes the awk command.
func (c *awkCommand) Run(ctx context.Context, args []string) Result {
	fsys := GetHandlerContext(ctx).FS()

	fs := newFlagSet(c.name)
	sep := fs.StringP("field-separator", "F", "", "separator")
	ops, res, ok := parseFlags(c, fs, args)
	if !ok {
		return res
	}
	if len(ops) < 2 {
		return Failure("awk: missing operand")
	}
	program := unquote(strings.Join(ops[:len(ops)-1], " "))
	fields, err := parseAwkPrint(program)
	if err != nil {
		return Failuref("awk: %v", err)
	}
	lines, res, ok := readLines(fsys, c.name, ops[len(ops)-1])
	if !ok {
		return res
	}

	out := make([]string, len(lines))
	for i, l := range lines {
		var parts []string
		if *sep == "" {
			parts = strings.Fields(l)
		} else {
			parts = strings.Split(l, unquote(*sep))
		}
		picked := make([]string, len(fields))
		for j, n := range fields {
			switch {
			case n == 0:
				picked[j] = l
			case n <= len(parts):
				picked[j] = parts[n-1]
			}
		}
		out[i] = strings.Join(picked, " ")
	}
	return Lines(out)
}

// parseAwkPrint returns the field numbers printed by a '{print ...}'
// program. A bare print prints the whole line.
func parseAwkPrint(program string) ([]int, error) {
	m := awkPrintRe.FindStringSubmatch(strings.TrimSpace(program))
	if m == nil {
		return nil, errAwkProgram
	}
	if m[1] == "" {
		return []int{0}, nil
	}
	var fields []int
	for _, tok := range strings.FieldsFunc(m[1], func(r rune) bool { return r == ',' || r == ' ' }) {
		fm := awkFieldRe.FindStringSubmatch(tok)
		if fm == nil {
			return nil, errAwkProgram
		}
		n, err := strconv.Atoi(fm[1])
		if err != nil {
			return nil, errAwkProgram
		}
		fields = append(fields, n)
	}
	return fields, nil
}

// sedCommand implements the substitution command of sed.
type sedCommand struct {
	commandInfo
}

// substitution is a parsed s/RE/REPL/FLAGS expression.
type substitution struct {
	re     *regexp.Regexp
	repl   string
	global bool
}

// newSedCommand creates a new sed command.
func newSedCommand() *sedCommand {
	return &sedCommand{commandInfo{
		name:     "sed",
		synopsis: "Stream editor for substitutions",
		usage:    "sed [-i] 's/REGEXP/REPLACEMENT/[g]' FILE",
		description: "Replace the first match of REGEXP on each line of FILE (every match with g)\n" +
			"and print the result. \\1 to \\9 and & refer to the matched text. With -i the\n" +
			"file is rewritten instead.",
		category: CategoryText,
		flags: []FlagInfo{
			{Name: "in-place", ShortName: "i", Description: "edit the file in place"},
		},
	}}
}

// Run executes the sed command.
func (c *sedCommand) Run(ctx context.Context, args []string) Result {
	fsys := GetHandlerContext(ctx).FS()

	fs := newFlagSet(c.name)
	inPlace := fs.BoolP("in-place", "i", false, "in place")
	ops, res, ok := parseFlags(c, fs, args)
	if !ok {
		return res
	}
	if len(ops) < 2 {
		return Failure("sed: missing operand")
	}
	sub, err := parseSubstitution(unquote(strings.Join(ops[:len(ops)-1], " ")))
	if err != nil {
		return Failuref("sed: %v", err)
	}
	file := ops[len(ops)-1]
	lines, res, ok := readLines(fsys, c.name, file)
	if !ok {
		return res
	}
	for i, l := range lines {
		lines[i] = sub.apply(l)
	}

	if *inPlace {
		if err := fsys.Write(file, strings.Join(lines, "\n")+"\n"); err != nil {
			return Failuref("sed: %v", err)
		}
		return NoOutput()
	}
	return Lines(lines)
}

// parseSubstitution parses s/RE/REPL/ with any delimiter character.
func parseSubstitution(expr string) (*substitution, error) {
	if len(expr) < 2 || expr[0] != 's' {
		return nil, errors.New("only simple s/old/new/g expressions are supported")
	}
	delim := string(expr[1])
	parts := strings.Split(expr[2:], delim)
	if len(parts) != 3 {
		return nil, errors.New("unterminated 's' command")
	}
	flags := parts[2]
	if strings.Trim(flags, "g") != "" {
		return nil, errors.New("unknown option to 's'")
	}
	re, err := regexp.Compile(parts[0])
	if err != nil {
		return nil, errors.New("invalid regular expression: " + parts[0])
	}
	repl := strings.ReplaceAll(parts[1], "$", "$$")
	repl = sedBackref.ReplaceAllString(repl, "$${$1}")
	repl = strings.ReplaceAll(repl, "&", "${0}")
	return &substitution{re: re, repl: repl, global: flags != ""}, nil
}

func (s *substitution) apply(line string) string {
	if s.global {
		return s.re.ReplaceAllString(line, s.repl)
	}
	loc := s.re.FindStringSubmatchIndex(line)
	if loc == nil {
		return line
	}
	var dst []byte
	dst = s.re.ExpandString(dst, s.repl, line, loc)
	return line[:loc[0]] + string(dst) + line[loc[1]:]
}
