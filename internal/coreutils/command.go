// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"strings"
)

// Command categories, in the order help lists them.
const (
	CategoryFileSystem Category = iota
	CategoryText
	CategoryProcess
	CategorySystem
	CategoryHelp
	CategoryUtility
)

type (
	// Category groups commands in help output.
	Category int

	// Command is one shell command.
	Command interface {
		// Name returns the primary command name (e.g., "cp", "ls", "cat").
		Name() string

		// Synopsis returns a one-line description used by help and whatis.
		Synopsis() string

		// Usage returns the invocation syntax, e.g. "head [-n NUM] FILE".
		Usage() string

		// Category returns the help section the command belongs to.
		Category() Category

		// SupportedFlags returns the flags this implementation understands.
		// This is used for documentation and introspection.
		SupportedFlags() []FlagInfo

		// Run executes the command. The context carries the HandlerContext.
		// args[0] is the invoked name, args[1:] are the arguments.
		Run(ctx context.Context, args []string) Result
	}

	// FlagInfo describes a supported flag.
	FlagInfo struct {
		// Name is the flag name without dashes (e.g., "recursive").
		Name string
		// ShortName is the single-character alias (e.g., "r").
		// Empty if no short form exists.
		ShortName string
		// Description explains what the flag does.
		Description string
		// TakesValue indicates if the flag requires a value (e.g., -n 10).
		TakesValue bool
	}

	// commandInfo carries the descriptive half of a Command. Concrete
	// commands embed it and add Run.
	commandInfo struct {
		name        string
		synopsis    string
		usage       string
		description string
		category    Category
		flags       []FlagInfo
	}

	// funcCommand adapts a plain function to Command for commands that need
	// no state or flags of their own.
	funcCommand struct {
		commandInfo
		run func(ctx context.Context, hc *HandlerContext, args []string) Result
	}
)

// String returns the heading used in help output.
func (c Category) String() string {
	switch c {
	case CategoryFileSystem:
		return "FILE SYSTEM COMMANDS"
	case CategoryText:
		return "TEXT PROCESSING COMMANDS"
	case CategoryProcess:
		return "PROCESS MANAGEMENT COMMANDS"
	case CategorySystem:
		return "USER & SYSTEM INFORMATION"
	case CategoryHelp:
		return "HELP COMMANDS"
	default:
		return "UTILITY COMMANDS"
	}
}

// Name returns the command name.
func (c *commandInfo) Name() string { return c.name }

// Synopsis returns the one-line description.
func (c *commandInfo) Synopsis() string { return c.synopsis }

// Usage returns the invocation syntax, defaulting to the bare name.
func (c *commandInfo) Usage() string {
	if c.usage == "" {
		return c.name
	}
	return c.usage
}

// Category returns the help section.
func (c *commandInfo) Category() Category { return c.category }

// SupportedFlags returns the flags supported by this command.
func (c *commandInfo) SupportedFlags() []FlagInfo { return c.flags }

// Description returns the longer manual text, if any.
func (c *commandInfo) Description() string { return c.description }

// Run calls the wrapped function with the handler context.
func (c *funcCommand) Run(ctx context.Context, args []string) Result {
	return c.run(ctx, GetHandlerContext(ctx), args)
}

// operands returns args without the command name.
func operands(args []string) []string {
	if len(args) == 0 {
		return nil
	}
	return args[1:]
}

// invokedAs returns the name the command was called by.
func invokedAs(c Command, args []string) string {
	if len(args) == 0 || args[0] == "" {
		return c.Name()
	}
	return strings.ToLower(args[0])
}
