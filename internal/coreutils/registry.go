// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry maps command names, including aliases, to commands. Lookups are
// case-insensitive. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
	aliases  map[string][]string
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		aliases:  make(map[string][]string),
	}
}

// NewDefaultRegistry returns a Registry holding every built-in command.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterBuiltins(r)
	return r
}

// Register adds cmd under its name and every alias.
// Panics if any name is empty or already registered.
func (r *Registry) Register(cmd Command, aliases ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.ToLower(cmd.Name())
	if name == "" {
		panic("coreutils: cannot register command with empty name")
	}
	for _, n := range append([]string{name}, aliases...) {
		n = strings.ToLower(n)
		if n == "" {
			panic(fmt.Sprintf("coreutils: empty alias for command %q", name))
		}
		if _, exists := r.commands[n]; exists {
			panic(fmt.Sprintf("coreutils: command %q already registered", n))
		}
		r.commands[n] = cmd
	}
	if len(aliases) > 0 {
		r.aliases[name] = append(r.aliases[name], aliases...)
	}
}

// Lookup retrieves a command by name or alias, ignoring case.
// Returns nil, false if the command is not registered.
func (r *Registry) Lookup(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmd, ok := r.commands[strings.ToLower(name)]
	return cmd, ok
}

// Names returns every registered name and alias in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Commands returns each distinct command once, sorted by name.
func (r *Registry) Commands() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var cmds []Command
	for name, cmd := range r.commands {
		if strings.EqualFold(cmd.Name(), name) {
			cmds = append(cmds, cmd)
		}
	}
	slices.SortFunc(cmds, func(a, b Command) int { return strings.Compare(a.Name(), b.Name()) })
	return cmds
}

// Aliases returns the alternative names registered for the command name.
func (r *Registry) Aliases(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.aliases[strings.ToLower(name)])
}

// Run executes a command by name. args[0] should be the name itself.
func (r *Registry) Run(ctx context.Context, name string, args []string) Result {
	cmd, ok := r.Lookup(name)
	if !ok {
		return Failuref("bash: %s: command not found", name)
	}
	return cmd.Run(ctx, args)
}
