// SPDX-License-Identifier: MPL-2.0

package session

import (
	"slices"
	"strings"
)

type (
	// Process is one row of the simulated process table.
	Process struct {
		PID     int
		User    string
		Command string
		CPU     float64
		Mem     float64
	}

	// ProcessTable is the in-memory list of fake processes that ps, kill and
	// friends operate on.
	ProcessTable struct {
		procs []Process
	}
)

// NewProcessTable returns the table every session starts with.
func NewProcessTable(user string) *ProcessTable {
	return &ProcessTable{procs: []Process{
		{PID: 101, User: user, Command: "bash", CPU: 0.1, Mem: 0.5},
		{PID: 202, User: user, Command: "python", CPU: 1.2, Mem: 2.1},
		{PID: 303, User: "root", Command: "sshd", CPU: 0.0, Mem: 0.3},
	}}
}

// Snapshot returns a copy of the current rows in PID order.
func (t *ProcessTable) Snapshot() []Process {
	return slices.Clone(t.procs)
}

// Kill removes the process with pid. It reports whether one existed.
func (t *ProcessTable) Kill(pid int) bool {
	before := len(t.procs)
	t.procs = slices.DeleteFunc(t.procs, func(p Process) bool { return p.PID == pid })
	return len(t.procs) != before
}

// KillMatching removes every process whose command contains pattern and
// returns how many were removed.
func (t *ProcessTable) KillMatching(pattern string) int {
	before := len(t.procs)
	t.procs = slices.DeleteFunc(t.procs, func(p Process) bool {
		return strings.Contains(p.Command, pattern)
	})
	return before - len(t.procs)
}

// Match returns the processes whose command contains pattern.
func (t *ProcessTable) Match(pattern string) []Process {
	var out []Process
	for _, p := range t.procs {
		if strings.Contains(p.Command, pattern) {
			out = append(out, p)
		}
	}
	return out
}
