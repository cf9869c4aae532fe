// SPDX-License-Identifier: MPL-2.0

// Package session holds the mutable state of one shell session: the current
// directory, command history, transcript and simulated process table.
//
// A Session is not safe for concurrent use on its own. Callers serialize
// access with Lock and Unlock; shell.Shell holds the lock for the duration of
// each command line so path resolution always sees a consistent directory.
package session
