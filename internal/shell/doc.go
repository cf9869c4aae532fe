// SPDX-License-Identifier: MPL-2.0

// Package shell executes command lines against a session.
//
// The Dispatcher is the single entry point every front end goes through: it
// parses a line, looks the command up in the registry, runs it and applies
// output redirection. Shell adds per-line session locking, history and the
// transcript, and REPL drives a Shell from an interactive terminal.
package shell
