// SPDX-License-Identifier: MPL-2.0

// Package coreutils implements the commands available in a sandterm session.
//
// Each command implements Command and is registered exactly once, in
// RegisterBuiltins. Commands never write to a terminal: they return a Result
// that is either NoOutput, Output(text) or Failure(text). The dispatcher in
// package shell decides whether that text goes back to the user or into a
// redirect target.
//
// Commands reach the session (working directory, filesystem adapter, process
// table, history) through the HandlerContext stored in the context.Context
// passed to Run. Every path argument is a virtual path; all filesystem access
// goes through vfs.FS, so no command can leave the sandbox.
//
// # Conventions
//
//   - args[0] is the name the command was invoked as (aliases such as egrep
//     and fgrep see their own name), args[1:] are the arguments.
//   - Flags are parsed with github.com/spf13/pflag, so combined short flags
//     (-rf) and --help work everywhere. Unknown flags are reported, not
//     silently skipped.
//   - Failures read "<command>: <reason>", mirroring the classic utilities.
package coreutils
