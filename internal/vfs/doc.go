// SPDX-License-Identifier: MPL-2.0

// Package vfs performs filesystem operations on virtual paths.
//
// Every path handed to an FS is a virtual path (absolute, or relative to the
// session's current directory). It is mapped onto the real filesystem by a
// vpath.Resolver before any I/O happens, so no operation can touch anything
// outside the sandbox root. Failures are reported as *PathError values whose
// Kind mirrors the classic Unix error reasons.
package vfs
