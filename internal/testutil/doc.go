// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers shared by sandterm's package tests.
//
// NewSandbox builds a throwaway sandbox root with a resolver bound to it,
// MustWriteFile and MustReadFile seed and inspect files by virtual path, and
// FakeClock gives commands that read the time a deterministic clock. The Must*
// helpers fail the test immediately instead of returning errors.
package testutil
