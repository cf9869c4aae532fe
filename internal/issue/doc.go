// SPDX-License-Identifier: MPL-2.0

// Package issue carries user-facing errors for the sandterm CLI: an
// ActionableError that names the failed operation and suggests fixes, and a
// catalog of longer Markdown explanations rendered with glamour.
package issue
