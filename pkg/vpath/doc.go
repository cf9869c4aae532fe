// SPDX-License-Identifier: MPL-2.0

// Package vpath maps the virtual, slash-separated paths typed by a sandterm
// user onto real filesystem paths below a fixed sandbox root.
//
// Virtual paths always start with "/" once normalized. Normalize is pure and
// never touches the filesystem; Resolver.Resolve joins the normalized path onto
// the sandbox root, canonicalizes the result (including symlinks of the part
// that already exists) and rejects anything that is not the root itself or a
// component-wise descendant of it.
package vpath
