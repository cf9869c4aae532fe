// SPDX-License-Identifier: MPL-2.0

// Package sshserver serves sandbox sessions over SSH using the Wish library.
//
// Every connection gets its own shell session over the shared sandbox root.
// Connections with a PTY and no command run the interactive line editor;
// connections that send a command run that one line and exit. When a
// password is configured every client must present it; otherwise any client
// is let in.
package sshserver
