// SPDX-License-Identifier: MPL-2.0

// Package config loads sandterm settings with Viper, using CUE as the file
// format.
//
// The file lives at $XDG_CONFIG_HOME/sandterm/config.cue on Linux,
// ~/Library/Application Support/sandterm/config.cue on macOS and
// %APPDATA%\sandterm\config.cue on Windows; ./config.cue is tried next. Each
// file is validated against the embedded #Config schema before it is merged
// over the defaults, and SANDTERM_* environment variables override both.
package config
