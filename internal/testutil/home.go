// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"
)

// SetHomeDir points the platform's home and XDG config variables at dir so
// config lookups never touch the developer's real files. It returns a cleanup
// function restoring the previous values.
func SetHomeDir(t testing.TB, dir string) func() {
	t.Helper()

	var restoreHome func()
	switch runtime.GOOS {
	case "windows":
		restoreHome = MustSetenv(t, "USERPROFILE", dir)
	default:
		restoreHome = MustSetenv(t, "HOME", dir)
	}
	restoreXDG := MustSetenv(t, "XDG_CONFIG_HOME", dir)
	restoreAppData := MustSetenv(t, "APPDATA", dir)

	return func() {
		restoreAppData()
		restoreXDG()
		restoreHome()
	}
}
