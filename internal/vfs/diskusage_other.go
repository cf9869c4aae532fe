// SPDX-License-Identifier: MPL-2.0

//go:build !(linux || darwin || freebsd)

package vfs

import "errors"

func diskStats(string) (DiskStats, error) {
	return DiskStats{}, errors.New("disk statistics are not supported on this platform")
}
