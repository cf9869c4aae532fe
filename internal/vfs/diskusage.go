// SPDX-License-Identifier: MPL-2.0

package vfs

// DiskStats describes the filesystem holding the sandbox root.
type DiskStats struct {
	Total uint64
	Used  uint64
	Free  uint64
}

// DiskUsage reports capacity figures for the filesystem hosting the sandbox.
func (f *FS) DiskUsage() (DiskStats, error) {
	stats, err := diskStats(f.resolver.Root())
	if err != nil {
		return DiskStats{}, wrapOS("df", "/", err)
	}
	return stats, nil
}
