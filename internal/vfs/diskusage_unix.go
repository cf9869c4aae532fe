// SPDX-License-Identifier: MPL-2.0

//go:build linux || darwin || freebsd

package vfs

import "golang.org/x/sys/unix"

func diskStats(root string) (DiskStats, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(root, &st); err != nil {
		return DiskStats{}, err
	}
	bsize := uint64(st.Bsize) //nolint:gosec // block sizes are positive
	total := uint64(st.Blocks) * bsize
	free := uint64(st.Bavail) * bsize //nolint:gosec // available blocks are non-negative
	return DiskStats{
		Total: total,
		Free:  free,
		Used:  total - uint64(st.Bfree)*bsize,
	}, nil
}
