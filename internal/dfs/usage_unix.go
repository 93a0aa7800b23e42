//go:build unix

package dfs

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func diskUsage(dir string) (Usage, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(dir, &st); err != nil {
		return Usage{}, fmt.Errorf("statfs %s: %w", dir, err)
	}
	bsize := uint64(st.Bsize)
	capacity := uint64(st.Blocks) * bsize
	free := uint64(st.Bfree) * bsize
	return Usage{
		Capacity:  capacity,
		Used:      capacity - free,
		Remaining: uint64(st.Bavail) * bsize,
	}, nil
}
