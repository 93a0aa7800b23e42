//go:build !unix

package dfs

import "errors"

func diskUsage(string) (Usage, error) {
	return Usage{}, errors.New("disk usage is not supported on this platform")
}
