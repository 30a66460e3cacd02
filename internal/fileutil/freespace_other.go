//go:build !unix

package fileutil

import "errors"

// FreeSpace is unsupported on this platform; callers treat the error as
// "unknown" and skip the space preflight.
func FreeSpace(path string) (uint64, error) {
	return 0, errors.ErrUnsupported
}

// Writable defaults to optimistic on platforms without access(2).
func Writable(path string) bool {
	return true
}
