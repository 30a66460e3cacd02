//go:build unix

package fileutil

import "golang.org/x/sys/unix"

// FreeSpace returns the number of bytes available to an unprivileged caller
// on the filesystem containing path.
func FreeSpace(path string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, err
	}
	return st.Bavail * uint64(st.Bsize), nil
}

// Writable reports whether the current user can write into the directory.
func Writable(path string) bool {
	return unix.Access(path, unix.W_OK|unix.X_OK) == nil
}
