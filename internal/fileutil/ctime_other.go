//go:build !darwin

package fileutil

import (
	"os"
	"time"
)

// CreationTime is unavailable on platforms without a recorded birth time;
// callers fall back to the modification time.
func CreationTime(info os.FileInfo) (time.Time, bool) {
	return time.Time{}, false
}
