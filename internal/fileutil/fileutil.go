package fileutil

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// audioExtensions is the allow-list of recognized audio file extensions.
// Recognition is extension-based only; no content sniffing.
var audioExtensions = map[string]struct{}{
	".m4a":  {},
	".mp3":  {},
	".aac":  {},
	".wav":  {},
	".aiff": {},
	".aif":  {},
}

// IsAudioFile reports whether the path carries a recognized audio extension,
// case-insensitively.
func IsAudioFile(path string) bool {
	_, ok := audioExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// IsRegularFile reports whether the path exists and is a regular file.
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Exists reports whether anything exists at the path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CopyFile streams src to dst with default permissions (0o644). The write is
// not atomic; a failed copy may leave a partial dst behind, which the caller
// is expected to surface as a per-file failure.
func CopyFile(src, dst string) error {
	return CopyFileMode(src, dst, 0o644)
}

// CopyFileMode streams src to dst, setting the given file mode on dst.
func CopyFileMode(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
