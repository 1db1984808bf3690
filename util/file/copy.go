package file

import (
	"os"

	"github.com/cockroachdb/errors"
)

// Copy copies <src> file path to <dst> file path, keeping permissions of <src>.
//
// Existing <dst> is overwritten.
func Copy(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.Wrap(err, "Stat source file")
	}
	input, err := os.ReadFile(src)
	if err != nil {
		return errors.Wrap(err, "Read source file")
	}
	err = os.WriteFile(dst, input, info.Mode().Perm())
	if err != nil {
		return errors.Wrap(err, "Write destination file")
	}
	return nil
}

// Exists returns true if <path> exists and is not a directory
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
