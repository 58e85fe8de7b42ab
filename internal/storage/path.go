package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Resolve joins the base directory with the segments. An empty base means the
// process working directory.
func Resolve(base string, segments ...string) (string, error) {
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("%w: working folder: %w", ErrAccess, err)
		}
		base = wd
	}
	return filepath.Join(append([]string{base}, segments...)...), nil
}
