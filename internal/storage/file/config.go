package file

import "io/fs"

// Config holds file storage settings
type Config struct {
	// BaseDir is the directory documents are resolved against.
	// Empty means the process working directory.
	BaseDir string

	// Atomic writes each save to a temporary file and renames it over the
	// target instead of truncating and rewriting in place
	Atomic bool

	// Permissions for created files and directories
	FileMode fs.FileMode
	DirMode  fs.FileMode
}

// DefaultConfig returns sensible defaults for file storage
func DefaultConfig() Config {
	return Config{
		FileMode: 0o644,
		DirMode:  0o755,
	}
}
