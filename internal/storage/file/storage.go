package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/mcoot/scorecli/internal/storage"
)

// Storage is a filesystem implementation of the storage interface. Each
// document is one JSON file under the base directory.
type Storage struct {
	cfg Config
}

// New creates a new file storage instance
func New(cfg Config) *Storage {
	defaults := DefaultConfig()
	if cfg.FileMode == 0 {
		cfg.FileMode = defaults.FileMode
	}
	if cfg.DirMode == 0 {
		cfg.DirMode = defaults.DirMode
	}
	return &Storage{cfg: cfg}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) Open(ctx context.Context, segments ...string) (storage.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := storage.Resolve(s.cfg.BaseDir, segments...)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), s.cfg.DirMode); err != nil {
		return nil, fmt.Errorf("%w: failed to create directories for path %s: %w", storage.ErrAccess, path, err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, s.cfg.FileMode)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %w", storage.ErrAccess, path, err)
	}
	return s.newDocument(path, f), nil
}

func (s *Storage) OpenExisting(ctx context.Context, segments ...string) (storage.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := storage.Resolve(s.cfg.BaseDir, segments...)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: failed to open %s: %w", storage.ErrAccess, path, err)
	}
	return s.newDocument(path, f), nil
}

func (s *Storage) List(ctx context.Context, segments ...string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := storage.Resolve(s.cfg.BaseDir, segments...)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("%w: failed to read %s: %w", storage.ErrAccess, dir, err)
	}

	// ReadDir sorts by filename
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

func (s *Storage) newDocument(path string, f *os.File) *document {
	return &document{
		path:          path,
		file:          f,
		replaceOnSave: s.cfg.Atomic,
	}
}

// document owns one open file handle for the duration of a command
type document struct {
	path          string
	file          *os.File
	replaceOnSave bool
}

func (d *document) Path() string {
	return d.path
}

func (d *document) IsEmpty() (bool, error) {
	data, err := d.read()
	if err != nil {
		return false, err
	}
	return len(data) == 0, nil
}

func (d *document) Load(v any) error {
	data, err := d.read()
	if err != nil {
		return err
	}
	return storage.Decode(d.path, data, v)
}

// Save serializes v before touching the file. Without Atomic, a crash
// between truncate and write leaves the file empty or partial.
func (d *document) Save(v any) error {
	data, err := storage.Encode(v)
	if err != nil {
		return err
	}

	if d.replaceOnSave {
		return d.replace(data)
	}

	if err := d.file.Truncate(0); err != nil {
		return fmt.Errorf("%w: truncation error %s: %w", storage.ErrAccess, d.path, err)
	}
	if _, err := d.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w: rewind error %s: %w", storage.ErrAccess, d.path, err)
	}
	if _, err := d.file.Write(data); err != nil {
		return fmt.Errorf("%w: error writing file %s: %w", storage.ErrAccess, d.path, err)
	}
	return nil
}

func (d *document) Close() error {
	return d.file.Close()
}

func (d *document) read() ([]byte, error) {
	if _, err := d.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: rewind error %s: %w", storage.ErrAccess, d.path, err)
	}
	data, err := io.ReadAll(d.file)
	if err != nil {
		return nil, fmt.Errorf("%w: an error occurred reading file %s: %w", storage.ErrAccess, d.path, err)
	}
	return data, nil
}

// replace writes data through a sibling temp file renamed over the target,
// then swaps the handle to the new file
func (d *document) replace(data []byte) error {
	if err := atomic.WriteFile(d.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: error replacing file %s: %w", storage.ErrAccess, d.path, err)
	}

	f, err := os.OpenFile(d.path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("%w: failed to reopen %s: %w", storage.ErrAccess, d.path, err)
	}
	_ = d.file.Close()
	d.file = f
	return nil
}
