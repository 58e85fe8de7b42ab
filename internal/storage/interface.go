package storage

import (
	"context"
	"errors"
)

// Storage error kinds. Backends wrap these so callers can branch with errors.Is.
var (
	ErrAccess        = errors.New("an error occurred while accessing the data")
	ErrNotFound      = errors.New("document not found")
	ErrEmptyDocument = errors.New("document is empty")
	ErrDecode        = errors.New("error deserializing document")
	ErrEncode        = errors.New("error serializing document")
)

// Store defines the interface for collection persistence. Every document is
// addressed by path segments relative to the store's base directory.
type Store interface {
	// Open opens the document for read and write, creating it and any missing
	// parent directories when absent
	Open(ctx context.Context, segments ...string) (Document, error)

	// OpenExisting opens the document without creating it, failing with
	// ErrNotFound when it is absent
	OpenExisting(ctx context.Context, segments ...string) (Document, error)

	// List returns the names of the documents directly inside the directory,
	// sorted. A missing directory yields an empty list.
	List(ctx context.Context, segments ...string) ([]string, error)
}

// Document is one open collection file. It holds a single whole value.
type Document interface {
	// Path identifies the document in error messages and logs
	Path() string

	// IsEmpty reports whether the document holds zero bytes
	IsEmpty() (bool, error)

	// Load decodes the whole document into v. Blank content fails with
	// ErrEmptyDocument, invalid JSON with ErrDecode.
	Load(v any) error

	// Save replaces the whole document with the encoding of v
	Save(v any) error

	Close() error
}
