package memory

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/mcoot/scorecli/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Documents are byte slices keyed by their slash-joined path.
type Storage struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		docs: make(map[string][]byte),
	}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) Open(ctx context.Context, segments ...string) (storage.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := keyOf(segments)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[key]; !ok {
		s.docs[key] = []byte{}
	}
	return &document{store: s, key: key}, nil
}

func (s *Storage) OpenExisting(ctx context.Context, segments ...string) (storage.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := keyOf(segments)

	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.docs[key]; !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
	}
	return &document{store: s, key: key}, nil
}

func (s *Storage) List(ctx context.Context, segments ...string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prefix := keyOf(segments) + "/"

	s.mu.RLock()
	defer s.mu.RUnlock()
	names := []string{}
	for key := range s.docs {
		rest, ok := strings.CutPrefix(key, prefix)
		if !ok || strings.Contains(rest, "/") {
			continue
		}
		names = append(names, rest)
	}
	sort.Strings(names)
	return names, nil
}

// Put stores raw bytes at the given path (useful for testing corrupt documents)
func (s *Storage) Put(data []byte, segments ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[keyOf(segments)] = append([]byte(nil), data...)
}

// Get returns the raw bytes at the given path
func (s *Storage) Get(segments ...string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.docs[keyOf(segments)]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}

func keyOf(segments []string) string {
	return path.Join(segments...)
}

type document struct {
	store *Storage
	key   string
}

func (d *document) Path() string {
	return d.key
}

func (d *document) IsEmpty() (bool, error) {
	data, _ := d.store.Get(d.key)
	return len(data) == 0, nil
}

func (d *document) Load(v any) error {
	data, _ := d.store.Get(d.key)
	return storage.Decode(d.key, data, v)
}

func (d *document) Save(v any) error {
	data, err := storage.Encode(v)
	if err != nil {
		return err
	}
	d.store.Put(data, d.key)
	return nil
}

func (d *document) Close() error {
	return nil
}
