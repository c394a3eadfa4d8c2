// Package memstore provides an in-memory transcript store for tests and
// embedded fixtures.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/discochess/uci/internal/store"
)

// Compile-time checks that Store implements store.Store and store.Lister.
var (
	_ store.Store  = (*Store)(nil)
	_ store.Lister = (*Store)(nil)
)

// Store is an in-memory store. Data is held uncompressed.
type Store struct {
	mu          sync.RWMutex
	transcripts map[string][]byte
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		transcripts: make(map[string][]byte),
	}
}

// SetTranscript stores data under name, replacing any previous content.
// The data is copied to prevent caller mutations from affecting the store.
func (s *Store) SetTranscript(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcripts[name] = append([]byte(nil), data...)
}

// ReadTranscript returns the named transcript.
func (s *Store) ReadTranscript(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.transcripts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, name)
	}
	return data, nil
}

// List returns all stored transcripts sorted by name.
func (s *Store) List(ctx context.Context) ([]store.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]store.Entry, 0, len(s.transcripts))
	for name, data := range s.transcripts {
		entries = append(entries, store.Entry{Name: name, Size: int64(len(data))})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Close is a no-op for the memory store.
func (s *Store) Close() error {
	return nil
}
