package cachedstore

import (
	"context"
	"fmt"

	"github.com/discochess/uci/internal/store"
)

// Compile-time checks that Store implements store.Store and store.Lister.
var (
	_ store.Store  = (*Store)(nil)
	_ store.Lister = (*Store)(nil)
)

// Store wraps another Store with caching. Errors are never cached.
type Store struct {
	underlying store.Store
	backend    Backend
}

// New creates a new cached store wrapping the given store.
func New(underlying store.Store, backend Backend) *Store {
	return &Store{
		underlying: underlying,
		backend:    backend,
	}
}

// ReadTranscript reads a transcript, checking the cache first.
func (s *Store) ReadTranscript(ctx context.Context, name string) ([]byte, error) {
	if data, ok := s.backend.Get(name); ok {
		return data, nil
	}

	data, err := s.underlying.ReadTranscript(ctx, name)
	if err != nil {
		return nil, err
	}

	s.backend.Set(name, data)
	return data, nil
}

// List passes through to the underlying store when it can list.
func (s *Store) List(ctx context.Context) ([]store.Entry, error) {
	l, ok := s.underlying.(store.Lister)
	if !ok {
		return nil, fmt.Errorf("cachedstore: %T cannot list transcripts", s.underlying)
	}
	return l.List(ctx)
}

// Close closes the underlying store.
func (s *Store) Close() error {
	return s.underlying.Close()
}

// Stats returns cache statistics.
func (s *Store) Stats() Stats {
	return s.backend.Stats()
}
