// Package diskstore implements a filesystem storage backend for transcripts.
package diskstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/discochess/uci/internal/codec"
	"github.com/discochess/uci/internal/store"
)

// Compile-time checks that Store implements store.Store and store.Lister.
var (
	_ store.Store  = (*Store)(nil)
	_ store.Lister = (*Store)(nil)
)

// Store reads transcripts from files directly under a root directory.
type Store struct {
	root  string
	codec codec.Codec
}

// New creates a new disk store rooted at the given directory.
// The directory must exist. The codec handles decompression.
func New(root string, codec codec.Codec) (*Store, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	return &Store{
		root:  root,
		codec: codec,
	}, nil
}

// ReadTranscript reads and decompresses the named transcript.
func (s *Store) ReadTranscript(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := store.ValidateName(name); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", store.ErrNotFound, name)
		}
		return nil, fmt.Errorf("opening transcript: %w", err)
	}
	defer f.Close()

	return store.Decode(f, s.codec)
}

// List returns the transcripts stored with this store's codec, sorted by name.
func (s *Store) List(ctx context.Context) ([]store.Entry, error) {
	dirEntries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("reading root directory: %w", err)
	}

	var entries []store.Entry
	for _, de := range dirEntries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !de.Type().IsRegular() {
			continue
		}
		name, ok := store.TrimFilename(de.Name(), s.codec)
		if !ok {
			continue
		}
		info, err := de.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", de.Name(), err)
		}
		entries = append(entries, store.Entry{Name: name, Size: info.Size()})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Close releases any resources held by the store.
func (s *Store) Close() error {
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.root, store.Filename(name, s.codec))
}
