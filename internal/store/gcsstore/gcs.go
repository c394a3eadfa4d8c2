// Package gcsstore implements a Google Cloud Storage backend.
package gcsstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/discochess/uci/internal/codec"
	"github.com/discochess/uci/internal/store"
)

// Compile-time checks that Store implements store.Store and store.Lister.
var (
	_ store.Store  = (*Store)(nil)
	_ store.Lister = (*Store)(nil)
)

// Store is a Google Cloud Storage backend. Transcripts live under
// <prefix>transcripts/.
type Store struct {
	client *storage.Client
	bucket *storage.BucketHandle
	prefix string
	codec  codec.Codec
}

// New creates a new GCS store.
// The bucket must already exist.
// The codec handles decompression.
func New(ctx context.Context, bucketName string, c codec.Codec, opts ...Option) (*Store, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating GCS client: %w", err)
	}

	s := &Store{
		client: client,
		bucket: client.Bucket(bucketName),
		codec:  c,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets a key prefix for all operations.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = strings.TrimSuffix(prefix, "/")
		if s.prefix != "" {
			s.prefix += "/"
		}
	}
}

// ReadTranscript reads and decompresses the named transcript.
func (s *Store) ReadTranscript(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := store.ValidateName(name); err != nil {
		return nil, err
	}

	reader, err := s.bucket.Object(s.key(name)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%w: %s", store.ErrNotFound, name)
		}
		return nil, fmt.Errorf("creating reader: %w", err)
	}
	defer reader.Close()

	return store.Decode(reader, s.codec)
}

// List returns the transcripts under the store prefix, sorted by name.
func (s *Store) List(ctx context.Context) ([]store.Entry, error) {
	dir := s.dir()
	it := s.bucket.Objects(ctx, &storage.Query{Prefix: dir})

	var entries []store.Entry
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing transcripts: %w", err)
		}
		if entry, ok := s.entry(attrs.Name, attrs.Size); ok {
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Close releases resources.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) dir() string {
	return s.prefix + "transcripts/"
}

// key returns the full object key for a transcript.
func (s *Store) key(name string) string {
	return s.dir() + store.Filename(name, s.codec)
}

// entry maps an object in the transcripts directory back to a store entry.
// Objects in nested directories are skipped.
func (s *Store) entry(object string, size int64) (store.Entry, bool) {
	name, ok := store.TrimFilename(strings.TrimPrefix(object, s.dir()), s.codec)
	if !ok {
		return store.Entry{}, false
	}
	return store.Entry{Name: name, Size: size}, true
}
