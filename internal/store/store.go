// Package store defines the storage backend interface for reading recorded
// protocol transcripts.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/discochess/uci/internal/codec"
)

var (
	// ErrNotFound is returned when a transcript does not exist in the store.
	ErrNotFound = errors.New("store: transcript not found")

	// ErrInvalidName is returned for transcript names that could escape the
	// store root or contain separators.
	ErrInvalidName = errors.New("store: invalid transcript name")
)

// Extension is the file extension of an uncompressed transcript.
const Extension = "txt"

// Store defines the interface for storage backends.
// Implementations handle path formats and storage details internally.
type Store interface {
	// ReadTranscript reads the decompressed content of the named transcript.
	ReadTranscript(ctx context.Context, name string) ([]byte, error)

	// Close releases any resources held by the store.
	Close() error
}

// Entry describes one stored transcript.
type Entry struct {
	Name string
	// Size is the stored (possibly compressed) size in bytes.
	Size int64
}

// Lister is implemented by stores that can enumerate their transcripts.
type Lister interface {
	List(ctx context.Context) ([]Entry, error)
}

// ValidateName checks that name is usable as a transcript key.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Filename returns the object name for a transcript stored with c.
// "game" becomes "game.txt" or "game.txt.zst".
func Filename(name string, c codec.Codec) string {
	file := name + "." + Extension
	if ext := c.Extension(); ext != "" {
		file += "." + ext
	}
	return file
}

// TrimFilename is the inverse of Filename. It reports false for objects
// that are not transcripts stored with c.
func TrimFilename(file string, c codec.Codec) (string, bool) {
	suffix := "." + Extension
	if ext := c.Extension(); ext != "" {
		suffix += "." + ext
	}
	name, ok := strings.CutSuffix(file, suffix)
	if !ok || ValidateName(name) != nil {
		return "", false
	}
	return name, true
}

// Decode reads all of r through the decompressor of c.
func Decode(r io.Reader, c codec.Codec) ([]byte, error) {
	reader, err := c.Reader(r)
	if err != nil {
		return nil, fmt.Errorf("creating decompressor: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("decompressing transcript: %w", err)
	}
	return data, nil
}
