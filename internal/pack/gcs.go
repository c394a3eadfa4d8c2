package pack

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"github.com/discochess/uci/internal/codec"
	"github.com/discochess/uci/internal/store"
)

// GCSUploader uploads packed transcripts to Google Cloud Storage, in the
// layout the GCS store reads.
type GCSUploader struct {
	client *storage.Client
	bucket *storage.BucketHandle
	prefix string
	logger *zap.Logger
}

// NewGCSUploader creates a new GCS uploader.
// gcsPath should be in the format "gs://bucket/prefix".
func NewGCSUploader(ctx context.Context, gcsPath string, logger *zap.Logger) (*GCSUploader, error) {
	bucket, prefix, err := ParseGCSPath(gcsPath)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating GCS client: %w", err)
	}

	return &GCSUploader{
		client: client,
		bucket: client.Bucket(bucket),
		prefix: prefix,
		logger: logger,
	}, nil
}

// ParseGCSPath parses "gs://bucket/prefix" into bucket and prefix. A
// non-empty prefix always ends in "/".
func ParseGCSPath(gcsPath string) (bucket, prefix string, err error) {
	if !strings.HasPrefix(gcsPath, "gs://") {
		return "", "", errors.New("invalid GCS path: must start with gs://")
	}

	path := strings.TrimPrefix(gcsPath, "gs://")
	parts := strings.SplitN(path, "/", 2)
	if parts[0] == "" {
		return "", "", errors.New("invalid GCS path: missing bucket name")
	}

	bucket = parts[0]
	if len(parts) > 1 {
		prefix = strings.TrimSuffix(parts[1], "/")
		if prefix != "" {
			prefix += "/"
		}
	}
	return bucket, prefix, nil
}

// dir returns the object prefix transcripts are uploaded under.
func (u *GCSUploader) dir() string {
	return u.prefix + "transcripts/"
}

// Upload uploads the transcripts stored with c and the manifest from
// localDir. Transcripts already in the bucket but not in localDir are
// deleted afterwards.
func (u *GCSUploader) Upload(ctx context.Context, localDir string, c codec.Codec, progress ProgressFunc) error {
	entries, err := os.ReadDir(localDir)
	if err != nil {
		return fmt.Errorf("reading transcript directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := store.TrimFilename(entry.Name(), c); ok {
			files = append(files, entry.Name())
		}
	}

	uploaded := make(map[string]bool, len(files))
	for i, file := range files {
		if err := u.uploadFile(ctx, filepath.Join(localDir, file), u.dir()+file); err != nil {
			return fmt.Errorf("uploading %s: %w", file, err)
		}
		uploaded[file] = true
		if progress != nil {
			progress(Progress{Phase: "upload", Name: file, FilesDone: i + 1, FilesTotal: len(files)})
		}
	}

	manifestPath := filepath.Join(localDir, ManifestFilename)
	if _, err := os.Stat(manifestPath); err == nil {
		if err := u.uploadFile(ctx, manifestPath, u.prefix+ManifestFilename); err != nil {
			return fmt.Errorf("uploading manifest: %w", err)
		}
	}

	// Stale transcripts are harmless, so failing to remove them is not fatal.
	if err := u.cleanStale(ctx, uploaded); err != nil {
		u.logger.Warn("failed to clean stale transcripts", zap.Error(err))
	}
	u.logger.Info("upload complete",
		zap.String("prefix", u.dir()),
		zap.Int("transcripts", len(files)),
	)
	return nil
}

// cleanStale deletes transcripts in the bucket that were not just uploaded.
// Nested objects are left alone.
func (u *GCSUploader) cleanStale(ctx context.Context, current map[string]bool) error {
	prefix := u.dir()
	it := u.bucket.Objects(ctx, &storage.Query{Prefix: prefix})

	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("listing objects: %w", err)
		}

		file := strings.TrimPrefix(attrs.Name, prefix)
		if current[file] || strings.Contains(file, "/") {
			continue
		}
		if err := u.bucket.Object(attrs.Name).Delete(ctx); err != nil {
			return fmt.Errorf("deleting stale transcript %s: %w", attrs.Name, err)
		}
		u.logger.Debug("deleted stale transcript", zap.String("object", attrs.Name))
	}
	return nil
}

// uploadFile uploads a single file to GCS.
func (u *GCSUploader) uploadFile(ctx context.Context, localPath, key string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := u.bucket.Object(key).NewWriter(ctx)
	if _, err := io.Copy(writer, file); err != nil {
		writer.Close()
		return err
	}
	return writer.Close()
}

// Close releases resources.
func (u *GCSUploader) Close() error {
	return u.client.Close()
}
