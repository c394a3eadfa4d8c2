// Package pack converts engine logs into stored transcripts.
//
// A pack run reads each source log, rewrites it into transcript form,
// compresses it with the configured codec and writes it as
// <dir>/<name>.txt[.ext], the layout the stores read. A manifest.json
// describing the run is written next to the transcripts.
package pack

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/discochess/uci/internal/codec"
	"github.com/discochess/uci/internal/codec/codecs"
	"github.com/discochess/uci/internal/codec/zstdcodec"
	"github.com/discochess/uci/internal/store"
)

var (
	// ErrNoSources is returned when Pack is called without input files.
	ErrNoSources = errors.New("pack: no source files")

	// ErrDuplicateName is returned when two sources map to one transcript.
	ErrDuplicateName = errors.New("pack: duplicate transcript name")
)

// Packer writes transcripts into a directory.
type Packer struct {
	outputDir string
	codec     codec.Codec
	workers   int
	progress  ProgressFunc
	logger    *zap.Logger
}

// Option configures a Packer.
type Option func(*Packer)

// WithOutputDir sets the directory transcripts are written to.
func WithOutputDir(dir string) Option {
	return func(p *Packer) {
		p.outputDir = dir
	}
}

// WithCodec sets the compression codec.
func WithCodec(c codec.Codec) Option {
	return func(p *Packer) {
		p.codec = c
	}
}

// WithWorkers sets how many sources are packed concurrently.
func WithWorkers(n int) Option {
	return func(p *Packer) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithProgress sets the progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Packer) {
		p.progress = fn
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Packer) {
		p.logger = logger
	}
}

// New creates a Packer. By default it writes zstd transcripts to
// ./transcripts with four workers.
func New(opts ...Option) *Packer {
	p := &Packer{
		outputDir: "./transcripts",
		codec:     zstdcodec.New(),
		workers:   4,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// OutputDir returns the directory transcripts are written to.
func (p *Packer) OutputDir() string {
	return p.outputDir
}

// Pack converts every source into a transcript and writes the manifest.
// Sources compressed with a known codec (".zst", ".gz") are decompressed
// first. The transcript name is the base name of the source without its
// compression and ".txt" or ".log" extensions.
func (p *Packer) Pack(ctx context.Context, sources []string) (*Manifest, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	names, err := sourceNames(sources)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	var (
		start      = time.Now()
		entries    = make([]Entry, len(sources))
		read       atomic.Int64
		written    atomic.Int64
		mu         sync.Mutex
		done       int
		totalLines int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			e, err := p.packFile(src, names[i], &read, &written)
			if err != nil {
				return fmt.Errorf("packing %s: %w", src, err)
			}
			entries[i] = e
			p.logger.Debug("packed transcript",
				zap.String("name", e.Name),
				zap.String("source", src),
				zap.Int("commands", e.Commands),
				zap.Int("remarks", e.Remarks),
				zap.Int64("bytes", e.Bytes),
			)

			mu.Lock()
			defer mu.Unlock()
			done++
			totalLines += e.Commands + e.Remarks
			p.report(Progress{
				Phase:        "pack",
				Name:         e.Name,
				FilesDone:    done,
				FilesTotal:   len(sources),
				Lines:        totalLines,
				BytesRead:    read.Load(),
				BytesWritten: written.Load(),
				StartTime:    start,
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		p.report(Progress{Phase: "error", Error: err, StartTime: start})
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	m := &Manifest{
		Version:     ManifestVersion,
		Codec:       p.codec.Name(),
		Transcripts: entries,
		BuiltAt:     time.Now().UTC(),
	}
	if err := WriteManifest(p.outputDir, m); err != nil {
		return nil, err
	}

	p.report(Progress{
		Phase:        "done",
		FilesDone:    done,
		FilesTotal:   len(sources),
		Lines:        totalLines,
		BytesRead:    read.Load(),
		BytesWritten: written.Load(),
		StartTime:    start,
	})
	p.logger.Info("pack complete",
		zap.String("dir", p.outputDir),
		zap.String("codec", p.codec.Name()),
		zap.Int("transcripts", len(entries)),
		zap.Int("lines", totalLines),
		zap.Duration("elapsed", time.Since(start)),
	)
	return m, nil
}

// packFile writes one source as transcript name. The output is written to a
// temporary file and renamed into place once complete.
func (p *Packer) packFile(src, name string, read, written *atomic.Int64) (Entry, error) {
	in, err := os.Open(src)
	if err != nil {
		return Entry{}, err
	}
	defer in.Close()

	r, err := openSource(&countingReader{r: in, total: read}, src)
	if err != nil {
		return Entry{}, err
	}
	defer r.Close()

	tmp, err := os.CreateTemp(p.outputDir, ".pack-*")
	if err != nil {
		return Entry{}, fmt.Errorf("creating temp file: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	cw := &countingWriter{w: tmp, total: written}
	zw, err := p.codec.Writer(cw)
	if err != nil {
		return Entry{}, fmt.Errorf("creating compressor: %w", err)
	}
	counts, err := Normalize(r, zw)
	if err != nil {
		zw.Close()
		return Entry{}, err
	}
	if err := zw.Close(); err != nil {
		return Entry{}, fmt.Errorf("flushing compressor: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return Entry{}, err
	}

	dst := filepath.Join(p.outputDir, store.Filename(name, p.codec))
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		committed = true
		return Entry{}, fmt.Errorf("renaming transcript: %w", err)
	}
	committed = true

	return Entry{
		Name:     name,
		Source:   filepath.Base(src),
		Commands: counts.Commands,
		Remarks:  counts.Remarks,
		Bytes:    cw.n,
	}, nil
}

// openSource decompresses r when path carries a known codec extension.
func openSource(r io.Reader, path string) (io.ReadCloser, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return io.NopCloser(r), nil
	}
	c, ok := codecs.ByExtension(ext)
	if !ok {
		return io.NopCloser(r), nil
	}
	rc, err := c.Reader(r)
	if err != nil {
		return nil, fmt.Errorf("creating decompressor: %w", err)
	}
	return rc, nil
}

// NameFor returns the transcript name for a source path:
// "logs/sf.log.gz" becomes "sf".
func NameFor(path string) string {
	name := filepath.Base(path)
	if ext := strings.TrimPrefix(filepath.Ext(name), "."); ext != "" {
		if _, ok := codecs.ByExtension(ext); ok {
			name = strings.TrimSuffix(name, "."+ext)
		}
	}
	for _, ext := range []string{"." + store.Extension, ".log"} {
		if trimmed, ok := strings.CutSuffix(name, ext); ok {
			return trimmed
		}
	}
	return name
}

func sourceNames(sources []string) ([]string, error) {
	names := make([]string, len(sources))
	seen := make(map[string]string, len(sources))
	for i, src := range sources {
		name := NameFor(src)
		if err := store.ValidateName(name); err != nil {
			return nil, fmt.Errorf("%s: %w", src, err)
		}
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w %q from %s and %s", ErrDuplicateName, name, prev, src)
		}
		seen[name] = src
		names[i] = name
	}
	return names, nil
}

func (p *Packer) report(pr Progress) {
	if p.progress != nil {
		p.progress(pr)
	}
}
