// Package disktranscriptfx provides an fx module for a replayer reading
// transcripts from a local directory.
package disktranscriptfx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/uci/internal/codec/codecs"
	"github.com/discochess/uci/internal/stats"
	"github.com/discochess/uci/internal/stats/logger"
	"github.com/discochess/uci/internal/store/cachedstore"
	"github.com/discochess/uci/internal/store/cachedstore/cachestrategy"
	"github.com/discochess/uci/internal/store/cachedstore/cachestrategy/expiring"
	"github.com/discochess/uci/internal/store/cachedstore/cachestrategy/lru"
	"github.com/discochess/uci/internal/store/cachedstore/memory"
	"github.com/discochess/uci/internal/store/diskstore"
	"github.com/discochess/uci/transcript"
)

// Config holds configuration for the disk-backed replayer.
type Config struct {
	// DataDir is the directory containing the transcripts.
	DataDir string

	// Codec names the compression of the stored files: "none", "gzip" or
	// "zstd". Empty means "none".
	Codec string

	// CacheSize is the number of transcripts to cache in memory.
	// Default is 16.
	CacheSize int

	// CacheTTL, when positive, expires cached transcripts after this long.
	CacheTTL time.Duration

	// FailFast stops each replay at its first failing line.
	FailFast bool
}

// Module provides a disk-backed *transcript.Replayer.
// Requires a Config and a *zap.Logger to be provided.
var Module = fx.Module("disktranscript",
	fx.Provide(
		newStatsCollector,
		newReplayer,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("transcript"))
}

// Params holds dependencies for creating the replayer.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
	Lifecycle fx.Lifecycle
}

// Result holds the provided replayer.
type Result struct {
	fx.Out

	Replayer *transcript.Replayer
}

func newStrategy(cfg Config) (cachestrategy.Strategy, error) {
	size := cfg.CacheSize
	if size <= 0 {
		size = 16
	}
	if cfg.CacheTTL > 0 {
		return expiring.New(size, cfg.CacheTTL)
	}
	return lru.New(size)
}

func newReplayer(p Params) (Result, error) {
	c, err := codecs.ByName(p.Config.Codec)
	if err != nil {
		return Result{}, err
	}

	baseStore, err := diskstore.New(p.Config.DataDir, c)
	if err != nil {
		return Result{}, err
	}

	strategy, err := newStrategy(p.Config)
	if err != nil {
		return Result{}, err
	}

	st := cachedstore.New(baseStore, memory.New(strategy, p.Collector))

	replayer, err := transcript.New(
		transcript.WithStore(st),
		transcript.WithStats(p.Collector),
		transcript.WithLogger(p.Logger),
		transcript.WithFailFast(p.Config.FailFast),
	)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return replayer.Close()
		},
	})

	return Result{Replayer: replayer}, nil
}
