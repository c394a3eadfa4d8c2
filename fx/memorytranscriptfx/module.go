// Package memorytranscriptfx provides an fx module for a replayer over an
// in-memory store. Useful for testing.
package memorytranscriptfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/uci/internal/stats"
	"github.com/discochess/uci/internal/stats/logger"
	"github.com/discochess/uci/internal/store/memstore"
	"github.com/discochess/uci/transcript"
)

// Module provides a *transcript.Replayer and the *memstore.Store behind it.
// Requires a *zap.Logger to be provided.
var Module = fx.Module("memorytranscript",
	fx.Provide(
		newStatsCollector,
		memstore.New,
		newReplayer,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("transcript"))
}

// Params holds dependencies for creating the replayer.
type Params struct {
	fx.In

	Logger    *zap.Logger
	Collector stats.Collector
	Store     *memstore.Store // Populated by tests with SetTranscript.
	Lifecycle fx.Lifecycle
}

func newReplayer(p Params) (*transcript.Replayer, error) {
	replayer, err := transcript.New(
		transcript.WithStore(p.Store),
		transcript.WithStats(p.Collector),
		transcript.WithLogger(p.Logger),
	)
	if err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return replayer.Close()
		},
	})

	return replayer, nil
}
