package transcript

import (
	"go.uber.org/zap"

	"github.com/discochess/uci"
	"github.com/discochess/uci/internal/stats"
	"github.com/discochess/uci/internal/store"
)

// Option configures a Replayer.
type Option interface {
	apply(*options)
}

type options struct {
	store    store.Store
	stats    stats.Collector
	logger   *zap.Logger
	failFast bool
	initial  uci.FormatOptions
	workers  int
}

func defaultOptions() options {
	return options{
		stats:   stats.NewNoop(),
		logger:  zap.NewNop(),
		workers: 4,
	}
}

type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithStore sets the storage backend transcripts are read from.
func WithStore(s store.Store) Option {
	return optionFunc(func(o *options) {
		o.store = s
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}

// WithFailFast stops a replay at its first failing line.
func WithFailFast(enabled bool) Option {
	return optionFunc(func(o *options) {
		o.failFast = enabled
	})
}

// WithInitialOptions sets the dialect every replay starts in.
// Transcripts normally start from the zero FormatOptions and switch
// dialects through setoption.
func WithInitialOptions(opts uci.FormatOptions) Option {
	return optionFunc(func(o *options) {
		o.initial = opts
	})
}

// WithWorkers bounds how many transcripts ReplayAll replays at once.
// Values below 1 are treated as 1.
func WithWorkers(n int) Option {
	return optionFunc(func(o *options) {
		o.workers = max(n, 1)
	})
}
