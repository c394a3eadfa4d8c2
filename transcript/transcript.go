// Package transcript replays recorded UCI sessions through the codec.
//
// A transcript holds one protocol line per text line, prefixed ">" for
// commands sent to the engine and "<" for remarks sent by it:
//
//	>uci
//	<id name Stockfish 16
//	<uciok
//	>setoption name UCI_ShowWDL value true
//	>go depth 10
//	<info depth 10 score cp 31 wdl 120 850 30 pv e2e4
//
// Every line is decoded with the dialect in effect, encoded again and
// re-decoded; the two values must be identical. Commands then update the
// dialect the way a live session would.
//
// Example usage:
//
//	r, err := transcript.New(transcript.WithStore(st))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	report, err := r.Replay(ctx, "sf_wdl_game")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report)
package transcript

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/discochess/uci"
	"github.com/discochess/uci/internal/latency"
	"github.com/discochess/uci/internal/stats"
	"github.com/discochess/uci/internal/store"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrClosed indicates the replayer has been closed.
	ErrClosed = errors.New("transcript: replayer closed")

	// ErrNoStore indicates no store was provided.
	ErrNoStore = errors.New("transcript: no store provided")

	// ErrMalformedLine marks a transcript line without a direction prefix.
	ErrMalformedLine = errors.New("transcript: malformed line")

	// ErrRoundTrip marks a line whose re-encoded form decodes to a
	// different value.
	ErrRoundTrip = errors.New("transcript: round trip mismatch")

	// ErrFailed is returned by Replay alongside the report when fail-fast
	// stopped the replay.
	ErrFailed = errors.New("transcript: replay failed")
)

// maxLineSize bounds a single protocol line. Long info lines with a full pv
// and currline stay far below it.
const maxLineSize = 1 << 20

// Replayer replays transcripts from a store.
// A Replayer is safe for concurrent use by multiple goroutines; each replay
// owns its dialect state.
type Replayer struct {
	store    store.Store
	stats    stats.Collector
	logger   *zap.Logger
	failFast bool
	initial  uci.FormatOptions
	workers  int
	closed   atomic.Bool
}

// New creates a Replayer with the given options.
func New(opts ...Option) (*Replayer, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	if cfg.store == nil {
		return nil, ErrNoStore
	}

	r := &Replayer{
		store:    cfg.store,
		stats:    cfg.stats,
		logger:   cfg.logger.Named("transcript"),
		failFast: cfg.failFast,
		initial:  cfg.initial,
		workers:  cfg.workers,
	}

	r.logger.Debug("replayer initialized",
		zap.Bool("failFast", r.failFast),
		zap.Int("workers", r.workers),
	)

	return r, nil
}

// Replay fetches the named transcript and replays it.
//
// Line failures are collected in the report and do not make Replay return an
// error, except in fail-fast mode where the first failure stops the replay
// and Replay returns the partial report with an error wrapping ErrFailed and
// the failure. Store errors and context cancellation return a nil report.
func (r *Replayer) Replay(ctx context.Context, name string) (*Report, error) {
	if r.closed.Load() {
		return nil, ErrClosed
	}

	data, err := r.store.ReadTranscript(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("reading transcript %s: %w", name, err)
	}
	return r.ReplayBytes(ctx, name, data)
}

// ReplayBytes replays an already loaded transcript.
func (r *Replayer) ReplayBytes(ctx context.Context, name string, data []byte) (*Report, error) {
	if r.closed.Load() {
		return nil, ErrClosed
	}

	r.stats.IncCounter(stats.MetricReplays, 1)
	r.stats.SetGauge(stats.MetricTranscriptSize, int64(len(data)))
	logger := r.logger.With(zap.String("transcript", name))

	report := &Report{Name: name, Bytes: len(data)}
	opts := r.initial
	var timings latency.Recorder

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	for n := 1; scanner.Scan(); n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw := scanner.Text()
		if isBlank(raw) {
			report.Skipped++
			continue
		}

		line, err := parseLine(n, raw)
		if err != nil {
			line = Line{Number: n, Text: raw}
		} else {
			if line.Dir == ToEngine {
				report.Commands++
			} else {
				report.Remarks++
			}
			r.stats.IncCounter(stats.MetricLines, 1)

			d := timings.Time(func() { err = replayLine(line, &opts) })
			r.stats.ObserveHistogram(stats.MetricDecodeSeconds, d.Seconds())
		}
		if err == nil {
			continue
		}

		failure := Failure{Line: line, Err: err}
		report.Failures = append(report.Failures, failure)
		r.stats.IncCounter(stats.MetricFailures, 1)
		logger.Warn("line failed",
			zap.Int("line", line.Number),
			zap.String("text", raw),
			zap.Error(err),
		)

		if r.failFast {
			report.Options = opts
			report.Latency = timings.Summary()
			return report, fmt.Errorf("%w: %w", ErrFailed, failure)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning transcript %s: %w", name, err)
	}

	report.Options = opts
	report.Latency = timings.Summary()

	logger.Info("replay finished",
		zap.Int("commands", report.Commands),
		zap.Int("remarks", report.Remarks),
		zap.Int("failures", len(report.Failures)),
		zap.Duration("p99", report.Latency.P99),
	)
	return report, nil
}

// ReplayAll replays the named transcripts concurrently and returns their
// reports in the order of names. The first store or context error cancels
// the remaining replays; fail-fast errors do not.
func (r *Replayer) ReplayAll(ctx context.Context, names []string) ([]*Report, error) {
	reports := make([]*Report, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, name := range names {
		g.Go(func() error {
			report, err := r.Replay(ctx, name)
			reports[i] = report
			if err != nil && !errors.Is(err, ErrFailed) {
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Close releases the store. After Close, the replayer should not be used.
func (r *Replayer) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}

	if err := r.store.Close(); err != nil {
		return fmt.Errorf("closing store: %w", err)
	}
	return nil
}

// Store returns the storage backend used by this replayer.
func (r *Replayer) Store() store.Store {
	return r.store
}

// replayLine decodes, re-encodes and re-decodes one line, then lets a
// command update opts.
func replayLine(line Line, opts *uci.FormatOptions) error {
	if line.Dir == FromEngine {
		rmk, err := uci.ParseRemark(line.Text, *opts)
		if err != nil {
			return err
		}
		return compare(rmk, uci.FormatRemark(rmk, *opts), func(s string) (any, error) {
			return uci.ParseRemark(s, *opts)
		})
	}

	cmd, err := uci.ParseCommand(line.Text, *opts)
	if err != nil {
		return err
	}
	err = compare(cmd, uci.FormatCommand(cmd, *opts), func(s string) (any, error) {
		return uci.ParseCommand(s, *opts)
	})
	opts.Observe(cmd)
	return err
}

func compare(want any, formatted string, parse func(string) (any, error)) error {
	got, err := parse(formatted)
	if err != nil {
		return fmt.Errorf("%w: re-decoding %q: %w", ErrRoundTrip, formatted, err)
	}
	if !reflect.DeepEqual(got, want) {
		return fmt.Errorf("%w: %q decodes to %#v, want %#v", ErrRoundTrip, formatted, got, want)
	}
	return nil
}
