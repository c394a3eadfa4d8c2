package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/discochess/uci/internal/stats"
	statsprom "github.com/discochess/uci/internal/stats/prometheus"
	"github.com/discochess/uci/transcript"
)

var replayCmd = &cobra.Command{
	Use:   "replay NAME...",
	Short: "Replay recorded sessions and check every line round-trips",
	Long: `Replay recorded engine sessions through the codec.

A transcript holds one protocol line per line, prefixed ">" for commands and
"<" for remarks. Every line is decoded, encoded and decoded again, and both
values must match. NAME "-" replays a transcript read from stdin. With no
NAME, every transcript in the store is replayed.

Examples:
  uci replay --data-dir ./testdata sf_wdl_game
  uci replay --s3-bucket engine-logs --prefix 2024 --codec zstd --metrics
  uci replay - < session.txt`,
	RunE: runReplay,
}

var (
	cacheSize   int
	cacheTTL    time.Duration
	failFast    bool
	showMetrics bool
	workers     int
)

func init() {
	replayCmd.Flags().IntVar(&cacheSize, "cache", 16, "number of transcripts to cache in memory")
	replayCmd.Flags().DurationVar(&cacheTTL, "cache-ttl", 0, "expire cached transcripts after this long (0 disables)")
	replayCmd.Flags().BoolVar(&failFast, "fail-fast", false, "stop each replay at its first failing line")
	replayCmd.Flags().BoolVar(&showMetrics, "metrics", false, "print Prometheus metrics after the replay")
	replayCmd.Flags().IntVarP(&workers, "workers", "j", 4, "transcripts replayed concurrently")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	registry := prometheus.NewRegistry()
	var collector stats.Collector = stats.NewNoop()
	if showMetrics {
		collector = statsprom.New(registry)
	}

	base, err := openStore(ctx)
	if err != nil {
		return err
	}
	st, err := withCache(base, cacheSize, cacheTTL, collector)
	if err != nil {
		base.Close()
		return err
	}

	replayer, err := transcript.New(
		transcript.WithStore(st),
		transcript.WithStats(collector),
		transcript.WithLogger(logger),
		transcript.WithFailFast(failFast),
		transcript.WithWorkers(workers),
	)
	if err != nil {
		st.Close()
		return fmt.Errorf("creating replayer: %w", err)
	}
	defer replayer.Close()

	reports, err := replay(ctx, cmd.InOrStdin(), replayer, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := printReports(out, reports)
	if showMetrics {
		if err := writeMetrics(out, registry); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d transcripts failed", failed, len(reports))
	}
	return nil
}

func replay(ctx context.Context, stdin io.Reader, r *transcript.Replayer, names []string) ([]*transcript.Report, error) {
	if len(names) == 1 && names[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		report, err := r.ReplayBytes(ctx, "stdin", data)
		if report == nil {
			return nil, err
		}
		return []*transcript.Report{report}, nil
	}

	if len(names) == 0 {
		var err error
		if names, err = listNames(ctx, r); err != nil {
			return nil, err
		}
	}
	return r.ReplayAll(ctx, names)
}

func listNames(ctx context.Context, r *transcript.Replayer) ([]string, error) {
	entries, err := listStore(ctx, r.Store())
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.New("no transcripts found")
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names, nil
}

// printReports writes one summary per report plus its failures and returns
// the number of failed reports.
func printReports(w io.Writer, reports []*transcript.Report) int {
	var failed int
	for _, report := range reports {
		fmt.Fprintln(w, report)
		if report.OK() {
			continue
		}
		failed++
		for _, f := range report.Failures {
			fmt.Fprintf(w, "  %s\n", f.Line)
			fmt.Fprintf(w, "    %v\n", f)
		}
	}
	return failed
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}
