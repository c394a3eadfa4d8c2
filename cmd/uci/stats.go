package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/discochess/uci/internal/pack"
	"github.com/discochess/uci/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the transcripts held by the store",
	Long: `List the transcripts in the selected store with their stored sizes.

Only files matching the configured codec are listed: with --codec zstd a
transcript named "game" is stored as game.txt.zst.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := listStore(ctx, st)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No transcripts found.")
		return nil
	}

	var total int64
	for _, e := range entries {
		fmt.Fprintf(out, "%-32s %10s\n", e.Name, pack.FormatBytes(e.Size))
		total += e.Size
	}
	fmt.Fprintf(out, "\nTranscripts:    %d\n", len(entries))
	fmt.Fprintf(out, "Total size:     %s (%s)\n", pack.FormatBytes(total), codecName)
	return nil
}

func listStore(ctx context.Context, st store.Store) ([]store.Entry, error) {
	l, ok := st.(store.Lister)
	if !ok {
		return nil, fmt.Errorf("store %T cannot list transcripts", st)
	}
	entries, err := l.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing transcripts: %w", err)
	}
	return entries, nil
}
