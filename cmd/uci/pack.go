package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/discochess/uci/internal/codec/codecs"
	"github.com/discochess/uci/internal/pack"
)

var packCmd = &cobra.Command{
	Use:   "pack FILE...",
	Short: "Convert engine logs into stored transcripts",
	Long: `Convert engine logs into transcripts under --data-dir, compressed with
--codec, and write a manifest.json describing them.

FILE may be a transcript or a Stockfish debug log (written with the
"Debug Log File" option, ">> " for commands and "<< " for engine output),
optionally compressed as .gz or .zst. The transcript takes the file's
base name: logs/sf.log.gz becomes "sf".

Examples:
  uci pack --data-dir ./logs --codec zstd sf.log cutechess/*.txt
  uci pack --data-dir ./logs --codec zstd --upload gs://engine-logs/2024 sf.log`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPack,
}

var (
	packWorkers int
	uploadPath  string
	quiet       bool
)

func init() {
	packCmd.Flags().IntVarP(&packWorkers, "workers", "j", 4, "files packed concurrently")
	packCmd.Flags().StringVar(&uploadPath, "upload", "", "upload the packed transcripts to gs://bucket/prefix")
	packCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")
	rootCmd.AddCommand(packCmd)
}

func runPack(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	c, err := codecs.ByName(codecName)
	if err != nil {
		return err
	}

	var progress pack.ProgressFunc
	if !quiet {
		progress = pack.NewProgressPrinter(cmd.ErrOrStderr())
	}

	p := pack.New(
		pack.WithOutputDir(dataDir),
		pack.WithCodec(c),
		pack.WithWorkers(packWorkers),
		pack.WithProgress(progress),
		pack.WithLogger(logger),
	)
	m, err := p.Pack(ctx, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, e := range m.Transcripts {
		fmt.Fprintf(out, "%-32s %5d commands %6d remarks %10s\n", e.Name, e.Commands, e.Remarks, pack.FormatBytes(e.Bytes))
	}
	fmt.Fprintf(out, "\nPacked %d transcripts (%d lines, %s) into %s\n", len(m.Transcripts), m.Lines(), m.Codec, p.OutputDir())

	if uploadPath == "" {
		return nil
	}
	uploader, err := pack.NewGCSUploader(ctx, uploadPath, logger)
	if err != nil {
		return err
	}
	defer uploader.Close()

	if err := uploader.Upload(ctx, p.OutputDir(), c, progress); err != nil {
		return fmt.Errorf("uploading: %w", err)
	}
	fmt.Fprintf(out, "Uploaded to %s\n", uploadPath)
	return nil
}
