package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags.
	dataDir   string
	codecName string
	s3Bucket  string
	gcsBucket string
	prefix    string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "uci",
	Short: "Decode, encode and replay UCI chess engine protocol lines",
	Long: `uci is a CLI tool around a codec for the Universal Chess Interface, the
text protocol spoken between chess engines and their front-ends.

It decodes single lines, and replays recorded engine sessions to check that
every line survives a decode, encode, decode round trip.

Examples:
  # Decode lines typed on stdin
  echo "info depth 12 score cp 31 pv e2e4 e7e5" | uci parse

  # Pack a Stockfish debug log into ./logs/sf.txt.zst
  uci pack --data-dir ./logs --codec zstd sf.log

  # Replay transcripts stored as ./logs/<name>.txt.zst
  uci replay --data-dir ./logs --codec zstd sf_game chess960_game

  # List stored transcripts
  uci stats --data-dir ./logs`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "./testdata", "directory containing transcripts")
	rootCmd.PersistentFlags().StringVar(&codecName, "codec", "none", "transcript compression: none, gzip or zstd")
	rootCmd.PersistentFlags().StringVar(&s3Bucket, "s3-bucket", "", "read transcripts from this S3 bucket instead of --data-dir")
	rootCmd.PersistentFlags().StringVar(&gcsBucket, "gcs-bucket", "", "read transcripts from this GCS bucket instead of --data-dir")
	rootCmd.PersistentFlags().StringVar(&prefix, "prefix", "", "object key prefix inside the bucket")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// newLogger returns a development logger with --verbose and a no-op logger
// otherwise.
func newLogger() (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}
