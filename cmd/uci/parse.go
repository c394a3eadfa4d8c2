package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/discochess/uci"
)

var parseCmd = &cobra.Command{
	Use:   "parse [LINE...]",
	Short: "Decode protocol lines and print them in canonical form",
	Long: `Decode UCI protocol lines given as arguments, or one per line on stdin.

Each line is decoded as a command; lines that are not commands are decoded as
remarks. Decoding errors are printed with a marker under the offending bytes.
A setoption for UCI_Chess960 or UCI_ShowWDL switches the dialect for the
lines that follow, as it would in a live session.

Examples:
  uci parse "go wtime 300000 btime 300000 winc 2000 binc 2000"
  uci parse --wdl "info depth 20 score cp 35 wdl 112 861 27 pv e2e4"
  cat engine.log | uci parse --remark`,
	RunE: runParse,
}

var (
	parseChess960 bool
	parseWDL      bool
	forceCommand  bool
	forceRemark   bool
)

func init() {
	parseCmd.Flags().BoolVar(&parseChess960, "chess960", false, "start in the Chess960 dialect")
	parseCmd.Flags().BoolVar(&parseWDL, "wdl", false, "start in the WDL dialect")
	parseCmd.Flags().BoolVar(&forceCommand, "command", false, "decode every line as a command")
	parseCmd.Flags().BoolVar(&forceRemark, "remark", false, "decode every line as a remark")
	parseCmd.MarkFlagsMutuallyExclusive("command", "remark")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	sess := uci.NewSession(uci.FormatOptions{Chess960: parseChess960, WDL: parseWDL})
	out := cmd.OutOrStdout()

	var failed int
	handle := func(line string) {
		if strings.TrimSpace(line) == "" {
			return
		}
		if err := parseLine(out, sess, line); err != nil {
			failed++
		}
	}

	if len(args) > 0 {
		for _, line := range args {
			handle(line)
		}
	} else {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			handle(strings.TrimSuffix(scanner.Text(), "\r"))
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d lines failed to decode", failed)
	}
	return nil
}

// parseLine decodes one line through sess and writes the result to w.
func parseLine(w io.Writer, sess *uci.Session, line string) error {
	if !forceRemark {
		c, err := sess.ParseCommand(line)
		if err == nil {
			fmt.Fprintf(w, "command  %s\n", uci.FormatCommand(c, sess.Options()))
			return nil
		}
		if forceCommand || !errors.Is(err, uci.ErrUnknownMessageKind) {
			printError(w, line, err)
			return err
		}
	}

	r, err := sess.ParseRemark(line)
	if err != nil {
		printError(w, line, err)
		return err
	}
	fmt.Fprintf(w, "remark   %s\n", sess.FormatRemark(r))
	if info, ok := r.(uci.Info); ok && info.Score != nil {
		fmt.Fprintf(w, "         score %s%s\n", info.Score.Display(), describeWDL(info.Score.WDL))
	}
	return nil
}

func describeWDL(w *uci.WDL) string {
	if w == nil {
		return ""
	}
	return fmt.Sprintf(" (wdl %s, expected %.3f)", w, w.Expectation())
}

func printError(w io.Writer, line string, err error) {
	fmt.Fprintf(w, "error    %v\n", err)
	var perr *uci.ParseError
	if errors.As(err, &perr) {
		fmt.Fprintf(w, "         %s\n         %s\n", line, caret(line, perr.Span))
	}
}

// caret underlines span in line. Empty spans, such as the end of input,
// get a single marker.
func caret(line string, span uci.Span) string {
	start := min(max(span.Start, 0), len(line))
	width := max(span.Len(), 1)
	return strings.Repeat(" ", start) + strings.Repeat("^", width)
}
