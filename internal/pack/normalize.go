package pack

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnrecognizedLine is returned for log lines that carry no direction.
var ErrUnrecognizedLine = errors.New("pack: unrecognized log line")

const maxLineSize = 1 << 20

// Counts tallies the protocol lines written by Normalize.
type Counts struct {
	Commands int
	Remarks  int
}

// Lines returns the total number of protocol lines.
func (c Counts) Lines() int {
	return c.Commands + c.Remarks
}

// Normalize copies the protocol lines of an engine log from r to w in
// transcript form, one ">command" or "<remark" per line.
//
// Both transcripts and Stockfish debug logs (">> uci", "<< uciok") are
// accepted. Blank lines are dropped and CRLF endings become LF.
func Normalize(r io.Reader, w io.Writer) (Counts, error) {
	var counts Counts
	bw := bufio.NewWriter(w)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for n := 1; scanner.Scan(); n++ {
		line, err := normalizeLine(scanner.Text())
		if err != nil {
			return counts, fmt.Errorf("line %d: %w", n, err)
		}
		if line == "" {
			continue
		}
		if line[0] == '>' {
			counts.Commands++
		} else {
			counts.Remarks++
		}
		if _, err := bw.WriteString(line); err != nil {
			return counts, err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return counts, err
		}
	}
	if err := scanner.Err(); err != nil {
		return counts, fmt.Errorf("reading log: %w", err)
	}
	return counts, bw.Flush()
}

// normalizeLine rewrites one log line into transcript form. Blank lines
// return "".
func normalizeLine(raw string) (string, error) {
	raw = strings.TrimSuffix(raw, "\r")
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}

	switch {
	case strings.HasPrefix(raw, ">> "):
		return ">" + raw[3:], nil
	case strings.HasPrefix(raw, "<< "):
		return "<" + raw[3:], nil
	case raw[0] == '>' || raw[0] == '<':
		return raw, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnrecognizedLine, truncate(raw, 40))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
