package transcript

import (
	"fmt"

	"github.com/discochess/uci"
	"github.com/discochess/uci/internal/latency"
)

// Failure records one line that did not decode or did not round trip.
type Failure struct {
	Line Line
	Err  error
}

// Error implements the error interface.
func (f Failure) Error() string {
	return fmt.Sprintf("line %d: %v", f.Line.Number, f.Err)
}

// Unwrap returns the underlying decode or round-trip error.
func (f Failure) Unwrap() error {
	return f.Err
}

// Report summarises one replay.
type Report struct {
	Name     string
	Bytes    int
	Commands int
	Remarks  int
	// Skipped counts blank lines.
	Skipped  int
	Failures []Failure
	// Options is the dialect in effect after the last line.
	Options uci.FormatOptions
	// Latency describes the per-line decode, encode and re-decode time.
	Latency latency.Summary
}

// Lines returns the number of protocol lines replayed.
func (r *Report) Lines() int {
	return r.Commands + r.Remarks
}

// OK reports whether every line round-tripped.
func (r *Report) OK() bool {
	return len(r.Failures) == 0
}

// String renders a one-line summary.
func (r *Report) String() string {
	status := "ok"
	if !r.OK() {
		status = fmt.Sprintf("%d failures", len(r.Failures))
	}
	return fmt.Sprintf("%s: %s, %d commands, %d remarks, decode %v",
		r.Name, status, r.Commands, r.Remarks, r.Latency)
}
