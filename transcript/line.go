package transcript

import (
	"fmt"
	"strings"
)

// Direction tells which side of the conversation wrote a line.
type Direction uint8

const (
	// ToEngine lines are commands, prefixed ">".
	ToEngine Direction = iota
	// FromEngine lines are remarks, prefixed "<".
	FromEngine
)

// Prefix returns the marker that starts a line in this direction.
func (d Direction) Prefix() string {
	if d == ToEngine {
		return ">"
	}
	return "<"
}

func (d Direction) String() string {
	if d == ToEngine {
		return "command"
	}
	return "remark"
}

// Line is one protocol line of a transcript.
type Line struct {
	// Number is 1-based and counts blank lines.
	Number int
	Dir    Direction
	// Text is the protocol line without its direction prefix.
	Text string
}

// String renders the line back in transcript form.
func (l Line) String() string {
	return l.Dir.Prefix() + l.Text
}

// parseLine splits the direction prefix off a transcript line. A trailing
// carriage return is dropped so CRLF transcripts replay unchanged.
func parseLine(number int, raw string) (Line, error) {
	raw = strings.TrimSuffix(raw, "\r")
	if raw == "" {
		return Line{}, fmt.Errorf("%w: empty", ErrMalformedLine)
	}

	var dir Direction
	switch raw[0] {
	case '>':
		dir = ToEngine
	case '<':
		dir = FromEngine
	default:
		return Line{}, fmt.Errorf("%w: missing direction prefix", ErrMalformedLine)
	}
	return Line{Number: number, Dir: dir, Text: raw[1:]}, nil
}

// isBlank reports whether a raw transcript line carries no protocol text.
func isBlank(raw string) bool {
	return strings.TrimSpace(raw) == ""
}
