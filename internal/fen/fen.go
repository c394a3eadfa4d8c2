// Package fen provides FEN (Forsyth-Edwards Notation) field utilities: the
// six-field split and the castling field in both standard and Shredder
// (Chess960) notation.
package fen

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFEN indicates the FEN string is malformed.
var ErrInvalidFEN = errors.New("invalid FEN notation")

// FieldCount is the number of whitespace-separated fields in a FEN.
const FieldCount = 6

// Record holds the six raw fields of a FEN string.
type Record struct {
	Placement string
	Turn      string
	Castling  string
	EnPassant string
	HalfMove  string
	FullMove  string
}

// Split splits a FEN into its six fields. Fields may be separated by any run
// of ASCII whitespace. The piece placement field is validated here; the other
// fields are left to their own decoders.
func Split(s string) (Record, error) {
	parts := Fields(s)
	if len(parts) != FieldCount {
		return Record{}, fmt.Errorf("%w: expected %d fields, got %d", ErrInvalidFEN, FieldCount, len(parts))
	}

	if err := checkPlacement(parts[0]); err != nil {
		return Record{}, err
	}

	if parts[1] != "w" && parts[1] != "b" {
		return Record{}, fmt.Errorf("%w: invalid side to move %q", ErrInvalidFEN, parts[1])
	}

	return Record{
		Placement: parts[0],
		Turn:      parts[1],
		Castling:  parts[2],
		EnPassant: parts[3],
		HalfMove:  parts[4],
		FullMove:  parts[5],
	}, nil
}

// String joins the record back into a single-space separated FEN.
func (r Record) String() string {
	return strings.Join([]string{r.Placement, r.Turn, r.Castling, r.EnPassant, r.HalfMove, r.FullMove}, " ")
}

// Fields splits s around runs of ASCII whitespace (space, \t, \n, \f, \r).
func Fields(s string) []string {
	var out []string
	start := -1
	for i := 0; i < len(s); i++ {
		if IsSpace(s[i]) {
			if start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}

// IsSpace reports whether b is an ASCII whitespace byte.
func IsSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

// checkPlacement validates the piece placement part of a FEN.
func checkPlacement(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: expected 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}

	for i, rank := range ranks {
		squares := 0
		for _, ch := range rank {
			switch {
			case ch >= '1' && ch <= '8':
				squares += int(ch - '0')
			case strings.ContainsRune("PNBRQKpnbrqk", ch):
				squares++
			default:
				return fmt.Errorf("%w: invalid piece %q", ErrInvalidFEN, ch)
			}
		}
		if squares != 8 {
			return fmt.Errorf("%w: rank %d has %d squares", ErrInvalidFEN, 8-i, squares)
		}
	}

	return nil
}
