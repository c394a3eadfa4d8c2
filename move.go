package uci

import (
	"fmt"

	"github.com/notnil/chess"
)

// Move is a move in UCI long algebraic notation, e.g. "e2e4" or "e7e8q".
// Castling is written as the king's two-square move (or king-takes-rook in
// Chess960). Legality is not checked.
type Move struct {
	From      chess.Square
	To        chess.Square
	Promotion chess.PieceType
}

// ParseMove decodes a move from its UCI text form.
func ParseMove(s string) (Move, error) {
	m, err := chess.UCINotation{}.Decode(nil, s)
	if err != nil {
		return Move{}, fmt.Errorf("%w %q: %w", ErrInvalidMove, s, err)
	}
	return Move{From: m.S1(), To: m.S2(), Promotion: m.Promo()}, nil
}

// MustParseMove is like ParseMove but panics on error. Intended for tests and
// package-level literals.
func MustParseMove(s string) Move {
	m, err := ParseMove(s)
	if err != nil {
		panic(err)
	}
	return m
}

// String returns the canonical UCI text of the move.
func (m Move) String() string {
	return m.From.String() + m.To.String() + m.Promotion.String()
}

// MarshalText implements encoding.TextMarshaler.
func (m Move) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Move) UnmarshalText(text []byte) error {
	parsed, err := ParseMove(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
