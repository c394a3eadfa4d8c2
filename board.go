package uci

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/notnil/chess"

	"github.com/discochess/uci/internal/fen"
)

// ErrInvalidFEN is wrapped by every error returned from ParseBoard.
var ErrInvalidFEN = fen.ErrInvalidFEN

// Castling holds castling rights as per-colour rook-file bitmasks.
type Castling = fen.Castling

// StartFEN is the FEN of the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Board is a chess position as carried by "position fen". It is a plain
// comparable value.
type Board struct {
	Pieces         chess.Board
	Turn           chess.Color
	Castling       Castling
	EnPassant      chess.Square
	HalfMoveClock  int
	FullMoveNumber int
}

// ParseBoard decodes a six-field FEN. With chess960 set the castling field is
// read in Shredder notation (rook files, e.g. "HAha"), otherwise as KQkq.
func ParseBoard(s string, chess960 bool) (Board, error) {
	rec, err := fen.Split(s)
	if err != nil {
		return Board{}, err
	}

	castling, err := fen.ParseCastling(rec.Castling, chess960)
	if err != nil {
		return Board{}, err
	}

	half, err := strconv.Atoi(rec.HalfMove)
	if err != nil || half < 0 {
		return Board{}, fmt.Errorf("%w: invalid halfmove clock %q", ErrInvalidFEN, rec.HalfMove)
	}
	full, err := strconv.Atoi(rec.FullMove)
	if err != nil || full < 1 {
		return Board{}, fmt.Errorf("%w: invalid fullmove number %q", ErrInvalidFEN, rec.FullMove)
	}

	// Castling is validated here, so the position decoder only sees "-".
	plain := fen.Record{
		Placement: rec.Placement,
		Turn:      rec.Turn,
		Castling:  "-",
		EnPassant: rec.EnPassant,
		HalfMove:  rec.HalfMove,
		FullMove:  rec.FullMove,
	}
	var pos chess.Position
	if err := pos.UnmarshalText([]byte(plain.String())); err != nil {
		return Board{}, fmt.Errorf("%w: %w", ErrInvalidFEN, err)
	}

	b := Board{
		Pieces:         *pos.Board(),
		Turn:           pos.Turn(),
		Castling:       castling,
		EnPassant:      pos.EnPassantSquare(),
		HalfMoveClock:  half,
		FullMoveNumber: full,
	}
	if err := b.checkCastling(chess960); err != nil {
		return Board{}, err
	}
	return b, nil
}

// MustParseBoard is like ParseBoard but panics on error.
func MustParseBoard(s string, chess960 bool) Board {
	b, err := ParseBoard(s, chess960)
	if err != nil {
		panic(err)
	}
	return b
}

// FEN renders the board as a six-field FEN using the castling notation
// selected by chess960.
func (b Board) FEN(chess960 bool) string {
	ep := "-"
	if b.EnPassant != chess.NoSquare {
		ep = b.EnPassant.String()
	}
	return strings.Join([]string{
		b.Pieces.String(),
		b.Turn.String(),
		b.Castling.Format(chess960),
		ep,
		strconv.Itoa(b.HalfMoveClock),
		strconv.Itoa(b.FullMoveNumber),
	}, " ")
}

// String renders the board in standard FEN.
func (b Board) String() string {
	return b.FEN(false)
}

func (b Board) checkCastling(chess960 bool) error {
	sides := []struct {
		color string
		mask  uint8
		rank  int
		king  chess.Piece
		rook  chess.Piece
	}{
		{"white", b.Castling.White, 0, chess.WhiteKing, chess.WhiteRook},
		{"black", b.Castling.Black, 7, chess.BlackKing, chess.BlackRook},
	}

	for _, side := range sides {
		if side.mask == 0 {
			continue
		}

		kingFile := -1
		for f := 0; f < 8; f++ {
			if b.Pieces.Piece(square(f, side.rank)) == side.king {
				kingFile = f
				break
			}
		}
		if kingFile < 0 {
			return fmt.Errorf("%w: %s has castling rights without a king on the back rank", ErrInvalidFEN, side.color)
		}
		if !chess960 && kingFile != 4 {
			return fmt.Errorf("%w: %s has castling rights with the king off its home square", ErrInvalidFEN, side.color)
		}

		var kingside, queenside int
		for _, f := range fen.Files(side.mask) {
			if b.Pieces.Piece(square(f, side.rank)) != side.rook {
				return fmt.Errorf("%w: %s castling right on file %c has no rook", ErrInvalidFEN, side.color, 'a'+f)
			}
			if f > kingFile {
				kingside++
			} else {
				queenside++
			}
		}
		if kingside > 1 || queenside > 1 {
			return fmt.Errorf("%w: %s has two castling rights on one side of the king", ErrInvalidFEN, side.color)
		}
	}

	return nil
}

func square(file, rank int) chess.Square {
	return chess.Square(rank*8 + file)
}
