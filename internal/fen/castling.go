package fen

import (
	"fmt"
	"math/bits"
	"strings"
)

// Castling holds castling rights as a per-colour bitmask of rook files, bit 0
// for the a-file through bit 7 for the h-file. In standard notation K maps to
// the h-file and Q to the a-file.
type Castling struct {
	White uint8
	Black uint8
}

// Standard file bits.
const (
	FileA uint8 = 1 << 0
	FileH uint8 = 1 << 7
)

// NoCastling has no rights for either side.
var NoCastling = Castling{}

// ParseCastling decodes a FEN castling field. With shredder set the field uses
// rook-file letters (Shredder-FEN, as in Chess960), otherwise KQkq. "-" means
// no rights in both notations.
func ParseCastling(field string, shredder bool) (Castling, error) {
	var c Castling
	if field == "-" {
		return c, nil
	}
	if field == "" {
		return c, fmt.Errorf("%w: empty castling field", ErrInvalidFEN)
	}

	for i := 0; i < len(field); i++ {
		ch := field[i]
		mask, bit, ok := c.slot(ch, shredder)
		if !ok {
			return Castling{}, fmt.Errorf("%w: invalid castling right %q", ErrInvalidFEN, ch)
		}
		if *mask&bit != 0 {
			return Castling{}, fmt.Errorf("%w: repeated castling right %q", ErrInvalidFEN, ch)
		}
		*mask |= bit
	}

	if bits.OnesCount8(c.White) > 2 || bits.OnesCount8(c.Black) > 2 {
		return Castling{}, fmt.Errorf("%w: more than two castling rights per side in %q", ErrInvalidFEN, field)
	}

	return c, nil
}

func (c *Castling) slot(ch byte, shredder bool) (*uint8, uint8, bool) {
	if !shredder {
		switch ch {
		case 'K':
			return &c.White, FileH, true
		case 'Q':
			return &c.White, FileA, true
		case 'k':
			return &c.Black, FileH, true
		case 'q':
			return &c.Black, FileA, true
		}
		return nil, 0, false
	}

	switch {
	case ch >= 'A' && ch <= 'H':
		return &c.White, 1 << (ch - 'A'), true
	case ch >= 'a' && ch <= 'h':
		return &c.Black, 1 << (ch - 'a'), true
	}
	return nil, 0, false
}

// Format encodes the rights. Standard notation can only express a- and
// h-file rights; other files are dropped.
func (c Castling) Format(shredder bool) string {
	var sb strings.Builder
	if shredder {
		writeFiles(&sb, c.White, 'A')
		writeFiles(&sb, c.Black, 'a')
	} else {
		writeStandard(&sb, c.White, 'K', 'Q')
		writeStandard(&sb, c.Black, 'k', 'q')
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// Files returns the rook files (0 = a-file) with rights for one side, highest
// first.
func Files(mask uint8) []int {
	var files []int
	for f := 7; f >= 0; f-- {
		if mask&(1<<f) != 0 {
			files = append(files, f)
		}
	}
	return files
}

func writeFiles(sb *strings.Builder, mask uint8, base byte) {
	for _, f := range Files(mask) {
		sb.WriteByte(base + byte(f))
	}
}

func writeStandard(sb *strings.Builder, mask uint8, king, queen byte) {
	if mask&FileH != 0 {
		sb.WriteByte(king)
	}
	if mask&FileA != 0 {
		sb.WriteByte(queen)
	}
}
