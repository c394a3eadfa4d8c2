package uci

import (
	"strconv"
	"strings"
	"time"
)

// FormatCommand encodes a command as one protocol line, without a trailing
// newline. Only present fields are written.
func FormatCommand(cmd Command, opts FormatOptions) string {
	var sb strings.Builder
	sb.WriteString(cmd.Keyword())

	switch c := cmd.(type) {
	case Debug:
		if c.On {
			sb.WriteString(" on")
		} else {
			sb.WriteString(" off")
		}
	case Position:
		switch ip := c.Init.(type) {
		case BoardPos:
			sb.WriteString(" fen ")
			sb.WriteString(ip.Board.FEN(opts.Chess960))
		default:
			sb.WriteString(" startpos")
		}
		if len(c.Moves) > 0 {
			writeMoves(&sb, "moves", c.Moves)
		}
	case SetOption:
		sb.WriteString(" name ")
		sb.WriteString(c.Name)
		if c.Value != nil {
			sb.WriteString(" value ")
			sb.WriteString(*c.Value)
		}
	case Go:
		formatGoParams(&sb, &c.GoParams)
	}

	return sb.String()
}

func formatGoParams(sb *strings.Builder, p *GoParams) {
	writeMoves(sb, "searchmoves", p.SearchMoves)
	if p.Ponder {
		sb.WriteString(" ponder")
	}
	writeMillis(sb, "wtime", p.WTime)
	writeMillis(sb, "btime", p.BTime)
	writeMillis(sb, "winc", p.WInc)
	writeMillis(sb, "binc", p.BInc)
	writeUint(sb, "movestogo", p.MovesToGo)
	writeUint(sb, "depth", p.Depth)
	writeUint(sb, "nodes", p.Nodes)
	writeUint(sb, "mate", p.Mate)
	writeMillis(sb, "movetime", p.MoveTime)
	if p.Infinite {
		sb.WriteString(" infinite")
	}
}

func writeName(sb *strings.Builder, name string) {
	sb.WriteByte(' ')
	sb.WriteString(name)
	sb.WriteByte(' ')
}

func writeMillis(sb *strings.Builder, name string, d *time.Duration) {
	if d == nil {
		return
	}
	writeName(sb, name)
	sb.WriteString(formatMillis(*d))
}

func writeUint[T uint8 | uint16 | uint32 | uint64](sb *strings.Builder, name string, v *T) {
	if v == nil {
		return
	}
	writeName(sb, name)
	sb.WriteString(strconv.FormatUint(uint64(*v), 10))
}
