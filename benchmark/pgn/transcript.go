package pgn

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteTranscript writes the session a front-end would hold while playing g
// against an engine that always finds the game move. Each ply sends the
// position twice, once as a move list from startpos and once as a FEN.
func WriteTranscript(w io.Writer, g Game) error {
	bw := bufio.NewWriter(w)
	line := func(format string, args ...any) {
		fmt.Fprintf(bw, format+"\n", args...)
	}

	line(">ucinewgame")
	line(">isready")
	line("<readyok")
	for i, move := range g.Moves {
		if i == 0 {
			line(">position startpos")
		} else {
			line(">position startpos moves %s", strings.Join(g.Moves[:i], " "))
		}
		line(">position fen %s", g.FENs[i])
		line(">go wtime %d btime %d winc 1000 binc 1000", max(60000-i*250, 1000), max(60000-i*240, 1000))
		line("<info depth %d seldepth %d score cp %d nodes %d time %d pv %s",
			10+i%8, 14+i%8, (i%7-3)*17, 1000*(i+1), 20*(i+1), move)
		if i+1 < len(g.Moves) {
			line("<bestmove %s ponder %s", move, g.Moves[i+1])
		} else {
			line("<bestmove %s", move)
		}
	}
	return bw.Flush()
}

// Transcript returns WriteTranscript's output as bytes.
func Transcript(g Game) []byte {
	var sb strings.Builder
	WriteTranscript(&sb, g)
	return []byte(sb.String())
}
