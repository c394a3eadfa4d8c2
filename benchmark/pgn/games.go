// Package pgn turns PGN games into synthetic transcripts, giving replay
// benchmarks realistic "position" traffic.
package pgn

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/notnil/chess"
)

// Game is one PGN game reduced to what a front-end sends an engine.
type Game struct {
	// Moves are the game's moves in UCI notation.
	Moves []string
	// FENs holds the position before each move and the final position,
	// so len(FENs) == len(Moves)+1.
	FENs []string
}

// ExtractGames reads every game from a PGN stream. Games that fail to parse
// are skipped.
func ExtractGames(r io.Reader) ([]Game, error) {
	var games []Game

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	var gameText strings.Builder
	inGame := false
	flush := func() {
		if gameText.Len() == 0 {
			return
		}
		if g, err := extractGame(gameText.String()); err == nil && len(g.Moves) > 0 {
			games = append(games, g)
		}
		gameText.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "[Event ") {
			if inGame {
				flush()
			}
			inGame = true
		}

		if inGame {
			gameText.WriteString(line)
			gameText.WriteString("\n")
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading PGN: %w", err)
	}
	return games, nil
}

func extractGame(pgnText string) (Game, error) {
	pgnFunc, err := chess.PGN(strings.NewReader(pgnText))
	if err != nil {
		return Game{}, err
	}
	game := chess.NewGame(pgnFunc)

	positions := game.Positions()
	moves := game.Moves()
	g := Game{
		Moves: make([]string, len(moves)),
		FENs:  make([]string, len(positions)),
	}
	var notation chess.UCINotation
	for i, m := range moves {
		g.Moves[i] = notation.Encode(positions[i], m)
	}
	for i, pos := range positions {
		g.FENs[i] = pos.String()
	}
	return g, nil
}

// Stats summarizes a set of games.
type Stats struct {
	Games           int
	Plies           int
	UniquePositions int
	AvgPliesPerGame float64
}

// Summarize counts plies and distinct positions across games.
func Summarize(games []Game) Stats {
	seen := make(map[string]struct{})
	var plies int
	for _, g := range games {
		plies += len(g.Moves)
		for _, fen := range g.FENs {
			seen[normalizeFEN(fen)] = struct{}{}
		}
	}

	s := Stats{Games: len(games), Plies: plies, UniquePositions: len(seen)}
	if len(games) > 0 {
		s.AvgPliesPerGame = float64(plies) / float64(len(games))
	}
	return s
}

// normalizeFEN drops the move counters so transpositions compare equal.
func normalizeFEN(fen string) string {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return fen
	}
	return strings.Join(parts[:4], " ")
}
