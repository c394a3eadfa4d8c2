package uci

import "time"

// Command is a message from the front-end to the engine. It is one of Uci,
// Debug, IsReady, Position, SetOption, UciNewGame, Stop, PonderHit, Quit or
// Go.
type Command interface {
	// Keyword returns the leading token of the command.
	Keyword() string
	isCommand()
}

type (
	// Uci asks the engine to identify itself and switch to UCI mode.
	Uci struct{}

	// Debug switches engine debug output on or off.
	Debug struct {
		On bool
	}

	// IsReady asks the engine to answer "readyok" once it is idle.
	IsReady struct{}

	// Position sets up a position and plays Moves from it.
	Position struct {
		Init  InitPos
		Moves []Move
	}

	// SetOption changes an engine option. Value is nil when no "value" part
	// is given, as for buttons.
	SetOption struct {
		Name  string
		Value *string
	}

	// UciNewGame tells the engine the next search is from a new game.
	UciNewGame struct{}

	// Stop ends the current search.
	Stop struct{}

	// PonderHit tells a pondering engine the expected move was played.
	PonderHit struct{}

	// Quit asks the engine to exit.
	Quit struct{}

	// Go starts a search.
	Go struct {
		GoParams
	}
)

// GoParams are the fields of a "go" command. Nil pointers and a nil
// SearchMoves mean the field was not given.
type GoParams struct {
	SearchMoves []Move
	Ponder      bool
	WTime       *time.Duration
	BTime       *time.Duration
	WInc        *time.Duration
	BInc        *time.Duration
	MovesToGo   *uint32
	Depth       *uint32
	Nodes       *uint32
	Mate        *uint32
	MoveTime    *time.Duration
	Infinite    bool
}

// InitPos is the starting point of a Position command: StartPos or
// BoardPos.
type InitPos interface {
	isInitPos()
}

// StartPos is the standard starting position.
type StartPos struct{}

// BoardPos is a position given as FEN.
type BoardPos struct {
	Board Board
}

func (StartPos) isInitPos() {}
func (BoardPos) isInitPos() {}

func (Uci) Keyword() string        { return "uci" }
func (Debug) Keyword() string      { return "debug" }
func (IsReady) Keyword() string    { return "isready" }
func (Position) Keyword() string   { return "position" }
func (SetOption) Keyword() string  { return "setoption" }
func (UciNewGame) Keyword() string { return "ucinewgame" }
func (Stop) Keyword() string       { return "stop" }
func (PonderHit) Keyword() string  { return "ponderhit" }
func (Quit) Keyword() string       { return "quit" }
func (Go) Keyword() string         { return "go" }

func (Uci) isCommand()        {}
func (Debug) isCommand()      {}
func (IsReady) isCommand()    {}
func (Position) isCommand()   {}
func (SetOption) isCommand()  {}
func (UciNewGame) isCommand() {}
func (Stop) isCommand()       {}
func (PonderHit) isCommand()  {}
func (Quit) isCommand()       {}
func (Go) isCommand()         {}

// Compile-time checks that every variant implements Command.
var (
	_ Command = Uci{}
	_ Command = Debug{}
	_ Command = IsReady{}
	_ Command = Position{}
	_ Command = SetOption{}
	_ Command = UciNewGame{}
	_ Command = Stop{}
	_ Command = PonderHit{}
	_ Command = Quit{}
	_ Command = Go{}
)

// StringPtr returns a pointer to s, for optional text fields.
func StringPtr(s string) *string {
	return &s
}

// Ptr returns a pointer to v, for optional numeric fields.
func Ptr[T any](v T) *T {
	return &v
}
