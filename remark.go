package uci

import "time"

// Remark is a message from the engine to the front-end. It is one of ID,
// UciOk, ReadyOk, BestMove, Info or Option.
type Remark interface {
	// Keyword returns the leading token of the remark.
	Keyword() string
	isRemark()
}

// IDField selects which identity an ID remark carries.
type IDField uint8

const (
	IDName IDField = iota
	IDAuthor
)

// String returns the protocol token for the field.
func (f IDField) String() string {
	if f == IDAuthor {
		return "author"
	}
	return "name"
}

type (
	// ID identifies the engine name or author.
	ID struct {
		Field IDField
		Value string
	}

	// UciOk ends the engine's identification.
	UciOk struct{}

	// ReadyOk answers IsReady.
	ReadyOk struct{}

	// BestMove ends a search. Ponder is the move the engine expects in reply.
	BestMove struct {
		Move   Move
		Ponder *Move
	}

	// Option declares an engine option.
	Option struct {
		Name string
		Info OptionInfo
	}
)

// Info reports search progress. Nil fields were not given.
type Info struct {
	Depth          *uint32
	SelDepth       *uint32
	Time           *time.Duration
	Nodes          *uint64
	PV             []Move
	MultiPV        *uint8
	Score          *Score
	CurrMove       *Move
	CurrMoveNumber *uint8
	HashFull       *Permill
	NPS            *uint64
	TBHits         *uint64
	SBHits         *uint64
	CPULoad        *uint16
	String         *string
	Refutation     []Move
	CurrLine       *CurrLine
}

// ScoreKind tells whether a score is exact or a search bound.
type ScoreKind uint8

const (
	Exact ScoreKind = iota
	LowerBound
	UpperBound
)

// String returns the protocol token for the kind; Exact has none.
func (k ScoreKind) String() string {
	switch k {
	case LowerBound:
		return "lowerbound"
	case UpperBound:
		return "upperbound"
	}
	return ""
}

// Score is the "score" field of an info line.
type Score struct {
	CP   *int32
	Mate *int32
	WDL  *WDL
	Kind ScoreKind
}

// WDL is the expected win/draw/loss outcome in permill.
type WDL struct {
	Win  Permill
	Draw Permill
	Loss Permill
}

// CurrLine is the line a search thread is currently calculating.
type CurrLine struct {
	CPU   *uint32
	Moves []Move
}

// OptionInfo is the type and bounds of an option declaration: CheckOption,
// SpinOption, ComboOption, ButtonOption or StringOption.
type OptionInfo interface {
	// Type returns the option type token.
	Type() string
}

type (
	CheckOption struct {
		Default bool
	}

	SpinOption struct {
		Default int64
		Min     int64
		Max     int64
	}

	ComboOption struct {
		Default string
		Vars    []string
	}

	ButtonOption struct{}

	StringOption struct {
		Default string
	}
)

func (CheckOption) Type() string  { return "check" }
func (SpinOption) Type() string   { return "spin" }
func (ComboOption) Type() string  { return "combo" }
func (ButtonOption) Type() string { return "button" }
func (StringOption) Type() string { return "string" }

func (ID) Keyword() string       { return "id" }
func (UciOk) Keyword() string    { return "uciok" }
func (ReadyOk) Keyword() string  { return "readyok" }
func (BestMove) Keyword() string { return "bestmove" }
func (Info) Keyword() string     { return "info" }
func (Option) Keyword() string   { return "option" }

func (ID) isRemark()       {}
func (UciOk) isRemark()    {}
func (ReadyOk) isRemark()  {}
func (BestMove) isRemark() {}
func (Info) isRemark()     {}
func (Option) isRemark()   {}

// Compile-time checks that every variant implements Remark.
var (
	_ Remark = ID{}
	_ Remark = UciOk{}
	_ Remark = ReadyOk{}
	_ Remark = BestMove{}
	_ Remark = Info{}
	_ Remark = Option{}
)
