package uci

import "time"

// ParseCommand decodes one line sent to the engine.
func ParseCommand(line string, opts FormatOptions) (Command, error) {
	s := newTokenStream(line)
	kw, err := s.read()
	if err != nil {
		return nil, err
	}

	var cmd Command
	switch kw.text {
	case "uci":
		cmd = Uci{}
	case "debug":
		on, err := s.readBool("on", "off")
		if err != nil {
			return nil, err
		}
		cmd = Debug{On: on}
	case "isready":
		cmd = IsReady{}
	case "position":
		cmd, err = readPosition(s, opts)
	case "setoption":
		cmd, err = readSetOption(s)
	case "ucinewgame":
		cmd = UciNewGame{}
	case "stop":
		cmd = Stop{}
	case "ponderhit":
		cmd = PonderHit{}
	case "quit":
		cmd = Quit{}
	case "go":
		var g Go
		err = readFields(s, goFields, &g.GoParams, opts)
		cmd = g
	default:
		return nil, fieldError(KindUnknownMessageKind, kw.text, kw.span)
	}
	if err != nil {
		return nil, err
	}

	if err := s.expectEnd(); err != nil {
		return nil, err
	}
	return cmd, nil
}

func readPosition(s *tokenStream, opts FormatOptions) (Command, error) {
	tok, err := s.read()
	if err != nil {
		return nil, err
	}

	var pos Position
	switch tok.text {
	case "fen":
		b, err := s.readFEN(opts.Chess960)
		if err != nil {
			return nil, err
		}
		pos.Init = BoardPos{Board: b}
	case "startpos":
		pos.Init = StartPos{}
	default:
		return nil, unexpectedToken(tok)
	}

	pos.Moves = []Move{}
	if _, ok := s.peek(); ok {
		if err := s.expect("moves"); err != nil {
			return nil, err
		}
		pos.Moves = s.readMoves()
	}
	return pos, nil
}

func readSetOption(s *tokenStream) (Command, error) {
	if err := s.expect("name"); err != nil {
		return nil, err
	}
	name, err := s.readString(atLiteralOrEnd("value"))
	if err != nil {
		return nil, err
	}

	so := SetOption{Name: name}
	if _, ok := s.peek(); ok {
		if err := s.expect("value"); err != nil {
			return nil, err
		}
		value, err := s.readString(atEnd)
		if err != nil {
			return nil, err
		}
		so.Value = &value
	}
	return so, nil
}

var goFields = map[string]field[GoParams]{
	"searchmoves": movesField(func(p *GoParams) *[]Move { return &p.SearchMoves }),
	"ponder":      flagField(func(p *GoParams) *bool { return &p.Ponder }),
	"wtime":       ptrField(func(p *GoParams) **time.Duration { return &p.WTime }, readMillis),
	"btime":       ptrField(func(p *GoParams) **time.Duration { return &p.BTime }, readMillis),
	"winc":        ptrField(func(p *GoParams) **time.Duration { return &p.WInc }, readMillis),
	"binc":        ptrField(func(p *GoParams) **time.Duration { return &p.BInc }, readMillis),
	"movestogo":   ptrField(func(p *GoParams) **uint32 { return &p.MovesToGo }, readUint32),
	"depth":       ptrField(func(p *GoParams) **uint32 { return &p.Depth }, readUint32),
	"nodes":       ptrField(func(p *GoParams) **uint32 { return &p.Nodes }, readUint32),
	"mate":        ptrField(func(p *GoParams) **uint32 { return &p.Mate }, readUint32),
	"movetime":    ptrField(func(p *GoParams) **time.Duration { return &p.MoveTime }, readMillis),
	"infinite":    flagField(func(p *GoParams) *bool { return &p.Infinite }),
}
