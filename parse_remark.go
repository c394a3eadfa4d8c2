package uci

import "time"

// ParseRemark decodes one line sent by the engine.
func ParseRemark(line string, opts FormatOptions) (Remark, error) {
	s := newTokenStream(line)
	kw, err := s.read()
	if err != nil {
		return nil, err
	}

	var rmk Remark
	switch kw.text {
	case "id":
		rmk, err = readID(s)
	case "uciok":
		rmk = UciOk{}
	case "readyok":
		rmk = ReadyOk{}
	case "bestmove":
		rmk, err = readBestMove(s)
	case "info":
		var info Info
		err = readFields(s, infoFields, &info, opts)
		rmk = info
	case "option":
		rmk, err = readOption(s)
	default:
		return nil, fieldError(KindUnknownMessageKind, kw.text, kw.span)
	}
	if err != nil {
		return nil, err
	}

	if err := s.expectEnd(); err != nil {
		return nil, err
	}
	return rmk, nil
}

func readID(s *tokenStream) (Remark, error) {
	tok, err := s.read()
	if err != nil {
		return nil, err
	}

	var id ID
	switch tok.text {
	case "name":
		id.Field = IDName
	case "author":
		id.Field = IDAuthor
	default:
		return nil, unexpectedToken(tok)
	}

	if id.Value, err = s.readString(atEnd); err != nil {
		return nil, err
	}
	return id, nil
}

func readBestMove(s *tokenStream) (Remark, error) {
	m, err := readMove(s, FormatOptions{})
	if err != nil {
		return nil, err
	}

	bm := BestMove{Move: m}
	tok, ok := s.peek()
	if !ok {
		return bm, nil
	}
	s.pos++
	if tok.text != "ponder" {
		return nil, unexpectedToken(tok)
	}
	ponder, err := readMove(s, FormatOptions{})
	if err != nil {
		return nil, err
	}
	bm.Ponder = &ponder
	return bm, nil
}

func readOption(s *tokenStream) (Remark, error) {
	if err := s.expect("name"); err != nil {
		return nil, err
	}
	name, err := s.readString(atLiteral("type"))
	if err != nil {
		return nil, err
	}
	if err := s.expect("type"); err != nil {
		return nil, err
	}

	tok, err := s.read()
	if err != nil {
		return nil, err
	}

	var info OptionInfo
	switch tok.text {
	case "check":
		info, err = readCheckOption(s)
	case "spin":
		info, err = readSpinOption(s)
	case "combo":
		info, err = readComboOption(s)
	case "button":
		info = ButtonOption{}
	case "string":
		info, err = readStringOption(s)
	default:
		return nil, unexpectedToken(tok)
	}
	if err != nil {
		return nil, err
	}
	return Option{Name: name, Info: info}, nil
}

func readCheckOption(s *tokenStream) (OptionInfo, error) {
	if err := s.expect("default"); err != nil {
		return nil, err
	}
	def, err := s.readBool("true", "false")
	if err != nil {
		return nil, err
	}
	return CheckOption{Default: def}, nil
}

func readSpinOption(s *tokenStream) (OptionInfo, error) {
	var spin SpinOption
	for _, f := range []struct {
		lit string
		dst *int64
	}{
		{"default", &spin.Default},
		{"min", &spin.Min},
		{"max", &spin.Max},
	} {
		if err := s.expect(f.lit); err != nil {
			return nil, err
		}
		v, err := readAs(s, KindInvalidInt, parseInt64)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}
	return spin, nil
}

func readComboOption(s *tokenStream) (OptionInfo, error) {
	if err := s.expect("default"); err != nil {
		return nil, err
	}
	def, err := s.read()
	if err != nil {
		return nil, err
	}

	combo := ComboOption{Default: def.text, Vars: []string{}}
	for {
		if _, ok := s.peek(); !ok {
			return combo, nil
		}
		if err := s.expect("var"); err != nil {
			return nil, err
		}
		v, err := s.read()
		if err != nil {
			return nil, err
		}
		combo.Vars = append(combo.Vars, v.text)
	}
}

func readStringOption(s *tokenStream) (OptionInfo, error) {
	if err := s.expect("default"); err != nil {
		return nil, err
	}
	def, err := s.readString(atEnd)
	if err != nil {
		return nil, err
	}
	return StringOption{Default: def}, nil
}

// readScore decodes the parts of a score in any order. Repeating a part is
// InvalidField. The wdl part is only recognised in the WDL dialect; otherwise
// it ends the score and is seen as the next info field.
func readScore(s *tokenStream, opts FormatOptions) (Score, error) {
	var (
		score Score
		bound bool
	)
	for {
		tok, ok := s.peek()
		if !ok {
			return score, nil
		}

		var dup bool
		switch {
		case tok.text == "cp":
			s.pos++
			v, err := readAs(s, KindInvalidInt, parseInt32)
			if err != nil {
				return Score{}, err
			}
			dup = score.CP != nil
			score.CP = &v
		case tok.text == "mate":
			s.pos++
			v, err := readAs(s, KindInvalidInt, parseInt32)
			if err != nil {
				return Score{}, err
			}
			dup = score.Mate != nil
			score.Mate = &v
		case tok.text == "wdl" && opts.WDL:
			s.pos++
			var wdl WDL
			for _, dst := range []*Permill{&wdl.Win, &wdl.Draw, &wdl.Loss} {
				v, err := readPermill(s, opts)
				if err != nil {
					return Score{}, err
				}
				*dst = v
			}
			dup = score.WDL != nil
			score.WDL = &wdl
		case tok.text == "lowerbound":
			s.pos++
			dup = bound
			bound, score.Kind = true, LowerBound
		case tok.text == "upperbound":
			s.pos++
			dup = bound
			bound, score.Kind = true, UpperBound
		default:
			return score, nil
		}

		if dup {
			return Score{}, fieldError(KindInvalidField, "score", tok.span)
		}
	}
}

func readCurrLine(s *tokenStream, _ FormatOptions) (CurrLine, error) {
	var cl CurrLine
	if tok, ok := s.peek(); ok {
		if cpu, err := parseUint32(tok.text); err == nil {
			s.pos++
			cl.CPU = &cpu
		}
	}
	cl.Moves = s.readMoves()
	return cl, nil
}

func readToEnd(s *tokenStream, _ FormatOptions) (string, error) {
	return s.readString(atEnd)
}

var infoFields = map[string]field[Info]{
	"depth":          ptrField(func(i *Info) **uint32 { return &i.Depth }, readUint32),
	"seldepth":       ptrField(func(i *Info) **uint32 { return &i.SelDepth }, readUint32),
	"time":           ptrField(func(i *Info) **time.Duration { return &i.Time }, readMillis),
	"nodes":          ptrField(func(i *Info) **uint64 { return &i.Nodes }, readUint64),
	"pv":             movesField(func(i *Info) *[]Move { return &i.PV }),
	"multipv":        ptrField(func(i *Info) **uint8 { return &i.MultiPV }, readUint8),
	"score":          ptrField(func(i *Info) **Score { return &i.Score }, readScore),
	"currmove":       ptrField(func(i *Info) **Move { return &i.CurrMove }, readMove),
	"currmovenumber": ptrField(func(i *Info) **uint8 { return &i.CurrMoveNumber }, readUint8),
	"hashfull":       ptrField(func(i *Info) **Permill { return &i.HashFull }, readPermill),
	"nps":            ptrField(func(i *Info) **uint64 { return &i.NPS }, readUint64),
	"tbhits":         ptrField(func(i *Info) **uint64 { return &i.TBHits }, readUint64),
	"sbhits":         ptrField(func(i *Info) **uint64 { return &i.SBHits }, readUint64),
	"cpuload":        ptrField(func(i *Info) **uint16 { return &i.CPULoad }, readUint16),
	"string":         ptrField(func(i *Info) **string { return &i.String }, readToEnd),
	"refutation":     movesField(func(i *Info) *[]Move { return &i.Refutation }),
	"currline":       ptrField(func(i *Info) **CurrLine { return &i.CurrLine }, readCurrLine),
}
