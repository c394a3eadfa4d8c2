package uci

import "github.com/discochess/uci/internal/fen"

type token struct {
	text string
	span Span
}

// tokenStream splits one protocol line into whitespace-separated tokens and
// keeps the byte offsets of each so errors can point back into the line.
type tokenStream struct {
	line   string
	tokens []token
	pos    int
}

func newTokenStream(line string) *tokenStream {
	s := &tokenStream{line: line}
	start := -1
	for i := 0; i < len(line); i++ {
		if fen.IsSpace(line[i]) {
			if start >= 0 {
				s.tokens = append(s.tokens, token{text: line[start:i], span: Span{start, i}})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		s.tokens = append(s.tokens, token{text: line[start:], span: Span{start, len(line)}})
	}
	return s
}

// endSpan is the empty span at the end of the line.
func (s *tokenStream) endSpan() Span {
	return Span{len(s.line), len(s.line)}
}

func (s *tokenStream) peek() (token, bool) {
	if s.pos >= len(s.tokens) {
		return token{}, false
	}
	return s.tokens[s.pos], true
}

func (s *tokenStream) read() (token, error) {
	tok, ok := s.peek()
	if !ok {
		return token{}, newError(KindUnexpectedEnd, s.endSpan())
	}
	s.pos++
	return tok, nil
}

// readAs reads one token and decodes it with parse. A decode failure becomes
// a ParseError of the given kind spanning the token.
func readAs[T any](s *tokenStream, kind Kind, parse func(string) (T, error)) (T, error) {
	var zero T
	tok, err := s.read()
	if err != nil {
		return zero, err
	}
	v, err := parse(tok.text)
	if err != nil {
		return zero, &ParseError{Span: tok.span, Kind: kind, Text: tok.text, Err: err}
	}
	return v, nil
}

func (s *tokenStream) readBool(trueTok, falseTok string) (bool, error) {
	tok, err := s.read()
	if err != nil {
		return false, err
	}
	switch tok.text {
	case trueTok:
		return true, nil
	case falseTok:
		return false, nil
	}
	return false, unexpectedToken(tok)
}

// readString reads the raw text from the cursor up to, but excluding, the
// first position where stop reports true. stop is called with the next token
// and whether one exists. The original spacing between tokens is kept, and
// the result may be empty. Running out of input before stop accepts the end
// is UnterminatedString.
func (s *tokenStream) readString(stop func(text string, ok bool) bool) (string, error) {
	start := len(s.line)
	if tok, ok := s.peek(); ok {
		start = tok.span.Start
	}
	end := start
	for {
		tok, ok := s.peek()
		if stop(tok.text, ok) {
			break
		}
		if !ok {
			return "", newError(KindUnterminatedString, Span{start, len(s.line)})
		}
		end = tok.span.End
		s.pos++
	}
	return s.line[start:end], nil
}

// atEnd stops a string at the end of the line.
func atEnd(_ string, ok bool) bool {
	return !ok
}

// atLiteral stops a string at lit. The end of the line does not stop it.
func atLiteral(lit string) func(string, bool) bool {
	return func(text string, ok bool) bool {
		return ok && text == lit
	}
}

// atLiteralOrEnd stops a string at lit or at the end of the line.
func atLiteralOrEnd(lit string) func(string, bool) bool {
	return func(text string, ok bool) bool {
		return !ok || text == lit
	}
}

func (s *tokenStream) readFEN(chess960 bool) (Board, error) {
	var first, last token
	for i := 0; i < fen.FieldCount; i++ {
		tok, err := s.read()
		if err != nil {
			return Board{}, err
		}
		if i == 0 {
			first = tok
		}
		last = tok
	}
	span := Span{first.span.Start, last.span.End}
	text := s.line[span.Start:span.End]
	b, err := ParseBoard(text, chess960)
	if err != nil {
		return Board{}, &ParseError{Span: span, Kind: KindInvalidFEN, Text: text, Err: err}
	}
	return b, nil
}

// readMoves reads moves until the first token that is not a move, which is
// left unread. The result is never nil.
func (s *tokenStream) readMoves() []Move {
	moves := []Move{}
	for {
		tok, ok := s.peek()
		if !ok {
			return moves
		}
		m, err := ParseMove(tok.text)
		if err != nil {
			return moves
		}
		moves = append(moves, m)
		s.pos++
	}
}

func (s *tokenStream) expect(lit string) error {
	tok, err := s.read()
	if err != nil {
		return err
	}
	if tok.text != lit {
		return unexpectedToken(tok)
	}
	return nil
}

func (s *tokenStream) expectEnd() error {
	if tok, ok := s.peek(); ok {
		return unexpectedToken(tok)
	}
	return nil
}
