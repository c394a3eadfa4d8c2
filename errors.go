package uci

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per ParseError kind. A *ParseError matches the
// sentinel of its kind under errors.Is.
var (
	ErrUnexpectedToken    = errors.New("uci: unexpected token")
	ErrUnexpectedEnd      = errors.New("uci: unexpected end")
	ErrUnterminatedString = errors.New("uci: unterminated string")
	ErrUnknownMessageKind = errors.New("uci: unknown message kind")
	ErrDuplicateField     = errors.New("uci: duplicate field")
	ErrUnknownField       = errors.New("uci: unknown field")
	ErrInvalidField       = errors.New("uci: invalid field")
	ErrInvalidMove        = errors.New("uci: invalid move")
	ErrInvalidInt         = errors.New("uci: invalid integer")
)

// Kind classifies a ParseError.
type Kind uint8

const (
	KindUnexpectedToken Kind = iota
	KindUnexpectedEnd
	KindUnterminatedString
	KindUnknownMessageKind
	KindDuplicateField
	KindUnknownField
	KindInvalidField
	KindInvalidMove
	KindInvalidFEN
	KindInvalidInt
	KindInvalidPermill
)

var kindNames = [...]string{
	KindUnexpectedToken:    "unexpected token",
	KindUnexpectedEnd:      "unexpected end",
	KindUnterminatedString: "unterminated string",
	KindUnknownMessageKind: "unknown message kind",
	KindDuplicateField:     "duplicate field",
	KindUnknownField:       "unknown field",
	KindInvalidField:       "invalid field",
	KindInvalidMove:        "failed to parse move",
	KindInvalidFEN:         "failed to parse fen",
	KindInvalidInt:         "failed to parse int",
	KindInvalidPermill:     "failed to parse permill",
}

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// sentinel returns the package sentinel matching k.
func (k Kind) sentinel() error {
	switch k {
	case KindUnexpectedToken:
		return ErrUnexpectedToken
	case KindUnexpectedEnd:
		return ErrUnexpectedEnd
	case KindUnterminatedString:
		return ErrUnterminatedString
	case KindUnknownMessageKind:
		return ErrUnknownMessageKind
	case KindDuplicateField:
		return ErrDuplicateField
	case KindUnknownField:
		return ErrUnknownField
	case KindInvalidField:
		return ErrInvalidField
	case KindInvalidMove:
		return ErrInvalidMove
	case KindInvalidFEN:
		return ErrInvalidFEN
	case KindInvalidInt:
		return ErrInvalidInt
	case KindInvalidPermill:
		return ErrInvalidPermill
	}
	return nil
}

// Span is a half-open byte range [Start, End) into the decoded line.
type Span struct {
	Start int
	End   int
}

// String formats the span as "start..end".
func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// ParseError is the single error type returned by the decoders.
//
// Text holds the offending token for UnexpectedToken, UnknownMessageKind and
// UnknownField, and the field name for DuplicateField and InvalidField.
// Err holds the collaborator's error for the InvalidMove, InvalidFEN,
// InvalidInt and InvalidPermill kinds and is returned by Unwrap.
type ParseError struct {
	Span Span
	Kind Kind
	Text string
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("error at %s: %s", e.Span, e.describe())
}

func (e *ParseError) describe() string {
	switch e.Kind {
	case KindUnexpectedToken:
		return fmt.Sprintf("unexpected token %q", e.Text)
	case KindUnknownMessageKind, KindDuplicateField, KindUnknownField, KindInvalidField:
		return fmt.Sprintf("%s %q", e.Kind, e.Text)
	case KindInvalidMove, KindInvalidFEN, KindInvalidInt, KindInvalidPermill:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Kind, e.Err)
		}
	}
	return e.Kind.String()
}

// Unwrap returns the wrapped collaborator error, if any.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel error for e's kind.
func (e *ParseError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func newError(kind Kind, span Span) *ParseError {
	return &ParseError{Span: span, Kind: kind}
}

func unexpectedToken(tok token) *ParseError {
	return &ParseError{Span: tok.span, Kind: KindUnexpectedToken, Text: tok.text}
}

func fieldError(kind Kind, name string, span Span) *ParseError {
	return &ParseError{Span: span, Kind: kind, Text: name}
}
