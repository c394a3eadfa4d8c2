package uci

// field decodes one named field of a record P such as GoParams or Info.
type field[P any] struct {
	isSet func(*P) bool
	read  func(*tokenStream, *P, FormatOptions) error
}

// readFields consumes "name value..." fields until the end of the line.
func readFields[P any](s *tokenStream, fields map[string]field[P], p *P, opts FormatOptions) error {
	for {
		tok, ok := s.peek()
		if !ok {
			return nil
		}
		s.pos++

		f, known := fields[tok.text]
		if !known {
			return fieldError(KindUnknownField, tok.text, tok.span)
		}
		if f.isSet(p) {
			return fieldError(KindDuplicateField, tok.text, tok.span)
		}
		if err := f.read(s, p, opts); err != nil {
			return err
		}
	}
}

// ptrField is an optional field stored behind a pointer.
func ptrField[P, T any](ref func(*P) **T, read func(*tokenStream, FormatOptions) (T, error)) field[P] {
	return field[P]{
		isSet: func(p *P) bool { return *ref(p) != nil },
		read: func(s *tokenStream, p *P, opts FormatOptions) error {
			v, err := read(s, opts)
			if err != nil {
				return err
			}
			*ref(p) = &v
			return nil
		},
	}
}

// movesField is an optional move sequence; nil means absent.
func movesField[P any](ref func(*P) *[]Move) field[P] {
	return field[P]{
		isSet: func(p *P) bool { return *ref(p) != nil },
		read: func(s *tokenStream, p *P, _ FormatOptions) error {
			*ref(p) = s.readMoves()
			return nil
		},
	}
}

// flagField is a field with no value.
func flagField[P any](ref func(*P) *bool) field[P] {
	return field[P]{
		isSet: func(p *P) bool { return *ref(p) },
		read: func(_ *tokenStream, p *P, _ FormatOptions) error {
			*ref(p) = true
			return nil
		},
	}
}
