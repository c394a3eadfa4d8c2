package fen

import (
	"errors"
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Record
		wantErr bool
	}{
		{
			name:  "starting position",
			input: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			want: Record{
				Placement: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
				Turn:      "w", Castling: "KQkq", EnPassant: "-", HalfMove: "0", FullMove: "1",
			},
		},
		{
			name:  "mixed whitespace",
			input: "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR\tb  KQkq e3 0\r\n1",
			want: Record{
				Placement: "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR",
				Turn:      "b", Castling: "KQkq", EnPassant: "e3", HalfMove: "0", FullMove: "1",
			},
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "too few fields",
			input:   "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w",
			wantErr: true,
		},
		{
			name:    "invalid side to move",
			input:   "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
			wantErr: true,
		},
		{
			name:    "invalid piece placement - wrong rank count",
			input:   "rnbqkbnr/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			wantErr: true,
		},
		{
			name:    "invalid piece placement - wrong square count",
			input:   "rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			wantErr: true,
		},
		{
			name:    "invalid piece letter",
			input:   "rnbqkbnr/ppppxppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Split() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFEN) {
					t.Errorf("Split() error = %v, want ErrInvalidFEN", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Split() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"   ", nil},
		{"a", []string{"a"}},
		{" a\tb\n\fc\r", []string{"a", "b", "c"}},
		{"a b", []string{"a b"}},
	}

	for _, tt := range tests {
		got := Fields(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Fields(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseCastling(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		shredder bool
		want     Castling
		wantErr  bool
	}{
		{name: "none", input: "-", want: NoCastling},
		{name: "all standard", input: "KQkq", want: Castling{White: FileH | FileA, Black: FileH | FileA}},
		{name: "any order", input: "qK", want: Castling{White: FileH, Black: FileA}},
		{name: "white kingside only", input: "K", want: Castling{White: FileH}},
		{name: "shredder all", input: "HAha", shredder: true, want: Castling{White: FileH | FileA, Black: FileH | FileA}},
		{name: "shredder inner files", input: "GBgb", shredder: true, want: Castling{White: 1<<6 | 1<<1, Black: 1<<6 | 1<<1}},
		{name: "shredder none", input: "-", shredder: true, want: NoCastling},
		{name: "empty", input: "", wantErr: true},
		{name: "repeated", input: "KK", wantErr: true},
		{name: "file letter in standard", input: "HAha", wantErr: true},
		{name: "standard letter in shredder", input: "KQkq", shredder: true, wantErr: true},
		{name: "three rights for one side", input: "HBA", shredder: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCastling(tt.input, tt.shredder)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseCastling() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseCastling() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCastlingFormat(t *testing.T) {
	tests := []struct {
		name     string
		c        Castling
		shredder bool
		want     string
	}{
		{name: "none standard", c: NoCastling, want: "-"},
		{name: "none shredder", c: NoCastling, shredder: true, want: "-"},
		{name: "all standard", c: Castling{White: FileH | FileA, Black: FileH | FileA}, want: "KQkq"},
		{name: "all shredder", c: Castling{White: FileH | FileA, Black: FileH | FileA}, shredder: true, want: "HAha"},
		{name: "black only", c: Castling{Black: FileA}, want: "q"},
		{name: "inner files shredder", c: Castling{White: 1<<6 | 1<<1, Black: 1 << 2}, shredder: true, want: "GBc"},
		{name: "inner files standard", c: Castling{White: 1 << 6}, want: "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Format(tt.shredder); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}
