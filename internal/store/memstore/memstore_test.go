package memstore

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/discochess/uci/internal/store"
)

func TestStore_SetTranscriptCopies(t *testing.T) {
	s := New()
	data := []byte(">uci")
	s.SetTranscript("game", data)
	data[1] = 'X'

	got, err := s.ReadTranscript(context.Background(), "game")
	if err != nil {
		t.Fatalf("ReadTranscript() error = %v", err)
	}
	if string(got) != ">uci" {
		t.Errorf("ReadTranscript() = %q, want %q", got, ">uci")
	}
}

func TestStore_ReadTranscript_NotFound(t *testing.T) {
	_, err := New().ReadTranscript(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("ReadTranscript() error = %v, want ErrNotFound", err)
	}
}

func TestStore_List(t *testing.T) {
	s := New()
	s.SetTranscript("zeta", []byte("abc"))
	s.SetTranscript("alpha", nil)

	got, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []store.Entry{{Name: "alpha", Size: 0}, {Name: "zeta", Size: 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}
