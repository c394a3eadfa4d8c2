package store

import (
	"bytes"
	"errors"
	"testing"

	"github.com/discochess/uci/internal/codec"
	"github.com/discochess/uci/internal/codec/gzipcodec"
	"github.com/discochess/uci/internal/codec/noopcodec"
	"github.com/discochess/uci/internal/codec/zstdcodec"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "plain", input: "sf_wdl_game"},
		{name: "dots inside", input: "game.2024.01"},
		{name: "empty", input: "", wantErr: true},
		{name: "dot", input: ".", wantErr: true},
		{name: "parent", input: "..", wantErr: true},
		{name: "slash", input: "a/b", wantErr: true},
		{name: "backslash", input: `a\b`, wantErr: true},
		{name: "nul", input: "a\x00b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidName) {
				t.Errorf("ValidateName(%q) error = %v, want ErrInvalidName", tt.input, err)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name  string
		codec codec.Codec
		want  string
	}{
		{name: "none", codec: noopcodec.New(), want: "game.txt"},
		{name: "gzip", codec: gzipcodec.New(), want: "game.txt.gz"},
		{name: "zstd", codec: zstdcodec.New(), want: "game.txt.zst"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filename("game", tt.codec)
			if got != tt.want {
				t.Errorf("Filename() = %q, want %q", got, tt.want)
			}
			name, ok := TrimFilename(got, tt.codec)
			if !ok || name != "game" {
				t.Errorf("TrimFilename(%q) = %q, %v, want %q, true", got, name, ok, "game")
			}
		})
	}
}

func TestTrimFilename_Rejects(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{name: "other extension", file: "game.pgn"},
		{name: "wrong codec", file: "game.txt.gz"},
		{name: "bare suffix", file: ".txt.zst"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if name, ok := TrimFilename(tt.file, zstdcodec.New()); ok {
				t.Errorf("TrimFilename(%q) = %q, true, want false", tt.file, name)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	c := gzipcodec.New()
	want := []byte(">uci\n<uciok\n")

	var buf bytes.Buffer
	w, err := c.Writer(&buf)
	if err != nil {
		t.Fatalf("Writer() error = %v", err)
	}
	if _, err := w.Write(want); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	got, err := Decode(&buf, c)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Decode() = %q, want %q", got, want)
	}

	if _, err := Decode(bytes.NewReader([]byte("plain")), c); err == nil {
		t.Error("Decode() of non-gzip data should fail")
	}
}
