package pack

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/discochess/uci/internal/codec/gzipcodec"
	"github.com/discochess/uci/internal/codec/noopcodec"
	"github.com/discochess/uci/internal/codec/zstdcodec"
	"github.com/discochess/uci/internal/store/diskstore"
)

const stockfishLog = `>> uci
<< id name Stockfish 16.1
<< uciok
>> position startpos moves e2e4
>> go depth 1
<< info depth 1 seldepth 1 score cp 30 nodes 20 pv e7e5
<< bestmove e7e5
`

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestPacker_Pack(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "packed")

	// A gzip source is decompressed before packing.
	var gz strings.Builder
	w, err := gzipcodec.New().Writer(&gz)
	if err != nil {
		t.Fatalf("Writer() error = %v", err)
	}
	w.Write([]byte(">isready\n<readyok\n"))
	w.Close()

	sources := []string{
		writeFile(t, src, "sf.log", []byte(stockfishLog)),
		writeFile(t, src, "ready.txt.gz", []byte(gz.String())),
	}

	var updates []Progress
	p := New(
		WithOutputDir(out),
		WithCodec(zstdcodec.New()),
		WithWorkers(2),
		WithProgress(func(pr Progress) { updates = append(updates, pr) }),
	)
	m, err := p.Pack(context.Background(), sources)
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}

	if m.Version != ManifestVersion || m.Codec != "zstd" {
		t.Errorf("manifest = %+v", m)
	}
	if len(m.Transcripts) != 2 {
		t.Fatalf("manifest has %d transcripts, want 2", len(m.Transcripts))
	}
	if m.Transcripts[0].Name != "ready" || m.Transcripts[1].Name != "sf" {
		t.Errorf("transcripts not sorted by name: %+v", m.Transcripts)
	}
	if sf := m.Transcripts[1]; sf.Commands != 3 || sf.Remarks != 4 || sf.Source != "sf.log" {
		t.Errorf("sf entry = %+v", sf)
	}
	if m.Lines() != 9 {
		t.Errorf("Lines() = %d, want 9", m.Lines())
	}

	info, err := os.Stat(filepath.Join(out, "sf.txt.zst"))
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size() != m.Transcripts[1].Bytes {
		t.Errorf("entry bytes = %d, file size = %d", m.Transcripts[1].Bytes, info.Size())
	}

	st, err := diskstore.New(out, zstdcodec.New())
	if err != nil {
		t.Fatalf("diskstore.New() error = %v", err)
	}
	data, err := st.ReadTranscript(context.Background(), "sf")
	if err != nil {
		t.Fatalf("ReadTranscript() error = %v", err)
	}
	if !strings.HasPrefix(string(data), ">uci\n<id name Stockfish 16.1\n") {
		t.Errorf("ReadTranscript() = %q", data)
	}

	read, err := ReadManifest(out)
	if err != nil {
		t.Fatalf("ReadManifest() error = %v", err)
	}
	if len(read.Transcripts) != 2 || read.Codec != "zstd" {
		t.Errorf("ReadManifest() = %+v", read)
	}

	if len(updates) != 3 {
		t.Fatalf("got %d progress updates, want 3", len(updates))
	}
	last := updates[len(updates)-1]
	if last.Phase != "done" || last.FilesDone != 2 || last.Lines != 9 {
		t.Errorf("final progress = %+v", last)
	}

	leftovers, _ := filepath.Glob(filepath.Join(out, ".pack-*"))
	if len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}
}

func TestPacker_PackErrors(t *testing.T) {
	src := t.TempDir()
	good := writeFile(t, src, "a.log", []byte(">uci\n"))

	tests := []struct {
		name    string
		sources []string
		wantErr error
	}{
		{name: "no sources", wantErr: ErrNoSources},
		{
			name:    "duplicate names",
			sources: []string{good, writeFile(t, src, "a.txt", []byte(">uci\n"))},
			wantErr: ErrDuplicateName,
		},
		{
			name:    "unrecognized line",
			sources: []string{writeFile(t, src, "bad.log", []byte("hello\n"))},
			wantErr: ErrUnrecognizedLine,
		},
		{
			name:    "missing source",
			sources: []string{filepath.Join(src, "missing.log")},
			wantErr: os.ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := t.TempDir()
			_, err := New(WithOutputDir(out), WithCodec(noopcodec.New())).Pack(context.Background(), tt.sources)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Pack() error = %v, want %v", err, tt.wantErr)
			}
			if _, err := os.Stat(filepath.Join(out, ManifestFilename)); err == nil {
				t.Error("manifest written for a failed pack")
			}
			leftovers, _ := filepath.Glob(filepath.Join(out, ".pack-*"))
			if len(leftovers) != 0 {
				t.Errorf("temp files left behind: %v", leftovers)
			}
		})
	}
}

func TestPacker_PackCanceled(t *testing.T) {
	src := writeFile(t, t.TempDir(), "a.log", []byte(">uci\n"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(WithOutputDir(t.TempDir())).Pack(ctx, []string{src})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Pack() error = %v, want context.Canceled", err)
	}
}

func TestNameFor(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "sf.log", want: "sf"},
		{path: "logs/sf.txt", want: "sf"},
		{path: "logs/sf.txt.zst", want: "sf"},
		{path: "sf.log.gz", want: "sf"},
		{path: "game.2024-01-01.log", want: "game.2024-01-01"},
		{path: "session", want: "session"},
		{path: "notes.md", want: "notes.md"},
	}
	for _, tt := range tests {
		if got := NameFor(tt.path); got != tt.want {
			t.Errorf("NameFor(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := &Manifest{
		Version: ManifestVersion,
		Codec:   "gzip",
		Transcripts: []Entry{
			{Name: "g1", Commands: 2, Remarks: 5, Bytes: 120},
		},
		BuiltAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	if err := WriteManifest(dir, want); err != nil {
		t.Fatalf("WriteManifest() error = %v", err)
	}
	got, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("ReadManifest() error = %v", err)
	}
	if !got.BuiltAt.Equal(want.BuiltAt) || got.Codec != want.Codec || got.Transcripts[0] != want.Transcripts[0] {
		t.Errorf("ReadManifest() = %+v, want %+v", got, want)
	}

	if _, err := ReadManifest(t.TempDir()); err == nil {
		t.Error("ReadManifest() of empty dir succeeded")
	}
}
