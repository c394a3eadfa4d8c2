package codec_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/discochess/uci/internal/codec"
	"github.com/discochess/uci/internal/codec/gzipcodec"
	"github.com/discochess/uci/internal/codec/noopcodec"
	"github.com/discochess/uci/internal/codec/zstdcodec"
)

var codecs = []struct {
	codec codec.Codec
	name  string
	ext   string
}{
	{noopcodec.New(), "none", ""},
	{gzipcodec.New(), "gzip", "gz"},
	{gzipcodec.NewLevel(9), "gzip", "gz"},
	{zstdcodec.New(), "zstd", "zst"},
	{zstdcodec.NewLevel(zstd.SpeedBestCompression), "zstd", "zst"},
}

func compress(t *testing.T, c codec.Codec, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := c.Writer(&buf)
	if err != nil {
		t.Fatalf("Writer() error = %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return buf.Bytes()
}

func decompress(t *testing.T, c codec.Codec, data []byte) []byte {
	t.Helper()
	r, err := c.Reader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Reader() error = %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return got
}

func TestCodec_Names(t *testing.T) {
	for _, tc := range codecs {
		if got := tc.codec.Name(); got != tc.name {
			t.Errorf("Name() = %q, want %q", got, tc.name)
		}
		if got := tc.codec.Extension(); got != tc.ext {
			t.Errorf("%s: Extension() = %q, want %q", tc.name, got, tc.ext)
		}
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	inputs := map[string][]byte{
		"empty":      {},
		"transcript": []byte(">uci\n<id name Stockfish 16\n<uciok\n>isready\n<readyok\n"),
		"large":      []byte(strings.Repeat("<info depth 20 seldepth 31 multipv 1 score cp 18 nodes 1048576 pv e2e4 e7e5\n", 2000)),
	}

	for _, tc := range codecs {
		for name, original := range inputs {
			t.Run(tc.name+"/"+name, func(t *testing.T) {
				packed := compress(t, tc.codec, original)
				if tc.ext != "" && name == "large" && len(packed) >= len(original) {
					t.Errorf("expected compression, got %d bytes from %d", len(packed), len(original))
				}
				got := decompress(t, tc.codec, packed)
				if !bytes.Equal(got, original) {
					t.Errorf("round trip mismatch: got %d bytes, want %d", len(got), len(original))
				}
			})
		}
	}
}

func TestCodec_Reader_InvalidData(t *testing.T) {
	invalid := []byte("this is not compressed at all")

	t.Run("gzip", func(t *testing.T) {
		if _, err := gzipcodec.New().Reader(bytes.NewReader(invalid)); err == nil {
			t.Error("Reader() expected error for invalid gzip data, got nil")
		}
	})

	t.Run("zstd", func(t *testing.T) {
		r, err := zstdcodec.New().Reader(bytes.NewReader(invalid))
		if err != nil {
			return
		}
		defer r.Close()
		if _, err := io.ReadAll(r); err == nil {
			t.Error("ReadAll() expected error for invalid zstd data, got nil")
		}
	})
}

func TestGzipCodec_InvalidLevel(t *testing.T) {
	if _, err := gzipcodec.NewLevel(42).Writer(io.Discard); err == nil {
		t.Error("Writer() with level 42 should fail")
	}
}
