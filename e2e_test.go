//go:build e2e

package uci_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
)

// TestE2E_ReplayCompressed compresses the recorded sessions under testdata
// with zstd and replays them through the CLI.
func TestE2E_ReplayCompressed(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.txt"))
	if err != nil || len(paths) == 0 {
		t.Fatalf("no transcripts in testdata (err = %v)", err)
	}

	dir := t.TempDir()
	var names []string
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		name := strings.TrimSuffix(filepath.Base(path), ".txt")
		compressFile(t, filepath.Join(dir, name+".txt.zst"), data)
		names = append(names, name)
	}

	t.Log("Replaying compressed transcripts...")
	out := run(t, "replay", "--data-dir", dir, "--codec", "zstd", "--metrics")
	for _, name := range names {
		if !strings.Contains(out, name+": ok") {
			t.Errorf("replay output missing %q:\n%s", name+": ok", out)
		}
	}
	if !strings.Contains(out, "uci_transcript_lines_total") {
		t.Errorf("replay output missing metrics:\n%s", out)
	}

	t.Log("Listing transcripts...")
	out = run(t, "stats", "--data-dir", dir, "--codec", "zstd")
	for _, name := range names {
		if !strings.Contains(out, name) {
			t.Errorf("stats output missing %q:\n%s", name, out)
		}
	}
}

// TestE2E_PackAndReplay packs the recorded sessions with gzip and replays
// the packed directory.
func TestE2E_PackAndReplay(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.txt"))
	if err != nil || len(paths) == 0 {
		t.Fatalf("no transcripts in testdata (err = %v)", err)
	}

	dir := t.TempDir()
	t.Log("Packing transcripts...")
	out := run(t, append([]string{"pack", "-q", "--data-dir", dir, "--codec", "gzip"}, paths...)...)
	if !strings.Contains(out, "Packed") {
		t.Errorf("pack output missing summary:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "manifest.json")); err != nil {
		t.Fatalf("manifest missing: %v", err)
	}

	t.Log("Replaying packed transcripts...")
	out = run(t, "replay", "--data-dir", dir, "--codec", "gzip")
	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".txt")
		if !strings.Contains(out, name+": ok") {
			t.Errorf("replay output missing %q:\n%s", name+": ok", out)
		}
	}
}

func compressFile(t *testing.T, path string, data []byte) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer f.Close()

	w, err := zstd.NewWriter(f)
	if err != nil {
		t.Fatalf("zstd.NewWriter() error = %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "./cmd/uci"}, args...)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("uci %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return string(out)
}
