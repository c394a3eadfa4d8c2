package pack

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

// Progress tracks pack and upload progress.
type Progress struct {
	Phase        string
	Name         string
	FilesDone    int
	FilesTotal   int
	Lines        int
	BytesRead    int64
	BytesWritten int64
	StartTime    time.Time
	Error        error
}

// ProgressFunc is called with progress updates. Calls are serialized.
type ProgressFunc func(Progress)

// countingWriter counts bytes written through it, per file and in total.
type countingWriter struct {
	w     io.Writer
	n     int64
	total *atomic.Int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	if cw.total != nil {
		cw.total.Add(int64(n))
	}
	return n, err
}

// countingReader counts bytes read through it.
type countingReader struct {
	r     io.Reader
	total *atomic.Int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.total.Add(int64(n))
	return n, err
}

// FormatBytes formats bytes as human-readable string.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// FormatDuration formats duration as human-readable string.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
}

// NewProgressPrinter returns a ProgressFunc that prints updates to w.
func NewProgressPrinter(w io.Writer) ProgressFunc {
	return func(p Progress) {
		switch p.Phase {
		case "pack":
			fmt.Fprintf(w, "\r[Pack] %d / %d transcripts, %d lines", p.FilesDone, p.FilesTotal, p.Lines)
		case "upload":
			fmt.Fprintf(w, "\r[Upload] %d / %d files", p.FilesDone, p.FilesTotal)
		case "done":
			fmt.Fprintf(w, "\n[Done] %d transcripts, %d lines, %s -> %s (%s)\n",
				p.FilesDone, p.Lines, FormatBytes(p.BytesRead), FormatBytes(p.BytesWritten),
				FormatDuration(time.Since(p.StartTime)))
		case "error":
			fmt.Fprintf(w, "\n[Error] %v\n", p.Error)
		}
	}
}
