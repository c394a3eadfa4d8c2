package pack

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ManifestVersion is written into every new manifest.
const ManifestVersion = 1

// ManifestFilename is the name of the manifest inside a transcript directory.
const ManifestFilename = "manifest.json"

// Manifest describes a directory of packed transcripts.
type Manifest struct {
	Version     int       `json:"version"`
	Codec       string    `json:"codec"`
	Transcripts []Entry   `json:"transcripts"`
	BuiltAt     time.Time `json:"built_at"`
}

// Entry describes one packed transcript.
type Entry struct {
	Name     string `json:"name"`
	Source   string `json:"source,omitempty"`
	Commands int    `json:"commands"`
	Remarks  int    `json:"remarks"`
	Bytes    int64  `json:"bytes"` // stored size
}

// Lines returns the number of protocol lines across all transcripts.
func (m *Manifest) Lines() int {
	var n int
	for _, e := range m.Transcripts {
		n += e.Commands + e.Remarks
	}
	return n
}

// WriteManifest writes the manifest to the output directory.
func WriteManifest(dir string, m *Manifest) error {
	path := filepath.Join(dir, ManifestFilename)
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// ReadManifest reads the manifest from a transcript directory.
func ReadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFilename)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}
