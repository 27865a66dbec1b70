package batch

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"texmatte/internal/sample"
)

// ManifestEntry represents one image in the output manifest.
type ManifestEntry struct {
	Name    string        `json:"name"`
	Image   string        `json:"image,omitempty"`
	Width   int           `json:"width,omitempty"`
	Height  int           `json:"height,omitempty"`
	Stages  []string      `json:"stages,omitempty"`
	Samples sample.Points `json:"samples,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// WriteManifest writes manifest.json describing every result, creating its
// directory if needed. Image paths are relative to the manifest's directory.
func WriteManifest(path string, results []Result) error {
	dir := filepath.Dir(path)
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		e := ManifestEntry{
			Name:    r.Name,
			Width:   r.Width,
			Height:  r.Height,
			Stages:  r.Applied,
			Samples: r.Samples,
			Error:   r.Error,
		}
		if r.Output != "" {
			if rel, err := filepath.Rel(dir, r.Output); err == nil {
				e.Image = filepath.ToSlash(rel)
			} else {
				e.Image = r.Output
			}
		}
		entries[i] = e
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Wrap(err, "batch: encode manifest")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "batch: mkdir %s", dir)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "batch: write %s", path)
	}
	return nil
}
