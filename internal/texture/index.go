package texture

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// extRank orders formats for the same stem. Formats that carry alpha win
// over JPEG.
var extRank = map[string]int{
	".jpg":  1,
	".jpeg": 1,
	".webp": 2,
	".tga":  3,
	".png":  4,
}

// Index maps lowercase file stems to image paths under a directory tree.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

// BuildIndex walks dir recursively and records every supported image.
// When two files share a stem, the one with the higher extRank is kept.
// Directories listed in skip, such as an output folder nested inside dir,
// are not descended into.
func BuildIndex(dir string, skip ...string) *Index {
	idx := &Index{entries: make(map[string]string)}

	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		if s != "" {
			skipped[cleanAbs(s)] = true
		}
	}

	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != dir && skipped[cleanAbs(path)] {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		rank, ok := extRank[ext]
		if !ok {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel)))

		existing, exists := idx.entries[stem]
		if !exists || rank > extRank[strings.ToLower(filepath.Ext(existing))] {
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

func cleanAbs(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// ResolvePath returns the indexed path for a name such as "wall/brick.png"
// or "wall\\brick", or ("", false).
func (idx *Index) ResolvePath(name string) (string, bool) {
	name = strings.ReplaceAll(name, "\\", "/")
	stem := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))

	path, ok := idx.entries[stem]
	return path, ok
}

// Stems returns every indexed stem in sorted order.
func (idx *Index) Stems() []string {
	stems := make([]string, 0, len(idx.entries))
	for s := range idx.entries {
		stems = append(stems, s)
	}
	sort.Strings(stems)
	return stems
}

// Len returns the number of indexed images.
func (idx *Index) Len() int {
	return len(idx.entries)
}
