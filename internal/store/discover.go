// Package store manages the on-disk model store: discovering converted
// model directories and accounting their sizes.
package store

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ModelEntry is a discovered model directory. Entries are built fresh on
// every Discover call and never cached.
type ModelEntry struct {
	Name      string
	Path      string
	SizeBytes int64
}

// Size returns the entry's size formatted for display.
func (m ModelEntry) Size() string {
	return FormatSize(m.SizeBytes)
}

// IsModelDir reports whether a directory looks like a converted model:
// its immediate contents include config.json or at least one weight file
// (*.safetensors or *.npz).
func IsModelDir(path string) bool {
	entries, err := os.ReadDir(path)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if isModelFile(e.Name()) {
			return true
		}
	}
	return false
}

func isModelFile(name string) bool {
	if name == "config.json" {
		return true
	}
	return strings.HasSuffix(name, ".safetensors") || strings.HasSuffix(name, ".npz")
}

// Discover walks root and returns all model directories beneath it, sorted
// by name. A directory matching the model signature is recorded and its
// subtree pruned, so nested shard folders are never reported on their own.
// A missing root yields an empty list, not an error.
func Discover(root string) ([]ModelEntry, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	var models []ModelEntry
	if err := discoverInto(root, &models); err != nil {
		return nil, err
	}

	sort.Slice(models, func(i, j int) bool {
		return models[i].Name < models[j].Name
	})
	return models, nil
}

func discoverInto(dir string, models *[]ModelEntry) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}

		path := filepath.Join(dir, e.Name())
		if IsModelDir(path) {
			size, err := DirSize(path)
			if err != nil {
				return err
			}
			*models = append(*models, ModelEntry{
				Name:      e.Name(),
				Path:      path,
				SizeBytes: size,
			})
			continue // model dirs are leaves, never descend
		}

		if err := discoverInto(path, models); err != nil {
			return err
		}
	}
	return nil
}
