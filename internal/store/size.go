package store

import (
	"fmt"
	"io/fs"
	"path/filepath"
)

// DirSize returns the total size in bytes of all regular files under path.
// A regular file returns its own size. Symlinks are not followed and
// contribute nothing. An empty directory returns 0.
func DirSize(path string) (int64, error) {
	var total int64
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

const (
	kb = 1024
	mb = 1024 * kb
	gb = 1024 * mb
)

// FormatSize renders a byte count as a human-readable string.
// Boundary values belong to the next unit up: exactly 1024 bytes is "1.0 KB".
func FormatSize(size int64) string {
	switch {
	case size < kb:
		return fmt.Sprintf("%d B", size)
	case size < mb:
		return fmt.Sprintf("%.1f KB", float64(size)/kb)
	case size < gb:
		return fmt.Sprintf("%.1f MB", float64(size)/mb)
	default:
		return fmt.Sprintf("%.2f GB", float64(size)/gb)
	}
}
