// Package archive packages model directories as zip archives and imports
// uploaded archives back into the model store.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/msalah0e/frond/internal/store"
)

// ExportResult is the outcome of packaging a model directory.
type ExportResult struct {
	Success     bool
	Message     string
	ArchivePath string
	Size        string
}

func exportFailure(format string, args ...any) *ExportResult {
	return &ExportResult{Message: fmt.Sprintf(format, args...)}
}

// Export packages modelPath into a zip archive in a fresh temporary
// location. The archive has a single top-level entry named after the model
// directory's base name, containing the entire subtree.
func Export(modelPath string) *ExportResult {
	info, err := os.Stat(modelPath)
	if err != nil || !info.IsDir() {
		return exportFailure("Not a model directory: %s", modelPath)
	}
	if !store.IsModelDir(modelPath) {
		return exportFailure("Not a model directory: %s (missing config.json or weight files)", modelPath)
	}

	name := filepath.Base(modelPath)
	stageDir := filepath.Join(os.TempDir(), "frond-export-"+uuid.NewString())
	if err := os.MkdirAll(stageDir, 0o755); err != nil {
		return exportFailure("Failed to create staging directory: %v", err)
	}

	archivePath := filepath.Join(stageDir, name+".zip")
	if err := writeArchive(archivePath, modelPath, name); err != nil {
		os.RemoveAll(stageDir)
		return exportFailure("Failed to create archive: %v", err)
	}

	size, err := store.DirSize(archivePath)
	if err != nil {
		os.RemoveAll(stageDir)
		return exportFailure("Failed to stat archive: %v", err)
	}
	sizeStr := store.FormatSize(size)

	return &ExportResult{
		Success:     true,
		Message:     fmt.Sprintf("Model exported successfully!\n\nArchive: %s\nSize: %s", archivePath, sizeStr),
		ArchivePath: archivePath,
		Size:        sizeStr,
	}
}

func writeArchive(archivePath, modelPath, name string) error {
	f, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	err = filepath.WalkDir(modelPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(modelPath, path)
		if err != nil {
			return err
		}

		w, err := zw.Create(name + "/" + filepath.ToSlash(rel))
		if err != nil {
			return err
		}

		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()

		_, err = io.Copy(w, src)
		return err
	})
	if err != nil {
		zw.Close()
		return err
	}

	return zw.Close()
}
