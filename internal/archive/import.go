package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/msalah0e/frond/internal/store"
)

// ImportResult is the outcome of importing an archive into the model store.
type ImportResult struct {
	Success bool
	Message string
	Dest    string
}

func importFailure(format string, args ...any) *ImportResult {
	return &ImportResult{Message: fmt.Sprintf(format, args...)}
}

// Import validates archivePath and extracts it into outputRoot.
//
// An archive with exactly one top-level folder keeps that folder as the
// model directory. A flat archive (loose files, or several top-level
// folders) is extracted into a directory named after the archive file's
// stem. Either way the destination must not already exist; collisions fail
// without touching existing contents.
func Import(archivePath, outputRoot string) *ImportResult {
	info, err := os.Stat(archivePath)
	if err != nil || !info.Mode().IsRegular() {
		return importFailure("No file provided. Please supply a .zip archive.")
	}

	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return importFailure("Corrupted zip file. Please re-export the model and try again.")
	}
	defer zr.Close()

	if !containsModelFiles(zr.File) {
		return importFailure("Invalid model zip: no config.json or weight files found.")
	}

	for _, f := range zr.File {
		if !entryPathSafe(f.Name) {
			return importFailure("Invalid model zip: unsafe entry path %q.", f.Name)
		}
	}

	topDirs := topLevelDirs(zr.File)

	var name, dest, extractRoot string
	if len(topDirs) == 1 {
		// Already wrapped in a single folder: keep it.
		name = topDirs[0]
		dest = filepath.Join(outputRoot, name)
		extractRoot = outputRoot
	} else {
		// Flat archive (or multiple siblings): wrap in a directory named
		// after the archive file.
		name = strings.TrimSuffix(filepath.Base(archivePath), filepath.Ext(archivePath))
		dest = filepath.Join(outputRoot, name)
		extractRoot = dest
	}

	if _, err := os.Stat(dest); err == nil {
		return importFailure("Model %q already exists in %s. Delete it first or rename the archive.", name, outputRoot)
	}

	if err := os.MkdirAll(extractRoot, 0o755); err != nil {
		return importFailure("Failed to create destination: %v", err)
	}

	for _, f := range zr.File {
		if err := extractEntry(f, extractRoot); err != nil {
			return importFailure("Failed to extract %s: %v", f.Name, err)
		}
	}

	size, err := store.DirSize(dest)
	if err != nil {
		return importFailure("Failed to stat imported model: %v", err)
	}

	return &ImportResult{
		Success: true,
		Message: fmt.Sprintf("Model %q imported successfully!\n\nPath: %s\nSize: %s", name, dest, store.FormatSize(size)),
		Dest:    dest,
	}
}

// containsModelFiles reports whether any entry looks like part of a model.
func containsModelFiles(files []*zip.File) bool {
	for _, f := range files {
		name := f.Name
		if strings.HasSuffix(name, "config.json") ||
			strings.HasSuffix(name, ".safetensors") ||
			strings.HasSuffix(name, ".npz") {
			return true
		}
	}
	return false
}

// topLevelDirs returns the distinct first path segments among entries that
// contain a path separator.
func topLevelDirs(files []*zip.File) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, f := range files {
		name := strings.TrimPrefix(f.Name, "./")
		if i := strings.Index(name, "/"); i > 0 {
			top := name[:i]
			if !seen[top] {
				seen[top] = true
				dirs = append(dirs, top)
			}
		}
	}
	return dirs
}

// entryPathSafe rejects absolute paths and parent-directory escapes.
func entryPathSafe(name string) bool {
	if strings.HasPrefix(name, "/") {
		return false
	}
	clean := filepath.Clean(filepath.FromSlash(name))
	return clean != ".." && !strings.HasPrefix(clean, ".."+string(os.PathSeparator))
}

func extractEntry(f *zip.File, root string) error {
	target := filepath.Join(root, filepath.FromSlash(f.Name))

	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
