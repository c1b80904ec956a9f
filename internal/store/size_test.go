package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1024*1024 - 1, "1024.0 KB"},
		{1024 * 1024, "1.0 MB"},
		{1024 * 1024 * 3, "3.0 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
		{1024 * 1024 * 1024 * 3 / 2, "1.50 GB"},
	}

	for _, tt := range tests {
		result := FormatSize(tt.bytes)
		if result != tt.expected {
			t.Errorf("FormatSize(%d): expected %q, got %q", tt.bytes, tt.expected, result)
		}
	}
}

func TestDirSize_SingleFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "weights.npz")
	if err := os.WriteFile(path, make([]byte, 100), 0o644); err != nil {
		t.Fatal(err)
	}

	size, err := DirSize(path)
	if err != nil {
		t.Fatalf("DirSize failed: %v", err)
	}
	if size != 100 {
		t.Errorf("expected 100, got %d", size)
	}
}

func TestDirSize_Recursive(t *testing.T) {
	tmpDir := t.TempDir()
	os.MkdirAll(filepath.Join(tmpDir, "sub", "deeper"), 0o755)
	os.WriteFile(filepath.Join(tmpDir, "a"), make([]byte, 10), 0o644)
	os.WriteFile(filepath.Join(tmpDir, "sub", "b"), make([]byte, 20), 0o644)
	os.WriteFile(filepath.Join(tmpDir, "sub", "deeper", "c"), make([]byte, 30), 0o644)

	size, err := DirSize(tmpDir)
	if err != nil {
		t.Fatalf("DirSize failed: %v", err)
	}
	if size != 60 {
		t.Errorf("expected 60, got %d", size)
	}
}

func TestDirSize_EmptyDir(t *testing.T) {
	size, err := DirSize(t.TempDir())
	if err != nil {
		t.Fatalf("DirSize failed: %v", err)
	}
	if size != 0 {
		t.Errorf("expected 0 for empty dir, got %d", size)
	}
}

func TestDirSize_Missing(t *testing.T) {
	if _, err := DirSize(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing path")
	}
}
