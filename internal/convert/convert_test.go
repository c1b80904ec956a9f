package convert

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeEngine records calls and simulates the conversion side effect.
type fakeEngine struct {
	calls    int
	lastSrc  string
	lastDest string
	quantize bool
	bits     int
	err      error
	// bytes written into the fake output dir; simulates partial output
	// when err is also set
	writeBytes int
}

func (f *fakeEngine) Convert(src, dest string, quantize bool, bits int) error {
	f.calls++
	f.lastSrc = src
	f.lastDest = dest
	f.quantize = quantize
	f.bits = bits

	if f.writeBytes > 0 {
		os.MkdirAll(dest, 0o755)
		os.WriteFile(filepath.Join(dest, "config.json"), make([]byte, f.writeBytes), 0o644)
	}
	return f.err
}

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		identifier string
		valid      bool
	}{
		{"org/model", true},
		{"LiquidAI/LFM2-1.2B-RAG", true},
		{"invalidpath", false},
		{"a/b/c", false},
		{"/model", false},
		{"org/", false},
		{"", false},
		{"   ", false},
	}

	for _, tt := range tests {
		err := ValidateIdentifier(tt.identifier)
		if tt.valid && err != nil {
			t.Errorf("ValidateIdentifier(%q): unexpected error %v", tt.identifier, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ValidateIdentifier(%q): expected error", tt.identifier)
		}
	}
}

func TestRun_RejectsBeforeEngine(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"no separator", Request{Identifier: "invalidpath", Quantization: "4-bit"}},
		{"two separators", Request{Identifier: "a/b/c", Quantization: "4-bit"}},
		{"blank", Request{Identifier: "  ", Quantization: "4-bit"}},
		{"bad quant", Request{Identifier: "org/model", Quantization: "9-bit"}},
	}

	for _, tt := range tests {
		engine := &fakeEngine{}
		tt.req.OutputRoot = t.TempDir()
		res := Run(engine, tt.req)
		if res.Success {
			t.Errorf("%s: expected failure", tt.name)
		}
		if engine.calls != 0 {
			t.Errorf("%s: engine invoked %d times, expected 0", tt.name, engine.calls)
		}
	}
}

func TestRun_RefusesOverwrite(t *testing.T) {
	root := t.TempDir()
	existing := filepath.Join(root, "model-q4")
	os.MkdirAll(existing, 0o755)

	engine := &fakeEngine{}
	res := Run(engine, Request{Identifier: "org/model", Quantization: "4-bit", OutputRoot: root})
	if res.Success {
		t.Fatal("expected failure for existing destination")
	}
	if !strings.Contains(res.Message, "already exists") {
		t.Errorf("unexpected message: %q", res.Message)
	}
	if engine.calls != 0 {
		t.Error("engine must not be invoked when the destination exists")
	}
}

func TestRun_DerivedOutputName(t *testing.T) {
	tests := []struct {
		quant    string
		expected string
	}{
		{"4-bit", "LFM2-1.2B-RAG-q4"},
		{"8-bit", "LFM2-1.2B-RAG-q8"},
		{"bf16", "LFM2-1.2B-RAG-bf16"},
	}

	for _, tt := range tests {
		root := t.TempDir()
		engine := &fakeEngine{writeBytes: 10}
		res := Run(engine, Request{Identifier: "LiquidAI/LFM2-1.2B-RAG", Quantization: tt.quant, OutputRoot: root})
		if !res.Success {
			t.Fatalf("%s: conversion failed: %s", tt.quant, res.Message)
		}
		if res.OutputPath != filepath.Join(root, tt.expected) {
			t.Errorf("%s: expected output %q, got %q", tt.quant, tt.expected, res.OutputPath)
		}
	}
}

func TestRun_QuantizationMapping(t *testing.T) {
	tests := []struct {
		quant    string
		quantize bool
		bits     int
	}{
		{"4-bit", true, 4},
		{"8-bit", true, 8},
		{"bf16", false, 0},
	}

	for _, tt := range tests {
		engine := &fakeEngine{writeBytes: 10}
		res := Run(engine, Request{Identifier: "org/model", Quantization: tt.quant, OutputRoot: t.TempDir()})
		if !res.Success {
			t.Fatalf("%s: conversion failed: %s", tt.quant, res.Message)
		}
		if engine.quantize != tt.quantize || engine.bits != tt.bits {
			t.Errorf("%s: engine called with quantize=%v bits=%d", tt.quant, engine.quantize, engine.bits)
		}
	}
}

func TestRun_ExplicitOutputName(t *testing.T) {
	root := t.TempDir()
	engine := &fakeEngine{writeBytes: 2048}
	res := Run(engine, Request{
		Identifier:   "org/model",
		OutputName:   "my-custom-name",
		Quantization: "8-bit",
		OutputRoot:   root,
	})
	if !res.Success {
		t.Fatalf("conversion failed: %s", res.Message)
	}
	if res.OutputPath != filepath.Join(root, "my-custom-name") {
		t.Errorf("expected custom name, got %q", res.OutputPath)
	}
	if res.Size != "2.0 KB" {
		t.Errorf("expected size '2.0 KB', got %q", res.Size)
	}
	if engine.lastSrc != "org/model" {
		t.Errorf("engine got identifier %q", engine.lastSrc)
	}
}

func TestRun_NilEngine(t *testing.T) {
	res := Run(nil, Request{Identifier: "org/model", Quantization: "4-bit", OutputRoot: t.TempDir()})
	if res.Success {
		t.Fatal("expected failure without a runtime")
	}
	if !strings.Contains(res.Message, "mlx-lm") {
		t.Errorf("unexpected message: %q", res.Message)
	}
}

func TestRun_ClassifiesEngineFailures(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"404 Client Error: Repository Not Found", "was not found on HuggingFace"},
		{"ConnectionError: connection refused", "Network error"},
		{"OSError: No space left on device", "Insufficient disk space"},
		{"something exploded", "Conversion failed: something exploded"},
	}

	for _, tt := range tests {
		engine := &fakeEngine{err: errors.New(tt.raw)}
		res := Run(engine, Request{Identifier: "org/model", Quantization: "4-bit", OutputRoot: t.TempDir()})
		if res.Success {
			t.Fatalf("%q: expected failure", tt.raw)
		}
		if !strings.Contains(res.Message, tt.expected) {
			t.Errorf("%q: expected message containing %q, got %q", tt.raw, tt.expected, res.Message)
		}
	}
}

func TestRun_CleansPartialOutput(t *testing.T) {
	root := t.TempDir()
	engine := &fakeEngine{err: errors.New("interrupted"), writeBytes: 5}

	res := Run(engine, Request{Identifier: "org/model", Quantization: "4-bit", OutputRoot: root})
	if res.Success {
		t.Fatal("expected failure")
	}
	if _, err := os.Stat(filepath.Join(root, "model-q4")); !os.IsNotExist(err) {
		t.Error("partial output should have been removed")
	}
}

func TestQuantizations(t *testing.T) {
	q := Quantizations()
	if len(q) != 3 || q[0] != "4-bit" || q[1] != "8-bit" || q[2] != "bf16" {
		t.Errorf("unexpected quantization list: %v", q)
	}
}
