// Package convert validates conversion requests and drives the external
// engine that turns HuggingFace checkpoints into MLX model directories.
package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/msalah0e/frond/internal/mlx"
	"github.com/msalah0e/frond/internal/store"
)

// Converter is the external conversion engine boundary.
type Converter interface {
	Convert(src, dest string, quantize bool, bits int) error
}

// Request describes one conversion. Consumed in a single Run call.
type Request struct {
	Identifier   string // HuggingFace identifier, "org/model" form
	OutputName   string // optional; derived from the identifier when blank
	Quantization string // "4-bit", "8-bit", or "bf16"
	OutputRoot   string // model store root
}

// Result is the structured outcome of a conversion attempt.
type Result struct {
	Success    bool
	Message    string
	OutputPath string
	Size       string
}

func failure(format string, args ...any) *Result {
	return &Result{Message: fmt.Sprintf(format, args...)}
}

type quantOption struct {
	suffix   string
	quantize bool
	bits     int
}

var quantOptions = map[string]quantOption{
	"4-bit": {suffix: "q4", quantize: true, bits: 4},
	"8-bit": {suffix: "q8", quantize: true, bits: 8},
	"bf16":  {suffix: "bf16"},
}

// Quantizations lists the recognized quantization choices, for UI surfaces.
func Quantizations() []string {
	return []string{"4-bit", "8-bit", "bf16"}
}

// Minimum free space before a conversion is attempted. Advisory only.
const minFreeBytes = 2 << 30

// ValidateIdentifier checks the "org/model" form.
func ValidateIdentifier(identifier string) error {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return fmt.Errorf("model path cannot be empty")
	}
	parts := strings.Split(identifier, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("model path should be in format 'org/model-name' (e.g., 'LiquidAI/LFM2-1.2B-RAG')")
	}
	return nil
}

// Run executes a validated conversion. Validation failures and destination
// collisions return before the engine is ever invoked; engine failures are
// classified into user-facing messages and partial output is removed.
func Run(engine Converter, req Request) *Result {
	identifier := strings.TrimSpace(req.Identifier)
	if err := ValidateIdentifier(identifier); err != nil {
		return failure("%s.", upperFirst(err.Error()))
	}

	opt, ok := quantOptions[req.Quantization]
	if !ok {
		return failure("Invalid quantization option: %s. Choose from: 4-bit, 8-bit, bf16.", req.Quantization)
	}

	name := strings.TrimSpace(req.OutputName)
	if name == "" {
		short := identifier[strings.Index(identifier, "/")+1:]
		name = short + "-" + opt.suffix
	}

	outputPath := filepath.Join(req.OutputRoot, name)
	if _, err := os.Stat(outputPath); err == nil {
		return &Result{
			Message:    fmt.Sprintf("Output directory already exists: %s\nChoose a different name or delete the existing directory.", outputPath),
			OutputPath: outputPath,
		}
	}

	// Best-effort pre-check; an unreadable filesystem stat is not fatal.
	statDir := req.OutputRoot
	if _, err := os.Stat(statDir); err != nil {
		statDir = "."
	}
	if free, err := diskFree(statDir); err == nil && free < minFreeBytes {
		return failure("Low disk space: only %.1f GB free. Models typically require several GB.", float64(free)/(1<<30))
	}

	if engine == nil {
		return failure("mlx_lm is not installed. Install Python and run: pip install mlx-lm")
	}

	if err := os.MkdirAll(req.OutputRoot, 0o755); err != nil {
		return failure("Failed to create output directory: %v", err)
	}

	if err := engine.Convert(identifier, outputPath, opt.quantize, opt.bits); err != nil {
		// Partial output is useless; remove it before reporting.
		if _, statErr := os.Stat(outputPath); statErr == nil {
			os.RemoveAll(outputPath)
		}
		return failure("%s", friendlyMessage(identifier, err.Error()))
	}

	size, err := store.DirSize(outputPath)
	if err != nil {
		return failure("Conversion finished but output is unreadable: %v", err)
	}
	sizeStr := store.FormatSize(size)

	return &Result{
		Success:    true,
		Message:    fmt.Sprintf("Model converted successfully!\n\nOutput: %s\nSize: %s\nQuantization: %s", outputPath, sizeStr, req.Quantization),
		OutputPath: outputPath,
		Size:       sizeStr,
	}
}

func friendlyMessage(identifier, raw string) string {
	switch mlx.ClassifyFailure(raw) {
	case mlx.FailureNotFound:
		return fmt.Sprintf("Model %q was not found on HuggingFace. Please check the model path.", identifier)
	case mlx.FailureNetwork:
		return "Network error. Please check your internet connection and try again."
	case mlx.FailureDiskSpace:
		return "Insufficient disk space. Please free up space and try again."
	default:
		return fmt.Sprintf("Conversion failed: %s", raw)
	}
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
