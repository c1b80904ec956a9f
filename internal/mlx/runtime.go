// Package mlx shells out to the mlx_lm Python package, the external engine
// that performs model conversion and text generation.
package mlx

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Runtime is a detected Python interpreter with mlx_lm importable.
type Runtime struct {
	Python  string // interpreter path
	Version string // mlx_lm version, when detectable
}

// Detect finds a usable mlx_lm runtime.
func Detect() *Runtime {
	for _, name := range []string{"python3", "python"} {
		path, err := exec.LookPath(name)
		if err != nil {
			continue
		}
		out, err := exec.Command(path, "-c", "import mlx_lm; print(mlx_lm.__version__)").Output()
		if err != nil {
			continue
		}
		return &Runtime{Python: path, Version: strings.TrimSpace(string(out))}
	}
	return nil
}

// String returns a display name for the runtime.
func (r *Runtime) String() string {
	if r.Version != "" {
		return fmt.Sprintf("mlx_lm %s (%s)", r.Version, r.Python)
	}
	return fmt.Sprintf("mlx_lm (%s)", r.Python)
}

// Convert runs `mlx_lm convert` against a HuggingFace checkpoint, writing
// converted weights under dest. The engine's stderr becomes the error text
// so failures can be classified by message.
func (r *Runtime) Convert(src, dest string, quantize bool, bits int) error {
	args := []string{"-m", "mlx_lm", "convert", "--hf-path", src, "--mlx-path", dest}
	if quantize {
		args = append(args, "-q", "--q-bits", strconv.Itoa(bits))
	}

	cmd := exec.Command(r.Python, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return errors.New(msg)
	}
	return nil
}

// Model is a handle to a loaded model directory. Loading is cheap here —
// the weights stay on disk and every Generate call hands the path back to
// the engine — but Load still validates everything Generate will need.
type Model struct {
	Path      string
	Tokenizer string
}

// Load validates path as a converted model directory and returns a handle.
func (r *Runtime) Load(path string) (*Model, error) {
	if _, err := os.Stat(filepath.Join(path, "config.json")); err != nil {
		return nil, fmt.Errorf("failed to load model: missing config.json in %s", path)
	}

	tokenizer := ""
	for _, name := range []string{"tokenizer.json", "tokenizer.model"} {
		if _, err := os.Stat(filepath.Join(path, name)); err == nil {
			tokenizer = filepath.Join(path, name)
			break
		}
	}

	return &Model{Path: path, Tokenizer: tokenizer}, nil
}

// Params are sampling parameters for a generation call.
type Params struct {
	Prompt            string
	MaxTokens         int
	Temperature       float64
	TopP              float64
	RepetitionPenalty float64
}

// Generate runs `mlx_lm generate` and returns the generated text.
func (r *Runtime) Generate(m *Model, p Params) (string, error) {
	args := []string{
		"-m", "mlx_lm", "generate",
		"--model", m.Path,
		"--prompt", p.Prompt,
		"--max-tokens", strconv.Itoa(p.MaxTokens),
		"--temp", strconv.FormatFloat(p.Temperature, 'f', -1, 64),
		"--top-p", strconv.FormatFloat(p.TopP, 'f', -1, 64),
	}
	if p.RepetitionPenalty != 0 && p.RepetitionPenalty != 1 {
		args = append(args, "--repetition-penalty", strconv.FormatFloat(p.RepetitionPenalty, 'f', -1, 64))
	}

	cmd := exec.Command(r.Python, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", errors.New(msg)
	}
	return strings.TrimSpace(stdout.String()), nil
}
