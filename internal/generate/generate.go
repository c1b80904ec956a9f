// Package generate validates generation requests and drives the external
// inference engine against converted models, keeping one model resident.
package generate

import (
	"fmt"
	"os"
	"strings"

	"github.com/msalah0e/frond/internal/mlx"
)

// Engine is the external inference engine boundary.
type Engine interface {
	Load(path string) (*mlx.Model, error)
	Generate(m *mlx.Model, p mlx.Params) (string, error)
}

// Request describes one generation call.
type Request struct {
	ModelPath         string
	Prompt            string
	MaxTokens         int
	Temperature       float64
	TopP              float64
	RepetitionPenalty float64
}

// Result is the structured outcome of a generation attempt.
type Result struct {
	Success  bool
	Response string
	Err      string
}

func failure(format string, args ...any) *Result {
	return &Result{Err: fmt.Sprintf(format, args...)}
}

// Run resolves the model through the cache and invokes the engine. Engine
// failures are wrapped, never propagated raw.
func Run(engine Engine, cache *Cache, req Request) *Result {
	if strings.TrimSpace(req.Prompt) == "" {
		return failure("prompt cannot be empty")
	}
	if strings.TrimSpace(req.ModelPath) == "" {
		return failure("please provide a model path")
	}
	if engine == nil {
		return failure("mlx_lm is not installed. Install Python and run: pip install mlx-lm")
	}

	m, err := cache.Resolve(req.ModelPath, func() (*mlx.Model, error) {
		return loadModel(engine, req.ModelPath)
	})
	if err != nil {
		return failure("%s", err.Error())
	}

	text, err := engine.Generate(m, mlx.Params{
		Prompt:            req.Prompt,
		MaxTokens:         req.MaxTokens,
		Temperature:       req.Temperature,
		TopP:              req.TopP,
		RepetitionPenalty: req.RepetitionPenalty,
	})
	if err != nil {
		return failure("generation failed: %v", err)
	}

	return &Result{Success: true, Response: text}
}

func loadModel(engine Engine, path string) (*mlx.Model, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("model path does not exist: %s", path)
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("model path is not a directory: %s", path)
	}
	return engine.Load(path)
}
