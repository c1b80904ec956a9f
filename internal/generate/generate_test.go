package generate

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/msalah0e/frond/internal/mlx"
)

// fakeEngine counts loads per path and echoes prompts back.
type fakeEngine struct {
	loads       map[string]int
	loadErr     error
	generateErr error
	lastParams  mlx.Params
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{loads: make(map[string]int)}
}

func (f *fakeEngine) Load(path string) (*mlx.Model, error) {
	f.loads[path]++
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return &mlx.Model{Path: path}, nil
}

func (f *fakeEngine) Generate(m *mlx.Model, p mlx.Params) (string, error) {
	f.lastParams = p
	if f.generateErr != nil {
		return "", f.generateErr
	}
	return "echo: " + p.Prompt, nil
}

func modelDir(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(path, "config.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_Validation(t *testing.T) {
	engine := newFakeEngine()
	cache := &Cache{}

	res := Run(engine, cache, Request{ModelPath: "/some/path", Prompt: "  "})
	if res.Success || !strings.Contains(res.Err, "prompt cannot be empty") {
		t.Errorf("expected empty-prompt failure, got %+v", res)
	}

	res = Run(engine, cache, Request{ModelPath: "", Prompt: "hello"})
	if res.Success || !strings.Contains(res.Err, "model path") {
		t.Errorf("expected missing-path failure, got %+v", res)
	}

	if len(engine.loads) != 0 {
		t.Error("engine must not load on validation failure")
	}
}

func TestRun_LoadErrors(t *testing.T) {
	engine := newFakeEngine()
	cache := &Cache{}

	// Missing path
	res := Run(engine, cache, Request{ModelPath: filepath.Join(t.TempDir(), "nope"), Prompt: "hi"})
	if res.Success || !strings.Contains(res.Err, "does not exist") {
		t.Errorf("expected does-not-exist failure, got %+v", res)
	}

	// Path is a file, not a directory
	file := filepath.Join(t.TempDir(), "weights.npz")
	os.WriteFile(file, []byte("x"), 0o644)
	res = Run(engine, cache, Request{ModelPath: file, Prompt: "hi"})
	if res.Success || !strings.Contains(res.Err, "not a directory") {
		t.Errorf("expected not-a-directory failure, got %+v", res)
	}

	// Engine load failure
	engine.loadErr = errors.New("failed to load model: bad weights")
	res = Run(engine, cache, Request{ModelPath: modelDir(t, "broken"), Prompt: "hi"})
	if res.Success || !strings.Contains(res.Err, "bad weights") {
		t.Errorf("expected load failure, got %+v", res)
	}
}

func TestRun_Success(t *testing.T) {
	engine := newFakeEngine()
	cache := &Cache{}
	path := modelDir(t, "good")

	res := Run(engine, cache, Request{
		ModelPath:         path,
		Prompt:            "tell me a story",
		MaxTokens:         64,
		Temperature:       0.2,
		TopP:              0.9,
		RepetitionPenalty: 1.1,
	})
	if !res.Success {
		t.Fatalf("generation failed: %s", res.Err)
	}
	if res.Response != "echo: tell me a story" {
		t.Errorf("unexpected response %q", res.Response)
	}
	if engine.lastParams.MaxTokens != 64 || engine.lastParams.Temperature != 0.2 ||
		engine.lastParams.TopP != 0.9 || engine.lastParams.RepetitionPenalty != 1.1 {
		t.Errorf("sampling parameters not forwarded: %+v", engine.lastParams)
	}
}

func TestRun_WrapsGenerateErrors(t *testing.T) {
	engine := newFakeEngine()
	engine.generateErr = errors.New("metal device lost")
	cache := &Cache{}

	res := Run(engine, cache, Request{ModelPath: modelDir(t, "m"), Prompt: "hi"})
	if res.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.Err, "generation failed: metal device lost") {
		t.Errorf("engine error should be wrapped, got %q", res.Err)
	}
}

func TestCache_SingleSlot(t *testing.T) {
	engine := newFakeEngine()
	cache := &Cache{}
	pathA := modelDir(t, "model-a")
	pathB := modelDir(t, "model-b")

	run := func(path string) {
		t.Helper()
		res := Run(engine, cache, Request{ModelPath: path, Prompt: "hi"})
		if !res.Success {
			t.Fatalf("generation failed: %s", res.Err)
		}
	}

	run(pathA)
	run(pathA) // cached, no reload
	if engine.loads[pathA] != 1 {
		t.Errorf("expected 1 load of A, got %d", engine.loads[pathA])
	}

	run(pathB) // evicts A
	run(pathA) // A must load fresh
	if engine.loads[pathA] != 2 {
		t.Errorf("expected 2 loads of A after eviction, got %d", engine.loads[pathA])
	}
	if engine.loads[pathB] != 1 {
		t.Errorf("expected 1 load of B, got %d", engine.loads[pathB])
	}
}

func TestCache_Clear(t *testing.T) {
	engine := newFakeEngine()
	cache := &Cache{}
	path := modelDir(t, "model")

	Run(engine, cache, Request{ModelPath: path, Prompt: "hi"})
	cache.Clear()
	cache.Clear() // idempotent
	Run(engine, cache, Request{ModelPath: path, Prompt: "hi"})

	if engine.loads[path] != 2 {
		t.Errorf("expected fresh load after Clear, got %d loads", engine.loads[path])
	}
}
