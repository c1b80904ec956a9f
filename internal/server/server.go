// Package server exposes the converter, tester, and model store over a
// local web form, the browser-facing counterpart of the CLI.
package server

import (
	_ "embed"
	"html/template"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/msalah0e/frond/internal/archive"
	"github.com/msalah0e/frond/internal/config"
	"github.com/msalah0e/frond/internal/convert"
	"github.com/msalah0e/frond/internal/generate"
	"github.com/msalah0e/frond/internal/mlx"
	"github.com/msalah0e/frond/internal/prompts"
	"github.com/msalah0e/frond/internal/store"
)

//go:embed index.html
var indexHTML string

// Server wires the gateways behind HTTP handlers. It owns the process's
// single model cache; the cache mutex serializes load/evict across
// concurrent requests.
type Server struct {
	cfg   *config.Config
	conv  convert.Converter
	gen   generate.Engine
	cache *generate.Cache
}

// New builds a server, detecting the mlx_lm runtime if one is installed.
func New(cfg *config.Config) *Server {
	s := &Server{cfg: cfg, cache: &generate.Cache{}}
	if rt := mlx.Detect(); rt != nil {
		s.conv = rt
		s.gen = rt
	}
	return s
}

// Router builds the gin handler tree.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.SetHTMLTemplate(template.Must(template.New("index").Parse(indexHTML)))

	r.GET("/", s.indexHandler)
	r.GET("/api/models", s.listModelsHandler)
	r.POST("/api/convert", s.convertHandler)
	r.POST("/api/generate", s.generateHandler)
	r.POST("/api/cache/clear", s.clearCacheHandler)
	r.GET("/api/export/:name", s.exportHandler)
	r.POST("/api/import", s.importHandler)

	return r
}

// Run serves the UI on addr until the listener fails.
func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

type modelJSON struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size string `json:"size"`
}

func (s *Server) models() ([]modelJSON, error) {
	entries, err := store.Discover(s.cfg.Models.Dir)
	if err != nil {
		return nil, err
	}
	out := make([]modelJSON, 0, len(entries))
	for _, m := range entries {
		out = append(out, modelJSON{Name: m.Name, Path: m.Path, Size: m.Size()})
	}
	return out, nil
}

func (s *Server) indexHandler(c *gin.Context) {
	models, err := s.models()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	promptNames := prompts.Names()
	examples := make(map[string]string, len(promptNames))
	for _, name := range promptNames {
		examples[name] = prompts.Get(name)
	}

	c.HTML(http.StatusOK, "index", gin.H{
		"Models":        models,
		"Quantizations": convert.Quantizations(),
		"Examples":      examples,
		"Defaults":      s.cfg.Generate,
		"EngineReady":   s.gen != nil,
	})
}

func (s *Server) listModelsHandler(c *gin.Context) {
	models, err := s.models()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"models": models})
}

type convertRequest struct {
	Identifier   string `json:"identifier" form:"identifier"`
	OutputName   string `json:"output_name" form:"output_name"`
	Quantization string `json:"quantization" form:"quantization"`
}

func (s *Server) convertHandler(c *gin.Context) {
	var req convertRequest
	if err := c.ShouldBind(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantization == "" {
		req.Quantization = s.cfg.Models.DefaultQuant
	}

	res := convert.Run(s.conv, convert.Request{
		Identifier:   req.Identifier,
		OutputName:   req.OutputName,
		Quantization: req.Quantization,
		OutputRoot:   s.cfg.Models.Dir,
	})
	if !res.Success {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": res.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": res.Message, "output_path": res.OutputPath, "size": res.Size})
}

type generateRequest struct {
	ModelPath         string  `json:"model_path" form:"model_path"`
	Prompt            string  `json:"prompt" form:"prompt"`
	MaxTokens         int     `json:"max_tokens" form:"max_tokens"`
	Temperature       float64 `json:"temperature" form:"temperature"`
	TopP              float64 `json:"top_p" form:"top_p"`
	RepetitionPenalty float64 `json:"repetition_penalty" form:"repetition_penalty"`
}

func (s *Server) generateHandler(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Zero-valued sampling fields fall back to configured defaults.
	d := s.cfg.Generate
	if req.MaxTokens == 0 {
		req.MaxTokens = d.MaxTokens
	}
	if req.Temperature == 0 {
		req.Temperature = d.Temperature
	}
	if req.TopP == 0 {
		req.TopP = d.TopP
	}
	if req.RepetitionPenalty == 0 {
		req.RepetitionPenalty = d.RepetitionPenalty
	}

	res := generate.Run(s.gen, s.cache, generate.Request{
		ModelPath:         req.ModelPath,
		Prompt:            req.Prompt,
		MaxTokens:         req.MaxTokens,
		Temperature:       req.Temperature,
		TopP:              req.TopP,
		RepetitionPenalty: req.RepetitionPenalty,
	})
	if !res.Success {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": res.Err})
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": res.Response})
}

func (s *Server) clearCacheHandler(c *gin.Context) {
	s.cache.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "cache cleared"})
}

func (s *Server) exportHandler(c *gin.Context) {
	name := c.Param("name")

	entries, err := store.Discover(s.cfg.Models.Dir)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var modelPath string
	for _, m := range entries {
		if m.Name == name {
			modelPath = m.Path
			break
		}
	}
	if modelPath == "" {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "model " + name + " not found"})
		return
	}

	res := archive.Export(modelPath)
	if !res.Success {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": res.Message})
		return
	}
	defer os.RemoveAll(filepath.Dir(res.ArchivePath))

	c.FileAttachment(res.ArchivePath, name+".zip")
}

func (s *Server) importHandler(c *gin.Context) {
	file, err := c.FormFile("archive")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}

	// Stage the upload under its original filename: flat archives are named
	// after it.
	stageDir, err := os.MkdirTemp("", "frond-import-*")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer os.RemoveAll(stageDir)

	staged := filepath.Join(stageDir, filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, staged); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	res := archive.Import(staged, s.cfg.Models.Dir)
	if !res.Success {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": res.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": res.Message, "path": res.Dest})
}
