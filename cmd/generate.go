package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/msalah0e/frond/internal/config"
	"github.com/msalah0e/frond/internal/generate"
	"github.com/msalah0e/frond/internal/mlx"
	"github.com/msalah0e/frond/internal/prompts"
	"github.com/msalah0e/frond/internal/ui"
	"github.com/spf13/cobra"
)

func generateCmd() *cobra.Command {
	var (
		model     string
		prompt    string
		example   string
		maxTokens int
		temp      float64
		topP      float64
		repPen    float64
		modelsDir string
	)

	cfg := config.Load()

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen", "g"},
		Short:   "Run a test generation against a converted model",
		Long: `Generate text with a converted MLX model.

  frond generate -m my-model-q4 -p "Tell me a story"
  frond generate -m ./models/my-model-q4 --example haiku
  frond generate -m my-model-q4 -p "..." --temp 0.2 --max-tokens 128`,
		Run: func(cmd *cobra.Command, args []string) {
			if example != "" {
				text := prompts.Get(example)
				if text == "" {
					ui.Bad.Printf("frond: unknown example %q (try: %v)\n", example, prompts.Names())
					os.Exit(1)
				}
				prompt = text
			}

			path := resolveModelPath(model, resolveModelsDir(modelsDir))

			var engine generate.Engine
			if rt := mlx.Detect(); rt != nil {
				engine = rt
			}

			res := generate.Run(engine, &generate.Cache{}, generate.Request{
				ModelPath:         path,
				Prompt:            prompt,
				MaxTokens:         maxTokens,
				Temperature:       temp,
				TopP:              topP,
				RepetitionPenalty: repPen,
			})
			if !res.Success {
				ui.Bad.Printf("frond: %s\n", res.Err)
				os.Exit(1)
			}

			fmt.Println(res.Response)
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "Model name in the store, or a path to a model directory")
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Prompt text")
	cmd.Flags().StringVar(&example, "example", "", "Use a built-in example prompt")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", cfg.Generate.MaxTokens, "Maximum tokens to generate")
	cmd.Flags().Float64Var(&temp, "temp", cfg.Generate.Temperature, "Sampling temperature")
	cmd.Flags().Float64Var(&topP, "top-p", cfg.Generate.TopP, "Top-p sampling")
	cmd.Flags().Float64Var(&repPen, "repetition-penalty", cfg.Generate.RepetitionPenalty, "Repetition penalty")
	cmd.Flags().StringVar(&modelsDir, "models-dir", "", "Model store root (default from config)")
	_ = cmd.RegisterFlagCompletionFunc("model", modelCompletionFunc)
	_ = cmd.RegisterFlagCompletionFunc("example", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return prompts.Names(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// resolveModelPath accepts either a filesystem path or a bare model name in
// the store.
func resolveModelPath(model, root string) string {
	if model == "" {
		return ""
	}
	if _, err := os.Stat(model); err == nil {
		return model
	}
	return filepath.Join(root, model)
}
