package cmd

import (
	"fmt"
	"os"

	"github.com/msalah0e/frond/internal/config"
	"github.com/msalah0e/frond/internal/convert"
	"github.com/msalah0e/frond/internal/mlx"
	"github.com/msalah0e/frond/internal/ui"
	"github.com/spf13/cobra"
)

func convertCmd() *cobra.Command {
	var (
		name      string
		quant     string
		modelsDir string
	)

	cmd := &cobra.Command{
		Use:     "convert <org/model>",
		Aliases: []string{"c"},
		Short:   "Convert a HuggingFace model to MLX format",
		Long: `Convert a HuggingFace checkpoint into a quantized MLX model directory.

  frond convert LiquidAI/LFM2-1.2B-RAG
  frond convert mistralai/Mistral-7B-v0.3 --quant 8-bit
  frond convert org/model --name my-model --quant bf16`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			identifier := args[0]
			root := resolveModelsDir(modelsDir)
			if quant == "" {
				quant = config.Load().Models.DefaultQuant
			}

			ui.Banner("converting")
			fmt.Printf("  Model:        %s\n", ui.Brand.Sprint(identifier))
			fmt.Printf("  Quantization: %s\n", quant)
			fmt.Printf("  Output root:  %s\n\n", root)

			var engine convert.Converter
			if rt := mlx.Detect(); rt != nil {
				engine = rt
			}

			res := convert.Run(engine, convert.Request{
				Identifier:   identifier,
				OutputName:   name,
				Quantization: quant,
				OutputRoot:   root,
			})
			if !res.Success {
				ui.Bad.Printf("  %s %s\n", ui.StatusIcon(false), res.Message)
				os.Exit(1)
			}

			ui.Good.Printf("  %s %s\n", ui.StatusIcon(true), res.Message)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name for the converted model directory")
	cmd.Flags().StringVarP(&quant, "quant", "q", "", "Quantization: 4-bit, 8-bit, or bf16")
	cmd.Flags().StringVar(&modelsDir, "models-dir", "", "Model store root (default from config)")
	_ = cmd.RegisterFlagCompletionFunc("quant", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return convert.Quantizations(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
