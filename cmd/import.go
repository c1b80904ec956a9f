package cmd

import (
	"os"

	"github.com/msalah0e/frond/internal/archive"
	"github.com/msalah0e/frond/internal/ui"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	var modelsDir string

	cmd := &cobra.Command{
		Use:   "import <archive.zip>",
		Short: "Import a model zip archive into the store",
		Long: `Import a model archive produced by frond export (or any zip
containing a model directory or loose model files).

  frond import my-model-q4.zip
  frond import ~/Downloads/shared-model.zip --models-dir ./models`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			root := resolveModelsDir(modelsDir)

			ui.Banner("importing")

			res := archive.Import(args[0], root)
			if !res.Success {
				ui.Bad.Printf("  %s %s\n", ui.StatusIcon(false), res.Message)
				os.Exit(1)
			}

			ui.Good.Printf("  %s %s\n", ui.StatusIcon(true), res.Message)
		},
	}

	cmd.Flags().StringVar(&modelsDir, "models-dir", "", "Model store root (default from config)")
	return cmd
}
