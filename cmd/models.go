package cmd

import (
	"fmt"
	"os"

	"github.com/msalah0e/frond/internal/store"
	"github.com/msalah0e/frond/internal/ui"
	"github.com/spf13/cobra"
)

func modelsCmd() *cobra.Command {
	var modelsDir string

	cmd := &cobra.Command{
		Use:     "models",
		Aliases: []string{"ls", "list"},
		Short:   "List converted models in the store",
		Run: func(cmd *cobra.Command, args []string) {
			root := resolveModelsDir(modelsDir)

			models, err := store.Discover(root)
			if err != nil {
				ui.Bad.Printf("frond: failed to scan %s: %v\n", root, err)
				os.Exit(1)
			}

			ui.Banner("converted models")

			if len(models) == 0 {
				fmt.Printf("  No converted models found in %s\n", root)
				fmt.Println("  Convert one: frond convert <org/model>")
				return
			}

			headers := []string{"Name", "Size", "Path"}
			var rows [][]string
			for _, m := range models {
				rows = append(rows, []string{m.Name, m.Size(), m.Path})
			}
			ui.Table(headers, rows)

			fmt.Println()
			fmt.Printf("  %d model(s)\n", len(models))
		},
	}

	cmd.Flags().StringVar(&modelsDir, "models-dir", "", "Model store root (default from config)")
	return cmd
}
