package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/msalah0e/frond/internal/archive"
	"github.com/msalah0e/frond/internal/store"
	"github.com/msalah0e/frond/internal/ui"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var (
		out       string
		modelsDir string
	)

	cmd := &cobra.Command{
		Use:   "export <model>",
		Short: "Package a converted model as a zip archive",
		Long: `Package a model directory into a zip archive for transfer.

  frond export my-model-q4
  frond export ./models/my-model-q4 --out /tmp/my-model.zip`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: modelCompletionFunc,
		Run: func(cmd *cobra.Command, args []string) {
			modelPath := resolveModelPath(args[0], resolveModelsDir(modelsDir))
			name := filepath.Base(modelPath)

			ui.Banner("exporting")
			fmt.Printf("  Model: %s\n\n", ui.Brand.Sprint(name))

			res := archive.Export(modelPath)
			if !res.Success {
				ui.Bad.Printf("  %s %s\n", ui.StatusIcon(false), res.Message)
				os.Exit(1)
			}
			defer os.RemoveAll(filepath.Dir(res.ArchivePath))

			if out == "" {
				out = name + ".zip"
			}
			if err := copyFile(res.ArchivePath, out); err != nil {
				ui.Bad.Printf("  %s failed to write %s: %v\n", ui.StatusIcon(false), out, err)
				os.Exit(1)
			}

			ui.Good.Printf("  %s Exported %s (%s) to %s\n", ui.StatusIcon(true), name, res.Size, out)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Destination archive path (default <model>.zip)")
	cmd.Flags().StringVar(&modelsDir, "models-dir", "", "Model store root (default from config)")
	return cmd
}

// copyFile moves the staged archive to its destination. A plain copy works
// across filesystems, which os.Rename from the temp dir may not.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// modelCompletionFunc completes model names from the store.
func modelCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	models, err := store.Discover(resolveModelsDir(""))
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var completions []string
	for _, m := range models {
		completions = append(completions, m.Name+"\t"+m.Size())
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
