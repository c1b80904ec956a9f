package cmd

import (
	"fmt"
	"os"

	"github.com/msalah0e/frond/internal/config"
	"github.com/msalah0e/frond/internal/ui"
	"github.com/spf13/cobra"
)

var version = "0.3.0"

var rootCmd = &cobra.Command{
	Use:   "frond",
	Short: "frond — the MLX model workbench",
	Long: ui.Brand.Sprint(ui.Frond+" frond") + " — convert, test, and ship MLX models\n" +
		ui.Subtle.Sprint("Convert HuggingFace checkpoints, run test generations, and move models as zip archives"),
	Version: version + " " + ui.Frond,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if _, err := os.Stat(config.ConfigDir()); os.IsNotExist(err) {
			fmt.Println(ui.Subtle.Sprint("  Tip: frond reads settings from " + config.ConfigDir() + "/config.toml"))
			fmt.Println()
		}
	},
}

func init() {
	rootCmd.SetVersionTemplate("frond {{ .Version }}\n")

	rootCmd.AddCommand(
		convertCmd(),
		generateCmd(),
		modelsCmd(),
		exportCmd(),
		importCmd(),
		serveCmd(),
		doctorCmd(),
		completionCmd(),
	)
}

// resolveModelsDir prefers an explicit flag over the configured store root.
func resolveModelsDir(flag string) string {
	if flag != "" {
		return flag
	}
	return config.Load().Models.Dir
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
