package cmd

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/msalah0e/frond/internal/config"
	"github.com/msalah0e/frond/internal/mlx"
	"github.com/msalah0e/frond/internal/store"
	"github.com/msalah0e/frond/internal/ui"
	"github.com/spf13/cobra"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "doctor",
		Aliases: []string{"dr"},
		Short:   "Health check — verify the engine and model store",
		Run: func(cmd *cobra.Command, args []string) {
			ui.Banner("health check")

			checkRuntime("Python", "python3", "--version")

			if rt := mlx.Detect(); rt != nil {
				fmt.Printf("  %s %s\n", ui.StatusIcon(true), rt.String())
			} else {
				fmt.Printf("  %s mlx_lm not importable — run: pip install mlx-lm\n", ui.StatusIcon(false))
			}

			fmt.Println()

			cfg := config.Load()
			models, err := store.Discover(cfg.Models.Dir)
			if err != nil {
				fmt.Printf("  %s model store %s unreadable: %v\n", ui.WarnIcon(), cfg.Models.Dir, err)
				return
			}

			var total int64
			for _, m := range models {
				total += m.SizeBytes
			}
			fmt.Printf("  Model store: %s\n", cfg.Models.Dir)
			fmt.Printf("  Models:      %d (%s)\n", len(models), store.FormatSize(total))
			fmt.Printf("  Config:      %s/config.toml\n", config.ConfigDir())
		},
	}
}

func checkRuntime(label, bin string, args ...string) {
	path, err := exec.LookPath(bin)
	if err != nil {
		fmt.Printf("  %s %s not found\n", ui.StatusIcon(false), label)
		return
	}
	out, err := exec.Command(path, args...).CombinedOutput()
	if err != nil {
		fmt.Printf("  %s %s (%s)\n", ui.WarnIcon(), label, path)
		return
	}
	fmt.Printf("  %s %s %s\n", ui.StatusIcon(true), label, strings.TrimSpace(string(out)))
}
