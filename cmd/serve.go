package cmd

import (
	"fmt"
	"os"

	"github.com/msalah0e/frond/internal/config"
	"github.com/msalah0e/frond/internal/mlx"
	"github.com/msalah0e/frond/internal/server"
	"github.com/msalah0e/frond/internal/ui"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var (
		addr      string
		modelsDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web form UI",
		Long: `Run the local web UI for converting, testing, and transferring
models from a browser.

  frond serve
  frond serve --addr 127.0.0.1:8090`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.Load()
			if addr != "" {
				cfg.Serve.Addr = addr
			}
			if modelsDir != "" {
				cfg.Models.Dir = modelsDir
			}

			ui.Banner("serve")
			fmt.Printf("  Address:    %s\n", ui.Brand.Sprint("http://"+cfg.Serve.Addr))
			fmt.Printf("  Model root: %s\n", cfg.Models.Dir)

			if rt := mlx.Detect(); rt != nil {
				fmt.Printf("  Engine:     %s\n\n", rt.String())
			} else {
				fmt.Printf("  Engine:     %s not detected (conversion and generation disabled)\n\n", ui.WarnIcon())
			}

			if err := server.New(cfg).Run(cfg.Serve.Addr); err != nil {
				ui.Bad.Printf("frond: server stopped: %v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	cmd.Flags().StringVar(&modelsDir, "models-dir", "", "Model store root (default from config)")
	return cmd
}
