package main

import (
	"os"

	"github.com/spf13/cobra"

	"askai/client/internal/app"
)

func runServeCommand(cmd *cobra.Command, args []string) error {
	app.SetupLogger(os.Stdout, cfg.LogLevel)
	return app.Start(cmd.Context(), cfg)
}
