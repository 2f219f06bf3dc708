package main

import (
	"fmt"

	"github.com/dhamidi/parsec/config"
	"github.com/dhamidi/parsec/lsp"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Find(".")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			server := lsp.NewLSPServer(version, cfg)
			return server.RunStdio()
		},
	}
}
