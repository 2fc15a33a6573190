package main

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/capwave/capwave/internal/config"
)

var printConfigCmd = &cobra.Command{
	Use:   "print-config",
	Short: "Print the resolved configuration as TOML",
	RunE:  runPrintConfig,
}

func runPrintConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	out, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	fmt.Print(string(out))
	return nil
}
