package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"TrendSentinel/internal/config"
	"TrendSentinel/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:          "sentinel",
		Short:        "Technical-indicator trend analysis for a watchlist",
		SilenceUsage: true,
	}

	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", defaultPath, "path to the YAML config file")

	load := func() (*config.Config, error) {
		// A missing .env is normal outside development.
		_ = godotenv.Load()

		cfg, err := config.Load(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("config validation: %w", err)
		}
		logging.Setup(cfg.Log.Level, os.Getenv("LOG_PRETTY") == "true")
		log.Debug().Str("path", cfgPath).Msg("config loaded")
		return cfg, nil
	}

	root.AddCommand(newRunCmd(load))
	root.AddCommand(newAnalyzeCmd(load))
	root.AddCommand(newExportCmd(load))
	return root
}
