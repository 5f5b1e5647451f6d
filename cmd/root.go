package main

import (
	"fmt"

	"todo_list/internal/config"
	"todo_list/internal/logger"

	"github.com/spf13/cobra"
)

var rootCmdPersistentFlags struct {
	ConfigFile string
	LogLevel   string
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootCmdPersistentFlags.ConfigFile, "config", "c", "", "Path to config file (default: configs/config.yml or ./config.yml)")
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error) - overrides config file setting")
}

var rootCmd = &cobra.Command{
	Use:   "todo",
	Short: "A small multi-user todo list server",
	Long:  `todo serves a JSON todo list API with user accounts, cookie sessions and bearer tokens, or a single anonymous in-memory list.`,
	Example: `todo --config configs/config.yml
  todo serve --log-level debug
  todo migrate
  todo users`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
	RunE:         runServe,
}

// loadConfig reads the config and builds the process logger, honoring --log-level.
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if rootCmdPersistentFlags.LogLevel != "" {
		cfg.Log.Level = rootCmdPersistentFlags.LogLevel
	}
	return cfg, logger.Get(cfg.Log.Level), nil
}

func Execute() error {
	return rootCmd.Execute()
}
