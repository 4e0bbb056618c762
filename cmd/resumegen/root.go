package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "resumegen.json"

// options stores global CLI state shared between commands. The config and
// logger are populated by the root command's PersistentPreRunE.
type options struct {
	configPath string
	config     *Config
	logger     *slog.Logger
}

// execute builds the root command, runs it with the provided args and
// logger, and returns any error.
func execute(args []string, logger *slog.Logger) error {
	opts := &options{
		configPath: defaultConfigPath,
		logger:     logger,
	}

	rootCmd := newRootCommand(opts)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command with global flags and
// subcommands.
func newRootCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resumegen",
		Short:   "resumegen renders HTML documents from Markdown content and Mustache templates",
		Long:    "resumegen extracts structured data from a Markdown resume (or a JSON/YAML context file) and renders it through a logic-light Mustache template into HTML.",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			config, err := LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			if override := cmd.Flag("log-level").Value.String(); override != "" {
				config.LogLevel = override
			}
			opts.config = config
			opts.logger = newLogger(os.Stderr, parseLogLevel(config.LogLevel))
			opts.logger.Debug("configuration loaded", "path", opts.configPath)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", defaultConfigPath, "Path to the resumegen config file")
	cmd.PersistentFlags().String("log-level", "", "Log level override (debug, info, warn, error)")

	cmd.AddCommand(
		newRenderCommand(opts),
		newDataCommand(opts),
		newHistoryCommand(opts),
	)

	return cmd
}
