package main

import (
	"log/slog"

	"github.com/Carmen-Shannon/lighthouse/engine/config"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "lighthouse",
		Short:         "Real-time 3D render loop with a first-person camera",
		Long:          `Lighthouse renders a textured, rotating pyramid and drives a first-person camera from keyboard and mouse input.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")

	cmd.AddCommand(newRunCommand(opts), newConfigCommand(opts))
	return cmd
}

// load returns the effective configuration: defaults, then the config file if one was given,
// then command line overrides.
func (o *rootOptions) load() (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// newLogger builds the process logger from the configuration and installs it as the slog default.
func newLogger(cmd *cobra.Command, cfg config.Config) *slog.Logger {
	logger := slog.New(cfg.Log.Handler(cmd.ErrOrStderr()))
	slog.SetDefault(logger)
	return logger
}
