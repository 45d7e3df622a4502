// Package cli defines the neonclock command tree.
package cli

import (
	"context"
	"fmt"

	"github.com/iburimskiy/neonclock/internal/config"
	"github.com/iburimskiy/neonclock/internal/logger"
	"github.com/iburimskiy/neonclock/internal/prefs"
	"github.com/iburimskiy/neonclock/internal/theme"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

type rootFlags struct {
	configPath string
	logLevel   string
	verbose    bool
}

// appContext bundles what every command needs.
type appContext struct {
	cfg    *config.Config
	logger zerolog.Logger
	prefs  *prefs.SQLite
	themes *theme.Store
}

func (r *appContext) Close() error {
	return r.prefs.Close()
}

func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "neonclock",
		Short:         "Digital clock with themes, an animated background and click sounds",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(cmd.Context(), flags)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override the configured log level")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newTUICmd(flags))
	cmd.AddCommand(newPlayCmd(flags))
	cmd.AddCommand(newThemeCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func setup(ctx context.Context, flags *rootFlags) (*appContext, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if flags.logLevel != "" {
		level = flags.logLevel
	}
	if flags.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: cfg.Log.Human})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	store, err := prefs.OpenSQLite(ctx, cfg.Theme.PrefsPath)
	if err != nil {
		return nil, err
	}

	palettes, err := theme.LoadPalettes(cfg.Theme.Palettes)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	themes := theme.NewStore(store, palettes, logger.Component(log, "theme"),
		theme.WithKey(cfg.Theme.Key),
		theme.WithDefault(cfg.Theme.Default),
	)

	return &appContext{cfg: cfg, logger: log, prefs: store, themes: themes}, nil
}
