package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/iburimskiy/neonclock/internal/audio"
	"github.com/iburimskiy/neonclock/internal/clock"
	"github.com/iburimskiy/neonclock/internal/logger"
	"github.com/iburimskiy/neonclock/internal/tui"
	"github.com/spf13/cobra"
)

func newTUICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Show the clock in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			if _, err := rt.themes.Init(cmd.Context(), nil, nil); err != nil {
				return err
			}
			return tui.Run(cmd.Context(), rt.themes,
				clock.WithInterval(rt.cfg.Clock.Interval),
				clock.WithDateLayout(rt.cfg.Clock.DateLayout),
			)
		},
	}
}

type playFlags struct {
	volume float64
	rate   float64
}

func newPlayCmd(flags *rootFlags) *cobra.Command {
	pf := &playFlags{}
	defaults := audio.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "play <file-or-url>",
		Short: "Play a sound once and wait for it to finish",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			sounds := newSoundManager(rt.cfg, logger.Component(rt.logger, "audio"))
			source := args[0]
			name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
			if err := sounds.Load(cmd.Context(), name, source); err != nil {
				return err
			}

			sounds.Play(name, audio.Options{Volume: pf.volume, PlaybackRate: pf.rate})

			d, _ := sounds.Duration(name)
			if pf.rate > 0 {
				d = time.Duration(float64(d) / pf.rate)
			}
			select {
			case <-time.After(d + 100*time.Millisecond):
			case <-cmd.Context().Done():
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&pf.volume, "volume", defaults.Volume, "Playback volume (1.0 = unchanged)")
	cmd.Flags().Float64Var(&pf.rate, "rate", defaults.PlaybackRate, "Playback rate (2.0 = twice as fast)")
	return cmd
}

func newThemeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [name]",
		Short: "Print the saved theme, or save a new one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				name, err := rt.themes.Saved(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(out, name)
				fmt.Fprintf(out, "available: %s\n", strings.Join(rt.themes.Palettes().Names(), ", "))
				return nil
			}

			if err := rt.themes.SetTheme(cmd.Context(), args[0]); err != nil {
				return err
			}
			if _, known := rt.themes.Palettes().Lookup(args[0]); !known {
				rt.logger.Warn().Str("theme", args[0]).Msg("theme has no palette, default colors will be used")
			}
			fmt.Fprintln(out, rt.themes.Class())
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the neonclock version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}
