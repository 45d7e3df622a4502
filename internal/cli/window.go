package cli

import (
	"context"
	"errors"

	"github.com/faiface/beep"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/iburimskiy/neonclock/internal/audio"
	"github.com/iburimskiy/neonclock/internal/clock"
	"github.com/iburimskiy/neonclock/internal/config"
	"github.com/iburimskiy/neonclock/internal/game"
	"github.com/iburimskiy/neonclock/internal/logger"
	"github.com/rs/zerolog"
)

func runWindow(ctx context.Context, flags *rootFlags) error {
	rt, err := setup(ctx, flags)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sounds := newSoundManager(rt.cfg, logger.Component(rt.logger, "audio"))
	preloadSounds(ctx, sounds, rt.cfg.Audio.Sounds, rt.logger)

	g := game.New(ctx, rt.cfg, rt.themes, sounds, logger.Component(rt.logger, "window"))
	if _, err := rt.themes.Init(ctx, g.Selector(), func(string) { g.Repaint() }); err != nil {
		return err
	}

	formatter := clock.NewFormatter(g.TimeLabel(), g.DateLabel(),
		clock.WithInterval(rt.cfg.Clock.Interval),
		clock.WithDateLayout(rt.cfg.Clock.DateLayout),
	)
	go func() {
		_ = formatter.Run(ctx)
	}()

	ebiten.SetWindowSize(rt.cfg.Window.Width, rt.cfg.Window.Height)
	ebiten.SetWindowTitle(rt.cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	rt.logger.Info().Str("theme", rt.themes.Current()).Msg("neonclock starting")
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// newSoundManager falls back to a silent output when audio is disabled or
// the device cannot be opened.
func newSoundManager(cfg *config.Config, log zerolog.Logger) *audio.Manager {
	rate := beep.SampleRate(cfg.Audio.SampleRate)
	quality := audio.WithQuality(cfg.Audio.ResampleQuality)
	if !cfg.Audio.Enabled {
		return audio.NewManager(audio.Discard(rate), log, quality)
	}
	out, err := audio.NewSpeakerOutput(rate, cfg.Audio.BufferDuration)
	if err != nil {
		log.Warn().Err(err).Msg("audio device unavailable, sounds are muted")
		return audio.NewManager(audio.Discard(rate), log, quality)
	}
	return audio.NewManager(out, log, quality)
}

// preloadSounds loads every configured sound; failures are logged, not fatal.
func preloadSounds(ctx context.Context, sounds *audio.Manager, sources map[string]string, log zerolog.Logger) {
	for name, source := range sources {
		if err := sounds.Load(ctx, name, source); err != nil {
			log.Warn().Err(err).Str("sound", name).Msg("cannot preload sound")
		}
	}
}
