package game

import (
	"errors"

	"github.com/ncruces/zenity"
)

// ErrNoClickSound is returned when no sound name is configured to load into.
var ErrNoClickSound = errors.New("no click sound name configured")

// FileDialog asks the user for a file; it returns zenity.ErrCanceled when dismissed.
type FileDialog func() (string, error)

func selectSoundFile() (string, error) {
	return zenity.SelectFile(
		zenity.Title("Load Click Sound"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
}

// loadClickSound lets the user pick a file and registers it as the click sound.
func (g *Game) loadClickSound() error {
	if g.cfg.Audio.ClickSound == "" {
		return ErrNoClickSound
	}

	filename, err := g.selectFile()
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}

	if err := g.sounds.Load(g.ctx, g.cfg.Audio.ClickSound, filename); err != nil {
		return err
	}
	g.logger.Info().Str("file", filename).Str("sound", g.cfg.Audio.ClickSound).Msg("click sound loaded")
	return nil
}
