package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	WindowWidth  = 1024
	WindowHeight = 512
	WindowTitle  = "Neon Clock - T: theme, O: load click sound, Esc/Q: quit"

	// Theme persistence
	ThemeKey     = "clock-theme"
	DefaultTheme = "default"

	// Clock
	ClockInterval = time.Second
	DateLayout    = "Monday, January 2, 2006"

	// Audio output
	SampleRate      = 44100
	BufferDuration  = 50 * time.Millisecond
	ResampleQuality = 4
	ClickSound      = "click"

	EnvPrefix = "NEONCLOCK"
)

// Config is the full runtime configuration.
type Config struct {
	Window WindowConfig `mapstructure:"window"`
	Theme  ThemeConfig  `mapstructure:"theme"`
	Clock  ClockConfig  `mapstructure:"clock"`
	Audio  AudioConfig  `mapstructure:"audio"`
	Log    LogConfig    `mapstructure:"log"`
}

type WindowConfig struct {
	Width  int    `mapstructure:"width" validate:"gt=0"`
	Height int    `mapstructure:"height" validate:"gt=0"`
	Title  string `mapstructure:"title" validate:"required"`
}

type ThemeConfig struct {
	// Key is the preference key holding the active theme name.
	Key       string `mapstructure:"key" validate:"required"`
	Default   string `mapstructure:"default" validate:"required"`
	// Palettes optionally points at a YAML file adding or overriding themes.
	Palettes  string `mapstructure:"palettes"`
	PrefsPath string `mapstructure:"prefs_path" validate:"required"`
}

type ClockConfig struct {
	Interval   time.Duration `mapstructure:"interval" validate:"gt=0"`
	DateLayout string        `mapstructure:"date_layout" validate:"required"`
}

type AudioConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	SampleRate     int           `mapstructure:"sample_rate" validate:"gte=8000,lte=192000"`
	BufferDuration time.Duration `mapstructure:"buffer_duration" validate:"gt=0"`
	// ResampleQuality is beep's resampler quality, 1 (fast) to 64 (best).
	ResampleQuality int               `mapstructure:"resample_quality" validate:"min=1,max=64"`
	Sounds          map[string]string `mapstructure:"sounds" validate:"dive,keys,required,endkeys,required"`
	ClickSound      string            `mapstructure:"click_sound"`
	ClickVolume     float64           `mapstructure:"click_volume" validate:"gte=0"`
	ClickRate       float64           `mapstructure:"click_rate" validate:"gt=0"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Human bool   `mapstructure:"human"`
}

// Default returns the configuration used when no file or environment overrides are present.
func Default() *Config {
	return &Config{
		Window: WindowConfig{Width: WindowWidth, Height: WindowHeight, Title: WindowTitle},
		Theme: ThemeConfig{
			Key:       ThemeKey,
			Default:   DefaultTheme,
			PrefsPath: defaultPrefsPath(),
		},
		Clock: ClockConfig{Interval: ClockInterval, DateLayout: DateLayout},
		Audio: AudioConfig{
			Enabled:         true,
			SampleRate:      SampleRate,
			BufferDuration:  BufferDuration,
			ResampleQuality: ResampleQuality,
			Sounds:          map[string]string{},
			ClickSound:      ClickSound,
			ClickVolume:     1.0,
			ClickRate:       1.0,
		},
		Log: LogConfig{Level: "info", Human: true},
	}
}

// Load reads defaults, the optional config file at path and NEONCLOCK_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Audio.Sounds == nil {
		cfg.Audio.Sounds = map[string]string{}
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("window.title", d.Window.Title)

	v.SetDefault("theme.key", d.Theme.Key)
	v.SetDefault("theme.default", d.Theme.Default)
	v.SetDefault("theme.palettes", d.Theme.Palettes)
	v.SetDefault("theme.prefs_path", d.Theme.PrefsPath)

	v.SetDefault("clock.interval", d.Clock.Interval)
	v.SetDefault("clock.date_layout", d.Clock.DateLayout)

	v.SetDefault("audio.enabled", d.Audio.Enabled)
	v.SetDefault("audio.sample_rate", d.Audio.SampleRate)
	v.SetDefault("audio.buffer_duration", d.Audio.BufferDuration)
	v.SetDefault("audio.resample_quality", d.Audio.ResampleQuality)
	v.SetDefault("audio.sounds", d.Audio.Sounds)
	v.SetDefault("audio.click_sound", d.Audio.ClickSound)
	v.SetDefault("audio.click_volume", d.Audio.ClickVolume)
	v.SetDefault("audio.click_rate", d.Audio.ClickRate)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.human", d.Log.Human)
}

func defaultPrefsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".neonclock.db"
	}
	return filepath.Join(dir, "neonclock", "prefs.db")
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// Validate checks cfg against its struct constraints and reports every failing field.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is required")
	}
	err := validatorInstance().Struct(cfg)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return fmt.Errorf("validate config: %w", err)
	}

	msgs := make([]string, 0, len(ves))
	for _, fe := range ves {
		msgs = append(msgs, fmt.Sprintf("%s: failed %s", fieldPath(fe), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// fieldPath turns "Config.Audio.ClickRate" into "audio.clickrate".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	return strings.ToLower(ns)
}
