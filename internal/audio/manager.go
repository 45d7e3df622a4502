// Package audio loads named sound buffers and plays them as independent
// one-shot voices.
package audio

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Resampling quality bounds accepted by beep; DefaultQuality is used for
// rate and sample rate conversion unless WithQuality says otherwise.
const (
	MinQuality     = 1
	MaxQuality     = 64
	DefaultQuality = 4
)

// Options tune a single playback.
type Options struct {
	// Volume multiplies the samples; 1.0 plays at the recorded level, 0 is silent.
	Volume float64
	// PlaybackRate speeds up (>1) or slows down (<1) playback, shifting pitch.
	// Non-positive values are treated as 1.0.
	PlaybackRate float64
}

// DefaultOptions returns Volume 1.0 and PlaybackRate 1.0.
func DefaultOptions() Options {
	return Options{Volume: 1.0, PlaybackRate: 1.0}
}

// Output is the device voices are mixed into.
type Output interface {
	SampleRate() beep.SampleRate
	Play(s beep.Streamer)
}

// Manager is the registry of decoded buffers. It is safe for concurrent use.
type Manager struct {
	output  Output
	fetcher Fetcher
	quality int
	logger  zerolog.Logger

	mu      sync.RWMutex
	buffers map[string]*beep.Buffer
}

type Option func(*Manager)

func WithFetcher(f Fetcher) Option {
	return func(m *Manager) { m.fetcher = f }
}

// WithQuality sets the resampling quality, clamped to MinQuality..MaxQuality.
func WithQuality(q int) Option {
	return func(m *Manager) {
		m.quality = min(max(q, MinQuality), MaxQuality)
	}
}

func NewManager(output Output, logger zerolog.Logger, opts ...Option) *Manager {
	m := &Manager{
		output:  output,
		fetcher: SourceFetcher{},
		quality: DefaultQuality,
		logger:  logger,
		buffers: map[string]*beep.Buffer{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load fetches and decodes source and registers it under name, replacing
// any previous buffer. Fetch and decode failures are returned and leave the
// registry unchanged.
func (m *Manager) Load(ctx context.Context, name, source string) error {
	data, err := m.fetcher.Fetch(ctx, source)
	if err != nil {
		return fmt.Errorf("load %q: fetch %s: %w", name, source, err)
	}

	streamer, format, err := decode(data, source)
	if err != nil {
		return fmt.Errorf("load %q: decode %s: %w", name, source, err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	if err := streamer.Err(); err != nil {
		return fmt.Errorf("load %q: decode %s: %w", name, source, err)
	}

	m.mu.Lock()
	m.buffers[name] = buf
	m.mu.Unlock()

	m.logger.Debug().
		Str("sound", name).
		Str("source", source).
		Int("sample_rate", int(format.SampleRate)).
		Int("samples", buf.Len()).
		Msg("audio loaded")
	return nil
}

// Play starts a fresh voice for name. Unknown names are logged and ignored.
// Voices cannot be stopped and are not tracked after they start.
func (m *Manager) Play(name string, opts Options) {
	m.mu.RLock()
	buf, ok := m.buffers[name]
	m.mu.RUnlock()
	if !ok {
		m.logger.Warn().Str("sound", name).Msg("audio not loaded")
		return
	}

	rate := opts.PlaybackRate
	if rate <= 0 {
		rate = 1
	}

	var s beep.Streamer = buf.Streamer(0, buf.Len())
	ratio := float64(buf.Format().SampleRate) / float64(m.output.SampleRate()) * rate
	if ratio != 1 {
		s = beep.ResampleRatio(m.quality, ratio, s)
	}
	s = &effects.Gain{Streamer: s, Gain: opts.Volume - 1}

	m.output.Play(s)
	m.logger.Debug().
		Str("sound", name).
		Str("voice", uuid.NewString()).
		Float64("volume", opts.Volume).
		Float64("rate", rate).
		Msg("audio started")
}

// Loaded reports whether name has a buffer.
func (m *Manager) Loaded(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.buffers[name]
	return ok
}

// Names lists loaded buffer names in sorted order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	names := make([]string, 0, len(m.buffers))
	for name := range m.buffers {
		names = append(names, name)
	}
	m.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Duration returns how long name plays at rate 1.0.
func (m *Manager) Duration(name string) (time.Duration, bool) {
	m.mu.RLock()
	buf, ok := m.buffers[name]
	m.mu.RUnlock()
	if !ok {
		return 0, false
	}
	return buf.Format().SampleRate.D(buf.Len()), true
}
