// Package theme keeps the active theme name, its persisted copy and the
// palette colors the renderers read from it.
package theme

import (
	"context"
	"errors"
	"sync"

	"github.com/iburimskiy/neonclock/internal/prefs"
	"github.com/rs/zerolog"
)

const (
	DefaultName = "default"
	DefaultKey  = "clock-theme"

	classPrefix = "theme-"
)

// Selector is a user-facing control offering the theme names.
// SetValue must not fire the OnChange listeners.
type Selector interface {
	Value() string
	SetValue(name string)
	OnChange(fn func(name string))
}

// Store applies and persists the active theme. The applied name and the
// persisted value are always the same once SetTheme returns nil.
type Store struct {
	prefs    prefs.Store
	palettes *Palettes
	logger   zerolog.Logger
	key      string
	fallback string

	mu       sync.RWMutex
	applied  string
	selector Selector
}

type Option func(*Store)

// WithKey sets the preference key the theme name is stored under.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithDefault sets the theme used when nothing has been persisted yet.
func WithDefault(name string) Option {
	return func(s *Store) { s.fallback = name }
}

func NewStore(p prefs.Store, palettes *Palettes, logger zerolog.Logger, opts ...Option) *Store {
	if palettes == nil {
		palettes = Builtin()
	}
	s := &Store{
		prefs:    p,
		palettes: palettes,
		logger:   logger,
		key:      DefaultKey,
		fallback: DefaultName,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetTheme persists name, applies it and brings an attached selector in line.
// Unknown names are accepted. Repainting is left to the caller.
func (s *Store) SetTheme(ctx context.Context, name string) error {
	if err := s.prefs.Set(ctx, s.key, name); err != nil {
		return err
	}

	s.mu.Lock()
	s.applied = name
	sel := s.selector
	s.mu.Unlock()

	if sel != nil && sel.Value() != name {
		sel.SetValue(name)
	}
	s.logger.Debug().Str("theme", name).Msg("theme applied")
	return nil
}

// Saved returns the persisted theme name, or the default when none is stored.
func (s *Store) Saved(ctx context.Context) (string, error) {
	name, err := s.prefs.Get(ctx, s.key)
	if errors.Is(err, prefs.ErrNotFound) || (err == nil && name == "") {
		return s.fallback, nil
	}
	if err != nil {
		return s.fallback, err
	}
	return name, nil
}

// Init applies the persisted theme and, when sel is non-nil, wires it so
// every user selection is applied, persisted and then reported to onChange.
// ctx is used for every later selection and should live as long as sel.
func (s *Store) Init(ctx context.Context, sel Selector, onChange func(name string)) (string, error) {
	saved, err := s.Saved(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("theme", saved).Msg("cannot read saved theme, using default")
	}

	s.mu.Lock()
	s.selector = sel
	s.mu.Unlock()

	if err := s.SetTheme(ctx, saved); err != nil {
		return saved, err
	}
	if sel == nil {
		return saved, nil
	}

	sel.SetValue(saved)
	sel.OnChange(func(name string) {
		if err := s.SetTheme(ctx, name); err != nil {
			s.logger.Error().Err(err).Str("theme", name).Msg("cannot apply theme")
			return
		}
		if onChange != nil {
			onChange(name)
		}
	})
	return saved, nil
}

// Current returns the applied theme name; empty before the first SetTheme.
func (s *Store) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.applied
}

// Class returns the document-level style class, "theme-<name>".
func (s *Store) Class() string {
	name := s.Current()
	if name == "" {
		return ""
	}
	return classPrefix + name
}

// Palette returns the applied theme's palette; unknown themes get an empty
// palette carrying only the name.
func (s *Store) Palette() Palette {
	name := s.Current()
	if pal, ok := s.palettes.Lookup(name); ok {
		return pal
	}
	return Palette{Name: name}
}

// Accent returns the applied theme's accent color, or "" when it has none.
func (s *Store) Accent() string {
	return s.Palette().Accent
}

func (s *Store) Palettes() *Palettes {
	return s.palettes
}
