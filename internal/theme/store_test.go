package theme

import (
	"context"
	"errors"
	"testing"

	"github.com/iburimskiy/neonclock/internal/prefs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSelector struct {
	value    string
	sets     int
	listener func(string)
}

func (f *fakeSelector) Value() string { return f.value }
func (f *fakeSelector) SetValue(name string) { f.value = name; f.sets++ }
func (f *fakeSelector) OnChange(fn func(string)) { f.listener = fn }

// choose mimics a user picking a value in the control.
func (f *fakeSelector) choose(name string) {
	f.value = name
	f.listener(name)
}

type failingPrefs struct{ prefs.Store }

func (failingPrefs) Set(context.Context, string, string) error { return errors.New("disk full") }

func newTestStore(p prefs.Store) *Store {
	return NewStore(p, Builtin(), zerolog.Nop())
}

func TestSetThemePersistsAndApplies(t *testing.T) {
	ctx := context.Background()
	p := prefs.NewMemory()
	s := newTestStore(p)

	require.NoError(t, s.SetTheme(ctx, "neon"))

	got, err := p.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "neon", got)
	assert.Equal(t, "neon", s.Current())
	assert.Equal(t, "theme-neon", s.Class())
	assert.Equal(t, "#00ffaa", s.Accent())
}

func TestSetThemeAcceptsUnknownName(t *testing.T) {
	ctx := context.Background()
	p := prefs.NewMemory()
	s := newTestStore(p)

	require.NoError(t, s.SetTheme(ctx, "vaporwave"))

	got, err := p.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "vaporwave", got)
	assert.Equal(t, "theme-vaporwave", s.Class())
	assert.Empty(t, s.Accent())
}

func TestSetThemeFailedWriteKeepsPrevious(t *testing.T) {
	ctx := context.Background()
	mem := prefs.NewMemory()
	s := newTestStore(mem)
	require.NoError(t, s.SetTheme(ctx, "ocean"))

	s.prefs = failingPrefs{mem}
	assert.Error(t, s.SetTheme(ctx, "sunset"))

	assert.Equal(t, "ocean", s.Current())
	got, _ := mem.Get(ctx, DefaultKey)
	assert.Equal(t, "ocean", got)
}

func TestSetThemeSyncsSelector(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(prefs.NewMemory())
	sel := &fakeSelector{}
	_, err := s.Init(ctx, sel, nil)
	require.NoError(t, err)
	sets := sel.sets

	require.NoError(t, s.SetTheme(ctx, "mono"))
	assert.Equal(t, "mono", sel.value)
	assert.Equal(t, sets+1, sel.sets)

	// already matching: the control is left alone
	require.NoError(t, s.SetTheme(ctx, "mono"))
	assert.Equal(t, sets+1, sel.sets)
}

func TestInitDefaultsWhenNothingSaved(t *testing.T) {
	s := newTestStore(prefs.NewMemory())
	sel := &fakeSelector{}

	name, err := s.Init(context.Background(), sel, nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultName, name)
	assert.Equal(t, "theme-default", s.Class())
	assert.Equal(t, DefaultName, sel.value)
}

func TestInitRestoresSavedTheme(t *testing.T) {
	ctx := context.Background()
	p := prefs.NewMemory()
	require.NoError(t, p.Set(ctx, "my-key", "sunset"))
	s := NewStore(p, Builtin(), zerolog.Nop(), WithKey("my-key"), WithDefault("neon"))

	name, err := s.Init(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "sunset", name)
	assert.Equal(t, "sunset", s.Current())
}

func TestInitEmptySavedValueUsesDefault(t *testing.T) {
	ctx := context.Background()
	p := prefs.NewMemory()
	require.NoError(t, p.Set(ctx, DefaultKey, ""))
	s := NewStore(p, Builtin(), zerolog.Nop(), WithDefault("ocean"))

	name, err := s.Init(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "ocean", name)
}

func TestSelectorChangeAppliesPersistsAndNotifies(t *testing.T) {
	ctx := context.Background()
	p := prefs.NewMemory()
	s := newTestStore(p)
	sel := &fakeSelector{}

	var changed []string
	_, err := s.Init(ctx, sel, func(name string) { changed = append(changed, name) })
	require.NoError(t, err)

	sel.choose("amber")

	assert.Equal(t, []string{"amber"}, changed)
	assert.Equal(t, "amber", s.Current())
	got, _ := p.Get(ctx, DefaultKey)
	assert.Equal(t, "amber", got)
}

func TestSelectorChangeFailureSkipsNotify(t *testing.T) {
	ctx := context.Background()
	mem := prefs.NewMemory()
	s := newTestStore(mem)
	sel := &fakeSelector{}

	called := false
	_, err := s.Init(ctx, sel, func(string) { called = true })
	require.NoError(t, err)

	s.prefs = failingPrefs{mem}
	sel.choose("neon")

	assert.False(t, called)
	assert.Equal(t, DefaultName, s.Current())
}
