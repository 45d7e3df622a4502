// Package tui renders the clock in a terminal with the persisted theme's colors.
package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/iburimskiy/neonclock/internal/clock"
	"github.com/iburimskiy/neonclock/internal/theme"
)

type tickMsg time.Time

// Model is the bubbletea model for the terminal clock.
type Model struct {
	ctx       context.Context
	themes    *theme.Store
	formatter *clock.Formatter
	timeLabel *clock.Label
	dateLabel *clock.Label
	err       error
	width     int
}

func NewModel(ctx context.Context, themes *theme.Store, opts ...clock.Option) Model {
	timeLabel, dateLabel := &clock.Label{}, &clock.Label{}
	return Model{
		ctx:       ctx,
		themes:    themes,
		formatter: clock.NewFormatter(timeLabel, dateLabel, opts...),
		timeLabel: timeLabel,
		dateLabel: dateLabel,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.formatter.Interval(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	m.formatter.Update()
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.formatter.Update()
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "t":
			next := m.themes.Palettes().Next(m.themes.Current())
			m.err = m.themes.SetTheme(m.ctx, next)
		}
	}
	return m, nil
}

func (m Model) View() string {
	pal := m.themes.Palette()
	accent := lipgloss.Color(colorOr(pal.Accent, "#7c5cff"))
	fg := lipgloss.Color(colorOr(pal.Foreground, "#ffffff"))

	timeStyle := lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 2)
	dateStyle := lipgloss.NewStyle().Foreground(fg)
	hintStyle := lipgloss.NewStyle().Faint(true)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 4).
		Align(lipgloss.Center)

	body := lipgloss.JoinVertical(lipgloss.Center,
		timeStyle.Render(m.timeLabel.Text()),
		dateStyle.Render(m.dateLabel.Text()),
	)
	hint := "t: theme (" + m.themes.Current() + ")  q: quit"
	if m.err != nil {
		hint += "  error: " + m.err.Error()
	}
	view := lipgloss.JoinVertical(lipgloss.Center, box.Render(body), hintStyle.Render(hint))
	if m.width > 0 {
		view = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, view)
	}
	return view
}

// colorOr converts any supported color string to hex for the terminal.
func colorOr(c, fallback string) string {
	if c == "" {
		return fallback
	}
	return theme.ToRGBA(c, 1).Hex()
}

// Run shows the clock until the user quits or ctx is canceled.
func Run(ctx context.Context, themes *theme.Store, opts ...clock.Option) error {
	p := tea.NewProgram(NewModel(ctx, themes, opts...), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return exitErr(ctx, err)
}

// exitErr drops the error bubbletea reports when the program was stopped by
// cancelling ctx, which is how Ctrl+C and SIGTERM end the clock.
func exitErr(ctx context.Context, err error) error {
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
