// Package clock formats wall-clock time and date strings and pushes them to
// display targets on a fixed interval.
package clock

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const (
	DefaultInterval = time.Second
	// DefaultDateLayout is the long weekday/month form, e.g. "Thursday, October 15, 2026".
	DefaultDateLayout = "Monday, January 2, 2006"
)

// Target receives formatted text.
type Target interface {
	SetText(text string)
}

// Label is a Target safe for one writer goroutine and any number of readers.
type Label struct {
	mu   sync.RWMutex
	text string
}

func (l *Label) SetText(text string) {
	l.mu.Lock()
	l.text = text
	l.mu.Unlock()
}

func (l *Label) Text() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.text
}

// FormatTime renders t as HH:MM:SS on a 24-hour clock.
func FormatTime(t time.Time) string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// FormatDate renders t with layout, or DefaultDateLayout when layout is empty.
func FormatDate(t time.Time, layout string) string {
	if layout == "" {
		layout = DefaultDateLayout
	}
	return t.Format(layout)
}

// Formatter writes the current time and date into its targets. Either target
// may be nil, in which case it is skipped.
type Formatter struct {
	timeTarget Target
	dateTarget Target
	interval   time.Duration
	layout     string
	now        func() time.Time
}

type Option func(*Formatter)

func WithInterval(d time.Duration) Option {
	return func(f *Formatter) {
		if d > 0 {
			f.interval = d
		}
	}
}

func WithDateLayout(layout string) Option {
	return func(f *Formatter) {
		if layout != "" {
			f.layout = layout
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(f *Formatter) { f.now = now }
}

func NewFormatter(timeTarget, dateTarget Target, opts ...Option) *Formatter {
	f := &Formatter{
		timeTarget: timeTarget,
		dateTarget: dateTarget,
		interval:   DefaultInterval,
		layout:     DefaultDateLayout,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Update reads the clock once and writes both strings. It returns the time read.
func (f *Formatter) Update() time.Time {
	now := f.now()
	if f.timeTarget != nil {
		f.timeTarget.SetText(FormatTime(now))
	}
	if f.dateTarget != nil {
		f.dateTarget.SetText(FormatDate(now, f.layout))
	}
	return now
}

func (f *Formatter) Interval() time.Duration { return f.interval }

// Run updates immediately and then on every tick until ctx is canceled.
func (f *Formatter) Run(ctx context.Context) error {
	f.Update()

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			f.Update()
		}
	}
}
