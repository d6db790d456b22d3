package toast

import (
	"log/slog"
	"time"
)

const (
	DefaultMaxVisible  = 3
	DefaultEnterDelay  = 50 * time.Millisecond
	DefaultExitDelay   = 300 * time.Millisecond
	DefaultAutoDismiss = 5 * time.Second
)

// Option configures a Stack.
type Option func(*Stack)

// WithMaxVisible caps the number of toasts on screen.
func WithMaxVisible(n int) Option {
	return func(s *Stack) {
		if n > 0 {
			s.maxVisible = n
		}
	}
}

// WithEnterDelay sets how long a toast stays in the entering phase.
func WithEnterDelay(d time.Duration) Option {
	return func(s *Stack) {
		if d >= 0 {
			s.enterDelay = d
		}
	}
}

// WithExitDelay sets how long a dismissed toast stays in the leaving phase
// before it is removed from the store.
func WithExitDelay(d time.Duration) Option {
	return func(s *Stack) {
		if d >= 0 {
			s.exitDelay = d
		}
	}
}

// WithAutoDismiss sets the auto-dismiss delay. Zero disables it.
func WithAutoDismiss(d time.Duration) Option {
	return func(s *Stack) {
		if d >= 0 {
			s.autoDismiss = d
		}
	}
}

// WithErrorAutoDismiss lets error toasts auto-dismiss too.
func WithErrorAutoDismiss(enabled bool) Option {
	return func(s *Stack) { s.errorAutoDismiss = enabled }
}

// WithClock replaces the timer source.
func WithClock(c Clock) Option {
	return func(s *Stack) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets the logger for rejected phase transitions.
func WithLogger(l *slog.Logger) Option {
	return func(s *Stack) {
		if l != nil {
			s.logger = l
		}
	}
}
