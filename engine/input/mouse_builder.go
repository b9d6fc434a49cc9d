package input

import (
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// MouseStateOption is a functional option for configuring a MouseState.
type MouseStateOption func(*mouseStateImpl)

// WithCooldown sets the per-button debounce window.
//
// Parameters:
//   - cooldown: minimum interval between two recognized presses of the same button
//
// Returns:
//   - MouseStateOption: option function to apply
func WithCooldown(cooldown time.Duration) MouseStateOption {
	return func(m *mouseStateImpl) {
		m.debouncer = NewDebouncer(cooldown)
	}
}

// WithClock overrides the time source used for debouncing.
//
// Parameters:
//   - clock: function returning the current time
//
// Returns:
//   - MouseStateOption: option function to apply
func WithClock(clock func() time.Time) MouseStateOption {
	return func(m *mouseStateImpl) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// WithPosition sets the initial cursor position.
func WithPosition(pos mgl32.Vec2) MouseStateOption {
	return func(m *mouseStateImpl) {
		m.position = pos
	}
}

// WithMode sets the initial capture mode.
func WithMode(mode Mode) MouseStateOption {
	return func(m *mouseStateImpl) {
		m.mode = mode
	}
}

// WithLogger sets the logger used for mode transition messages.
func WithLogger(logger *slog.Logger) MouseStateOption {
	return func(m *mouseStateImpl) {
		if logger != nil {
			m.logger = logger
		}
	}
}
