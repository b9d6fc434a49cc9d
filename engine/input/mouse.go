package input

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/lighthouse/common"
	"github.com/go-gl/mathgl/mgl32"
)

type mouseStateImpl struct {
	mu *sync.Mutex

	position mgl32.Vec2
	mode     Mode

	debouncer *Debouncer
	clock     func() time.Time
	logger    *slog.Logger
}

// MouseState tracks the raw cursor position, the capture mode and the per-button debounce timestamps.
// One instance is owned by the world and shared with every mouse handler for the frame.
type MouseState interface {
	// Position returns the cursor position recorded by the last Sample.
	//
	// Returns:
	//   - mgl32.Vec2: cursor x, y in window pixels
	Position() mgl32.Vec2

	// Mode returns the current capture mode.
	//
	// Returns:
	//   - Mode: Free or Locked(anchor)
	Mode() Mode

	// SetMode replaces the capture mode.
	//
	// Parameters:
	//   - mode: the new capture mode
	SetMode(mode Mode)

	// Cooldown returns the per-button debounce window.
	//
	// Returns:
	//   - time.Duration: the debounce window
	Cooldown() time.Duration

	// Sample copies the device's current cursor position into the state.
	//
	// Parameters:
	//   - device: the poller to read from
	Sample(device DevicePoller)

	// PressedCooldown queries the device for buttons pressed since the last poll and returns only
	// those that pass the debounce window at the current clock time.
	//
	// Parameters:
	//   - device: the poller to read from
	//
	// Returns:
	//   - []common.MouseButton: debounced press events
	PressedCooldown(device DevicePoller) []common.MouseButton

	// ButtonState returns the debounce state of a button.
	//
	// Parameters:
	//   - b: the button
	//
	// Returns:
	//   - ButtonState: Released or Pressed
	ButtonState(b common.MouseButton) ButtonState
}

var _ MouseState = &mouseStateImpl{}

// NewMouseState creates a MouseState in Free mode with a 100 ms debounce window.
//
// Parameters:
//   - options: functional options to configure the state
//
// Returns:
//   - MouseState: the new mouse state
func NewMouseState(options ...MouseStateOption) MouseState {
	m := &mouseStateImpl{
		mu:        &sync.Mutex{},
		mode:      Free(),
		debouncer: NewDebouncer(DefaultCooldown),
		clock:     time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *mouseStateImpl) Position() mgl32.Vec2 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *mouseStateImpl) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

func (m *mouseStateImpl) SetMode(mode Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mode != mode {
		m.logger.Debug("mouse capture mode changed", "from", m.mode.String(), "to", mode.String())
	}
	m.mode = mode
}

func (m *mouseStateImpl) Cooldown() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.debouncer.Cooldown()
}

func (m *mouseStateImpl) Sample(device DevicePoller) {
	pos := device.CursorPosition()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = pos
}

func (m *mouseStateImpl) PressedCooldown(device DevicePoller) []common.MouseButton {
	pressed := device.PressedButtons()
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.debouncer.Filter(m.clock(), pressed)
}

func (m *mouseStateImpl) ButtonState(b common.MouseButton) ButtonState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.debouncer.State(b)
}
