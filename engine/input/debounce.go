package input

import (
	"time"

	"github.com/Carmen-Shannon/lighthouse/common"
)

// DefaultCooldown is the minimum interval between two recognized presses of the same button.
const DefaultCooldown = 100 * time.Millisecond

// ButtonState is the per-button debounce state.
type ButtonState int

const (
	// Released means the button was not seen pressed at the last filter pass.
	Released ButtonState = iota
	// Pressed means the button was seen pressed at the last filter pass.
	Pressed
)

func (s ButtonState) String() string {
	if s == Pressed {
		return "Pressed"
	}
	return "Released"
}

type buttonTrack struct {
	state    ButtonState
	lastEmit time.Time
	emitted  bool
}

// Debouncer turns raw per-poll button samples into press events, emitting at most one event per button
// per cooldown window. Timing is driven by the timestamps passed to Filter, never by frame counts.
// Not safe for concurrent use; MouseState serializes access.
type Debouncer struct {
	cooldown time.Duration
	buttons  map[common.MouseButton]*buttonTrack
}

// NewDebouncer creates a Debouncer with the given cooldown window.
// A non-positive cooldown falls back to DefaultCooldown.
//
// Parameters:
//   - cooldown: minimum interval between two events for the same button
//
// Returns:
//   - *Debouncer: the new debouncer
func NewDebouncer(cooldown time.Duration) *Debouncer {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Debouncer{
		cooldown: cooldown,
		buttons:  make(map[common.MouseButton]*buttonTrack),
	}
}

// Cooldown returns the debounce window.
func (d *Debouncer) Cooldown() time.Duration {
	return d.cooldown
}

// Filter records the buttons pressed at time now and returns those that produce a press event.
// A button emits when it has never emitted or when at least one cooldown has elapsed since its last
// event. This covers both a fresh Released -> Pressed transition and a held button retriggering.
// Buttons missing from pressed go back to Released.
//
// Parameters:
//   - now: timestamp of the sample
//   - pressed: raw pressed buttons for this sample
//
// Returns:
//   - []common.MouseButton: buttons that emit a press event, in input order
func (d *Debouncer) Filter(now time.Time, pressed []common.MouseButton) []common.MouseButton {
	pressed = common.Unique(pressed)

	down := make(map[common.MouseButton]struct{}, len(pressed))
	for _, b := range pressed {
		down[b] = struct{}{}
	}
	for b, tr := range d.buttons {
		if _, ok := down[b]; !ok {
			tr.state = Released
		}
	}

	var events []common.MouseButton
	for _, b := range pressed {
		tr, ok := d.buttons[b]
		if !ok {
			tr = &buttonTrack{}
			d.buttons[b] = tr
		}
		tr.state = Pressed
		// The window runs from the last emitted press, not the last release: a release and re-press inside
		// one cooldown is treated as contact bounce and stays silent.
		if !tr.emitted || now.Sub(tr.lastEmit) >= d.cooldown {
			tr.emitted = true
			tr.lastEmit = now
			events = append(events, b)
		}
	}
	return events
}

// State returns the current debounce state of a button.
func (d *Debouncer) State(b common.MouseButton) ButtonState {
	if tr, ok := d.buttons[b]; ok {
		return tr.state
	}
	return Released
}
