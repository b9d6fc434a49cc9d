package input

import (
	"sync"

	"github.com/Carmen-Shannon/lighthouse/common"
	"github.com/go-gl/mathgl/mgl32"
)

// RawSource answers point queries against the platform's live input state.
type RawSource interface {
	// KeyDown reports whether a key is currently held.
	KeyDown(key common.Key) bool

	// ButtonDown reports whether a mouse button is held, or was pressed since the previous query when the
	// platform latches short clicks.
	ButtonDown(button common.MouseButton) bool

	// Cursor returns the cursor position in window coordinates.
	Cursor() mgl32.Vec2
}

type snapshotPollerImpl struct {
	mu *sync.Mutex

	source  RawSource
	keys    []common.Key
	buttons []common.MouseButton

	pressedKeys    []common.Key
	pressedButtons []common.MouseButton
	cursor         mgl32.Vec2
}

var _ DevicePoller = &snapshotPollerImpl{}

// NewSnapshotPoller creates a DevicePoller that samples a fixed set of keys and buttons from source on every
// Refresh and serves the snapshot until the next Refresh.
//
// Parameters:
//   - source: the platform input source
//   - keys: the keys to sample, duplicates are dropped
//   - buttons: the mouse buttons to sample, duplicates are dropped
//
// Returns:
//   - DevicePoller: the poller, empty until the first Refresh
func NewSnapshotPoller(source RawSource, keys []common.Key, buttons []common.MouseButton) DevicePoller {
	if source == nil {
		panic("input: NewSnapshotPoller requires a source")
	}
	return &snapshotPollerImpl{
		mu:      &sync.Mutex{},
		source:  source,
		keys:    common.Unique(keys),
		buttons: common.Unique(buttons),
	}
}

func (p *snapshotPollerImpl) Refresh() {
	keys := make([]common.Key, 0, len(p.keys))
	for _, k := range p.keys {
		if p.source.KeyDown(k) {
			keys = append(keys, k)
		}
	}
	buttons := make([]common.MouseButton, 0, len(p.buttons))
	for _, b := range p.buttons {
		if p.source.ButtonDown(b) {
			buttons = append(buttons, b)
		}
	}
	cursor := p.source.Cursor()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.pressedKeys = keys
	p.pressedButtons = buttons
	p.cursor = cursor
}

func (p *snapshotPollerImpl) PressedKeys() []common.Key {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]common.Key(nil), p.pressedKeys...)
}

func (p *snapshotPollerImpl) CursorPosition() mgl32.Vec2 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor
}

func (p *snapshotPollerImpl) PressedButtons() []common.MouseButton {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]common.MouseButton(nil), p.pressedButtons...)
}
