package input

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ModeKind discriminates the capture mode variants.
type ModeKind int

const (
	// ModeFree leaves the cursor alone.
	ModeFree ModeKind = iota
	// ModeLocked warps the cursor back to an anchor point every frame.
	ModeLocked
)

// Mode is the mouse capture mode: either Free, or Locked to an anchor point the cursor is
// continuously warped back to. The zero value is Free.
type Mode struct {
	kind   ModeKind
	anchor mgl32.Vec2
}

// Free returns the Free capture mode.
func Free() Mode {
	return Mode{kind: ModeFree}
}

// Locked returns a capture mode that pins the cursor to anchor.
//
// Parameters:
//   - anchor: window-space point the cursor is warped back to
//
// Returns:
//   - Mode: the locked mode
func Locked(anchor mgl32.Vec2) Mode {
	return Mode{kind: ModeLocked, anchor: anchor}
}

// Kind returns which variant this mode is.
func (m Mode) Kind() ModeKind {
	return m.kind
}

// IsLocked reports whether the cursor is captured.
func (m Mode) IsLocked() bool {
	return m.kind == ModeLocked
}

// Anchor returns the warp target and true when the mode is Locked; otherwise the zero vector and false.
func (m Mode) Anchor() (mgl32.Vec2, bool) {
	if m.kind != ModeLocked {
		return mgl32.Vec2{}, false
	}
	return m.anchor, true
}

func (m Mode) String() string {
	if m.kind == ModeLocked {
		return fmt.Sprintf("Locked(%g, %g)", m.anchor[0], m.anchor[1])
	}
	return "Free"
}
