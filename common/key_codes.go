package common

// Key identifies a keyboard key. Values match GLFW key codes, which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
type Key uint32

// MouseButton identifies a mouse button. Values match GLFW mouse button codes.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#MouseButton
type MouseButton uint32

// Virtual key codes for cross-platform input handling.
const (
	KeyW         Key = 87  // W key (ASCII)
	KeyA         Key = 65  // A key (ASCII)
	KeyS         Key = 83  // S key (ASCII)
	KeyD         Key = 68  // D key (ASCII)
	KeyQ         Key = 81  // Q key (ASCII)
	KeyE         Key = 69  // E key (ASCII)
	KeySpace     Key = 32  // Spacebar (ASCII)
	KeyBackspace Key = 259 // Backspace key (GLFW)
	KeyEsc       Key = 256 // Escape key (GLFW)
)

// Additional non-printable keys
const (
	KeyLeftShift  Key = 340 // Left Shift (GLFW)
	KeyRightShift Key = 344 // Right Shift (GLFW)
)

// Mouse buttons
const (
	MouseLeft    MouseButton = 0 // GLFW MouseButtonLeft
	MouseRight   MouseButton = 1 // GLFW MouseButtonRight
	MouseMiddle  MouseButton = 2 // GLFW MouseButtonMiddle
	MouseButton4 MouseButton = 3 // GLFW MouseButton4
	MouseButton5 MouseButton = 4 // GLFW MouseButton5
)

// MovementKeys lists every key the default camera reacts to. Platform pollers only need to sample these
// plus whatever the application binds on top.
var MovementKeys = []Key{KeyW, KeyA, KeyS, KeyD, KeySpace, KeyLeftShift, KeyRightShift}

// MouseButtons lists every mouse button platform pollers sample.
var MouseButtons = []MouseButton{MouseLeft, MouseRight, MouseMiddle, MouseButton4, MouseButton5}
