// Command lighthouse opens a window and renders a textured, rotating pyramid through a first-person camera.
//
// Controls: W/A/S/D and Space/Shift move the camera, the left mouse button captures the cursor,
// the right mouse button releases it, Escape quits.
package main

import (
	"fmt"
	"os"
	"runtime"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
