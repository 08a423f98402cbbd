// Package input holds the per-frame snapshot of pointer, touch and keyboard state
// consumed by the scene behaviours. Hosts fill a State every frame from their own
// device polling; behaviours never poll devices themselves.
package input

import "github.com/go-gl/mathgl/mgl64"

// MouseButton identifies a pointer button
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle

	mouseButtonCount
)

// TouchPhase describes what a touch did since the previous frame
type TouchPhase int

const (
	TouchBegan TouchPhase = iota
	TouchMoved
	TouchStationary
	TouchEnded
	TouchCanceled
)

// Key is a keyboard key, only the ones the behaviours react to are named
type Key int

const (
	KeyUnknown Key = iota
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyF
	KeyR
)

// DigitKey returns the key for digit d (0-9), KeyUnknown otherwise
func DigitKey(d int) Key {
	if d < 0 || d > 9 {
		return KeyUnknown
	}

	return Key0 + Key(d)
}

// Touch is one contact point, positions in pixels with Y pointing up
type Touch struct {
	ID       int
	Position mgl64.Vec2
	// Delta is the movement since the previous frame
	Delta mgl64.Vec2
	Phase TouchPhase
}

// PreviousPosition is where the touch was on the previous frame
func (t Touch) PreviousPosition() mgl64.Vec2 {
	return t.Position.Sub(t.Delta)
}

// State is the input snapshot of one frame.
// PointerDelta is in pixels with Y pointing up (moving the mouse up gives a positive Y).
type State struct {
	Buttons      [mouseButtonCount]bool
	PointerDelta mgl64.Vec2
	// Scroll is the vertical wheel delta, positive away from the user
	Scroll  float64
	Touches []Touch
	// JustPressed lists the keys pressed during this frame
	JustPressed []Key
}

// ButtonHeld reports whether button is down this frame
func (s State) ButtonHeld(button MouseButton) bool {
	if button < 0 || button >= mouseButtonCount {
		return false
	}

	return s.Buttons[button]
}

// KeyPressed reports whether key went down this frame
func (s State) KeyPressed(key Key) bool {
	for _, k := range s.JustPressed {
		if k == key {
			return true
		}
	}

	return false
}

// TouchCount is the number of active contacts
func (s State) TouchCount() int {
	return len(s.Touches)
}
