package motion

import "github.com/go-gl/mathgl/mgl64"

// Button identifies a digital input the engine cares about.
type Button uint32

const (
	ButtonJump Button = 1 << iota
	ButtonCrouch
	ButtonSprint
	ButtonDash
	ButtonGrapple
	ButtonFly
)

// Sample is one tick's worth of input, polled once at the top of the tick.
// Move is strafe (X) and forward (Y) in [-1, 1]; Look is yaw/pitch deltas.
type Sample struct {
	Move mgl64.Vec2
	Look mgl64.Vec2

	Held     Button
	Pressed  Button
	Released Button
}

// Down reports whether the button is currently held.
func (s Sample) Down(b Button) bool { return s.Held&b != 0 }

// JustPressed reports a press edge this tick.
func (s Sample) JustPressed(b Button) bool { return s.Pressed&b != 0 }

// JustReleased reports a release edge this tick.
func (s Sample) JustReleased(b Button) bool { return s.Released&b != 0 }

// Source supplies the per-tick input sample. Implementations wrap whatever
// device or script is driving the character.
type Source interface {
	Sample() Sample
}

// SourceFunc adapts a plain function to a Source.
type SourceFunc func() Sample

func (f SourceFunc) Sample() Sample { return f() }
