package motion

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/parkour/config"
)

// WallSide tells which side of the body a wall contact was found on.
type WallSide int

const (
	WallNone WallSide = iota
	WallLeft
	WallRight
)

// WallContact is the per-tick result of the side wall probes.
type WallContact struct {
	Side   WallSide
	Normal mgl64.Vec3
	// Continuous is true when the secondary probe higher up also hit,
	// i.e. the wall extends to the minimum wall-run height.
	Continuous bool
}

// GrappleSubMode selects the grapple behavior; chosen by configuration, not
// dynamically.
type GrappleSubMode int

const (
	GrapplePull GrappleSubMode = iota
	GrappleSwing
	GrappleHybrid
)

// GrappleState is the active grapple's scratch state.
type GrappleState struct {
	Anchor        mgl64.Vec3
	RopeLength    float64
	StartDistance float64
	SubMode       GrappleSubMode
	// Progress is how far toward the anchor the body has closed, in [0, 1].
	Progress float64
}

// MantleState is the active mantle's scratch state. Progress is time-driven
// and monotonically increasing over [0, 1]; position is a pure function of
// it while the mover's collision resolution is suspended.
type MantleState struct {
	Start      mgl64.Vec3
	Ledge      mgl64.Vec3
	WallNormal mgl64.Vec3
	Progress   float64
	// Arc selects the single-phase arc trajectory over the two-phase
	// lift-then-forward move.
	Arc      bool
	Duration float64
	// LiftFraction is the share of Duration spent in the vertical phase of
	// a two-phase mantle.
	LiftFraction float64
	// Detected/DetectedNormal cache this tick's ledge scan result.
	Detected       bool
	DetectedPoint  mgl64.Vec3
	DetectedNormal mgl64.Vec3
	// PromoteFromClimb lets a climb hand off into a mantle without a fresh
	// jump press.
	PromoteFromClimb bool
}

// SlideState is the active slide's scratch state.
type SlideState struct {
	Direction mgl64.Vec3
	Speed     float64
}

// Timer names shared between the engine plumbing and the ground/jump
// abilities. Everything else keys its timers locally.
const (
	TimerCoyote      = "coyote"
	TimerJumpBuffer  = "jump_buffer"
	TimerLandRecover = "land_recover"
)

// Context is the movement context: everything the abilities read and the
// single place the engine mutates, once per tick. Only the currently active
// ability touches mode-specific scratch state.
type Context struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Forward  mgl64.Vec3
	Right    mgl64.Vec3
	Yaw      float64

	Grounded     bool
	GroundNormal mgl64.Vec3
	Surface      Surface
	InWater      bool

	Dt        float64
	TickCount uint64

	Input     Sample
	Probes    Prober
	Timers    *TimerBank
	Resources *ResourceBank
	Events    *Queue
	Tuning    *config.Tuning

	// AirJumps remaining; refilled on landing or when an ability that cedes
	// air control (wall-run) grants a reset.
	AirJumps int
	// FallPeak is the fastest downward speed of the current airborne
	// stretch, read by the landing recovery scaling.
	FallPeak float64

	Wall    WallContact
	Grapple GrappleState
	Mantle  MantleState
	Slide   SlideState

	// DirectMove suspends the normal collision-integrated mover while the
	// mantle positions the body directly.
	DirectMove bool

	// Status is an externally-driven override: ModeDead or ModeStunned
	// outrank every locomotion mode. ModeIdle means no override.
	Status Mode
}

// Emit stamps the event with tick and position before queueing it.
func (c *Context) Emit(ev Event) {
	if c == nil || c.Events == nil {
		return
	}
	ev.Tick = c.TickCount
	if ev.At == (mgl64.Vec3{}) {
		ev.At = c.Position
	}
	c.Events.Emit(ev)
}

// MoveWorld maps the input move axis into the world-space horizontal plane
// using the facing basis.
func (c *Context) MoveWorld() mgl64.Vec3 {
	return c.Forward.Mul(c.Input.Move.Y()).Add(c.Right.Mul(c.Input.Move.X()))
}

// FacingHorizontal returns the horizontal facing direction, always valid.
func (c *Context) FacingHorizontal() mgl64.Vec3 {
	return SafeNormalize(Horizontal(c.Forward), mgl64.Vec3{0, 0, 1})
}
