package ability

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/parkour/motion"
)

// Timer and cooldown keys owned by the ability modules.
const (
	timerSlide       = "slide"
	cooldownSlide    = "slide_cd"
	timerWallRun     = "wallrun"
	cooldownWallJump = "walljump_cd"
	cooldownGrapple  = "grapple_cd"
	cooldownMantle   = "mantle_cd"
	timerClimb       = "climb"
	timerDash        = "dash"
	cooldownDash     = "dash_cd"
)

// Slide keeps momentum through crouched slides: entry speed is the larger of
// the current horizontal speed and the configured base, slopes accelerate it
// downhill and bleed it off on flat ground, and lateral input steers the
// slide direction at a fixed rate.
type Slide struct {
	jumpOut bool
}

func NewSlide() *Slide {
	return &Slide{}
}

func (s *Slide) Descriptor() motion.Descriptor {
	return motion.Descriptor{
		Mode:        motion.ModeSlide,
		Group:       motion.GroupPrimary,
		CooldownKey: cooldownSlide,
		Gravity:     true,
	}
}

func (s *Slide) Eligible(ctx *motion.Context) bool {
	if !ctx.Grounded || !ctx.Input.Down(motion.ButtonCrouch) {
		return false
	}
	return motion.HorizontalSpeed(ctx.Velocity) >= ctx.Tuning.Slide.MinSpeed
}

func (s *Slide) Enter(ctx *motion.Context) {
	st := &ctx.Tuning.Slide
	s.jumpOut = false

	speed := motion.HorizontalSpeed(ctx.Velocity)
	dir := motion.SafeNormalize(motion.Horizontal(ctx.Velocity), ctx.FacingHorizontal())

	ctx.Slide.Direction = dir
	ctx.Slide.Speed = math.Max(speed, st.BaseSpeed)

	// Immediate boost when entering a downhill slide already aligned with
	// the fall line.
	if angle, downhill, ok := slopeOf(ctx); ok && angle > st.SlopeThreshold {
		if dir.Dot(downhill) > 0 {
			ctx.Slide.Speed += st.SlopeBoost * angle / 90
		}
	}

	ctx.Timers.Set(timerSlide, st.Duration)
}

func (s *Slide) Update(ctx *motion.Context) mgl64.Vec3 {
	st := &ctx.Tuning.Slide
	sl := &ctx.Slide

	// Lateral input rotates the slide direction about the up axis.
	if steer := ctx.Input.Move.X(); steer != 0 {
		sl.Direction = rotateY(sl.Direction, -steer*st.SteerRate*ctx.Dt)
	}

	// Downhill alignment accelerates, flat or uphill decelerates.
	accel := -st.FlatDecel
	if angle, downhill, ok := slopeOf(ctx); ok && angle > st.SlopeThreshold {
		if align := sl.Direction.Dot(downhill); align > 0 {
			accel = st.SlopeAccel * align * angle / 90
		}
	}
	sl.Speed += accel * ctx.Dt
	if sl.Speed < 0 {
		sl.Speed = 0
	}

	// A jump pressed while sliding ends the slide with a launch boost.
	if ctx.Input.JustPressed(motion.ButtonJump) {
		s.jumpOut = true
	}

	vel := sl.Direction.Mul(sl.Speed)
	return mgl64.Vec3{vel.X(), ctx.Velocity.Y(), vel.Z()}
}

func (s *Slide) Done(ctx *motion.Context) bool {
	if s.jumpOut || !ctx.Grounded {
		return true
	}

	wants := ctx.Slide.Speed <= ctx.Tuning.Slide.StopSpeed ||
		ctx.Timers.Expired(timerSlide) ||
		!ctx.Input.Down(motion.ButtonCrouch)
	if !wants {
		return false
	}
	// Without standing clearance the character stays slid/crouched until
	// room appears.
	return canStand(ctx)
}

func (s *Slide) Exit(ctx *motion.Context) {
	if s.jumpOut {
		boost := ctx.Slide.Direction.Mul(ctx.Slide.Speed * ctx.Tuning.Slide.JumpBoostFraction)
		ctx.Velocity = ctx.Velocity.Add(boost)
	}
	s.jumpOut = false
	ctx.Slide = motion.SlideState{}
	ctx.Timers.Clear(timerSlide)
	ctx.Timers.Set(cooldownSlide, ctx.Tuning.Slide.Cooldown)
}

// canStand sweeps a sphere upward through the space a standing collider
// would occupy. A nil prober cannot block standing.
func canStand(ctx *motion.Context) bool {
	if ctx.Probes == nil {
		return true
	}
	body := &ctx.Tuning.Body
	origin := ctx.Position.Add(motion.Up.Mul(ctx.Tuning.Slide.ClearanceRadius + 0.01))
	dist := body.StandingHeight - ctx.Tuning.Slide.ClearanceRadius
	_, blocked := ctx.Probes.SweepSphere(origin, ctx.Tuning.Slide.ClearanceRadius, motion.Up, dist)
	return !blocked
}

// slopeOf derives the ground slope angle in degrees and the normalized
// downhill direction projected into the surface plane.
func slopeOf(ctx *motion.Context) (angle float64, downhill mgl64.Vec3, ok bool) {
	n := ctx.GroundNormal
	cos := n.Dot(motion.Up)
	if cos >= 0.9999 || cos <= 0 {
		return 0, mgl64.Vec3{}, false
	}
	angle = math.Acos(cos) * 180 / math.Pi

	// Gravity projected into the slope plane points down the fall line.
	down := mgl64.Vec3{0, -1, 0}
	inPlane := down.Sub(n.Mul(down.Dot(n)))
	downhill = motion.SafeNormalize(inPlane, mgl64.Vec3{})
	if downhill == (mgl64.Vec3{}) {
		return 0, mgl64.Vec3{}, false
	}
	return angle, downhill, true
}

// rotateY rotates v about the up axis by radians.
func rotateY(v mgl64.Vec3, radians float64) mgl64.Vec3 {
	sin, cos := math.Sin(radians), math.Cos(radians)
	return mgl64.Vec3{
		v.X()*cos + v.Z()*sin,
		v.Y(),
		-v.X()*sin + v.Z()*cos,
	}
}
