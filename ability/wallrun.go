package ability

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/parkour/motion"
)

// WallRun carries the character along a near-vertical wall detected by the
// engine's side probes. The vertical component starts with a slight lift and
// decays toward a small negative wall gravity over the run's duration; a
// small force along the inverted wall normal keeps the body pressed on.
type WallRun struct {
	dirSign float64
	jumped  bool
}

func NewWallRun() *WallRun {
	return &WallRun{}
}

func (w *WallRun) Descriptor() motion.Descriptor {
	return motion.Descriptor{
		Mode:        motion.ModeWallRun,
		Group:       motion.GroupPrimary,
		CooldownKey: cooldownWallJump,
		Gravity:     false,
	}
}

func (w *WallRun) Eligible(ctx *motion.Context) bool {
	if ctx.Grounded || ctx.Wall.Side == motion.WallNone || !ctx.Wall.Continuous {
		return false
	}
	return motion.HorizontalSpeed(ctx.Velocity) >= ctx.Tuning.WallRun.MinSpeed
}

func (w *WallRun) Enter(ctx *motion.Context) {
	wr := &ctx.Tuning.WallRun
	w.jumped = false

	// Run in whichever wall-parallel direction matches current travel,
	// falling back to facing when stationary along the wall.
	along := wallForward(ctx.Wall.Normal)
	ref := motion.Horizontal(ctx.Velocity)
	if ref.Len() < 1e-6 {
		ref = ctx.FacingHorizontal()
	}
	w.dirSign = 1
	if along.Dot(ref) < 0 {
		w.dirSign = -1
	}

	ctx.Timers.Set(timerWallRun, wr.Duration)
	// Starting a wall-run cedes air control and grants an air-jump reset.
	ctx.AirJumps = ctx.Tuning.Jump.MaxAirJumps
}

func (w *WallRun) Update(ctx *motion.Context) mgl64.Vec3 {
	wr := &ctx.Tuning.WallRun

	if ctx.Input.JustPressed(motion.ButtonJump) {
		return w.wallJump(ctx)
	}

	along := wallForward(ctx.Wall.Normal).Mul(w.dirSign)
	vy := motion.Lerp(wr.InitialLift, -wr.WallGravity, ctx.Timers.Fraction(timerWallRun))

	vel := along.Mul(wr.Speed)
	vel = vel.Add(ctx.Wall.Normal.Mul(-wr.StickForce))
	return mgl64.Vec3{vel.X(), vy, vel.Z()}
}

func (w *WallRun) wallJump(ctx *motion.Context) mgl64.Vec3 {
	wr := &ctx.Tuning.WallRun
	w.jumped = true

	ctx.Timers.Set(cooldownWallJump, wr.JumpCooldown)
	ctx.Timers.Zero(motion.TimerJumpBuffer)
	// Reset air jumps so wall-to-wall chains stay alive.
	ctx.AirJumps = ctx.Tuning.Jump.MaxAirJumps
	ctx.Emit(motion.Event{Kind: motion.EventWallJump, Mode: motion.ModeWallRun})

	launch := ctx.Wall.Normal.Mul(wr.JumpSideForce).Add(motion.Up.Mul(wr.JumpUpForce))
	return launch
}

func (w *WallRun) Done(ctx *motion.Context) bool {
	if w.jumped || ctx.Grounded {
		return true
	}
	if ctx.Wall.Side == motion.WallNone {
		return true
	}
	return ctx.Timers.Expired(timerWallRun)
}

func (w *WallRun) Exit(ctx *motion.Context) {
	// Natural expiry starts the same cooldown a wall jump does; without it a
	// long wall would re-admit the run one tick later with a fresh timer.
	if !w.jumped && ctx.Timers.Expired(timerWallRun) {
		ctx.Timers.Set(cooldownWallJump, ctx.Tuning.WallRun.JumpCooldown)
	}
	w.jumped = false
	ctx.Timers.Clear(timerWallRun)
}

// wallForward is the wall-parallel horizontal direction: cross(normal, up)
// yields a vector lying along the wall face.
func wallForward(normal mgl64.Vec3) mgl64.Vec3 {
	return motion.SafeNormalize(normal.Cross(motion.Up), mgl64.Vec3{0, 0, 1})
}
