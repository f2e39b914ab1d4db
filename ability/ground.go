package ability

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/parkour/motion"
)

// Ground covers the grounded tiers Idle/Walk/Run/Sprint plus the landing
// recovery window. The tier is continuous, driven by input magnitude and the
// sprint stamina gate, so the descriptor's mode tag changes tick to tick.
type Ground struct {
	mode motion.Mode
}

func NewGround() *Ground {
	return &Ground{mode: motion.ModeIdle}
}

func (g *Ground) Descriptor() motion.Descriptor {
	return motion.Descriptor{
		Mode:    g.mode,
		Group:   motion.GroupPrimary,
		Gravity: true,
	}
}

func (g *Ground) Eligible(ctx *motion.Context) bool {
	return ctx.Grounded
}

func (g *Ground) Enter(ctx *motion.Context) {
	j := &ctx.Tuning.Jump

	// Landing refills air jumps.
	ctx.AirJumps = j.MaxAirJumps
	g.mode = motion.ModeIdle

	// A jump buffered just before touchdown fires on the landing tick and
	// skips landing recovery.
	if takeBufferedJump(ctx) {
		ctx.FallPeak = 0
		return
	}

	// Landing recovery scales with how hard we came down.
	if ctx.FallPeak > j.HardLandSpeed {
		ctx.Timers.Set(motion.TimerLandRecover, j.HardLandRecovery)
	} else if ctx.FallPeak > j.SoftLandSpeed {
		ctx.Timers.Set(motion.TimerLandRecover, j.SoftLandRecovery)
	}
	ctx.FallPeak = 0
}

func (g *Ground) Update(ctx *motion.Context) mgl64.Vec3 {
	gt := &ctx.Tuning.Ground

	mag := ctx.Input.Move.Len()
	if mag > 1 {
		mag = 1
	}

	sprinting := false
	target := 0.0
	switch {
	case mag == 0:
		g.mode = motion.ModeIdle
	case mag < gt.WalkThreshold:
		g.mode = motion.ModeWalk
		target = gt.WalkSpeed
	case ctx.Input.Down(motion.ButtonSprint):
		stamina := ctx.Resources.Get(motion.PoolStamina)
		if stamina != nil && !stamina.Empty() {
			g.mode = motion.ModeSprint
			target = gt.SprintSpeed
			sprinting = true
		} else {
			g.mode = motion.ModeRun
			target = gt.RunSpeed
		}
	default:
		g.mode = motion.ModeRun
		target = gt.RunSpeed
	}

	if sprinting && gt.SprintStaminaRate > 0 {
		ctx.Resources.Get(motion.PoolStamina).Drain(gt.SprintStaminaRate * ctx.Dt)
	}

	recovering := !ctx.Timers.Expired(motion.TimerLandRecover)
	if recovering {
		g.mode = motion.ModeLandRecover
		target *= ctx.Tuning.Jump.RecoverySpeedScale
	}

	dir := motion.SafeNormalize(motion.Horizontal(ctx.MoveWorld()), mgl64.Vec3{})
	desired := dir.Mul(target * mag)

	current := motion.Horizontal(ctx.Velocity)
	rate := gt.Accel
	if desired.Len() < current.Len() {
		rate = gt.Decel
	}
	next := stepToward(current, desired, rate*ctx.Dt)

	return mgl64.Vec3{next.X(), ctx.Velocity.Y(), next.Z()}
}

func (g *Ground) Done(ctx *motion.Context) bool {
	return !ctx.Grounded
}

func (g *Ground) Exit(ctx *motion.Context) {}

// stepToward moves current toward desired by at most maxDelta, component-free
// so diagonal acceleration is not faster than straight.
func stepToward(current, desired mgl64.Vec3, maxDelta float64) mgl64.Vec3 {
	diff := desired.Sub(current)
	dist := diff.Len()
	if dist <= maxDelta || dist == 0 {
		return desired
	}
	return current.Add(diff.Mul(maxDelta / dist))
}
