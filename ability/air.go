package ability

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/parkour/motion"
)

// Air is the jump/fall module. Ground jumps go through the coyote and jump
// buffer timers the engine maintains; air jumps spend the AirJumps counter.
// Releasing jump while ascending applies a one-shot multiplicative cut to
// upward velocity for variable jump height.
type Air struct {
	cutUsed bool
	// jumpTick guards against the press that executed a jump being consumed
	// a second time by the same tick's update.
	jumpTick uint64
}

func NewAir() *Air {
	return &Air{}
}

func (a *Air) Descriptor() motion.Descriptor {
	return motion.Descriptor{
		Mode:    motion.ModeAir,
		Group:   motion.GroupPrimary,
		Gravity: true,
	}
}

func jumpBuffered(ctx *motion.Context) bool {
	return ctx.Timers.Remaining(motion.TimerJumpBuffer) > 0 &&
		ctx.Timers.Remaining(motion.TimerCoyote) > 0
}

// takeBufferedJump executes a pending buffered ground jump and consumes both
// windows. Ground's enter hook shares it so a press buffered just before
// touchdown fires on the landing tick itself instead of a tick later.
func takeBufferedJump(ctx *motion.Context) bool {
	if !jumpBuffered(ctx) {
		return false
	}
	ctx.Velocity = mgl64.Vec3{ctx.Velocity.X(), ctx.Tuning.Jump.Force, ctx.Velocity.Z()}
	ctx.Timers.Zero(motion.TimerCoyote)
	ctx.Timers.Zero(motion.TimerJumpBuffer)
	ctx.Emit(motion.Event{Kind: motion.EventJump, Mode: motion.ModeAir})
	return true
}

func (a *Air) Eligible(ctx *motion.Context) bool {
	return !ctx.Grounded || jumpBuffered(ctx)
}

func (a *Air) Enter(ctx *motion.Context) {
	a.cutUsed = false
	if takeBufferedJump(ctx) {
		a.jumpTick = ctx.TickCount
	}
}

func (a *Air) executeJump(ctx *motion.Context, force float64) {
	ctx.Velocity = mgl64.Vec3{ctx.Velocity.X(), force, ctx.Velocity.Z()}
	ctx.Timers.Zero(motion.TimerCoyote)
	ctx.Timers.Zero(motion.TimerJumpBuffer)
	a.cutUsed = false
	a.jumpTick = ctx.TickCount
	ctx.Emit(motion.Event{Kind: motion.EventJump, Mode: motion.ModeAir})
}

func (a *Air) Update(ctx *motion.Context) mgl64.Vec3 {
	j := &ctx.Tuning.Jump
	vy := ctx.Velocity.Y()

	// Jump cut: one shot per ascent.
	if ctx.Input.JustReleased(motion.ButtonJump) && vy > 0 && !a.cutUsed {
		vy *= j.CutMultiplier
		a.cutUsed = true
	}

	if ctx.Input.JustPressed(motion.ButtonJump) && a.jumpTick != ctx.TickCount {
		if ctx.Timers.Remaining(motion.TimerCoyote) > 0 {
			// Late ground jump within the coyote window.
			a.executeJump(ctx, j.Force)
			vy = ctx.Velocity.Y()
		} else if ctx.AirJumps > 0 {
			ctx.AirJumps--
			a.executeJump(ctx, j.AirJumpForce)
			vy = ctx.Velocity.Y()
		}
	}

	// Air control: steer the horizontal component toward the input
	// direction without exceeding air speed.
	horizontal := motion.Horizontal(ctx.Velocity)
	move := motion.Horizontal(ctx.MoveWorld())
	if move.Len() > 1e-6 {
		desired := motion.SafeNormalize(move, mgl64.Vec3{}).Mul(j.AirSpeed)
		horizontal = stepToward(horizontal, desired, j.AirControl*ctx.Dt)
	}

	return mgl64.Vec3{horizontal.X(), vy, horizontal.Z()}
}

func (a *Air) Done(ctx *motion.Context) bool {
	return ctx.Grounded || ctx.InWater
}

func (a *Air) Exit(ctx *motion.Context) {}
