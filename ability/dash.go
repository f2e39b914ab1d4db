package ability

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/parkour/motion"
)

// Dash is a short fixed-duration burst in the input (or facing) direction.
// It costs stamina up front and hands a fraction of its speed back to the
// next mode on exit.
type Dash struct {
	direction mgl64.Vec3
}

func NewDash() *Dash {
	return &Dash{}
}

// Descriptor carries no activation cost: the stamina price lives in tuning,
// which the descriptor cannot see, so Eligible gates it and Enter spends it.
func (d *Dash) Descriptor() motion.Descriptor {
	return motion.Descriptor{
		Mode:        motion.ModeDash,
		Group:       motion.GroupPrimary,
		CooldownKey: cooldownDash,
		Gravity:     false,
	}
}

func (d *Dash) Eligible(ctx *motion.Context) bool {
	if !ctx.Input.JustPressed(motion.ButtonDash) {
		return false
	}
	// Fail closed when the pool cannot cover the cost.
	return ctx.Resources.CanAfford(motion.PoolStamina, ctx.Tuning.Dash.StaminaCost)
}

func (d *Dash) Enter(ctx *motion.Context) {
	dt := &ctx.Tuning.Dash
	if p := ctx.Resources.Get(motion.PoolStamina); p != nil {
		p.Consume(dt.StaminaCost)
	}

	d.direction = motion.SafeNormalize(motion.Horizontal(ctx.MoveWorld()), ctx.FacingHorizontal())
	ctx.Timers.Set(timerDash, dt.Duration)
	ctx.Emit(motion.Event{Kind: motion.EventDash, Mode: motion.ModeDash})
}

func (d *Dash) Update(ctx *motion.Context) mgl64.Vec3 {
	return d.direction.Mul(ctx.Tuning.Dash.Speed)
}

func (d *Dash) Done(ctx *motion.Context) bool {
	return ctx.Timers.Expired(timerDash)
}

func (d *Dash) Exit(ctx *motion.Context) {
	dt := &ctx.Tuning.Dash
	ctx.Velocity = d.direction.Mul(dt.Speed * dt.ExitMomentum)
	ctx.Timers.Clear(timerDash)
	ctx.Timers.Set(cooldownDash, dt.Cooldown)
}
