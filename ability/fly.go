package ability

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/parkour/motion"
)

// Fly is a fuel-gated free-flight mode toggled by its button: full 3-axis
// movement, gravity off, fuel draining every tick. It shuts itself down
// when the tank runs dry.
type Fly struct {
	wanted bool
}

func NewFly() *Fly {
	return &Fly{}
}

func (f *Fly) Descriptor() motion.Descriptor {
	return motion.Descriptor{
		Mode:    motion.ModeFly,
		Group:   motion.GroupPrimary,
		Gravity: false,
	}
}

func (f *Fly) Eligible(ctx *motion.Context) bool {
	if ctx.Input.JustPressed(motion.ButtonFly) {
		f.wanted = !f.wanted
	}
	if !f.wanted {
		return false
	}
	fuel := ctx.Resources.Get(motion.PoolFuel)
	if fuel == nil || fuel.Empty() {
		f.wanted = false
		return false
	}
	return true
}

func (f *Fly) Enter(ctx *motion.Context) {
	ctx.FallPeak = 0
}

func (f *Fly) Update(ctx *motion.Context) mgl64.Vec3 {
	ft := &ctx.Tuning.Fly

	if ctx.Input.JustPressed(motion.ButtonFly) {
		f.wanted = false
	}
	ctx.Resources.Get(motion.PoolFuel).Drain(ft.FuelRate * ctx.Dt)

	vel := motion.SafeNormalize(motion.Horizontal(ctx.MoveWorld()), mgl64.Vec3{}).Mul(ft.Speed * motion.Clamp(ctx.Input.Move.Len(), 0, 1))
	vy := 0.0
	if ctx.Input.Down(motion.ButtonJump) {
		vy = ft.VerticalSpeed
	} else if ctx.Input.Down(motion.ButtonCrouch) {
		vy = -ft.VerticalSpeed
	}
	return mgl64.Vec3{vel.X(), vy, vel.Z()}
}

func (f *Fly) Done(ctx *motion.Context) bool {
	if !f.wanted {
		return true
	}
	fuel := ctx.Resources.Get(motion.PoolFuel)
	return fuel == nil || fuel.Empty()
}

func (f *Fly) Exit(ctx *motion.Context) {
	f.wanted = false
}
