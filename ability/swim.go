package ability

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/parkour/motion"
)

// Swim takes over whenever the body is in a water volume: reduced speed,
// buoyancy-damped gravity, vertical movement from the jump/crouch inputs.
type Swim struct{}

func NewSwim() *Swim {
	return &Swim{}
}

func (s *Swim) Descriptor() motion.Descriptor {
	return motion.Descriptor{
		Mode:    motion.ModeSwim,
		Group:   motion.GroupPrimary,
		Gravity: false,
	}
}

func (s *Swim) Eligible(ctx *motion.Context) bool {
	return ctx.InWater
}

func (s *Swim) Enter(ctx *motion.Context) {
	ctx.FallPeak = 0
	ctx.AirJumps = ctx.Tuning.Jump.MaxAirJumps
}

func (s *Swim) Update(ctx *motion.Context) mgl64.Vec3 {
	sw := &ctx.Tuning.Swim

	desired := motion.SafeNormalize(motion.Horizontal(ctx.MoveWorld()), mgl64.Vec3{}).Mul(sw.Speed * motion.Clamp(ctx.Input.Move.Len(), 0, 1))
	horizontal := stepToward(motion.Horizontal(ctx.Velocity), desired, sw.Drag*sw.Speed*ctx.Dt)

	vy := ctx.Velocity.Y()
	switch {
	case ctx.Input.Down(motion.ButtonJump):
		vy = motion.Approach(vy, sw.VerticalSpeed, sw.Speed*ctx.Dt*4)
	case ctx.Input.Down(motion.ButtonCrouch):
		vy = motion.Approach(vy, -sw.VerticalSpeed, sw.Speed*ctx.Dt*4)
	default:
		// Buoyancy damps the residual gravity and drags vy toward rest.
		vy -= ctx.Tuning.Gravity * (1 - sw.Buoyancy) * ctx.Dt
		vy = motion.Approach(vy, 0, sw.Drag*ctx.Dt*4)
	}

	return mgl64.Vec3{horizontal.X(), vy, horizontal.Z()}
}

func (s *Swim) Done(ctx *motion.Context) bool {
	return !ctx.InWater
}

func (s *Swim) Exit(ctx *motion.Context) {}
