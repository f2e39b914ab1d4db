package ability

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/parkour/motion"
)

// Dead and Stunned are externally-driven status overrides surfaced through
// Context.Status. They participate in the resolver like any other primary
// mode so the exactly-one-active invariant holds while the character is
// incapacitated.

type Dead struct{}

func NewDead() *Dead { return &Dead{} }

func (d *Dead) Descriptor() motion.Descriptor {
	return motion.Descriptor{Mode: motion.ModeDead, Group: motion.GroupPrimary, Gravity: true}
}

func (d *Dead) Eligible(ctx *motion.Context) bool {
	return ctx.Status == motion.ModeDead
}

func (d *Dead) Enter(ctx *motion.Context) {}

func (d *Dead) Update(ctx *motion.Context) mgl64.Vec3 {
	return mgl64.Vec3{0, ctx.Velocity.Y(), 0}
}

func (d *Dead) Done(ctx *motion.Context) bool {
	return ctx.Status != motion.ModeDead
}

func (d *Dead) Exit(ctx *motion.Context) {}

type Stunned struct{}

func NewStunned() *Stunned { return &Stunned{} }

func (s *Stunned) Descriptor() motion.Descriptor {
	return motion.Descriptor{Mode: motion.ModeStunned, Group: motion.GroupPrimary, Gravity: true}
}

func (s *Stunned) Eligible(ctx *motion.Context) bool {
	return ctx.Status == motion.ModeStunned
}

func (s *Stunned) Enter(ctx *motion.Context) {}

func (s *Stunned) Update(ctx *motion.Context) mgl64.Vec3 {
	// Momentum bleeds off but control is gone.
	horizontal := motion.Horizontal(ctx.Velocity)
	horizontal = stepToward(horizontal, mgl64.Vec3{}, ctx.Tuning.Ground.Decel*ctx.Dt)
	return mgl64.Vec3{horizontal.X(), ctx.Velocity.Y(), horizontal.Z()}
}

func (s *Stunned) Done(ctx *motion.Context) bool {
	return ctx.Status != motion.ModeStunned
}

func (s *Stunned) Exit(ctx *motion.Context) {}
