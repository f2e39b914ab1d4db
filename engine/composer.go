package engine

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/parkour/motion"
)

const epsilon = 1e-9

// compose merges the active ability's proposed velocity with gravity and the
// global clamps, producing the one vector handed to the physics mover.
func compose(ctx *motion.Context, desc motion.Descriptor, vel mgl64.Vec3) mgl64.Vec3 {
	if ctx.DirectMove {
		// Mantle positions the body directly; nothing to integrate.
		return mgl64.Vec3{}
	}
	tun := ctx.Tuning

	if desc.Gravity {
		if ctx.Grounded && vel.Y() <= 0 {
			// A small downward bias keeps the ground probe engaged on
			// slopes instead of accumulating fall speed.
			vel = mgl64.Vec3{vel.X(), -tun.GroundSnapSpeed, vel.Z()}
		} else {
			vel = vel.Sub(motion.Up.Mul(tun.Gravity * ctx.Dt))
		}
	}

	if hs := motion.HorizontalSpeed(vel); hs > tun.MaxSpeed {
		scale := tun.MaxSpeed / hs
		vel = mgl64.Vec3{vel.X() * scale, vel.Y(), vel.Z() * scale}
	}
	if vel.Y() < -tun.TerminalVelocity {
		vel = mgl64.Vec3{vel.X(), -tun.TerminalVelocity, vel.Z()}
	}

	for i := 0; i < 3; i++ {
		if v := vel[i]; v > -epsilon && v < epsilon {
			vel[i] = 0
		}
	}
	return vel
}
