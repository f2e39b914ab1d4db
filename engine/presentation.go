package engine

import (
	"github.com/milk9111/parkour/motion"
)

// Presentation derives the continuous cosmetic values from simulation
// state: collider height, camera roll/pitch, and FOV. It consumes state and
// never influences it, and it updates every tick regardless of which
// primary mode is active.
type Presentation struct {
	Height float64
	Roll   float64
	Pitch  float64
	FOV    float64
}

func NewPresentation(height, fov float64) *Presentation {
	return &Presentation{Height: height, FOV: fov}
}

func (p *Presentation) Update(ctx *motion.Context, mode motion.Mode) {
	if p == nil {
		return
	}
	pt := &ctx.Tuning.Presentation
	body := &ctx.Tuning.Body

	targetHeight := body.StandingHeight
	if mode == motion.ModeSlide || (ctx.Grounded && ctx.Input.Down(motion.ButtonCrouch)) {
		targetHeight = body.CrouchHeight
	}

	targetRoll := 0.0
	targetPitch := 0.0
	switch mode {
	case motion.ModeWallRun:
		// Roll away from the wall: the sign follows which side it is on.
		if ctx.Wall.Side == motion.WallLeft {
			targetRoll = -pt.WallRunTilt
		} else if ctx.Wall.Side == motion.WallRight {
			targetRoll = pt.WallRunTilt
		}
	case motion.ModeSlide:
		targetPitch = pt.SlideTilt
	}

	// FOV widens with speed beyond the run pace, capped at the boost.
	targetFOV := pt.BaseFOV
	if over := motion.HorizontalSpeed(ctx.Velocity) - ctx.Tuning.Ground.RunSpeed; over > 0 {
		boost := motion.Clamp(over/ctx.Tuning.Ground.RunSpeed, 0, 1) * pt.MaxFOVBoost
		targetFOV += boost
	}

	p.Height = motion.Approach(p.Height, targetHeight, pt.HeightLerpRate*ctx.Dt)
	p.Roll = motion.Approach(p.Roll, targetRoll, pt.TiltLerpRate*ctx.Dt*pt.WallRunTilt)
	p.Pitch = motion.Approach(p.Pitch, targetPitch, pt.TiltLerpRate*ctx.Dt*pt.SlideTilt)
	p.FOV = motion.Approach(p.FOV, targetFOV, pt.FOVLerpRate*ctx.Dt*pt.MaxFOVBoost)
}
