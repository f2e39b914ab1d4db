package ability

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/parkour/motion"
)

// Grapple attaches to a probed anchor point and moves the character in one
// of three configured sub-modes: Pull reels straight in, Swing is pendulum
// physics on a rope with a spring correction past full extension, Hybrid
// blends Swing into Pull as the anchor gets close.
type Grapple struct {
	velocity mgl64.Vec3
}

func NewGrapple() *Grapple {
	return &Grapple{}
}

func (g *Grapple) Descriptor() motion.Descriptor {
	return motion.Descriptor{
		Mode:        motion.ModeGrapple,
		Group:       motion.GroupPrimary,
		CooldownKey: cooldownGrapple,
		Gravity:     false,
	}
}

func subModeOf(name string) motion.GrappleSubMode {
	switch name {
	case "pull":
		return motion.GrapplePull
	case "swing":
		return motion.GrappleSwing
	}
	return motion.GrappleHybrid
}

func (g *Grapple) Eligible(ctx *motion.Context) bool {
	gt := &ctx.Tuning.Grapple
	if !ctx.Input.JustPressed(motion.ButtonGrapple) {
		return false
	}
	if ctx.Probes == nil {
		return false
	}
	hit, ok := ctx.Probes.Probe(eyePoint(ctx), ctx.Forward, gt.MaxDistance, motion.LayerDefault|motion.LayerGrapple)
	if !ok || hit.Distance < gt.MinDistance {
		return false
	}
	// Record the candidate anchor; Enter picks it up on activation.
	ctx.Grapple.Anchor = hit.Point
	return true
}

func (g *Grapple) Enter(ctx *motion.Context) {
	gt := &ctx.Tuning.Grapple
	st := &ctx.Grapple

	st.SubMode = subModeOf(gt.SubMode)
	st.StartDistance = st.Anchor.Sub(ctx.Position).Len()
	st.RopeLength = gt.RopeLength
	if st.RopeLength > st.StartDistance {
		st.RopeLength = st.StartDistance
	}
	st.Progress = 0

	g.velocity = ctx.Velocity
	ctx.Emit(motion.Event{Kind: motion.EventGrappleAttached, Mode: motion.ModeGrapple, At: st.Anchor})
}

func (g *Grapple) Update(ctx *motion.Context) mgl64.Vec3 {
	st := &ctx.Grapple

	toAnchor := st.Anchor.Sub(ctx.Position)
	dist := toAnchor.Len()
	if st.StartDistance > 0 {
		st.Progress = motion.Clamp(1-dist/st.StartDistance, 0, 1)
	}

	switch st.SubMode {
	case motion.GrapplePull:
		g.velocity = g.pull(ctx, toAnchor)
	case motion.GrappleSwing:
		g.velocity = g.swing(ctx, toAnchor, dist)
	default:
		pull := g.pull(ctx, toAnchor)
		swing := g.swing(ctx, toAnchor, dist)
		// Blend grows 0 -> 1 as distance shrinks from full rope length to
		// half of it.
		f := motion.Clamp((st.RopeLength-dist)/(0.5*st.RopeLength), 0, 1)
		g.velocity = swing.Mul(1 - f).Add(pull.Mul(f))
	}
	return g.velocity
}

func (g *Grapple) pull(ctx *motion.Context, toAnchor mgl64.Vec3) mgl64.Vec3 {
	gt := &ctx.Tuning.Grapple
	dir := motion.SafeNormalize(toAnchor, ctx.Forward)
	return dir.Mul(gt.Speed).Sub(motion.Up.Mul(gt.DownwardBias))
}

func (g *Grapple) swing(ctx *motion.Context, toAnchor mgl64.Vec3, dist float64) mgl64.Vec3 {
	gt := &ctx.Tuning.Grapple
	st := &ctx.Grapple

	v := g.velocity
	v = v.Sub(motion.Up.Mul(ctx.Tuning.Gravity * ctx.Dt))

	if dist > st.RopeLength && dist > 0 {
		ropeDir := toAnchor.Mul(1 / dist)
		// Spring impulse proportional to the overstretch.
		excess := dist - st.RopeLength
		v = v.Add(ropeDir.Mul(excess * gt.SpringStrength * ctx.Dt))
		// Cancel any velocity still carrying the body further away.
		if radial := v.Dot(ropeDir); radial < 0 {
			v = v.Sub(ropeDir.Mul(radial))
		}
	}

	if steer := ctx.Input.Move.X(); steer != 0 {
		v = v.Add(ctx.Right.Mul(steer * gt.LateralInfluence * ctx.Dt))
	}
	return v
}

func (g *Grapple) Done(ctx *motion.Context) bool {
	if !ctx.Input.Down(motion.ButtonGrapple) {
		return true
	}
	dist := ctx.Grapple.Anchor.Sub(ctx.Position).Len()
	return dist <= ctx.Tuning.Grapple.DetachDistance
}

func (g *Grapple) Exit(ctx *motion.Context) {
	gt := &ctx.Tuning.Grapple

	launch := g.velocity.Mul(gt.MomentumPreservation)
	// Releasing while still swinging toward the anchor keeps the reward.
	releaseDir := motion.SafeNormalize(g.velocity, mgl64.Vec3{})
	anchorDir := motion.SafeNormalize(ctx.Grapple.Anchor.Sub(ctx.Position), mgl64.Vec3{})
	if releaseDir.Dot(anchorDir) >= 0.5 {
		launch = launch.Mul(gt.LaunchBoost)
	}
	ctx.Velocity = launch

	ctx.Emit(motion.Event{Kind: motion.EventGrappleDetached, Mode: motion.ModeGrapple, At: ctx.Grapple.Anchor})
	ctx.Grapple = motion.GrappleState{}
	ctx.Timers.Set(cooldownGrapple, gt.Cooldown)
	g.velocity = mgl64.Vec3{}
}

// eyePoint is where aim-driven probes originate.
func eyePoint(ctx *motion.Context) mgl64.Vec3 {
	return ctx.Position.Add(motion.Up.Mul(ctx.Tuning.Mantle.ChestHeight))
}
