package ability

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/parkour/motion"
)

// detectLedge runs the mantle detection scan: a forward probe at chest
// height must find a wall close by, then heights from the minimum to the
// maximum ledge height are scanned in fixed steps. A height qualifies when
// the space at it is unobstructed and a downward cast just beyond the wall
// face finds a landing surface within the allowed angle of vertical. The
// first qualifying height wins.
func detectLedge(ctx *motion.Context) (point, wallNormal mgl64.Vec3, ok bool) {
	if ctx.Probes == nil {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	m := &ctx.Tuning.Mantle
	fwd := ctx.FacingHorizontal()
	mask := motion.LayerDefault | motion.LayerClimbable

	chest := ctx.Position.Add(motion.Up.Mul(m.ChestHeight))
	wallHit, found := ctx.Probes.Probe(chest, fwd, m.ForwardReach, mask)
	if !found {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}

	minCos := math.Cos(m.MaxSurfaceAngle * math.Pi / 180)
	reach := wallHit.Distance + ctx.Tuning.Body.Radius + 0.05

	for h := m.MinLedgeHeight; h <= m.MaxLedgeHeight+1e-9; h += m.ScanStep {
		level := ctx.Position.Add(motion.Up.Mul(h + m.ScanStep))
		// Obstructed just above/forward of this height: keep scanning.
		if _, blocked := ctx.Probes.Probe(level, fwd, reach, mask); blocked {
			continue
		}
		top := level.Add(fwd.Mul(reach))
		landing, hit := ctx.Probes.ProbeDown(top, 2*m.ScanStep)
		if !hit || landing.Normal.Dot(motion.Up) < minCos {
			continue
		}
		return landing.Point, motion.SafeNormalize(motion.Horizontal(wallHit.Normal), fwd.Mul(-1)), true
	}
	return mgl64.Vec3{}, mgl64.Vec3{}, false
}

// Mantle pulls the character up over a detected ledge. Fast approaches take
// a single-phase arc (quadratic midpoint lift); slow ones take a two-phase
// vertical-then-forward move. Progress is time-driven and the body position
// is computed directly from it, bypassing collision-integrated movement
// until the exact snap onto the stand point at completion.
type Mantle struct{}

func NewMantle() *Mantle {
	return &Mantle{}
}

func (m *Mantle) Descriptor() motion.Descriptor {
	return motion.Descriptor{
		Mode:        motion.ModeMantle,
		Group:       motion.GroupPrimary,
		CooldownKey: cooldownMantle,
		Gravity:     false,
	}
}

func (m *Mantle) Eligible(ctx *motion.Context) bool {
	if ctx.Grounded {
		return false
	}
	if !ctx.Input.JustPressed(motion.ButtonJump) && !ctx.Mantle.PromoteFromClimb {
		return false
	}
	point, normal, ok := detectLedge(ctx)
	if !ok {
		return false
	}
	ctx.Mantle.Detected = true
	ctx.Mantle.DetectedPoint = point
	ctx.Mantle.DetectedNormal = normal
	return true
}

func (m *Mantle) Enter(ctx *motion.Context) {
	mt := &ctx.Tuning.Mantle
	st := &ctx.Mantle

	st.Start = ctx.Position
	st.Ledge = st.DetectedPoint
	st.WallNormal = st.DetectedNormal
	st.Progress = 0
	st.PromoteFromClimb = false
	st.Detected = false

	if motion.HorizontalSpeed(ctx.Velocity) >= mt.QuickSpeed {
		st.Arc = true
		st.Duration = mt.QuickDuration
		st.LiftFraction = 0
	} else {
		st.Arc = false
		st.Duration = mt.LiftDuration + mt.PushDuration
		st.LiftFraction = mt.LiftDuration / st.Duration
	}

	ctx.DirectMove = true
	ctx.Emit(motion.Event{Kind: motion.EventMantleStarted, Mode: motion.ModeMantle, At: st.Ledge})
}

// mantleTarget is the exact final position: ledge + vertical offset, pushed
// forward into the platform against the wall normal.
func mantleTarget(ctx *motion.Context) mgl64.Vec3 {
	mt := &ctx.Tuning.Mantle
	st := &ctx.Mantle
	return st.Ledge.Add(motion.Up.Mul(mt.VerticalOffset)).Sub(st.WallNormal.Mul(mt.ForwardOffset))
}

// mantlePosition is the pure position-from-progress function.
func mantlePosition(ctx *motion.Context, progress float64) mgl64.Vec3 {
	st := &ctx.Mantle
	target := mantleTarget(ctx)

	if st.Arc {
		// Quadratic Bezier through a lifted midpoint.
		mid := st.Start.Add(target).Mul(0.5).Add(motion.Up.Mul(ctx.Tuning.Mantle.ArcLift))
		t := motion.Clamp(progress, 0, 1)
		u := 1 - t
		return st.Start.Mul(u * u).Add(mid.Mul(2 * u * t)).Add(target.Mul(t * t))
	}

	split := st.LiftFraction
	if split <= 0 || split >= 1 {
		split = 0.5
	}
	if progress < split {
		// Phase one: straight vertical lift to the target height.
		t := progress / split
		y := motion.Lerp(st.Start.Y(), target.Y(), t)
		return mgl64.Vec3{st.Start.X(), y, st.Start.Z()}
	}
	// Phase two: forward offset to the final stand point.
	t := (progress - split) / (1 - split)
	x := motion.Lerp(st.Start.X(), target.X(), t)
	z := motion.Lerp(st.Start.Z(), target.Z(), t)
	return mgl64.Vec3{x, target.Y(), z}
}

func (m *Mantle) Update(ctx *motion.Context) mgl64.Vec3 {
	st := &ctx.Mantle
	if st.Duration > 0 {
		st.Progress += ctx.Dt / st.Duration
	} else {
		st.Progress = 1
	}
	if st.Progress > 1 {
		st.Progress = 1
	}
	ctx.Position = mantlePosition(ctx, st.Progress)
	return mgl64.Vec3{}
}

func (m *Mantle) Done(ctx *motion.Context) bool {
	return ctx.Mantle.Progress >= 1
}

func (m *Mantle) Exit(ctx *motion.Context) {
	st := &ctx.Mantle
	if st.Progress >= 1 {
		// Snap exactly onto the stand point.
		ctx.Position = mantleTarget(ctx)
		ctx.Emit(motion.Event{Kind: motion.EventMantleCompleted, Mode: motion.ModeMantle, At: ctx.Position})
	}
	ctx.Velocity = mgl64.Vec3{}
	ctx.DirectMove = false
	ctx.Timers.Set(cooldownMantle, ctx.Tuning.Mantle.Cooldown)
	ctx.Mantle = motion.MantleState{}
}

// Climb is the stamina-gated sub-ability: constant upward velocity while
// pressed against a climbable surface. It keeps re-running ledge detection
// so a climb can auto-promote into a mantle.
type Climb struct{}

func NewClimb() *Climb {
	return &Climb{}
}

func (c *Climb) Descriptor() motion.Descriptor {
	return motion.Descriptor{
		Mode:    motion.ModeClimb,
		Group:   motion.GroupPrimary,
		Gravity: false,
	}
}

func climbWall(ctx *motion.Context) (motion.Hit, bool) {
	if ctx.Probes == nil {
		return motion.Hit{}, false
	}
	origin := ctx.Position.Add(motion.Up.Mul(ctx.Tuning.Mantle.ChestHeight))
	hit, ok := ctx.Probes.Probe(origin, ctx.FacingHorizontal(), ctx.Tuning.Climb.ProbeRange, motion.LayerClimbable)
	if !ok || hit.Surface != motion.SurfaceClimbable {
		return motion.Hit{}, false
	}
	return hit, true
}

func (c *Climb) Eligible(ctx *motion.Context) bool {
	if !ctx.Input.Down(motion.ButtonJump) || ctx.Input.Move.Y() <= 0 {
		return false
	}
	stamina := ctx.Resources.Get(motion.PoolStamina)
	if stamina == nil || stamina.Empty() {
		return false
	}
	_, ok := climbWall(ctx)
	return ok
}

func (c *Climb) Enter(ctx *motion.Context) {
	ctx.Timers.Set(timerClimb, ctx.Tuning.Climb.MaxTime)
}

func (c *Climb) Update(ctx *motion.Context) mgl64.Vec3 {
	cl := &ctx.Tuning.Climb
	ctx.Resources.Get(motion.PoolStamina).Drain(cl.StaminaRate * ctx.Dt)

	// Auto-promote into a mantle the moment a ledge shows up.
	if point, normal, ok := detectLedge(ctx); ok {
		ctx.Mantle.Detected = true
		ctx.Mantle.DetectedPoint = point
		ctx.Mantle.DetectedNormal = normal
		ctx.Mantle.PromoteFromClimb = true
	}

	up := motion.Up.Mul(cl.Speed)
	if hit, ok := climbWall(ctx); ok {
		// Light pull into the wall keeps the probe engaged.
		up = up.Add(hit.Normal.Mul(-0.5))
	}
	return up
}

func (c *Climb) Done(ctx *motion.Context) bool {
	if ctx.Mantle.PromoteFromClimb {
		return true
	}
	stamina := ctx.Resources.Get(motion.PoolStamina)
	if stamina == nil || stamina.Empty() {
		return true
	}
	if ctx.Timers.Expired(timerClimb) {
		return true
	}
	_, ok := climbWall(ctx)
	return !ok
}

func (c *Climb) Exit(ctx *motion.Context) {
	ctx.Timers.Clear(timerClimb)
}
