package engine

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/parkour/ability"
	"github.com/milk9111/parkour/config"
	"github.com/milk9111/parkour/motion"
)

// Engine is the per-tick movement simulation: it samples input, refreshes
// the spatial probes, advances timers and resource pools, lets the resolver
// pick the single active ability, composes that ability's velocity with
// gravity and clamps, hands the result to the mover, and finally projects
// the cosmetic presentation values. Strictly single-threaded; a tick is the
// unit of ordering.
type Engine struct {
	ctx      *motion.Context
	resolver *Resolver
	mover    motion.Mover
	input    motion.Source
	pres     *Presentation

	direct    bool
	poolEmpty map[string]bool
	poolFull  map[string]bool
}

// New wires an engine from its collaborators. A nil tuning falls back to
// the defaults; a nil mover integrates positions directly, which is what
// the tests and the sim harness use.
func New(tun *config.Tuning, probes motion.Prober, mover motion.Mover, input motion.Source) *Engine {
	if tun == nil {
		tun = config.Default()
	} else {
		tun.Sanitize()
	}

	ctx := &motion.Context{
		Forward:      mgl64.Vec3{0, 0, 1},
		Right:        mgl64.Vec3{1, 0, 0},
		GroundNormal: motion.Up,
		Probes:       probes,
		Timers:       motion.NewTimerBank(),
		Resources:    motion.NewResourceBank(),
		Events:       motion.NewQueue(),
		Tuning:       tun,
		AirJumps:     tun.Jump.MaxAirJumps,
		Status:       motion.ModeIdle,
	}
	if mover != nil {
		ctx.Position = mover.Position()
	}

	ctx.Resources.Add(motion.PoolStamina, &motion.Pool{
		Current:    tun.Stamina.Max,
		Max:        tun.Stamina.Max,
		RegenRate:  tun.Stamina.RegenRate,
		RegenDelay: tun.Stamina.RegenDelay,
	})
	ctx.Resources.Add(motion.PoolFuel, &motion.Pool{
		Current:    tun.Fuel.Max,
		Max:        tun.Fuel.Max,
		RegenRate:  tun.Fuel.RegenRate,
		RegenDelay: tun.Fuel.RegenDelay,
	})

	e := &Engine{
		ctx:   ctx,
		mover: mover,
		input: input,
		pres:  NewPresentation(tun.Body.StandingHeight, tun.Presentation.BaseFOV),
		resolver: NewResolver(
			ability.NewGround(),
			ability.NewAir(),
			ability.NewGrapple(),
			ability.NewSwim(),
			ability.NewFly(),
			ability.NewClimb(),
			ability.NewMantle(),
			ability.NewWallRun(),
			ability.NewSlide(),
			ability.NewDash(),
			ability.NewStunned(),
			ability.NewDead(),
		),
		poolEmpty: make(map[string]bool),
		poolFull:  make(map[string]bool),
	}
	for _, name := range ctx.Resources.Names() {
		p := ctx.Resources.Get(name)
		e.poolEmpty[name] = p.Empty()
		e.poolFull[name] = p.Full()
	}
	return e
}

// Context exposes the movement context for tests and telemetry. Callers
// must treat it as read-only between ticks.
func (e *Engine) Context() *motion.Context { return e.ctx }

func (e *Engine) Presentation() *Presentation { return e.pres }

func (e *Engine) Mode() motion.Mode { return e.resolver.Mode() }

// Events drains the outbound queue; meant to be called once after a tick.
func (e *Engine) Events() []motion.Event { return e.ctx.Events.Drain() }

// SetStatus applies or clears an external status override. Anything other
// than ModeDead or ModeStunned clears it.
func (e *Engine) SetStatus(m motion.Mode) {
	switch m {
	case motion.ModeDead, motion.ModeStunned:
		e.ctx.Status = m
	default:
		e.ctx.Status = motion.ModeIdle
	}
}

// SetTuning swaps the tuning sheet in place (hot reload). The new sheet is
// sanitized first; nil is ignored.
func (e *Engine) SetTuning(tun *config.Tuning) {
	if tun == nil {
		return
	}
	tun.Sanitize()
	e.ctx.Tuning = tun
	e.ctx.Emit(motion.Event{Kind: motion.EventTuningReloaded})
}

// Tick advances the simulation by dt seconds.
func (e *Engine) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	ctx := e.ctx
	ctx.Dt = dt
	ctx.TickCount++

	if e.input != nil {
		ctx.Input = e.input.Sample()
	}
	e.updateBasis()
	e.refreshProbes()
	e.updateTimers()
	ctx.Resources.Tick(dt)
	e.emitResourceEvents()

	active := e.resolver.Tick(ctx)
	desc := motion.Descriptor{Gravity: true}
	vel := ctx.Velocity
	if active != nil {
		vel = active.Update(ctx)
		desc = active.Descriptor()
	}
	ctx.Velocity = compose(ctx, desc, vel)

	e.applyMovement()
	e.pres.Update(ctx, e.resolver.Mode())
}

func (e *Engine) updateBasis() {
	ctx := e.ctx
	ctx.Yaw += ctx.Input.Look.X() * ctx.Tuning.LookSensitivity
	sin, cos := math.Sin(ctx.Yaw), math.Cos(ctx.Yaw)
	ctx.Forward = mgl64.Vec3{sin, 0, cos}
	ctx.Right = mgl64.Vec3{cos, 0, -sin}
}

// refreshProbes re-derives grounded/wall/water state before any ability
// evaluates eligibility; probe misses read as "not there", never as errors.
func (e *Engine) refreshProbes() {
	ctx := e.ctx
	body := &ctx.Tuning.Body

	ctx.Grounded = false
	ctx.GroundNormal = motion.Up
	ctx.Surface = motion.SurfaceDefault
	ctx.Wall = motion.WallContact{}
	ctx.InWater = false

	if ctx.Probes != nil {
		const liftOff = 0.1
		origin := ctx.Position.Add(motion.Up.Mul(liftOff))
		maxSlopeCos := math.Cos(body.MaxGroundSlope * math.Pi / 180)
		if hit, ok := ctx.Probes.ProbeDown(origin, liftOff+body.GroundCheck); ok {
			// Rising fast means we just jumped; do not re-ground.
			if hit.Normal.Dot(motion.Up) >= maxSlopeCos && ctx.Velocity.Y() <= 0.5 {
				ctx.Grounded = true
				ctx.GroundNormal = hit.Normal
				ctx.Surface = hit.Surface
			}
		}

		if vq, ok := ctx.Probes.(motion.VolumeQuerier); ok {
			center := ctx.Position.Add(motion.Up.Mul(body.StandingHeight / 2))
			ctx.InWater = vq.InWater(center)
		}

		e.refreshWalls()
	}

	if !ctx.Grounded {
		if down := -ctx.Velocity.Y(); down > ctx.FallPeak {
			ctx.FallPeak = down
		}
	}
}

// refreshWalls runs the side probes for wall-running: a hit counts only when
// the surface is near vertical (incidence within the tolerance band around
// 90 degrees of up), and a second probe at the minimum wall-run height
// checks that the wall is continuous rather than a low obstacle.
func (e *Engine) refreshWalls() {
	ctx := e.ctx
	wr := &ctx.Tuning.WallRun

	maxUpDot := math.Sin(wr.IncidenceTolerance * math.Pi / 180)
	nearVertical := func(n mgl64.Vec3) bool {
		return math.Abs(n.Dot(motion.Up)) <= maxUpDot
	}

	origin := ctx.Position.Add(motion.Up.Mul(ctx.Tuning.Mantle.ChestHeight))
	mask := motion.LayerDefault | motion.LayerClimbable

	sides := []struct {
		side motion.WallSide
		dir  mgl64.Vec3
	}{
		{motion.WallRight, ctx.Right},
		{motion.WallLeft, ctx.Right.Mul(-1)},
	}
	for _, s := range sides {
		hit, ok := ctx.Probes.Probe(origin, s.dir, wr.ProbeRange, mask)
		if !ok || !nearVertical(hit.Normal) {
			continue
		}
		ctx.Wall.Side = s.side
		ctx.Wall.Normal = hit.Normal

		high := ctx.Position.Add(motion.Up.Mul(wr.MinHeight))
		hi, okHigh := ctx.Probes.Probe(high, s.dir, wr.ProbeRange, mask)
		ctx.Wall.Continuous = okHigh && nearVertical(hi.Normal)
		return
	}
}

func (e *Engine) updateTimers() {
	ctx := e.ctx
	ctx.Timers.Tick(ctx.Dt)
	if ctx.Grounded {
		ctx.Timers.Set(motion.TimerCoyote, ctx.Tuning.Jump.CoyoteTime)
	}
	if ctx.Input.JustPressed(motion.ButtonJump) {
		ctx.Timers.Set(motion.TimerJumpBuffer, ctx.Tuning.Jump.BufferTime)
	}
}

func (e *Engine) emitResourceEvents() {
	ctx := e.ctx
	for _, name := range ctx.Resources.Names() {
		p := ctx.Resources.Get(name)
		if p.Empty() && !e.poolEmpty[name] {
			ctx.Emit(motion.Event{Kind: motion.EventResourceDepleted, Pool: name})
		}
		e.poolEmpty[name] = p.Empty()
		if p.Full() && !e.poolFull[name] {
			ctx.Emit(motion.Event{Kind: motion.EventResourceRefilled, Pool: name})
		}
		e.poolFull[name] = p.Full()
	}
}

// applyMovement hands the committed velocity to the mover, or positions the
// body directly while a mantle owns movement.
func (e *Engine) applyMovement() {
	ctx := e.ctx
	if e.mover == nil {
		if !ctx.DirectMove {
			ctx.Position = ctx.Position.Add(ctx.Velocity.Mul(ctx.Dt))
		}
		return
	}
	if ctx.DirectMove {
		if !e.direct {
			e.mover.BeginDirectMove()
			e.direct = true
		}
		e.mover.SetPosition(ctx.Position)
		return
	}
	if e.direct {
		e.mover.EndDirectMove()
		e.mover.SetPosition(ctx.Position)
		e.direct = false
	}
	ctx.Position = e.mover.ApplyMovement(ctx.Velocity, ctx.Dt)
}
