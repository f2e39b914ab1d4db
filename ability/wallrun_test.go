package ability

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/parkour/motion"
)

func wallRunContext() *motion.Context {
	ctx := testContext()
	ctx.Grounded = false
	ctx.Velocity = mgl64.Vec3{0, 0, 8}
	ctx.Wall = motion.WallContact{
		Side:       motion.WallRight,
		Normal:     mgl64.Vec3{-1, 0, 0},
		Continuous: true,
	}
	return ctx
}

func TestWallRunEligibility(t *testing.T) {
	tests := []struct {
		name  string
		mutat func(*motion.Context)
		want  bool
	}{
		{name: "airborne with fast contact", mutat: func(*motion.Context) {}, want: true},
		{name: "grounded", mutat: func(c *motion.Context) { c.Grounded = true }, want: false},
		{name: "no wall", mutat: func(c *motion.Context) { c.Wall = motion.WallContact{} }, want: false},
		{name: "discontinuous wall", mutat: func(c *motion.Context) { c.Wall.Continuous = false }, want: false},
		{name: "too slow", mutat: func(c *motion.Context) { c.Velocity = mgl64.Vec3{0, 0, 2} }, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := wallRunContext()
			tt.mutat(ctx)
			if got := NewWallRun().Eligible(ctx); got != tt.want {
				t.Errorf("Eligible = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWallRunForceEndAfterDuration(t *testing.T) {
	ctx := wallRunContext()
	w := NewWallRun()
	w.Enter(ctx)

	if w.Done(ctx) {
		t.Fatal("fresh wall-run should not be done")
	}

	// Run the full configured duration out; the wall is still there but the
	// run must end anyway.
	ctx.Timers.Tick(ctx.Tuning.WallRun.Duration)
	if !w.Done(ctx) {
		t.Error("wall-run should force-end after its duration")
	}
}

func TestWallRunExpiryStartsCooldown(t *testing.T) {
	ctx := wallRunContext()
	w := NewWallRun()
	w.Enter(ctx)

	// Duration runs out with the wall still present: the exit must start the
	// re-entry cooldown or the run chains forever on a long wall.
	ctx.Timers.Tick(ctx.Tuning.WallRun.Duration)
	if !w.Done(ctx) {
		t.Fatal("wall-run should be done after its duration")
	}
	w.Exit(ctx)
	if ctx.Timers.Expired(cooldownWallJump) {
		t.Error("duration expiry should start the re-entry cooldown")
	}
}

func TestWallRunEarlyExitLeavesNoCooldown(t *testing.T) {
	ctx := wallRunContext()
	w := NewWallRun()
	w.Enter(ctx)

	// Losing the wall mid-run ends it without penalizing the next attempt.
	ctx.Wall = motion.WallContact{}
	if !w.Done(ctx) {
		t.Fatal("losing the wall should end the run")
	}
	w.Exit(ctx)
	if !ctx.Timers.Expired(cooldownWallJump) {
		t.Error("an early exit should not start the cooldown")
	}
}

func TestWallRunVerticalDecay(t *testing.T) {
	ctx := wallRunContext()
	w := NewWallRun()
	w.Enter(ctx)

	vel := w.Update(ctx)
	if !floatClose(vel.Y(), ctx.Tuning.WallRun.InitialLift, 1e-9) {
		t.Errorf("initial vertical = %v, want lift %v", vel.Y(), ctx.Tuning.WallRun.InitialLift)
	}

	ctx.Timers.Tick(ctx.Tuning.WallRun.Duration)
	vel = w.Update(ctx)
	if !floatClose(vel.Y(), -ctx.Tuning.WallRun.WallGravity, 1e-9) {
		t.Errorf("final vertical = %v, want -wall gravity %v", vel.Y(), -ctx.Tuning.WallRun.WallGravity)
	}
}

func TestWallRunRunsAlongWall(t *testing.T) {
	ctx := wallRunContext()
	w := NewWallRun()
	w.Enter(ctx)

	vel := w.Update(ctx)
	// Traveling +Z along an x-facing wall: the along component keeps sign.
	if vel.Z() <= 0 {
		t.Errorf("expected +Z travel, got %v", vel)
	}
	// Stick force presses into the wall (toward +X for a -X normal).
	if vel.X() <= 0 {
		t.Errorf("expected stick force toward the wall, got %v", vel)
	}
}

func TestWallJump(t *testing.T) {
	ctx := wallRunContext()
	w := NewWallRun()
	w.Enter(ctx)

	ctx.Timers.Set(motion.TimerJumpBuffer, 0.1)
	ctx.Input = motion.Sample{Pressed: motion.ButtonJump, Held: motion.ButtonJump}
	vel := w.Update(ctx)

	wr := &ctx.Tuning.WallRun
	want := ctx.Wall.Normal.Mul(wr.JumpSideForce).Add(motion.Up.Mul(wr.JumpUpForce))
	if !vecClose(vel, want, 1e-9) {
		t.Errorf("wall jump velocity = %v, want %v", vel, want)
	}
	if !w.Done(ctx) {
		t.Error("wall jump should end the run")
	}
	if ctx.Timers.Expired(cooldownWallJump) {
		t.Error("wall jump cooldown should be running")
	}
	if !ctx.Timers.Expired(motion.TimerJumpBuffer) {
		t.Error("wall jump should consume the jump buffer")
	}
	if !hasEvent(ctx.Events.Drain(), motion.EventWallJump) {
		t.Error("expected a wall jump event")
	}
	if ctx.AirJumps != ctx.Tuning.Jump.MaxAirJumps {
		t.Errorf("AirJumps = %d, want refilled to %d", ctx.AirJumps, ctx.Tuning.Jump.MaxAirJumps)
	}
}
