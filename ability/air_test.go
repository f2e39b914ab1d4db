package ability

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/parkour/motion"
)

func TestAirBufferedJumpOnEnter(t *testing.T) {
	ctx := testContext()
	ctx.Timers.Set(motion.TimerCoyote, ctx.Tuning.Jump.CoyoteTime)
	ctx.Timers.Set(motion.TimerJumpBuffer, ctx.Tuning.Jump.BufferTime)

	a := NewAir()
	a.Enter(ctx)

	if got := ctx.Velocity.Y(); got != ctx.Tuning.Jump.Force {
		t.Errorf("velocity Y = %v, want jump force %v", got, ctx.Tuning.Jump.Force)
	}
	if !ctx.Timers.Expired(motion.TimerCoyote) {
		t.Error("coyote timer should be consumed by the jump")
	}
	if !ctx.Timers.Expired(motion.TimerJumpBuffer) {
		t.Error("jump buffer should be consumed by the jump")
	}
	if !hasEvent(ctx.Events.Drain(), motion.EventJump) {
		t.Error("expected a jump event")
	}
}

func TestAirCoyoteJump(t *testing.T) {
	tests := []struct {
		name       string
		coyoteLeft float64
		airJumps   int
		wantForce  float64
		wantJumped bool
	}{
		{name: "inside coyote window uses ground jump", coyoteLeft: 0.05, airJumps: 0, wantForce: 11, wantJumped: true},
		{name: "expired coyote falls back to air jump", coyoteLeft: 0, airJumps: 1, wantForce: 10, wantJumped: true},
		{name: "expired coyote and no air jumps", coyoteLeft: 0, airJumps: 0, wantJumped: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext()
			ctx.TickCount = 10
			ctx.AirJumps = tt.airJumps
			ctx.Velocity = mgl64.Vec3{0, -3, 0}
			if tt.coyoteLeft > 0 {
				ctx.Timers.Set(motion.TimerCoyote, tt.coyoteLeft)
			}
			ctx.Input = motion.Sample{Pressed: motion.ButtonJump, Held: motion.ButtonJump}

			a := NewAir()
			a.Enter(ctx)
			vel := a.Update(ctx)

			if tt.wantJumped {
				if vel.Y() != tt.wantForce {
					t.Errorf("velocity Y = %v, want %v", vel.Y(), tt.wantForce)
				}
			} else if vel.Y() > 0 {
				t.Errorf("velocity Y = %v, want no jump", vel.Y())
			}
		})
	}
}

func TestAirJumpCutOnce(t *testing.T) {
	ctx := testContext()
	ctx.TickCount = 3
	ctx.Velocity = mgl64.Vec3{0, 10, 0}
	ctx.Input = motion.Sample{Released: motion.ButtonJump}

	a := NewAir()
	a.Enter(ctx)

	vel := a.Update(ctx)
	want := 10 * ctx.Tuning.Jump.CutMultiplier
	if !floatClose(vel.Y(), want, 1e-9) {
		t.Fatalf("cut velocity Y = %v, want %v", vel.Y(), want)
	}

	// A second release must not cut again.
	ctx.Velocity = vel
	ctx.TickCount++
	vel = a.Update(ctx)
	if !floatClose(vel.Y(), want, 1e-9) {
		t.Errorf("second cut applied: Y = %v, want %v", vel.Y(), want)
	}
}

func TestAirJumpPressNotDoubleConsumed(t *testing.T) {
	// The press that fires the buffered jump in Enter must not also spend an
	// air jump in the same tick's Update.
	ctx := testContext()
	ctx.TickCount = 7
	ctx.AirJumps = 1
	ctx.Timers.Set(motion.TimerCoyote, 0.1)
	ctx.Timers.Set(motion.TimerJumpBuffer, 0.05)
	ctx.Input = motion.Sample{Pressed: motion.ButtonJump, Held: motion.ButtonJump}

	a := NewAir()
	a.Enter(ctx)
	a.Update(ctx)

	if ctx.AirJumps != 1 {
		t.Errorf("AirJumps = %d, want 1 (ground jump should not spend an air jump)", ctx.AirJumps)
	}
	if got := ctx.Velocity.Y(); got != ctx.Tuning.Jump.Force {
		t.Errorf("velocity Y = %v, want ground jump force %v", got, ctx.Tuning.Jump.Force)
	}
}

func TestAirAirJumpDecrements(t *testing.T) {
	ctx := testContext()
	ctx.TickCount = 4
	ctx.AirJumps = 2
	ctx.Input = motion.Sample{Pressed: motion.ButtonJump, Held: motion.ButtonJump}

	a := NewAir()
	a.Enter(ctx)
	a.Update(ctx)

	if ctx.AirJumps != 1 {
		t.Errorf("AirJumps = %d, want 1", ctx.AirJumps)
	}
}

func TestAirDone(t *testing.T) {
	ctx := testContext()
	a := NewAir()

	if a.Done(ctx) {
		t.Error("airborne and dry should not be done")
	}
	ctx.Grounded = true
	if !a.Done(ctx) {
		t.Error("grounded should be done")
	}
	ctx.Grounded = false
	ctx.InWater = true
	if !a.Done(ctx) {
		t.Error("in water should be done")
	}
}
