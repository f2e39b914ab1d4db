package ability

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/parkour/motion"
)

func TestGroundTiers(t *testing.T) {
	tests := []struct {
		name    string
		input   motion.Sample
		stamina float64
		want    motion.Mode
	}{
		{name: "no input idles", input: motion.Sample{}, stamina: 100, want: motion.ModeIdle},
		{name: "light input walks", input: motion.Sample{Move: mgl64.Vec2{0, 0.3}}, stamina: 100, want: motion.ModeWalk},
		{name: "full input runs", input: motion.Sample{Move: mgl64.Vec2{0, 1}}, stamina: 100, want: motion.ModeRun},
		{name: "sprint held with stamina", input: motion.Sample{Move: mgl64.Vec2{0, 1}, Held: motion.ButtonSprint}, stamina: 100, want: motion.ModeSprint},
		{name: "sprint held without stamina degrades to run", input: motion.Sample{Move: mgl64.Vec2{0, 1}, Held: motion.ButtonSprint}, stamina: 0, want: motion.ModeRun},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext()
			ctx.Grounded = true
			ctx.Input = tt.input
			ctx.Resources.Get(motion.PoolStamina).Current = tt.stamina

			g := NewGround()
			g.Enter(ctx)
			g.Update(ctx)

			if got := g.Descriptor().Mode; got != tt.want {
				t.Errorf("mode = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGroundSprintDrainsStamina(t *testing.T) {
	ctx := testContext()
	ctx.Grounded = true
	ctx.Input = motion.Sample{Move: mgl64.Vec2{0, 1}, Held: motion.ButtonSprint}

	g := NewGround()
	g.Enter(ctx)
	before := ctx.Resources.Get(motion.PoolStamina).Current
	g.Update(ctx)

	want := before - ctx.Tuning.Ground.SprintStaminaRate*ctx.Dt
	if got := ctx.Resources.Get(motion.PoolStamina).Current; !floatClose(got, want, 1e-9) {
		t.Errorf("stamina = %v, want %v", got, want)
	}
}

func TestGroundHardLandingRecovery(t *testing.T) {
	ctx := testContext()
	ctx.Grounded = true
	ctx.FallPeak = ctx.Tuning.Jump.HardLandSpeed + 5
	ctx.Input = motion.Sample{Move: mgl64.Vec2{0, 1}}

	g := NewGround()
	g.Enter(ctx)

	if ctx.Timers.Expired(motion.TimerLandRecover) {
		t.Fatal("hard landing should start the recovery timer")
	}
	if ctx.FallPeak != 0 {
		t.Errorf("FallPeak = %v, want reset to 0", ctx.FallPeak)
	}

	g.Update(ctx)
	if got := g.Descriptor().Mode; got != motion.ModeLandRecover {
		t.Errorf("mode = %v, want %v during recovery", got, motion.ModeLandRecover)
	}
}

func TestGroundSoftLandingShortRecovery(t *testing.T) {
	ctx := testContext()
	ctx.Grounded = true
	ctx.FallPeak = ctx.Tuning.Jump.SoftLandSpeed + 1

	g := NewGround()
	g.Enter(ctx)

	got := ctx.Timers.Remaining(motion.TimerLandRecover)
	if !floatClose(got, ctx.Tuning.Jump.SoftLandRecovery, 1e-9) {
		t.Errorf("recovery = %v, want soft %v", got, ctx.Tuning.Jump.SoftLandRecovery)
	}
}

func TestGroundAccelerates(t *testing.T) {
	ctx := testContext()
	ctx.Grounded = true
	ctx.Input = motion.Sample{Move: mgl64.Vec2{0, 1}}

	g := NewGround()
	g.Enter(ctx)

	var speed float64
	for i := 0; i < 120; i++ {
		vel := g.Update(ctx)
		ctx.Velocity = vel
		if next := motion.HorizontalSpeed(vel); next < speed-1e-9 {
			t.Fatalf("speed decreased while accelerating: %v -> %v", speed, next)
		} else {
			speed = next
		}
	}
	if !floatClose(speed, ctx.Tuning.Ground.RunSpeed, 1e-6) {
		t.Errorf("settled speed = %v, want run speed %v", speed, ctx.Tuning.Ground.RunSpeed)
	}
}

func TestGroundEnterFiresBufferedJump(t *testing.T) {
	ctx := testContext()
	ctx.Grounded = true
	ctx.FallPeak = ctx.Tuning.Jump.HardLandSpeed + 5
	ctx.Timers.Set(motion.TimerJumpBuffer, 0.05)
	ctx.Timers.Set(motion.TimerCoyote, 0.05)

	NewGround().Enter(ctx)

	if vy := ctx.Velocity.Y(); !floatClose(vy, ctx.Tuning.Jump.Force, 1e-9) {
		t.Errorf("velocity Y = %v, want jump force %v on the landing tick", vy, ctx.Tuning.Jump.Force)
	}
	if !ctx.Timers.Expired(motion.TimerJumpBuffer) || !ctx.Timers.Expired(motion.TimerCoyote) {
		t.Error("the buffered jump should consume both windows")
	}
	if !ctx.Timers.Expired(motion.TimerLandRecover) {
		t.Error("jumping straight off the landing should skip recovery")
	}
	if !hasEvent(ctx.Events.Drain(), motion.EventJump) {
		t.Error("expected a jump event")
	}
}

func TestGroundEnterRefillsAirJumps(t *testing.T) {
	ctx := testContext()
	ctx.Grounded = true
	ctx.AirJumps = 0

	NewGround().Enter(ctx)
	if ctx.AirJumps != ctx.Tuning.Jump.MaxAirJumps {
		t.Errorf("AirJumps = %d, want %d", ctx.AirJumps, ctx.Tuning.Jump.MaxAirJumps)
	}
}
