package ability

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/parkour/motion"
)

func TestSlideEntrySpeed(t *testing.T) {
	tests := []struct {
		name     string
		velocity mgl64.Vec3
		want     float64
	}{
		{name: "fast entry keeps momentum", velocity: mgl64.Vec3{0, 0, 20}, want: 20},
		{name: "slow entry floors at base speed", velocity: mgl64.Vec3{0, 0, 6}, want: 15},
		{name: "exact base speed", velocity: mgl64.Vec3{0, 0, 15}, want: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext()
			ctx.Grounded = true
			ctx.Velocity = tt.velocity

			s := NewSlide()
			s.Enter(ctx)

			if !floatClose(ctx.Slide.Speed, tt.want, 1e-9) {
				t.Errorf("slide speed = %v, want %v", ctx.Slide.Speed, tt.want)
			}
		})
	}
}

func TestSlideEligibility(t *testing.T) {
	ctx := testContext()
	s := NewSlide()

	ctx.Grounded = true
	ctx.Velocity = mgl64.Vec3{0, 0, 10}
	ctx.Input = motion.Sample{Held: motion.ButtonCrouch}
	if !s.Eligible(ctx) {
		t.Error("grounded, crouched, fast: should be eligible")
	}

	ctx.Velocity = mgl64.Vec3{0, 0, ctx.Tuning.Slide.MinSpeed - 0.1}
	if s.Eligible(ctx) {
		t.Error("below minimum speed: should not be eligible")
	}

	ctx.Velocity = mgl64.Vec3{0, 0, 10}
	ctx.Grounded = false
	if s.Eligible(ctx) {
		t.Error("airborne: should not be eligible")
	}
}

func TestSlideFlatGroundDecays(t *testing.T) {
	ctx := testContext()
	ctx.Grounded = true
	ctx.Velocity = mgl64.Vec3{0, 0, 20}
	ctx.Input = motion.Sample{Held: motion.ButtonCrouch}

	s := NewSlide()
	s.Enter(ctx)
	before := ctx.Slide.Speed
	s.Update(ctx)

	want := before - ctx.Tuning.Slide.FlatDecel*ctx.Dt
	if !floatClose(ctx.Slide.Speed, want, 1e-9) {
		t.Errorf("speed after flat update = %v, want %v", ctx.Slide.Speed, want)
	}
}

func TestSlideBlockedCeilingKeepsSliding(t *testing.T) {
	ctx := testContext()
	ctx.Grounded = true
	ctx.Velocity = mgl64.Vec3{0, 0, 20}
	blocked := true
	ctx.Probes = &fakeProber{
		sweep: func(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDistance float64) (motion.Hit, bool) {
			if blocked {
				return motion.Hit{Normal: mgl64.Vec3{0, -1, 0}}, true
			}
			return motion.Hit{}, false
		},
	}

	s := NewSlide()
	s.Enter(ctx)
	ctx.Timers.Tick(10) // slide duration long expired

	// Crouch released and timer expired, but no headroom: the slide holds.
	ctx.Input = motion.Sample{}
	if s.Done(ctx) {
		t.Fatal("slide ended under a blocking ceiling")
	}

	blocked = false
	if !s.Done(ctx) {
		t.Error("slide should end once clearance appears")
	}
}

func TestSlideJumpOutBoost(t *testing.T) {
	ctx := testContext()
	ctx.Grounded = true
	ctx.Velocity = mgl64.Vec3{0, 0, 20}
	ctx.Input = motion.Sample{Held: motion.ButtonCrouch}

	s := NewSlide()
	s.Enter(ctx)

	ctx.Input = motion.Sample{Held: motion.ButtonCrouch | motion.ButtonJump, Pressed: motion.ButtonJump}
	s.Update(ctx)
	if !s.Done(ctx) {
		t.Fatal("jump press should end the slide")
	}

	dir := ctx.Slide.Direction
	speed := ctx.Slide.Speed
	before := ctx.Velocity
	s.Exit(ctx)

	wantBoost := dir.Mul(speed * ctx.Tuning.Slide.JumpBoostFraction)
	if got := ctx.Velocity.Sub(before); !vecClose(got, wantBoost, 1e-9) {
		t.Errorf("exit boost = %v, want %v", got, wantBoost)
	}
	if ctx.Timers.Expired(cooldownSlide) {
		t.Error("slide cooldown should be running after exit")
	}
}

func TestSlideSteering(t *testing.T) {
	ctx := testContext()
	ctx.Grounded = true
	ctx.Velocity = mgl64.Vec3{0, 0, 20}

	s := NewSlide()
	s.Enter(ctx)
	start := ctx.Slide.Direction

	ctx.Input = motion.Sample{Move: mgl64.Vec2{1, 0}, Held: motion.ButtonCrouch}
	for i := 0; i < 30; i++ {
		s.Update(ctx)
	}

	if vecClose(ctx.Slide.Direction, start, 1e-6) {
		t.Error("lateral input should rotate the slide direction")
	}
	if !floatClose(ctx.Slide.Direction.Len(), 1, 1e-9) {
		t.Errorf("slide direction should stay unit length, got %v", ctx.Slide.Direction.Len())
	}
}
