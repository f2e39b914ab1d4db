package engine

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/parkour/config"
	"github.com/milk9111/parkour/motion"
)

// stubAbility is a scriptable primary-mode ability for resolver tests.
type stubAbility struct {
	desc     motion.Descriptor
	eligible bool
	done     bool
	enters   int
	exits    int
}

func (s *stubAbility) Descriptor() motion.Descriptor     { return s.desc }
func (s *stubAbility) Eligible(*motion.Context) bool     { return s.eligible }
func (s *stubAbility) Enter(*motion.Context)             { s.enters++ }
func (s *stubAbility) Update(*motion.Context) mgl64.Vec3 { return mgl64.Vec3{} }
func (s *stubAbility) Done(*motion.Context) bool         { return s.done }
func (s *stubAbility) Exit(*motion.Context)              { s.exits++ }

func stub(mode motion.Mode) *stubAbility {
	return &stubAbility{desc: motion.Descriptor{Mode: mode, Group: motion.GroupPrimary}}
}

func resolverContext() *motion.Context {
	return &motion.Context{
		Timers:    motion.NewTimerBank(),
		Resources: motion.NewResourceBank(),
		Events:    motion.NewQueue(),
		Tuning:    config.Default(),
		Dt:        1.0 / 60,
	}
}

func TestResolverPicksHighestRank(t *testing.T) {
	ctx := resolverContext()
	low := stub(motion.ModeWalk)
	high := stub(motion.ModeSlide)
	low.eligible = true
	high.eligible = true

	r := NewResolver(low, high)
	active := r.Tick(ctx)

	if active != motion.Ability(high) {
		t.Fatalf("active = %v, want the higher-ranked mode", r.Mode())
	}
	if high.enters != 1 {
		t.Errorf("enters = %d, want 1", high.enters)
	}
}

func TestResolverNoChurnAtEqualRank(t *testing.T) {
	ctx := resolverContext()
	first := stub(motion.ModeRun)
	second := stub(motion.ModeRun)
	first.eligible = true

	r := NewResolver(first, second)
	r.Tick(ctx)

	// A same-rank rival must not displace a running mode.
	second.eligible = true
	r.Tick(ctx)

	if r.Active() != motion.Ability(first) {
		t.Error("equal-rank candidate preempted the active mode")
	}
	if first.exits != 0 {
		t.Errorf("exits = %d, want 0", first.exits)
	}
}

func TestResolverStrictlyHigherPreempts(t *testing.T) {
	ctx := resolverContext()
	ground := stub(motion.ModeSprint)
	slide := stub(motion.ModeSlide)
	ground.eligible = true

	r := NewResolver(ground, slide)
	r.Tick(ctx)

	slide.eligible = true
	r.Tick(ctx)

	if r.Active() != motion.Ability(slide) {
		t.Fatal("higher-ranked mode should preempt")
	}
	if ground.exits != 1 {
		t.Errorf("ground exits = %d, want 1", ground.exits)
	}

	events := ctx.Events.Drain()
	// Expect ... entered(sprint), exited(sprint), entered(slide).
	var kinds []motion.EventKind
	for _, ev := range events {
		kinds = append(kinds, ev.Kind)
	}
	want := []motion.EventKind{motion.EventModeEntered, motion.EventModeExited, motion.EventModeEntered}
	if len(kinds) != len(want) {
		t.Fatalf("events = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("events = %v, want %v", kinds, want)
		}
	}
}

func TestResolverKeepsDoneActiveWhenNothingEligible(t *testing.T) {
	ctx := resolverContext()
	a := stub(motion.ModeAir)
	a.eligible = true

	r := NewResolver(a)
	r.Tick(ctx)

	a.eligible = false
	a.done = true
	if got := r.Tick(ctx); got != motion.Ability(a) {
		t.Error("resolver left the primary group empty")
	}
	if a.exits != 0 {
		t.Errorf("exits = %d, want 0 while nothing can replace it", a.exits)
	}
}

func TestResolverTieBreakByRegistration(t *testing.T) {
	ctx := resolverContext()
	first := stub(motion.ModeRun)
	second := stub(motion.ModeRun)
	first.eligible = true
	second.eligible = true

	r := NewResolver(first, second)
	r.Tick(ctx)

	if r.Active() != motion.Ability(first) {
		t.Error("registration order should break rank ties")
	}
}

func TestResolverCooldownBlocksActivation(t *testing.T) {
	ctx := resolverContext()
	a := stub(motion.ModeDash)
	a.desc.CooldownKey = "dash_cd"
	a.eligible = true

	ctx.Timers.Set("dash_cd", 1)
	r := NewResolver(a)

	if got := r.Tick(ctx); got != nil {
		t.Fatal("cooldown should block activation")
	}
	ctx.Timers.Tick(1)
	if got := r.Tick(ctx); got != motion.Ability(a) {
		t.Error("expired cooldown should allow activation")
	}
}

func TestResolverCostFailsClosed(t *testing.T) {
	ctx := resolverContext()
	ctx.Resources.Add(motion.PoolStamina, &motion.Pool{Current: 10, Max: 100})

	a := stub(motion.ModeDash)
	a.desc.CostPool = motion.PoolStamina
	a.desc.Cost = 15
	a.eligible = true

	r := NewResolver(a)
	if got := r.Tick(ctx); got != nil {
		t.Fatal("unaffordable cost should block activation")
	}

	ctx.Resources.Get(motion.PoolStamina).Current = 20
	if got := r.Tick(ctx); got != motion.Ability(a) {
		t.Fatal("affordable cost should activate")
	}
	if got := ctx.Resources.Get(motion.PoolStamina).Current; got != 5 {
		t.Errorf("stamina = %v, want 5 after activation cost", got)
	}
}
