package engine

import (
	"github.com/milk9111/parkour/motion"
)

// Resolver picks the single active primary-mode ability each tick. The
// currently active ability continues while it is not done and nothing with
// a strictly higher rank is eligible; otherwise the old ability's exit hook
// fires, the new one's enter hook fires, and its duration timers reset.
// Cooldowns are keyed separately and survive re-entry.
type Resolver struct {
	abilities []motion.Ability
	active    motion.Ability
}

// NewResolver registers abilities in tie-break order: when two eligible
// modes share a rank, the earlier registration wins.
func NewResolver(abilities ...motion.Ability) *Resolver {
	return &Resolver{abilities: abilities}
}

func (r *Resolver) Active() motion.Ability { return r.active }

// Mode reports the active mode tag, ModeIdle before the first tick.
func (r *Resolver) Mode() motion.Mode {
	if r.active == nil {
		return motion.ModeIdle
	}
	return r.active.Descriptor().Mode
}

// candidate reports whether an inactive ability may activate this tick:
// cooldown expired, activation cost affordable (fail closed), and the
// ability's own predicate true.
func (r *Resolver) candidate(a motion.Ability, ctx *motion.Context) bool {
	d := a.Descriptor()
	if d.CooldownKey != "" && !ctx.Timers.Expired(d.CooldownKey) {
		return false
	}
	if d.Cost > 0 && !ctx.Resources.CanAfford(d.CostPool, d.Cost) {
		return false
	}
	return a.Eligible(ctx)
}

// Tick resolves this tick's active ability and returns it.
func (r *Resolver) Tick(ctx *motion.Context) motion.Ability {
	continuing := r.active != nil && !r.active.Done(ctx)
	activeRank := -1
	if continuing {
		activeRank = r.active.Descriptor().Mode.Rank()
	}

	var best motion.Ability
	bestRank := -1
	for _, a := range r.abilities {
		if a == r.active {
			continue
		}
		if !r.candidate(a, ctx) {
			continue
		}
		if rank := a.Descriptor().Mode.Rank(); rank > bestRank {
			best = a
			bestRank = rank
		}
	}

	// No churn: the active mode keeps running unless something strictly
	// higher-ranked wants in.
	if continuing && bestRank <= activeRank {
		return r.active
	}
	if best == nil {
		// The active ability is done but nothing can replace it yet; keep
		// it rather than leave the primary group empty.
		return r.active
	}

	if r.active != nil {
		prev := r.active.Descriptor().Mode
		r.active.Exit(ctx)
		ctx.Emit(motion.Event{Kind: motion.EventModeExited, Mode: prev})
	}

	r.active = best
	d := best.Descriptor()
	if d.Cost > 0 {
		if p := ctx.Resources.Get(d.CostPool); p != nil {
			p.Consume(d.Cost)
		}
	}
	best.Enter(ctx)
	ctx.Emit(motion.Event{Kind: motion.EventModeEntered, Mode: best.Descriptor().Mode})
	return r.active
}
