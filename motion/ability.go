package motion

import "github.com/go-gl/mathgl/mgl64"

// Descriptor declares how the resolver should treat an ability: its mode tag
// (which carries the priority rank), mutual-exclusion group, activation cost
// and cooldown key. Gravity reports whether the velocity composer should add
// gravity on top of the ability's proposed velocity; abilities that own
// their vertical motion (wall-run, grapple, fly, mantle) set it false.
type Descriptor struct {
	Mode        Mode
	Group       string
	CostPool    string
	Cost        float64
	CooldownKey string
	Gravity     bool
}

// Ability is the contract every locomotion mode implements. The resolver
// activates exactly one ability per tick; only the active ability's Update
// runs and its returned velocity is the one the composer commits.
//
// Eligible is the activation test for inactive abilities and may record
// probe results in the context scratch state (the tick is single-threaded).
// Done is the termination test for the active ability. Enter and Exit are
// the transition hooks; Enter resets the ability's duration timers, never
// its cooldown.
type Ability interface {
	Descriptor() Descriptor
	Eligible(ctx *Context) bool
	Enter(ctx *Context)
	Update(ctx *Context) mgl64.Vec3
	Done(ctx *Context) bool
	Exit(ctx *Context)
}
