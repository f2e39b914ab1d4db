package motion

// Mode identifies a locomotion mode. Values are declared in ascending
// priority order so a mode's rank is its numeric value: when several modes
// are eligible on the same tick, the highest value wins and ties fall to
// registration order.
type Mode int

const (
	ModeIdle Mode = iota
	ModeWalk
	ModeRun
	ModeSprint
	ModeLandRecover
	ModeAir
	ModeGrapple
	ModeSwim
	ModeFly
	ModeClimb
	ModeMantle
	ModeWallRun
	ModeSlide
	ModeDash
	ModeStunned
	ModeDead
)

// GroupPrimary is the mutual-exclusion group every locomotion mode belongs
// to; exactly one member of the group is active at any instant.
const GroupPrimary = "primary"

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeWalk:
		return "walk"
	case ModeRun:
		return "run"
	case ModeSprint:
		return "sprint"
	case ModeLandRecover:
		return "land_recover"
	case ModeAir:
		return "air"
	case ModeGrapple:
		return "grapple"
	case ModeSwim:
		return "swim"
	case ModeFly:
		return "fly"
	case ModeClimb:
		return "climb"
	case ModeMantle:
		return "mantle"
	case ModeWallRun:
		return "wallrun"
	case ModeSlide:
		return "slide"
	case ModeDash:
		return "dash"
	case ModeStunned:
		return "stunned"
	case ModeDead:
		return "dead"
	}
	return "unknown"
}

// Rank returns the mode's priority. Higher outranks lower.
func (m Mode) Rank() int { return int(m) }
