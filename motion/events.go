package motion

import "github.com/go-gl/mathgl/mgl64"

// EventKind enumerates the outbound notifications the engine appends for
// presentation/audio/UI consumers. The core never reacts to its own events.
type EventKind int

const (
	EventModeEntered EventKind = iota
	EventModeExited
	EventJump
	EventWallJump
	EventDash
	EventGrappleAttached
	EventGrappleDetached
	EventMantleStarted
	EventMantleCompleted
	EventResourceDepleted
	EventResourceRefilled
	EventTuningReloaded
)

func (k EventKind) String() string {
	switch k {
	case EventModeEntered:
		return "mode_entered"
	case EventModeExited:
		return "mode_exited"
	case EventJump:
		return "jump"
	case EventWallJump:
		return "wall_jump"
	case EventDash:
		return "dash"
	case EventGrappleAttached:
		return "grapple_attached"
	case EventGrappleDetached:
		return "grapple_detached"
	case EventMantleStarted:
		return "mantle_started"
	case EventMantleCompleted:
		return "mantle_completed"
	case EventResourceDepleted:
		return "resource_depleted"
	case EventResourceRefilled:
		return "resource_refilled"
	case EventTuningReloaded:
		return "tuning_reloaded"
	}
	return "unknown"
}

// Event carries a notification plus whatever context the kind implies.
type Event struct {
	Kind EventKind
	Mode Mode
	Pool string
	At   mgl64.Vec3
	Tick uint64
}

// Queue is a one-tick outbound event buffer. Producers append during the
// tick; consumers drain after it. Draining resets the queue.
type Queue struct {
	events []Event
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Emit(ev Event) {
	if q == nil {
		return
	}
	q.events = append(q.events, ev)
}

// Drain returns all pending events and empties the queue.
func (q *Queue) Drain() []Event {
	if q == nil || len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.events)
}
