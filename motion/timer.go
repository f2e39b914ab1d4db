package motion

// Timer is a named countdown. Remaining counts down to zero; Duration is the
// value it was last set to, kept so abilities can derive an elapsed fraction.
type Timer struct {
	Remaining float64
	Duration  float64
}

func (t *Timer) Expired() bool {
	return t == nil || t.Remaining <= 0
}

// Fraction returns elapsed progress in [0, 1].
func (t *Timer) Fraction() float64 {
	if t == nil || t.Duration <= 0 {
		return 1
	}
	f := 1 - t.Remaining/t.Duration
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// TimerBank holds every named countdown the abilities use: coyote time, jump
// buffer, cooldowns, ability durations. Timers are created on demand by Set
// and removed by Clear; a missing timer reads as expired with zero remaining.
type TimerBank struct {
	timers map[string]*Timer
}

func NewTimerBank() *TimerBank {
	return &TimerBank{timers: make(map[string]*Timer)}
}

// Set starts (or restarts) the named timer. Non-positive durations clamp to
// zero, which reads as already expired.
func (b *TimerBank) Set(name string, duration float64) {
	if b == nil {
		return
	}
	if duration < 0 {
		duration = 0
	}
	t := b.timers[name]
	if t == nil {
		t = &Timer{}
		b.timers[name] = t
	}
	t.Remaining = duration
	t.Duration = duration
}

func (b *TimerBank) Remaining(name string) float64 {
	if b == nil {
		return 0
	}
	t := b.timers[name]
	if t == nil || t.Remaining < 0 {
		return 0
	}
	return t.Remaining
}

func (b *TimerBank) Expired(name string) bool {
	if b == nil {
		return true
	}
	return b.timers[name].Expired()
}

// Fraction returns the named timer's elapsed fraction, 1 when absent.
func (b *TimerBank) Fraction(name string) float64 {
	if b == nil {
		return 1
	}
	return b.timers[name].Fraction()
}

// Zero force-expires the timer without removing it.
func (b *TimerBank) Zero(name string) {
	if b == nil {
		return
	}
	if t := b.timers[name]; t != nil {
		t.Remaining = 0
	}
}

// Clear removes the timer entirely; used when the owning ability fully exits.
func (b *TimerBank) Clear(name string) {
	if b == nil {
		return
	}
	delete(b.timers, name)
}

// Tick advances every timer by dt.
func (b *TimerBank) Tick(dt float64) {
	if b == nil || dt <= 0 {
		return
	}
	for _, t := range b.timers {
		if t.Remaining > 0 {
			t.Remaining -= dt
			if t.Remaining < 0 {
				t.Remaining = 0
			}
		}
	}
}
