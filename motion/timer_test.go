package motion

import "testing"

func TestTimerBankSetAndTick(t *testing.T) {
	tests := []struct {
		name          string
		duration      float64
		tick          float64
		wantRemaining float64
		wantExpired   bool
	}{
		{name: "fresh timer not expired", duration: 0.5, tick: 0, wantRemaining: 0.5, wantExpired: false},
		{name: "partial tick", duration: 0.5, tick: 0.2, wantRemaining: 0.3, wantExpired: false},
		{name: "exact expiry", duration: 0.5, tick: 0.5, wantRemaining: 0, wantExpired: true},
		{name: "overshoot clamps to zero", duration: 0.5, tick: 2, wantRemaining: 0, wantExpired: true},
		{name: "negative duration clamps to zero", duration: -1, tick: 0, wantRemaining: 0, wantExpired: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewTimerBank()
			b.Set("t", tt.duration)
			if tt.tick > 0 {
				b.Tick(tt.tick)
			}
			if got := b.Remaining("t"); !closeTo(got, tt.wantRemaining) {
				t.Errorf("Remaining = %v, want %v", got, tt.wantRemaining)
			}
			if got := b.Expired("t"); got != tt.wantExpired {
				t.Errorf("Expired = %v, want %v", got, tt.wantExpired)
			}
		})
	}
}

func TestTimerBankMissingReadsExpired(t *testing.T) {
	b := NewTimerBank()
	if !b.Expired("missing") {
		t.Error("missing timer should read expired")
	}
	if got := b.Remaining("missing"); got != 0 {
		t.Errorf("missing timer Remaining = %v, want 0", got)
	}
	if got := b.Fraction("missing"); got != 1 {
		t.Errorf("missing timer Fraction = %v, want 1", got)
	}
}

func TestTimerBankZeroAndClear(t *testing.T) {
	b := NewTimerBank()
	b.Set("t", 1)
	b.Zero("t")
	if !b.Expired("t") {
		t.Error("zeroed timer should be expired")
	}
	if got := b.Fraction("t"); got != 1 {
		t.Errorf("zeroed timer Fraction = %v, want 1", got)
	}

	b.Clear("t")
	if !b.Expired("t") {
		t.Error("cleared timer should read expired")
	}
}

func TestTimerFraction(t *testing.T) {
	b := NewTimerBank()
	b.Set("t", 2)
	if got := b.Fraction("t"); got != 0 {
		t.Fatalf("fresh Fraction = %v, want 0", got)
	}
	b.Tick(0.5)
	if got := b.Fraction("t"); !closeTo(got, 0.25) {
		t.Errorf("Fraction after quarter = %v, want 0.25", got)
	}
	b.Tick(10)
	if got := b.Fraction("t"); got != 1 {
		t.Errorf("Fraction after expiry = %v, want 1", got)
	}
}

func TestTimerBankTickOnlyRunning(t *testing.T) {
	b := NewTimerBank()
	b.Set("a", 1)
	b.Set("b", 0.2)
	b.Tick(0.5)
	if got := b.Remaining("a"); !closeTo(got, 0.5) {
		t.Errorf("a Remaining = %v, want 0.5", got)
	}
	if got := b.Remaining("b"); got != 0 {
		t.Errorf("b Remaining = %v, want 0", got)
	}
}

func closeTo(got, want float64) bool {
	diff := got - want
	return diff < 1e-9 && diff > -1e-9
}
