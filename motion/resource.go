package motion

// Pool is a bounded, regenerating numeric budget (stamina, fuel). The
// invariant 0 <= Current <= Max holds after every call.
type Pool struct {
	Current    float64
	Max        float64
	RegenRate  float64
	RegenDelay float64

	delay float64
}

// Consume removes amount if the pool can afford all of it and reports
// whether it did. Activation checks fail closed: an ability whose cost
// exceeds the available amount never starts.
func (p *Pool) Consume(amount float64) bool {
	if p == nil {
		return false
	}
	if amount <= 0 {
		return true
	}
	if p.Current < amount {
		return false
	}
	p.Current -= amount
	p.delay = p.RegenDelay
	return true
}

// Drain removes up to amount and returns what was actually removed. Used by
// continuously-draining abilities (climb, fly) that terminate gracefully
// when the pool empties.
func (p *Pool) Drain(amount float64) float64 {
	if p == nil || amount <= 0 {
		return 0
	}
	taken := amount
	if taken > p.Current {
		taken = p.Current
	}
	p.Current -= taken
	p.delay = p.RegenDelay
	return taken
}

func (p *Pool) Empty() bool { return p == nil || p.Current <= 0 }

func (p *Pool) Full() bool { return p != nil && p.Current >= p.Max }

// Tick regenerates the pool once its post-consume delay has elapsed.
func (p *Pool) Tick(dt float64) {
	if p == nil || dt <= 0 {
		return
	}
	if p.delay > 0 {
		p.delay -= dt
		if p.delay > 0 {
			return
		}
		dt = -p.delay
		p.delay = 0
		if dt <= 0 {
			return
		}
	}
	p.Current += p.RegenRate * dt
	if p.Current > p.Max {
		p.Current = p.Max
	}
	if p.Current < 0 {
		p.Current = 0
	}
}

// Well-known pool names.
const (
	PoolStamina = "stamina"
	PoolFuel    = "fuel"
)

// ResourceBank holds every named pool.
type ResourceBank struct {
	pools map[string]*Pool
}

func NewResourceBank() *ResourceBank {
	return &ResourceBank{pools: make(map[string]*Pool)}
}

func (b *ResourceBank) Add(name string, p *Pool) {
	if b == nil || p == nil {
		return
	}
	if p.Max < 0 {
		p.Max = 0
	}
	if p.Current < 0 {
		p.Current = 0
	}
	if p.Current > p.Max {
		p.Current = p.Max
	}
	b.pools[name] = p
}

func (b *ResourceBank) Get(name string) *Pool {
	if b == nil {
		return nil
	}
	return b.pools[name]
}

// CanAfford reports whether the named pool could pay amount right now. An
// unknown pool cannot afford anything except a zero cost.
func (b *ResourceBank) CanAfford(name string, amount float64) bool {
	if amount <= 0 {
		return true
	}
	p := b.Get(name)
	return p != nil && p.Current >= amount
}

func (b *ResourceBank) Tick(dt float64) {
	if b == nil {
		return
	}
	for _, p := range b.pools {
		p.Tick(dt)
	}
}

// Names returns the registered pool names in no particular order.
func (b *ResourceBank) Names() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.pools))
	for name := range b.pools {
		out = append(out, name)
	}
	return out
}
