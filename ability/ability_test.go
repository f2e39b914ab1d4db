package ability

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/parkour/config"
	"github.com/milk9111/parkour/motion"
)

const testDt = 1.0 / 60

func testContext() *motion.Context {
	tun := config.Default()
	ctx := &motion.Context{
		Forward:      mgl64.Vec3{0, 0, 1},
		Right:        mgl64.Vec3{1, 0, 0},
		GroundNormal: motion.Up,
		Timers:       motion.NewTimerBank(),
		Resources:    motion.NewResourceBank(),
		Events:       motion.NewQueue(),
		Tuning:       tun,
		Dt:           testDt,
		AirJumps:     tun.Jump.MaxAirJumps,
		Status:       motion.ModeIdle,
	}
	ctx.Resources.Add(motion.PoolStamina, &motion.Pool{Current: tun.Stamina.Max, Max: tun.Stamina.Max})
	ctx.Resources.Add(motion.PoolFuel, &motion.Pool{Current: tun.Fuel.Max, Max: tun.Fuel.Max})
	return ctx
}

// fakeProber scripts probe responses per test; nil funcs always miss.
type fakeProber struct {
	probe     func(origin, dir mgl64.Vec3, maxDistance float64, mask motion.Layer) (motion.Hit, bool)
	probeDown func(origin mgl64.Vec3, maxDistance float64) (motion.Hit, bool)
	sweep     func(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDistance float64) (motion.Hit, bool)
}

func (f *fakeProber) Probe(origin, dir mgl64.Vec3, maxDistance float64, mask motion.Layer) (motion.Hit, bool) {
	if f.probe == nil {
		return motion.Hit{}, false
	}
	return f.probe(origin, dir, maxDistance, mask)
}

func (f *fakeProber) ProbeDown(origin mgl64.Vec3, maxDistance float64) (motion.Hit, bool) {
	if f.probeDown == nil {
		return motion.Hit{}, false
	}
	return f.probeDown(origin, maxDistance)
}

func (f *fakeProber) SweepSphere(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDistance float64) (motion.Hit, bool) {
	if f.sweep == nil {
		return motion.Hit{}, false
	}
	return f.sweep(origin, radius, dir, maxDistance)
}

func vecClose(got, want mgl64.Vec3, tol float64) bool {
	return got.Sub(want).Len() <= tol
}

func floatClose(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol
}

func hasEvent(events []motion.Event, kind motion.EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}
