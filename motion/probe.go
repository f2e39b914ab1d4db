package motion

import "github.com/go-gl/mathgl/mgl64"

// Layer is a bitmask restricting which geometry a probe may hit.
type Layer uint32

const (
	LayerDefault Layer = 1 << iota
	LayerClimbable
	LayerGrapple
	LayerWater

	LayerAll Layer = ^Layer(0)
)

// Surface classifies what a probe landed on.
type Surface int

const (
	SurfaceDefault Surface = iota
	SurfaceClimbable
	SurfaceWater
)

// Hit is the result of a successful probe.
type Hit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
	Surface  Surface
}

// Prober answers spatial queries against the world. A miss is reported by
// the bool return, never by an error: a probe that finds nothing simply
// makes the asking ability ineligible this tick.
type Prober interface {
	// ProbeDown casts straight down from origin.
	ProbeDown(origin mgl64.Vec3, maxDistance float64) (Hit, bool)
	// Probe casts along dir (assumed normalized) against geometry in mask.
	Probe(origin, dir mgl64.Vec3, maxDistance float64, mask Layer) (Hit, bool)
	// SweepSphere sweeps a sphere of the given radius along dir.
	SweepSphere(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDistance float64) (Hit, bool)
}

// VolumeQuerier is an optional extension of Prober for media volumes
// (water). Probers that do not implement it leave the character dry.
type VolumeQuerier interface {
	InWater(point mgl64.Vec3) bool
}

// Mover consumes the one velocity the engine commits each tick and resolves
// it against collision. During a mantle the engine positions the body
// directly; BeginDirectMove must disable normal collision resolution until
// EndDirectMove.
type Mover interface {
	// ApplyMovement integrates velocity over dt and returns the resolved
	// position.
	ApplyMovement(velocity mgl64.Vec3, dt float64) mgl64.Vec3
	SetPosition(pos mgl64.Vec3)
	Position() mgl64.Vec3
	BeginDirectMove()
	EndDirectMove()
}
