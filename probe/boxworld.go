package probe

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/parkour/motion"
)

// Box is an axis-aligned block of world geometry.
type Box struct {
	Min, Max mgl64.Vec3
	Layer    motion.Layer
	Surface  motion.Surface
}

func (b Box) contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

func (b Box) expanded(r float64) Box {
	grow := mgl64.Vec3{r, r, r}
	return Box{Min: b.Min.Sub(grow), Max: b.Max.Add(grow), Layer: b.Layer, Surface: b.Surface}
}

// World is a box-soup test stage: it implements the probe queries and the
// collision mover the engine needs, with geometry made of axis-aligned
// blocks and water volumes. Good enough to exercise every movement mode
// without a real physics backend.
type World struct {
	boxes []Box
	water []Box

	pos    mgl64.Vec3
	radius float64
	height float64
	direct bool
}

// NewWorld builds an empty world around a body capsule approximated as a
// box of the given half-width and height.
func NewWorld(bodyRadius, bodyHeight float64) *World {
	return &World{radius: bodyRadius, height: bodyHeight}
}

func (w *World) AddBox(b Box) {
	if b.Layer == 0 {
		b.Layer = motion.LayerDefault
	}
	w.boxes = append(w.boxes, b)
}

// AddFloor adds a slab whose top face is at y spanning the given XZ extent.
func (w *World) AddFloor(minX, minZ, maxX, maxZ, y float64) {
	w.AddBox(Box{
		Min: mgl64.Vec3{minX, y - 1, minZ},
		Max: mgl64.Vec3{maxX, y, maxZ},
	})
}

func (w *World) AddWater(min, max mgl64.Vec3) {
	w.water = append(w.water, Box{Min: min, Max: max, Layer: motion.LayerWater, Surface: motion.SurfaceWater})
}

// rayBox is the slab intersection: entry distance and the face normal the
// ray came in through. A ray starting inside the box is a miss.
func rayBox(origin, dir mgl64.Vec3, maxDist float64, b Box) (motion.Hit, bool) {
	tmin, tmax := 0.0, maxDist
	axis, sign := -1, 0.0
	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < 1e-12 {
			if origin[i] < b.Min[i] || origin[i] > b.Max[i] {
				return motion.Hit{}, false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (b.Min[i] - origin[i]) * inv
		t2 := (b.Max[i] - origin[i]) * inv
		s := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			s = 1.0
		}
		if t1 > tmin {
			tmin, axis, sign = t1, i, s
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return motion.Hit{}, false
		}
	}
	if axis < 0 || tmin <= 1e-9 {
		return motion.Hit{}, false
	}
	var normal mgl64.Vec3
	normal[axis] = sign
	return motion.Hit{
		Point:    origin.Add(dir.Mul(tmin)),
		Normal:   normal,
		Distance: tmin,
		Surface:  b.Surface,
	}, true
}

func (w *World) Probe(origin, dir mgl64.Vec3, maxDistance float64, mask motion.Layer) (motion.Hit, bool) {
	var best motion.Hit
	found := false
	for _, b := range w.boxes {
		if b.Layer&mask == 0 {
			continue
		}
		hit, ok := rayBox(origin, dir, maxDistance, b)
		if !ok {
			continue
		}
		if !found || hit.Distance < best.Distance {
			best = hit
			found = true
		}
	}
	return best, found
}

func (w *World) ProbeDown(origin mgl64.Vec3, maxDistance float64) (motion.Hit, bool) {
	return w.Probe(origin, mgl64.Vec3{0, -1, 0}, maxDistance, motion.LayerAll&^motion.LayerWater)
}

// SweepSphere casts against geometry inflated by the radius, which turns
// the sphere sweep into a point raycast.
func (w *World) SweepSphere(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDistance float64) (motion.Hit, bool) {
	var best motion.Hit
	found := false
	for _, b := range w.boxes {
		if b.Layer&motion.LayerWater != 0 {
			continue
		}
		hit, ok := rayBox(origin, dir, maxDistance, b.expanded(radius))
		if !ok {
			continue
		}
		if !found || hit.Distance < best.Distance {
			best = hit
			found = true
		}
	}
	return best, found
}

func (w *World) InWater(point mgl64.Vec3) bool {
	for _, b := range w.water {
		if b.contains(point) {
			return true
		}
	}
	return false
}

func (w *World) SetPosition(pos mgl64.Vec3) { w.pos = pos }
func (w *World) Position() mgl64.Vec3      { return w.pos }
func (w *World) BeginDirectMove()          { w.direct = true }
func (w *World) EndDirectMove()            { w.direct = false }

// ApplyMovement integrates the committed velocity with per-axis collision
// resolution, the same axis-at-a-time scheme the body box can never tunnel
// through at simulation speeds. Direct moves skip collision entirely.
func (w *World) ApplyMovement(velocity mgl64.Vec3, dt float64) mgl64.Vec3 {
	delta := velocity.Mul(dt)
	if w.direct {
		w.pos = w.pos.Add(delta)
		return w.pos
	}
	for axis := 0; axis < 3; axis++ {
		if delta[axis] == 0 {
			continue
		}
		w.pos[axis] += delta[axis]
		w.resolveAxis(axis, delta[axis])
	}
	return w.pos
}

func (w *World) bodyBox() Box {
	return Box{
		Min: mgl64.Vec3{w.pos.X() - w.radius, w.pos.Y(), w.pos.Z() - w.radius},
		Max: mgl64.Vec3{w.pos.X() + w.radius, w.pos.Y() + w.height, w.pos.Z() + w.radius},
	}
}

func (w *World) resolveAxis(axis int, moved float64) {
	for _, b := range w.boxes {
		if b.Layer&motion.LayerWater != 0 {
			continue
		}
		body := w.bodyBox()
		overlap := true
		for i := 0; i < 3; i++ {
			if body.Max[i] <= b.Min[i] || body.Min[i] >= b.Max[i] {
				overlap = false
				break
			}
		}
		if !overlap {
			continue
		}
		if moved > 0 {
			w.pos[axis] -= body.Max[axis] - b.Min[axis]
		} else {
			w.pos[axis] += b.Max[axis] - body.Min[axis]
		}
	}
}
