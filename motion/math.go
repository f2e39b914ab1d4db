package motion

import "github.com/go-gl/mathgl/mgl64"

// Up is the world up axis (Y-up, right-handed).
var Up = mgl64.Vec3{0, 1, 0}

const degToRad = 0.017453292519943295

// Horizontal returns v with its vertical component removed.
func Horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// HorizontalSpeed returns the magnitude of v's horizontal part.
func HorizontalSpeed(v mgl64.Vec3) float64 {
	return Horizontal(v).Len()
}

// SafeNormalize normalizes v, falling back to fallback when v is too short
// to produce a meaningful direction. Near-zero vectors never propagate NaN.
func SafeNormalize(v, fallback mgl64.Vec3) mgl64.Vec3 {
	const minLen = 1e-6
	if l := v.Len(); l > minLen {
		return v.Mul(1 / l)
	}
	return fallback
}

// Approach moves current toward target by at most maxDelta.
func Approach(current, target, maxDelta float64) float64 {
	if maxDelta < 0 {
		maxDelta = 0
	}
	d := target - current
	if d > maxDelta {
		return current + maxDelta
	}
	if d < -maxDelta {
		return current - maxDelta
	}
	return target
}

// Lerp interpolates linearly with t clamped to [0, 1].
func Lerp(a, b, t float64) float64 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return a + t*(b-a)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
