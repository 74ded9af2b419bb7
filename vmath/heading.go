// Package vmath holds the small amount of float geometry the stage and the
// terminal renderer share
package vmath

import "math"

// NormalizeDegrees wraps a heading into (-180, 180]
func NormalizeDegrees(d float64) float64 {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	d = math.Mod(d, 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	return d
}

// HeadingVector returns the unit step of a heading: 0 is up, 90 is right
func HeadingVector(deg float64) (dx, dy float64) {
	r := deg * math.Pi / 180
	return math.Sin(r), math.Cos(r)
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
