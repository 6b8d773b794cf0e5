// Package units provides the small value types shared across the
// decompression engine: depths and durations. Both are defined as plain
// numeric types rather than structs so ordinary arithmetic and comparison
// operators work on them directly, while the named type keeps the unit
// attached at the API boundary.
package units

import (
	"fmt"
	"math"
)

// MetersToFeet is the conversion factor used throughout the engine.
const MetersToFeet = 3.28084

// Depth is a depth in meters of seawater, measured from the surface.
// Negative depths are not physically meaningful; callers are expected to
// validate at their own boundary before constructing one from untrusted
// input. Arithmetic (Depth + Depth, Depth < Depth, etc.) works natively
// since Depth is a defined float64.
type Depth float64

// DepthFromFeet converts a depth given in feet to meters.
func DepthFromFeet(feet float64) Depth {
	return Depth(feet / MetersToFeet)
}

// Meters returns the depth in meters.
func (d Depth) Meters() float64 {
	return float64(d)
}

// Feet returns the depth in feet.
func (d Depth) Feet() float64 {
	return float64(d) * MetersToFeet
}

// RoundUpToStep rounds the depth up to the next multiple of step, e.g. with
// step=3, 2.999 rounds to 3 and 3.00001 rounds to 6. Zero stays zero.
func (d Depth) RoundUpToStep(step float64) Depth {
	if d <= 0 {
		return 0
	}
	if step <= 0 {
		return d
	}
	const eps = 1e-9
	return Depth(math.Ceil(float64(d)/step-eps) * step)
}

func (d Depth) String() string {
	return fmt.Sprintf("%.2fm", float64(d))
}
