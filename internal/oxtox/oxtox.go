// Package oxtox tracks cumulative oxygen toxicity exposure: CNS ("clock")
// percentage and OTU (oxygen tolerance units).
package oxtox

import (
	"math"

	"github.com/deepwater-eng/buhlmann/pkg/gas"
	"github.com/deepwater-eng/buhlmann/pkg/units"
)

// cnsHalfTimeMinutes is the elimination half-time applied to CNS loading
// once a diver surfaces and breathes a low pO2 gas.
const cnsHalfTimeMinutes = 90.0

// cnsOverLimitPercentPerMinute is the CNS accumulation rate, expressed as
// percent per minute of exposure, once pO2 exceeds 1.6 bar.
const cnsOverLimitPercentPerMinute = 100.0 / 400.0

// Tracker accumulates CNS and OTU oxygen toxicity load over the course of
// a dive.
type Tracker struct {
	CNS float64
	OTU float64
}

// Update advances the tracker by dt seconds of exposure to gas g, using
// the mean of startDepth and endDepth as the representative depth for the
// interval (identical to startDepth for a constant-depth exposure).
func (t *Tracker) Update(startDepth, endDepth units.Depth, dt units.Time, g gas.Gas, surfacePressureMbar int) {
	if dt <= 0 {
		return
	}
	meanDepth := units.Depth((startDepth.Meters() + endDepth.Meters()) / 2)
	pp := g.InspiredPartialPressures(meanDepth, surfacePressureMbar)
	t.updateCNS(pp.O2, meanDepth, dt)
	t.updateOTU(pp.O2, dt)
}

func (t *Tracker) updateCNS(po2 float64, depth units.Depth, dt units.Time) {
	switch {
	case po2 > 1.6:
		t.CNS += dt.Minutes() * cnsOverLimitPercentPerMinute
	case po2 <= 0.5 && depth <= 0:
		// Elimination: CNS load decays toward zero with a 90-minute
		// half-time, but only once actually surfaced. A low pO2 gas at
		// depth leaves the existing load flat rather than eliminating it.
		t.CNS *= math.Exp2(-dt.Minutes() / cnsHalfTimeMinutes)
	case po2 <= 0.5:
		// no change: below the contribution threshold but still submerged
	default:
		if limit, ok := cnsTimeLimitMinutes(po2); ok && limit > 0 {
			t.CNS += 100 * dt.Minutes() / limit
		}
	}
	if t.CNS < 0 {
		t.CNS = 0
	}
}

func (t *Tracker) updateOTU(po2 float64, dt units.Time) {
	if po2 <= 0.5 {
		return
	}
	rate := math.Pow((po2-0.5)/0.5, 5.0/6.0)
	t.OTU += rate * dt.Minutes()
}
