package buhlmann

import (
	"github.com/deepwater-eng/buhlmann/pkg/units"
)

// MaxNDLMinutes is the ceiling the NDL search never exceeds: past this
// point a dive is considered "unlimited" for practical purposes.
const MaxNDLMinutes = 99

// NDL returns the no-decompression limit at the model's current depth,
// breathing its current gas (the gas last passed to Record or
// RecordTravel): the number of additional whole minutes the diver could
// remain at this depth before incurring a decompression obligation. The
// search runs on a clone and never mutates the receiver. The result is
// capped at MaxNDLMinutes.
//
// With Config.CeilingType == CeilingActual, the limit is the last minute
// at which the bottom-depth ceiling is still zero. With CeilingAdaptive,
// the limit instead accounts for a simulated direct ascent to the
// surface at the configured deco ascent rate: if that ascent would cross
// any compartment's M-value at an intermediate depth, the limit is
// reached even though the bottom-depth ceiling is still zero. Ceiling()
// itself is unaffected by this switch either way (spec.md §4.1).
func (m *Model) NDL() units.Time {
	g := m.gas
	sim := m.Clone()
	for minute := 1; minute <= MaxNDLMinutes; minute++ {
		sim.Record(sim.depth, units.TimeFromMinutes(1), g)

		var obligated bool
		if m.cfg.CeilingType == CeilingAdaptive {
			// Only a real, simulated ascent crossing counts: the raw
			// Actual ceiling formula can flag an obligation slightly
			// before a stepped ascent simulation would actually show
			// tension exceeding the M-value, since tissues continue to
			// off-gas while ascending.
			obligated = ascentCrossesCeiling(sim, m.cfg.DecoAscentRateMPerMin)
		} else {
			obligated = sim.InDeco()
		}

		if obligated {
			return units.TimeFromMinutes(float64(minute - 1))
		}
	}
	return units.TimeFromMinutes(MaxNDLMinutes)
}

// ascentCrossesCeiling simulates a direct ascent to the surface from the
// model's current depth, breathing its current gas, at the given rate, and
// reports whether the diver's tissue tension would exceed its (Actual,
// unrounded) gradient-factor-adjusted M-value at any intermediate depth. It
// always uses Actual ceiling semantics internally, regardless of the
// model's own configuration, to avoid recursively invoking adaptive NDL
// logic.
func ascentCrossesCeiling(m *Model, ascentRateMPerMin float64) bool {
	if m.depth <= 0 {
		return false
	}
	g := m.gas
	sim := m.Clone()
	sim.cfg.CeilingType = CeilingActual
	sim.cfg.RoundCeiling = false

	const stepSeconds = 6.0
	totalSeconds := sim.depth.Meters() / ascentRateMPerMin * 60
	steps := int(totalSeconds/stepSeconds) + 1
	stepTime := units.Time(totalSeconds / float64(steps))
	startMeters := sim.depth.Meters()

	for i := 1; i <= steps; i++ {
		frac := float64(i) / float64(steps)
		target := units.Depth(startMeters * (1 - frac))
		if target < 0 {
			target = 0
		}
		sim.RecordTravel(target, stepTime, g)
		if sim.Ceiling() > target {
			return true
		}
	}
	return false
}
