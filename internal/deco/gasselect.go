package deco

import (
	"github.com/deepwater-eng/buhlmann/pkg/gas"
	"github.com/deepwater-eng/buhlmann/pkg/units"
)

func sameGas(a, b gas.Gas) bool {
	return a.FO2 == b.FO2 && a.FHe == b.FHe
}

func containsGas(gases []gas.Gas, g gas.Gas) bool {
	for _, candidate := range gases {
		if sameGas(candidate, g) {
			return true
		}
	}
	return false
}

// nextSwitchGas picks the best breathing gas to switch to at the given
// depth, among candidates that are richer in oxygen than current, whose
// oxygen partial pressure at depth does not exceed the switch limit, and
// whose maximum operating depth is at or below depth. "Best" is the
// highest fO2, tie-broken by the highest fHe.
func nextSwitchGas(gases []gas.Gas, current gas.Gas, depth units.Depth, opts Options) (gas.Gas, bool) {
	var best gas.Gas
	found := false

	for _, candidate := range gases {
		if sameGas(candidate, current) {
			continue
		}
		if candidate.FO2 <= current.FO2 {
			continue
		}
		pp := candidate.PartialPressures(depth, opts.SurfacePressureMbar)
		if pp.O2 > opts.SwitchPPO2Limit {
			continue
		}
		mod := candidate.MaximumOperatingDepth(opts.SwitchPPO2Limit, opts.SurfacePressureMbar)
		if mod < depth {
			continue
		}
		if !found {
			best, found = candidate, true
			continue
		}
		if candidate.FO2 > best.FO2 || (candidate.FO2 == best.FO2 && candidate.FHe > best.FHe) {
			best = candidate
		}
	}
	return best, found
}
