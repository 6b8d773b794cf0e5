// Package deco implements the decompression stop planner: given a tissue
// loading simulation and a set of candidate breathing gases, it produces
// an ordered list of ascent and stop stages that gets a diver to the
// surface without exceeding any compartment's M-value.
package deco

import (
	"github.com/deepwater-eng/buhlmann/pkg/gas"
	"github.com/deepwater-eng/buhlmann/pkg/units"
)

// StageType identifies the kind of decompression action a Stage
// represents: exactly the three kinds spec.md §3's DecoStage data model
// names. It deliberately does not distinguish why an ascent stopped
// where it did (ceiling vs. an upcoming gas switch depth) — that
// reasoning is a planning-internal detail, tracked separately by
// action, and never surfaces on the public Stage.
type StageType int

const (
	// Ascent is a continuous ascent at the configured ascent rate.
	Ascent StageType = iota
	// DecoStop is a period spent at a fixed depth waiting for the
	// ceiling to clear before continuing the ascent.
	DecoStop
	// GasSwitch marks an instantaneous change of breathing gas at a
	// fixed depth.
	GasSwitch
)

func (s StageType) String() string {
	switch s {
	case Ascent:
		return "ascent"
	case DecoStop:
		return "deco_stop"
	case GasSwitch:
		return "gas_switch"
	default:
		return "unknown"
	}
}

// action is planCore's internal reasoning for a stage, kept distinct
// from the public StageType the same way the original's DecoAction
// (deco.rs) is collapsed onto the coarser public DecoStageType by
// register_deco_stage: AscentToCeil and AscentToGasSwitchDepth both
// report as Ascent, and stop reports as DecoStop.
type action int

const (
	actionAscentToCeil action = iota
	actionAscentToGasSwitchDepth
	actionSwitchGas
	actionStop
)

func (a action) stageType() StageType {
	switch a {
	case actionSwitchGas:
		return GasSwitch
	case actionStop:
		return DecoStop
	default:
		return Ascent
	}
}

// Stage is one entry in a decompression plan.
type Stage struct {
	Type       StageType
	StartDepth units.Depth
	EndDepth   units.Depth
	Duration   units.Time
	Gas        gas.Gas
}

// PlanResult is the outcome of a decompression planning run: an ordered set of
// stages plus summary timing figures.
type PlanResult struct {
	Stages []Stage
	// TTS is the total time to surface from the model's starting state.
	TTS units.Time
	// TTSPlus5 is the time to surface of a plan recomputed after the diver
	// spends 5 more minutes at the current depth and gas; the 5 minutes
	// themselves are not included.
	TTSPlus5 units.Time
	// TTSDelta is TTSPlus5 - TTS: the cost, in seconds, of staying 5
	// more minutes at depth.
	TTSDelta units.Time
}

// Options configures a planning run.
type Options struct {
	AscentRateMPerMin   float64
	SurfacePressureMbar int
	SwitchPPO2Limit     float64
	CeilingWindow       float64
	MaxEndDepth         units.Depth
	// StopStepSeconds is the granularity at which waitAtStop advances the
	// clock while holding a stop, in seconds. Must be positive; defaults
	// to 1s, matching spec.md §4.4 step 5's "1-second (or configurable)
	// increments".
	StopStepSeconds float64
}

// DefaultOptions returns the reference planner tuning: a 1.6 bar switch
// pO2 limit, a 3m stop window, a MaxEndDepth of 30m, and 1-second
// stop-advance granularity. Gas selection does not consult MaxEndDepth;
// it filters candidates by pO2 and maximum operating depth only.
func DefaultOptions(ascentRateMPerMin float64, surfacePressureMbar int) Options {
	return Options{
		AscentRateMPerMin:   ascentRateMPerMin,
		SurfacePressureMbar: surfacePressureMbar,
		SwitchPPO2Limit:     1.6,
		CeilingWindow:       3,
		MaxEndDepth:         30,
		StopStepSeconds:     1,
	}
}
