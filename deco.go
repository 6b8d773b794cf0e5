package buhlmann

import (
	"github.com/deepwater-eng/buhlmann/internal/deco"
	"github.com/deepwater-eng/buhlmann/pkg/gas"
	"github.com/deepwater-eng/buhlmann/pkg/units"
)

// DecoStageType re-exports the planner's stage classification so callers
// never need to import the internal package directly.
type DecoStageType = deco.StageType

// Re-exported stage type constants.
const (
	Ascent    = deco.Ascent
	DecoStop  = deco.DecoStop
	GasSwitch = deco.GasSwitch
)

// DecoStage is one entry in a decompression plan.
type DecoStage = deco.Stage

// DecoPlan is the outcome of a decompression planning run.
type DecoPlan = deco.PlanResult

// ErrEmptyGasList and ErrCurrentGasNotInList are re-exported planner
// sentinel errors.
var (
	ErrEmptyGasList        = deco.ErrEmptyGasList
	ErrCurrentGasNotInList = deco.ErrCurrentGasNotInList
)

// modelSim adapts *Model to the deco package's Sim interface, so the
// planner can drive a forward simulation without internal/deco importing
// this package (which would create an import cycle, since this package
// imports internal/deco).
type modelSim struct {
	m *Model
}

func (s modelSim) Depth() units.Depth   { return s.m.Depth() }
func (s modelSim) Ceiling() units.Depth { return s.m.Ceiling() }

func (s modelSim) Record(depth units.Depth, dt units.Time, g gas.Gas) error {
	return s.m.Record(depth, dt, g)
}

func (s modelSim) RecordTravelWithRate(target units.Depth, rateMPerMin float64, g gas.Gas) error {
	return s.m.RecordTravelWithRate(target, rateMPerMin, g)
}

func (s modelSim) Clone() deco.Sim {
	return modelSim{s.m.Clone()}
}

// Deco plans a decompression ascent from the model's current state and
// its current breathing gas (the gas last passed to Record or
// RecordTravel), choosing among the given candidate gases. The model
// itself is never mutated; planning runs on an internal clone.
func (m *Model) Deco(gases []gas.Gas) (*DecoPlan, error) {
	opts := deco.DefaultOptions(m.cfg.DecoAscentRateMPerMin, m.cfg.SurfacePressureMbar)
	opts.CeilingWindow = m.cfg.DecoStopWindowM
	sim := modelSim{m.Clone()}
	return deco.Plan(sim, gases, m.gas, opts)
}
