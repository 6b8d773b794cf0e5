package deco

import (
	"github.com/deepwater-eng/buhlmann/pkg/gas"
	"github.com/deepwater-eng/buhlmann/pkg/units"
)

// Sim is the minimal tissue-loading simulation surface the planner needs.
// It is satisfied by an adapter over the top-level Model, kept as a
// separate interface here so this package never imports the root package
// (which itself imports this one to expose Model.Deco).
type Sim interface {
	Depth() units.Depth
	Ceiling() units.Depth
	Record(depth units.Depth, dt units.Time, g gas.Gas) error
	RecordTravelWithRate(target units.Depth, rateMPerMin float64, g gas.Gas) error
	Clone() Sim
}
