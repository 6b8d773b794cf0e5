package deco

import (
	"testing"

	"github.com/deepwater-eng/buhlmann/pkg/gas"
	"github.com/deepwater-eng/buhlmann/pkg/units"
)

// fakeSim is a minimal Sim implementation for exercising the planner's
// state machine without the full tissue physics: its ceiling simply
// decays linearly with elapsed time at or below the surface, letting
// tests script exactly how many stops the planner should need.
type fakeSim struct {
	depth          units.Depth
	ceiling        units.Depth
	decayPerMinute units.Depth
}

func (f *fakeSim) Depth() units.Depth   { return f.depth }
func (f *fakeSim) Ceiling() units.Depth { return f.ceiling }

func (f *fakeSim) Record(depth units.Depth, dt units.Time, g gas.Gas) error {
	f.depth = depth
	f.decay(dt)
	return nil
}

func (f *fakeSim) RecordTravelWithRate(target units.Depth, rateMPerMin float64, g gas.Gas) error {
	delta := target.Meters() - f.depth.Meters()
	if delta < 0 {
		delta = -delta
	}
	dt := units.TimeFromMinutes(delta / rateMPerMin)
	f.depth = target
	f.decay(dt)
	return nil
}

func (f *fakeSim) decay(dt units.Time) {
	f.ceiling -= f.decayPerMinute * units.Depth(dt.Minutes())
	if f.ceiling < 0 {
		f.ceiling = 0
	}
}

func (f *fakeSim) Clone() Sim {
	clone := *f
	return &clone
}

func testOptions() Options {
	return DefaultOptions(10, 1013)
}

func TestPlanRejectsEmptyGasList(t *testing.T) {
	sim := &fakeSim{depth: 30}
	if _, err := Plan(sim, nil, gas.Air(), testOptions()); err != ErrEmptyGasList {
		t.Errorf("expected ErrEmptyGasList, got %v", err)
	}
}

func TestPlanRejectsGasNotInList(t *testing.T) {
	sim := &fakeSim{depth: 30}
	gases := []gas.Gas{gas.MustNew(0.32, 0)}
	if _, err := Plan(sim, gases, gas.Air(), testOptions()); err != ErrCurrentGasNotInList {
		t.Errorf("expected ErrCurrentGasNotInList, got %v", err)
	}
}

func TestPlanWithNoObligationAscendsDirectlyToSurface(t *testing.T) {
	sim := &fakeSim{depth: 18, ceiling: 0}
	gases := []gas.Gas{gas.Air()}
	plan, err := Plan(sim, gases, gas.Air(), testOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Stages) != 1 {
		t.Fatalf("expected exactly one stage, got %d: %+v", len(plan.Stages), plan.Stages)
	}
	stage := plan.Stages[0]
	if stage.Type != Ascent || stage.EndDepth != 0 {
		t.Errorf("expected a direct ascent to the surface, got %+v", stage)
	}
	if plan.TTS <= 0 {
		t.Errorf("expected positive TTS, got %v", plan.TTS)
	}
}

func TestPlanWithObligationProducesStopsBeforeSurfacing(t *testing.T) {
	sim := &fakeSim{depth: 30, ceiling: 9, decayPerMinute: 1}
	gases := []gas.Gas{gas.Air()}
	plan, err := Plan(sim, gases, gas.Air(), testOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Stages) == 0 {
		t.Fatal("expected at least one stage")
	}
	sawStop := false
	for _, s := range plan.Stages {
		if s.Type == DecoStop {
			sawStop = true
		}
	}
	if !sawStop {
		t.Errorf("expected at least one Stop stage, got %+v", plan.Stages)
	}
	last := plan.Stages[len(plan.Stages)-1]
	if last.EndDepth != 0 {
		t.Errorf("expected the plan to end at the surface, last stage = %+v", last)
	}
}

func TestPlanTTSPlus5ExceedsTTS(t *testing.T) {
	sim := &fakeSim{depth: 30, ceiling: 9, decayPerMinute: 1}
	gases := []gas.Gas{gas.Air()}
	plan, err := Plan(sim, gases, gas.Air(), testOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.TTSPlus5 <= plan.TTS {
		t.Errorf("expected TTSPlus5 (%v) > TTS (%v)", plan.TTSPlus5, plan.TTS)
	}
	if plan.TTSDelta != plan.TTSPlus5-plan.TTS {
		t.Errorf("TTSDelta = %v, want %v", plan.TTSDelta, plan.TTSPlus5-plan.TTS)
	}
}

func TestPlanSwitchesToRicherGasWhenAvailable(t *testing.T) {
	sim := &fakeSim{depth: 20, ceiling: 6, decayPerMinute: 2}
	gases := []gas.Gas{gas.Air(), gas.MustNew(0.5, 0)}
	plan, err := Plan(sim, gases, gas.Air(), testOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sawSwitch := false
	for _, s := range plan.Stages {
		if s.Type == GasSwitch && s.Gas.FO2 == 0.5 {
			sawSwitch = true
		}
	}
	if !sawSwitch {
		t.Errorf("expected a switch to EAN50, got %+v", plan.Stages)
	}
}

func TestNextSwitchGasPrefersHighestFO2TieBreakOnFHe(t *testing.T) {
	current := gas.Air()
	candidates := []gas.Gas{
		gas.MustNew(0.5, 0),
		gas.MustNew(0.5, 0.1),
		gas.MustNew(0.32, 0),
	}
	best, ok := nextSwitchGas(candidates, current, units.Depth(6), DefaultOptions(10, 1013))
	if !ok {
		t.Fatal("expected a switch candidate")
	}
	if best.FO2 != 0.5 || best.FHe != 0.1 {
		t.Errorf("expected the FO2=0.5/FHe=0.1 mix to win the tie-break, got %+v", best)
	}
}

func TestNextSwitchGasRejectsGasesBeyondMOD(t *testing.T) {
	current := gas.Air()
	candidates := []gas.Gas{gas.MustNew(1.0, 0)}
	_, ok := nextSwitchGas(candidates, current, units.Depth(30), DefaultOptions(10, 1013))
	if ok {
		t.Errorf("expected pure O2 at 30m to be rejected as beyond MOD")
	}
}

func TestMergeConsecutiveCollapsesSameTypeAndGas(t *testing.T) {
	stages := []Stage{
		{Type: Ascent, StartDepth: 30, EndDepth: 20, Duration: units.TimeFromMinutes(1), Gas: gas.Air()},
		{Type: Ascent, StartDepth: 20, EndDepth: 15, Duration: units.TimeFromMinutes(0.5), Gas: gas.Air()},
		{Type: DecoStop, StartDepth: 15, EndDepth: 15, Duration: units.TimeFromMinutes(3), Gas: gas.Air()},
	}
	merged := mergeConsecutive(stages)
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged stages, got %d: %+v", len(merged), merged)
	}
	if merged[0].EndDepth != 15 || merged[0].Duration != units.TimeFromMinutes(1.5) {
		t.Errorf("unexpected merged ascent stage: %+v", merged[0])
	}
}
