package buhlmann

import (
	"testing"

	"github.com/deepwater-eng/buhlmann/pkg/gas"
	"github.com/deepwater-eng/buhlmann/pkg/units"
)

// Tolerances mirror the literal scenario table: depths within 0.05 m,
// durations within 2 s, percentages within 0.1.
const (
	depthTol   = 0.05
	timeTolSec = 2.0
	pctTol     = 0.1
)

func closeTo(got, want, tol float64) bool {
	d := got - want
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func TestScenarioS1FreshModelNoObligation(t *testing.T) {
	m, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ean32 := gas.MustNew(0.32, 0)
	if err := m.Record(units.Depth(20), units.TimeFromMinutes(20), ean32); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if got := m.Ceiling().Meters(); !closeTo(got, 0.0, depthTol) {
		t.Errorf("S1 ceiling() = %v, want 0.0", got)
	}
}

func TestScenarioS2CeilingAfterDeeperExtension(t *testing.T) {
	m, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ean32 := gas.MustNew(0.32, 0)
	if err := m.Record(units.Depth(20), units.TimeFromMinutes(20), ean32); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := m.Record(units.Depth(30), units.TimeFromMinutes(42), ean32); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if got := m.Ceiling().Meters(); !closeTo(got, 3.00, depthTol) {
		t.Errorf("S2 ceiling() = %v, want 3.00", got)
	}
}

func TestScenarioS3Supersaturation(t *testing.T) {
	m, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.Record(units.Depth(40), units.Time(120), gas.Air()); err != nil {
		t.Fatalf("Record: %v", err)
	}
	ss := m.Supersaturation()
	if !closeTo(ss.GF99, 0.0, pctTol) {
		t.Errorf("S3 gf_99 = %v, want ~0.0", ss.GF99)
	}
	if !closeTo(ss.GFSurf, 71.1, pctTol) {
		t.Errorf("S3 gf_surf = %v, want ~71.1", ss.GFSurf)
	}
}

func TestScenarioS4ActualNDL(t *testing.T) {
	m, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.Record(units.Depth(30), units.TimeFromMinutes(10), gas.Air()); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if got := m.NDL().Minutes(); got != 5 {
		t.Errorf("S4 ndl() = %v, want 5", got)
	}
}

func TestScenarioS4aAdaptiveNDL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CeilingType = CeilingAdaptive
	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.Record(units.Depth(30), units.TimeFromMinutes(10), gas.Air()); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if got := m.NDL().Minutes(); got != 9 {
		t.Errorf("S4a ndl() = %v, want 9", got)
	}
}

func TestScenarioS5DecoPlan(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GF = GradientFactors{Low: 30, High: 70}
	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	air := gas.Air()
	ean50 := gas.MustNew(0.50, 0)
	o2 := gas.MustNew(1.0, 0)

	if err := m.RecordTravelWithRate(units.Depth(40), 9, air); err != nil {
		t.Fatalf("RecordTravelWithRate: %v", err)
	}
	if err := m.Record(units.Depth(40), units.TimeFromMinutes(20), air); err != nil {
		t.Fatalf("Record: %v", err)
	}

	plan, err := m.Deco([]gas.Gas{air, ean50, o2})
	if err != nil {
		t.Fatalf("Deco: %v", err)
	}

	if gotMin := plan.TTS.Minutes(); gotMin < 15.5 || gotMin > 16.5 {
		t.Errorf("S5 tts = %v minutes, want ~16", gotMin)
	}

	wantStages := []struct {
		typ      DecoStageType
		endDepth float64
		gasFO2   float64
		hasDur   bool
		durSec   float64
	}{
		{Ascent, 22, 0.21, false, 0},
		{GasSwitch, 22, 0.50, false, 0},
		{Ascent, 6, 0.50, false, 0},
		{GasSwitch, 6, 1.0, false, 0},
		{DecoStop, 6, 1.0, true, 410},
		{Ascent, 3, 1.0, false, 0},
		{DecoStop, 3, 1.0, true, 226},
		{Ascent, 0, 1.0, false, 0},
	}

	if len(plan.Stages) != len(wantStages) {
		t.Fatalf("S5 stage count = %d, want %d: %+v", len(plan.Stages), len(wantStages), plan.Stages)
	}
	for i, want := range wantStages {
		got := plan.Stages[i]
		if got.Type != want.typ {
			t.Errorf("S5 stage %d type = %v, want %v", i, got.Type, want.typ)
		}
		if !closeTo(got.EndDepth.Meters(), want.endDepth, depthTol) {
			t.Errorf("S5 stage %d end depth = %v, want %v", i, got.EndDepth.Meters(), want.endDepth)
		}
		if !closeTo(got.Gas.FO2, want.gasFO2, 0.001) {
			t.Errorf("S5 stage %d gas FO2 = %v, want %v", i, got.Gas.FO2, want.gasFO2)
		}
		if want.hasDur && !closeTo(got.Duration.Seconds(), want.durSec, timeTolSec) {
			t.Errorf("S5 stage %d duration = %v, want %v", i, got.Duration.Seconds(), want.durSec)
		}
	}
}

func TestScenarioS6TTSPlus5AndDelta(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GF = GradientFactors{Low: 30, High: 70}
	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	air := gas.Air()
	ean50 := gas.MustNew(0.50, 0)
	o2 := gas.MustNew(1.0, 0)

	if err := m.RecordTravelWithRate(units.Depth(40), 9, air); err != nil {
		t.Fatalf("RecordTravelWithRate: %v", err)
	}
	if err := m.Record(units.Depth(40), units.TimeFromMinutes(20), air); err != nil {
		t.Fatalf("Record: %v", err)
	}

	plan, err := m.Deco([]gas.Gas{air, ean50, o2})
	if err != nil {
		t.Fatalf("Deco: %v", err)
	}

	if gotMin := plan.TTSPlus5.Minutes(); gotMin < 19.5 || gotMin > 20.5 {
		t.Errorf("S6 tts_at_5 = %v minutes, want ~20", gotMin)
	}
	if gotMin := plan.TTSDelta.Minutes(); gotMin < 3.5 || gotMin > 4.5 {
		t.Errorf("S6 tts_delta_at_5 = %v minutes, want ~+4", gotMin)
	}
}
