package oxtox

import (
	"math"
	"testing"

	"github.com/deepwater-eng/buhlmann/pkg/gas"
	"github.com/deepwater-eng/buhlmann/pkg/units"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestUpdateAccumulatesCNSAtModeratePO2(t *testing.T) {
	var tr Tracker
	ean32 := gas.MustNew(0.32, 0)
	tr.Update(units.Depth(36), units.Depth(36), units.TimeFromMinutes(20), ean32, 1013)
	if tr.CNS <= 0 {
		t.Errorf("expected positive CNS accumulation, got %v", tr.CNS)
	}
	if !almostEqual(tr.CNS, 15.0, 1.0) {
		t.Errorf("CNS = %v, want ~15", tr.CNS)
	}
}

func TestCNSEliminatesAtSurfaceLowPO2(t *testing.T) {
	var tr Tracker
	tr.CNS = 20
	air := gas.Air()
	tr.Update(units.Depth(0), units.Depth(0), units.TimeFromMinutes(90), air, 1013)
	if tr.CNS >= 20 {
		t.Errorf("expected CNS to decay, got %v", tr.CNS)
	}
	if !almostEqual(tr.CNS, 10, 1.0) {
		t.Errorf("CNS after one 90-minute half-time = %v, want ~10", tr.CNS)
	}
}

func TestCNSOverLimitAccumulatesLinearly(t *testing.T) {
	var tr Tracker
	pureO2 := gas.MustNew(1.0, 0)
	tr.Update(units.Depth(10), units.Depth(10), units.TimeFromMinutes(4), pureO2, 1013)
	// pO2 well above 1.6, rate = 100/400 %/min
	want := 4.0 * (100.0 / 400.0)
	if !almostEqual(tr.CNS, want, 0.5) {
		t.Errorf("CNS over-limit = %v, want ~%v", tr.CNS, want)
	}
}

func TestOTUAccumulatesAboveHalfBarPO2(t *testing.T) {
	var tr Tracker
	ean32 := gas.MustNew(0.32, 0)
	tr.Update(units.Depth(20), units.Depth(20), units.TimeFromMinutes(60), ean32, 1013)
	if tr.OTU <= 0 {
		t.Errorf("expected positive OTU accumulation, got %v", tr.OTU)
	}
}

func TestOTUDoesNotAccumulateBelowHalfBarPO2(t *testing.T) {
	var tr Tracker
	air := gas.Air()
	tr.Update(units.Depth(0), units.Depth(0), units.TimeFromMinutes(60), air, 1013)
	if tr.OTU != 0 {
		t.Errorf("expected no OTU accumulation at pO2<=0.5, got %v", tr.OTU)
	}
}

func TestUpdateNoOpAtZeroTime(t *testing.T) {
	var tr Tracker
	tr.Update(units.Depth(30), units.Depth(30), 0, gas.Air(), 1013)
	if tr.CNS != 0 || tr.OTU != 0 {
		t.Errorf("expected no change at dt=0, got CNS=%v OTU=%v", tr.CNS, tr.OTU)
	}
}
