package tissue

import (
	"math"
	"testing"

	"github.com/deepwater-eng/buhlmann/pkg/gas"
	"github.com/deepwater-eng/buhlmann/pkg/units"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestNewSetIsSaturatedWithAmbientAir(t *testing.T) {
	s := NewSet(1013)
	for i := range s {
		if s[i].PHe != 0 {
			t.Errorf("compartment %d: PHe = %v, want 0", i, s[i].PHe)
		}
		if s[i].PN2 <= 0 {
			t.Errorf("compartment %d: PN2 = %v, want > 0", i, s[i].PN2)
		}
	}
}

func TestHaldaneApproachesInspiredPressure(t *testing.T) {
	s := NewSet(1013)
	air := gas.Air()
	for i := 0; i < 1000; i++ {
		s.ApplyConstantDepth(units.Depth(30), units.TimeFromMinutes(60), air, 1013)
	}
	inspired := air.InspiredPartialPressures(units.Depth(30), 1013)
	fastest := s[0]
	if !almostEqual(fastest.PN2, inspired.N2, 1e-3) {
		t.Errorf("after long saturation PN2 = %v, want ~%v", fastest.PN2, inspired.N2)
	}
}

func TestApplyConstantDepthNoOpAtZeroTime(t *testing.T) {
	s := NewSet(1013)
	before := s
	s.ApplyConstantDepth(units.Depth(30), 0, gas.Air(), 1013)
	if s != before {
		t.Errorf("expected no change at dt=0")
	}
}

func TestSchreinerMatchesHaldaneAtZeroRate(t *testing.T) {
	// A Schreiner segment with no depth change should behave like the
	// Haldane equation at constant depth.
	sHaldane := NewSet(1013)
	sSchreiner := NewSet(1013)

	air := gas.Air()
	dt := units.TimeFromMinutes(10)
	sHaldane.ApplyConstantDepth(units.Depth(20), dt, air, 1013)
	sSchreiner.ApplySchreiner(units.Depth(20), units.Depth(20), dt, air, 1013)

	for i := range sHaldane {
		if !almostEqual(sHaldane[i].PN2, sSchreiner[i].PN2, 1e-9) {
			t.Errorf("compartment %d: haldane PN2=%v schreiner PN2=%v", i, sHaldane[i].PN2, sSchreiner[i].PN2)
		}
	}
}

func TestCeilingIsZeroAtSurfaceSaturation(t *testing.T) {
	s := NewSet(1013)
	c := s.CeilingAtGF(1.0, 1013)
	if c != 0 {
		t.Errorf("ceiling of a surface-saturated set = %v, want 0", c)
	}
}

func TestCeilingRisesAfterDeepExposure(t *testing.T) {
	s := NewSet(1013)
	air := gas.Air()
	s.ApplyConstantDepth(units.Depth(40), units.TimeFromMinutes(30), air, 1013)
	c := s.CeilingAtGF(1.0, 1013)
	if c <= 0 {
		t.Errorf("expected a positive ceiling after a 40m/30min exposure, got %v", c)
	}
}

func TestSupersaturationIsZeroWhenSaturated(t *testing.T) {
	s := NewSet(1013)
	ss := s.SupersaturationAt(0, 1013)
	if !almostEqual(ss.GFSurf, 0, 1e-6) {
		t.Errorf("GFSurf at rest = %v, want ~0", ss.GFSurf)
	}
}

func TestLeadingIndexMatchesHighestCeilingCompartment(t *testing.T) {
	s := NewSet(1013)
	air := gas.Air()
	s.ApplyConstantDepth(units.Depth(40), units.TimeFromMinutes(20), air, 1013)
	leading := s.LeadingIndex(1.0)
	best := s[leading].CeilingAmbientBar(1.0)
	for i := range s {
		if amb := s[i].CeilingAmbientBar(1.0); amb > best {
			t.Errorf("compartment %d has a higher ceiling ambient (%v) than the reported leading compartment %d (%v)", i, amb, leading, best)
		}
	}
}
