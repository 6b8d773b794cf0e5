package gas

import (
	"errors"
	"math"
	"testing"

	"github.com/deepwater-eng/buhlmann/pkg/units"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestNewValidatesFractions(t *testing.T) {
	if _, err := New(-0.1, 0); !errors.Is(err, ErrInvalidFraction) {
		t.Errorf("expected ErrInvalidFraction, got %v", err)
	}
	if _, err := New(0.5, 0.6); !errors.Is(err, ErrFractionsExceedOne) {
		t.Errorf("expected ErrFractionsExceedOne, got %v", err)
	}
	g, err := New(0.21, 0.35)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(g.FN2, 0.44, 1e-9) {
		t.Errorf("FN2 = %v, want 0.44", g.FN2)
	}
}

func TestAirComposition(t *testing.T) {
	a := Air()
	if a.FO2 != 0.21 || a.FHe != 0 || !almostEqual(a.FN2, 0.79, 1e-9) {
		t.Errorf("Air() = %+v", a)
	}
}

func TestPartialPressuresAtDepth(t *testing.T) {
	a := Air()
	pp := a.PartialPressures(units.Depth(30), 1000)
	// ambient = 1.0 + 3.0 = 4.0 bar
	if !almostEqual(pp.O2, 0.84, 1e-9) {
		t.Errorf("O2 = %v, want 0.84", pp.O2)
	}
	if !almostEqual(pp.N2, 3.16, 1e-9) {
		t.Errorf("N2 = %v, want 3.16", pp.N2)
	}
}

func TestInspiredPartialPressuresSubtractsWaterVapour(t *testing.T) {
	a := Air()
	pp := a.PartialPressures(units.Depth(0), 1000)
	ipp := a.InspiredPartialPressures(units.Depth(0), 1000)
	if ipp.Sum() >= pp.Sum() {
		t.Errorf("inspired sum %v should be less than ambient sum %v", ipp.Sum(), pp.Sum())
	}
}

func TestMaximumOperatingDepth(t *testing.T) {
	ean32 := MustNew(0.32, 0)
	mod := ean32.MaximumOperatingDepth(1.4, 1013)
	// ambient = 1.4/0.32 = 4.375 bar; depth = (4.375-1.013)*10 = 33.62m
	if !almostEqual(mod.Meters(), 33.62, 0.01) {
		t.Errorf("MOD = %v, want ~33.62m", mod.Meters())
	}
}

func TestEquivalentNarcoticDepthForTrimix(t *testing.T) {
	tx := MustNew(0.18, 0.45)
	end := tx.EquivalentNarcoticDepth(units.Depth(60), 1013)
	if end.Meters() >= 60 {
		t.Errorf("END %v should be shallower than actual depth 60m", end.Meters())
	}
}

func TestEquivalentNarcoticDepthForAirEqualsActualDepth(t *testing.T) {
	a := Air()
	end := a.EquivalentNarcoticDepth(units.Depth(40), 1013)
	if !almostEqual(end.Meters(), 40, 1e-6) {
		t.Errorf("END for air = %v, want 40", end.Meters())
	}
}

func TestStringFormatting(t *testing.T) {
	if Air().String() != "Air" {
		t.Errorf("Air().String() = %q", Air().String())
	}
	if MustNew(0.32, 0).String() != "EAN32" {
		t.Errorf("EAN32 string = %q", MustNew(0.32, 0).String())
	}
	if MustNew(0.18, 0.45).String() != "Tx18/45" {
		t.Errorf("Tx string = %q", MustNew(0.18, 0.45).String())
	}
}
