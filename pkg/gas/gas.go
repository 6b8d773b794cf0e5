// Package gas models breathing gas mixtures used during a dive: their
// fractions, the partial pressures they produce at depth, and the depth
// limits they impose (maximum operating depth, equivalent narcotic depth).
package gas

import (
	"errors"
	"fmt"

	"github.com/deepwater-eng/buhlmann/pkg/units"
)

// ErrInvalidFraction is returned when a gas fraction falls outside [0, 1].
var ErrInvalidFraction = errors.New("gas: fraction out of range")

// ErrFractionsExceedOne is returned when fO2 + fHe would leave a negative
// nitrogen fraction.
var ErrFractionsExceedOne = errors.New("gas: fO2 + fHe exceeds 1.0")

// PartialPressures holds the partial pressure, in bar, of each gas
// component at some ambient pressure.
type PartialPressures struct {
	O2 float64
	N2 float64
	He float64
}

// Sum returns the total of the three partial pressures.
func (p PartialPressures) Sum() float64 {
	return p.O2 + p.N2 + p.He
}

// Gas is a breathing gas mixture, defined by its oxygen and helium
// fractions. The nitrogen fraction is always derived as 1 - fO2 - fHe.
type Gas struct {
	FO2 float64
	FHe float64
	FN2 float64
}

// New constructs a Gas from oxygen and helium fractions, deriving the
// nitrogen fraction and validating that all three fall within [0, 1].
func New(fO2, fHe float64) (Gas, error) {
	if fO2 < 0 || fO2 > 1 {
		return Gas{}, fmt.Errorf("%w: fO2=%v", ErrInvalidFraction, fO2)
	}
	if fHe < 0 || fHe > 1 {
		return Gas{}, fmt.Errorf("%w: fHe=%v", ErrInvalidFraction, fHe)
	}
	fN2 := 1 - fO2 - fHe
	if fN2 < -1e-9 {
		return Gas{}, fmt.Errorf("%w: fO2=%v fHe=%v", ErrFractionsExceedOne, fO2, fHe)
	}
	if fN2 < 0 {
		fN2 = 0
	}
	return Gas{FO2: fO2, FHe: fHe, FN2: fN2}, nil
}

// MustNew is like New but panics on error. Intended for gas constants
// defined at package scope, never for values derived from user input.
func MustNew(fO2, fHe float64) Gas {
	g, err := New(fO2, fHe)
	if err != nil {
		panic(err)
	}
	return g
}

// Air is the standard breathing gas: 21% oxygen, 79% nitrogen.
func Air() Gas {
	return MustNew(0.21, 0)
}

// PartialPressures returns the partial pressure of each component at the
// given depth and surface pressure, without correcting for water vapour.
func (g Gas) PartialPressures(depth units.Depth, surfacePressureMbar int) PartialPressures {
	ambient := units.AmbientPressureBar(depth, surfacePressureMbar)
	return PartialPressures{
		O2: ambient * g.FO2,
		N2: ambient * g.FN2,
		He: ambient * g.FHe,
	}
}

// InspiredPartialPressures is like PartialPressures but first subtracts the
// alveolar water vapour pressure from the ambient pressure, matching what a
// diver's lungs actually see.
func (g Gas) InspiredPartialPressures(depth units.Depth, surfacePressureMbar int) PartialPressures {
	ambient := units.AmbientPressureBar(depth, surfacePressureMbar) - units.AlveolarWaterVapourPressure
	if ambient < 0 {
		ambient = 0
	}
	return PartialPressures{
		O2: ambient * g.FO2,
		N2: ambient * g.FN2,
		He: ambient * g.FHe,
	}
}

// MaximumOperatingDepth returns the deepest depth at which this gas's
// oxygen partial pressure stays at or below ppO2Limit, for a given surface
// pressure.
func (g Gas) MaximumOperatingDepth(ppO2Limit float64, surfacePressureMbar int) units.Depth {
	if g.FO2 <= 0 {
		return 0
	}
	ambient := ppO2Limit / g.FO2
	return units.DepthFromAmbientPressureBar(ambient, surfacePressureMbar)
}

// EquivalentNarcoticDepth returns the depth at which breathing air would
// produce the same narcotic partial pressure (O2 + N2) that this gas
// produces at the given depth. Helium is treated as non-narcotic. The
// result is never negative.
func (g Gas) EquivalentNarcoticDepth(depth units.Depth, surfacePressureMbar int) units.Depth {
	surfaceBar := units.SurfacePressureBar(surfacePressureMbar)
	ambient := surfaceBar + depth.Meters()/units.MswPerBar
	airAmbient := ambient * (1 - g.FHe)
	end := (airAmbient - surfaceBar) * units.MswPerBar
	if end < 0 {
		end = 0
	}
	return units.Depth(end)
}

func (g Gas) String() string {
	if g.FHe > 0 {
		return fmt.Sprintf("Tx%.0f/%.0f", g.FO2*100, g.FHe*100)
	}
	if g.FO2 == 0.21 {
		return "Air"
	}
	return fmt.Sprintf("EAN%.0f", g.FO2*100)
}
