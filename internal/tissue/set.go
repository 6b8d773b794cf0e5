package tissue

import (
	"github.com/deepwater-eng/buhlmann/pkg/gas"
	"github.com/deepwater-eng/buhlmann/pkg/units"
)

// Set is the full bank of 16 ZH-L16C tissue compartments.
type Set [NumCompartments]Compartment

// NewSet builds a Set saturated with ambient air at the given surface
// pressure, matching the state of a diver who has been breathing surface
// air indefinitely before the dive begins.
func NewSet(surfacePressureMbar int) Set {
	var s Set
	for i := range s {
		s[i] = NewCompartment(i, surfacePressureMbar)
	}
	return s
}

// ApplyConstantDepth integrates dt seconds of exposure at a fixed depth
// across every compartment.
func (s *Set) ApplyConstantDepth(depth units.Depth, dt units.Time, g gas.Gas, surfacePressureMbar int) {
	for i := range s {
		s[i].ApplyConstantDepth(depth, dt, g, surfacePressureMbar)
	}
}

// ApplySchreiner integrates dt seconds of a linear depth change across
// every compartment.
func (s *Set) ApplySchreiner(startDepth, endDepth units.Depth, dt units.Time, g gas.Gas, surfacePressureMbar int) {
	for i := range s {
		s[i].ApplySchreiner(startDepth, endDepth, dt, g, surfacePressureMbar)
	}
}

// CeilingAmbientBarAtGF returns the highest (most restrictive) ceiling
// ambient pressure across all compartments at a fixed gradient factor.
func (s *Set) CeilingAmbientBarAtGF(gf float64) float64 {
	max := s[0].CeilingAmbientBar(gf)
	for i := 1; i < len(s); i++ {
		if amb := s[i].CeilingAmbientBar(gf); amb > max {
			max = amb
		}
	}
	return max
}

// CeilingAtGF returns the ceiling depth across all compartments at a fixed
// gradient factor.
func (s *Set) CeilingAtGF(gf float64, surfacePressureMbar int) units.Depth {
	return units.DepthFromAmbientPressureBar(s.CeilingAmbientBarAtGF(gf), surfacePressureMbar)
}

// LeadingIndex returns the index of the compartment with the highest
// (most restrictive) ceiling ambient pressure at the given gradient
// factor: the "leading" compartment that governs decompression.
func (s *Set) LeadingIndex(gf float64) int {
	leading := 0
	best := s[0].CeilingAmbientBar(gf)
	for i := 1; i < len(s); i++ {
		if amb := s[i].CeilingAmbientBar(gf); amb > best {
			best = amb
			leading = i
		}
	}
	return leading
}

// Supersaturation is the maximum GF99 and GF-surface values across all
// compartments, at some depth and at the surface respectively, floored
// at zero.
type Supersaturation struct {
	GF99   float64
	GFSurf float64
}

// SupersaturationAt returns the worst-case (maximum) supersaturation
// across all compartments, evaluated at the given depth (for GF99) and at
// the surface (for GFSurf). A value is reported as 0 when every
// compartment is undersaturated there (all GF99 values negative).
func (s *Set) SupersaturationAt(depth units.Depth, surfacePressureMbar int) Supersaturation {
	ambient := units.AmbientPressureBar(depth, surfacePressureMbar)
	surfaceBar := units.SurfacePressureBar(surfacePressureMbar)
	var out Supersaturation
	for i := range s {
		if v := s[i].GF99(ambient); v > out.GF99 {
			out.GF99 = v
		}
		if v := s[i].GF99(surfaceBar); v > out.GFSurf {
			out.GFSurf = v
		}
	}
	return out
}
