// Package tissue implements the Bühlmann ZH-L16C tissue compartment model:
// per-compartment inert gas loading via the Haldane and Schreiner
// equations, M-value based ceilings, and gradient-factor supersaturation.
package tissue

import (
	"math"

	"github.com/deepwater-eng/buhlmann/pkg/gas"
	"github.com/deepwater-eng/buhlmann/pkg/units"
)

// Compartment tracks the inert gas tension (bar) of a single ZH-L16C tissue
// compartment for both nitrogen and helium.
type Compartment struct {
	No  int
	C   Coefficients
	PN2 float64
	PHe float64
}

// NewCompartment builds a compartment saturated with ambient inert gas at
// the given surface pressure, per air composition (79% N2, no He).
func NewCompartment(index int, surfacePressureMbar int) Compartment {
	inspiredN2 := (units.SurfacePressureBar(surfacePressureMbar) - units.AlveolarWaterVapourPressure) * 0.79
	if inspiredN2 < 0 {
		inspiredN2 = 0
	}
	return Compartment{
		No:  index + 1,
		C:   CoefficientsFor(index),
		PN2: inspiredN2,
		PHe: 0,
	}
}

// TotalTension is the sum of the nitrogen and helium tensions.
func (c *Compartment) TotalTension() float64 {
	return c.PN2 + c.PHe
}

// weightedAB returns the tension-weighted a and b Bühlmann coefficients,
// blending the nitrogen and helium coefficients in proportion to each
// gas's share of the total inert gas tension.
func (c *Compartment) weightedAB() (a, b float64) {
	p := c.TotalTension()
	if p <= 0 {
		return c.C.AN2, c.C.BN2
	}
	a = (c.C.AN2*c.PN2 + c.C.AHe*c.PHe) / p
	b = (c.C.BN2*c.PN2 + c.C.BHe*c.PHe) / p
	return a, b
}

// MValue returns the maximum tolerated inert gas tension (bar) at the
// given ambient pressure, with no gradient factor conservatism applied.
func (c *Compartment) MValue(ambientBar float64) float64 {
	a, b := c.weightedAB()
	return ambientBar/b + a
}

// AllowedTension returns the gradient-factor-adjusted tension limit at the
// given ambient pressure: the M-value scaled toward ambient by gf.
func (c *Compartment) AllowedTension(ambientBar, gf float64) float64 {
	m := c.MValue(ambientBar)
	return ambientBar + gf*(m-ambientBar)
}

// CeilingAmbientBar returns the absolute ambient pressure, in bar, below
// which this compartment's current tension would exceed its gf-adjusted
// M-value. This is the closed-form inverse of AllowedTension solved for
// the ambient pressure at which tension == AllowedTension(ambient, gf).
func (c *Compartment) CeilingAmbientBar(gf float64) float64 {
	a, b := c.weightedAB()
	p := c.TotalTension()
	denom := gf/b + 1 - gf
	if denom <= 0 {
		return 0
	}
	return (p - a*gf) / denom
}

// GF99 returns the percentage of the (non-gf-adjusted) M-value that the
// compartment's current tension represents at the given ambient pressure.
// 100 means the tension sits exactly on the raw M-value line.
func (c *Compartment) GF99(ambientBar float64) float64 {
	m := c.MValue(ambientBar)
	if m == ambientBar {
		return 0
	}
	return 100 * (c.TotalTension() - ambientBar) / (m - ambientBar)
}

// ApplyConstantDepth integrates dt seconds of exposure at a fixed depth
// breathing gas g, using the Haldane equation.
func (c *Compartment) ApplyConstantDepth(depth units.Depth, dt units.Time, g gas.Gas, surfacePressureMbar int) {
	if dt <= 0 {
		return
	}
	pp := g.InspiredPartialPressures(depth, surfacePressureMbar)
	dtMin := dt.Minutes()
	c.PN2 = haldane(c.PN2, pp.N2, c.C.HalfTimeN2, dtMin)
	c.PHe = haldane(c.PHe, pp.He, c.C.HalfTimeHe, dtMin)
}

// ApplySchreiner integrates dt seconds of exposure while depth changes
// linearly from startDepth to endDepth breathing gas g, using the
// Schreiner equation (the closed-form solution for a constant rate of
// ambient pressure change).
func (c *Compartment) ApplySchreiner(startDepth, endDepth units.Depth, dt units.Time, g gas.Gas, surfacePressureMbar int) {
	dtMin := dt.Minutes()
	if dtMin <= 0 {
		return
	}
	ppStart := g.InspiredPartialPressures(startDepth, surfacePressureMbar)
	ppEnd := g.InspiredPartialPressures(endDepth, surfacePressureMbar)
	rateN2 := (ppEnd.N2 - ppStart.N2) / dtMin
	rateHe := (ppEnd.He - ppStart.He) / dtMin
	c.PN2 = schreiner(ppStart.N2, rateN2, c.PN2, dtMin, c.C.HalfTimeN2)
	c.PHe = schreiner(ppStart.He, rateHe, c.PHe, dtMin, c.C.HalfTimeHe)
}

// haldane applies the Haldane equation for a fixed inspired pressure held
// for dtMin minutes: exponential approach of the tissue tension toward the
// inspired pressure at a rate set by the compartment half-time.
func haldane(tension, inspired, halfTimeMin, dtMin float64) float64 {
	return tension + (inspired-tension)*(1-math.Exp2(-dtMin/halfTimeMin))
}

// schreiner applies the Schreiner equation: the closed-form tissue tension
// after dtMin minutes during which the inspired pressure changes linearly
// at `rate` bar/min starting from `inspiredStart`.
func schreiner(inspiredStart, rate, tension, dtMin, halfTimeMin float64) float64 {
	k := math.Ln2 / halfTimeMin
	return inspiredStart + rate*(dtMin-1/k) - (inspiredStart-tension-rate/k)*math.Exp(-k*dtMin)
}
