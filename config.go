// Package buhlmann implements a Bühlmann ZH-L16C decompression model with
// gradient factors: tissue loading, ceilings, no-decompression limits,
// oxygen toxicity tracking, and decompression stop planning.
package buhlmann

import (
	"fmt"

	"go.uber.org/multierr"
)

// CeilingType is the single conservatism switch spec.md defines. It
// selects how NDL() searches for the no-decompression limit (spec.md
// §4.1/§4.5); Ceiling() is computed the same way under either value —
// there is exactly one enumerated knob, not two.
type CeilingType int

const (
	// CeilingActual reports the ceiling implied by the leading
	// compartment's current tension, with no forward simulation. NDL()
	// under CeilingActual stops the search the instant Ceiling() becomes
	// positive at the current, bottom depth.
	CeilingActual CeilingType = iota
	// CeilingAdaptive leaves Ceiling() itself unaffected (spec.md §4.1:
	// "This alters NDL but not reported ceiling()") but changes NDL()'s
	// search: the limit is reached only when a simulated direct ascent to
	// the surface, at the configured deco ascent rate, would cross any
	// compartment's gradient-factor-adjusted M-value at some intermediate
	// depth, even if the bottom-depth ceiling is still zero.
	CeilingAdaptive
)

func (c CeilingType) String() string {
	if c == CeilingAdaptive {
		return "adaptive"
	}
	return "actual"
}

// GradientFactors is a Bühlmann conservatism setting, expressed as a
// percentage pair (low, high) of the raw M-value. 100/100 disables
// conservatism; lower values are more conservative.
type GradientFactors struct {
	Low  uint8
	High uint8
}

// Config holds every tunable parameter of a Model.
type Config struct {
	GF                     GradientFactors
	SurfacePressureMbar    int
	DecoAscentRateMPerMin  float64
	CeilingType            CeilingType
	RoundCeiling           bool
	RecalcAllTissueMValues bool
	// DecoStopWindowM is the rounding step used both for Ceiling() when
	// RoundCeiling is set and for the deco planner's stop-depth rounding
	// (spec.md §3's deco_stop_window). Default 3 m.
	DecoStopWindowM float64
}

// DefaultConfig returns a conservative-neutral configuration: GF 100/100,
// standard sea-level surface pressure, a 10 m/min ascent rate, and full
// tissue recalculation.
func DefaultConfig() Config {
	return Config{
		GF:                     GradientFactors{Low: 100, High: 100},
		SurfacePressureMbar:    1013,
		DecoAscentRateMPerMin:  10.0,
		CeilingType:            CeilingActual,
		RoundCeiling:           false,
		RecalcAllTissueMValues: true,
		DecoStopWindowM:        3.0,
	}
}

// Validate checks that every field of the configuration lies within its
// physically or numerically sane range, aggregating every violation found
// rather than stopping at the first.
func (c Config) Validate() error {
	var err error
	if c.GF.Low < 1 || c.GF.Low > 100 {
		err = multierr.Append(err, fmt.Errorf("gf low %d out of range [1,100]", c.GF.Low))
	}
	if c.GF.High < 1 || c.GF.High > 100 {
		err = multierr.Append(err, fmt.Errorf("gf high %d out of range [1,100]", c.GF.High))
	}
	if c.GF.Low > c.GF.High {
		err = multierr.Append(err, fmt.Errorf("gf low %d must not exceed gf high %d", c.GF.Low, c.GF.High))
	}
	if c.SurfacePressureMbar < 500 || c.SurfacePressureMbar > 1500 {
		err = multierr.Append(err, fmt.Errorf("surface pressure %d mbar out of range [500,1500]", c.SurfacePressureMbar))
	}
	if c.DecoAscentRateMPerMin < 1.0 || c.DecoAscentRateMPerMin > 30.0 {
		err = multierr.Append(err, fmt.Errorf("deco ascent rate %v m/min out of range [1,30]", c.DecoAscentRateMPerMin))
	}
	if c.DecoStopWindowM <= 0 {
		err = multierr.Append(err, fmt.Errorf("deco stop window %v m must be positive", c.DecoStopWindowM))
	}
	return err
}

func (c Config) gfLowFraction() float64 {
	return float64(c.GF.Low) / 100.0
}

func (c Config) gfHighFraction() float64 {
	return float64(c.GF.High) / 100.0
}
