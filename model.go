package buhlmann

import (
	"errors"
	"fmt"

	"github.com/deepwater-eng/buhlmann/internal/oxtox"
	"github.com/deepwater-eng/buhlmann/internal/tissue"
	"github.com/deepwater-eng/buhlmann/pkg/gas"
	"github.com/deepwater-eng/buhlmann/pkg/units"
)

// ErrNegativeDepth is returned when a caller supplies a depth below zero.
var ErrNegativeDepth = errors.New("buhlmann: depth must be non-negative")

// ErrNegativeTime is returned when a caller supplies a duration below zero.
var ErrNegativeTime = errors.New("buhlmann: time must be non-negative")

// Model is a Bühlmann ZH-L16C tissue loading model with gradient factors.
// A Model is not safe for concurrent use; callers needing concurrent
// access should guard it externally (see internal/session).
type Model struct {
	cfg        Config
	tissues    tissue.Set
	ox         oxtox.Tracker
	depth      units.Depth
	gas        gas.Gas
	elapsed    units.Time
	gfLowDepth *units.Depth
}

// New builds a Model at the surface, saturated with ambient air and
// breathing air, using the given configuration.
func New(cfg Config) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("buhlmann: invalid config: %w", err)
	}
	return &Model{
		cfg:     cfg,
		tissues: tissue.NewSet(cfg.SurfacePressureMbar),
		gas:     gas.Air(),
	}, nil
}

// Config returns the model's configuration.
func (m *Model) Config() Config {
	return m.cfg
}

// Depth returns the model's current depth.
func (m *Model) Depth() units.Depth {
	return m.depth
}

// Elapsed returns the total time recorded against this model.
func (m *Model) Elapsed() units.Time {
	return m.elapsed
}

// Gas returns the breathing gas last passed to Record or RecordTravel (or
// air, for a freshly constructed Model that has not yet recorded anything).
func (m *Model) Gas() gas.Gas {
	return m.gas
}

// Clone returns a deep, independent copy of the model, suitable for
// forward simulation (NDL search, decompression planning) without
// mutating the live dive state.
func (m *Model) Clone() *Model {
	clone := *m
	if m.gfLowDepth != nil {
		d := *m.gfLowDepth
		clone.gfLowDepth = &d
	}
	return &clone
}

// Record integrates dt seconds of exposure at a fixed depth, breathing gas
// g. This is the constant-depth (Haldane) update.
func (m *Model) Record(depth units.Depth, dt units.Time, g gas.Gas) error {
	if depth < 0 {
		return ErrNegativeDepth
	}
	if dt < 0 {
		return ErrNegativeTime
	}
	m.tissues.ApplyConstantDepth(depth, dt, g, m.cfg.SurfacePressureMbar)
	m.ox.Update(depth, depth, dt, g, m.cfg.SurfacePressureMbar)
	m.depth = depth
	m.gas = g
	m.elapsed += dt
	return nil
}

// RecordTravel integrates dt seconds during which depth changes linearly
// from the model's current depth to targetDepth, breathing gas g. This is
// the Schreiner (linear ambient pressure ramp) update.
func (m *Model) RecordTravel(targetDepth units.Depth, dt units.Time, g gas.Gas) error {
	if targetDepth < 0 {
		return ErrNegativeDepth
	}
	if dt < 0 {
		return ErrNegativeTime
	}
	start := m.depth
	m.tissues.ApplySchreiner(start, targetDepth, dt, g, m.cfg.SurfacePressureMbar)
	m.ox.Update(start, targetDepth, dt, g, m.cfg.SurfacePressureMbar)
	m.depth = targetDepth
	m.gas = g
	m.elapsed += dt
	return nil
}

// RecordTravelWithRate is like RecordTravel but derives the duration from
// a constant rate of depth change, in meters per minute. A rate of 0 is
// rejected since it implies an infinite (or undefined) duration.
func (m *Model) RecordTravelWithRate(targetDepth units.Depth, rateMPerMin float64, g gas.Gas) error {
	if rateMPerMin <= 0 {
		return fmt.Errorf("buhlmann: travel rate must be positive, got %v", rateMPerMin)
	}
	deltaMeters := targetDepth.Meters() - m.depth.Meters()
	if deltaMeters < 0 {
		deltaMeters = -deltaMeters
	}
	dtMin := deltaMeters / rateMPerMin
	return m.RecordTravel(targetDepth, units.TimeFromMinutes(dtMin), g)
}

// Ceiling returns the shallowest depth the diver may currently ascend to
// without exceeding any compartment's gradient-factor-adjusted M-value.
// Zero means no decompression obligation exists.
func (m *Model) Ceiling() units.Depth {
	c := m.ceilingAt(m.depth)
	if m.cfg.RoundCeiling {
		return c.RoundUpToStep(m.cfg.DecoStopWindowM)
	}
	return c
}

// ceilingAt computes the ceiling as it would be evaluated with the diver
// currently at referenceDepth, applying the sloped gradient factor
// interpolation between GF low (anchored at the first stop depth) and GF
// high (at the surface).
func (m *Model) ceilingAt(referenceDepth units.Depth) units.Depth {
	gfHigh := m.cfg.gfHighFraction()
	gfLow := m.cfg.gfLowFraction()

	if gfLow == gfHigh {
		return m.tissues.CeilingAtGF(gfHigh, m.cfg.SurfacePressureMbar)
	}

	baseAmbient := m.tissues.CeilingAmbientBarAtGF(gfHigh)
	baseCeiling := units.DepthFromAmbientPressureBar(baseAmbient, m.cfg.SurfacePressureMbar)
	if baseCeiling <= 0 {
		// No decompression obligation yet: GF high applies throughout.
		return 0
	}

	if m.gfLowDepth == nil {
		d := m.tissues.CeilingAtGF(gfLow, m.cfg.SurfacePressureMbar)
		m.gfLowDepth = &d
	}
	gfLowDepth := *m.gfLowDepth

	gf := m.slopedGF(gfLow, gfHigh, gfLowDepth, referenceDepth)

	if m.cfg.RecalcAllTissueMValues {
		return m.tissues.CeilingAtGF(gf, m.cfg.SurfacePressureMbar)
	}

	leading := m.tissues.LeadingIndex(gfHigh)
	amb := m.tissues[leading].CeilingAmbientBar(gf)
	return units.DepthFromAmbientPressureBar(amb, m.cfg.SurfacePressureMbar)
}

// slopedGF linearly interpolates the gradient factor between gfHigh at the
// surface and gfLow at gfLowDepth, extrapolating no further than gfLow
// once at or below that depth.
func (m *Model) slopedGF(gfLow, gfHigh float64, gfLowDepth, depth units.Depth) float64 {
	if gfLowDepth <= 0 {
		return gfLow
	}
	if depth >= gfLowDepth {
		return gfLow
	}
	return gfHigh - ((gfHigh-gfLow)/gfLowDepth.Meters())*depth.Meters()
}

// InDeco reports whether the model currently has a nonzero decompression
// ceiling.
func (m *Model) InDeco() bool {
	return m.Ceiling() > 0
}

// Supersaturation returns the worst-case GF99 (at current depth) and
// GF-surface (at the surface) values across all compartments.
func (m *Model) Supersaturation() tissue.Supersaturation {
	return m.tissues.SupersaturationAt(m.depth, m.cfg.SurfacePressureMbar)
}

// CNS returns the accumulated central nervous system oxygen toxicity
// load, as a percentage of the single-exposure limit.
func (m *Model) CNS() float64 {
	return m.ox.CNS
}

// OTU returns the accumulated pulmonary oxygen toxicity load in oxygen
// tolerance units.
func (m *Model) OTU() float64 {
	return m.ox.OTU
}
