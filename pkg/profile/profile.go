// Package profile computes descriptive statistics over a recorded dive
// profile: a time series of depth samples taken during a dive.
package profile

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/deepwater-eng/buhlmann/pkg/units"
)

// Sample is one depth reading at an elapsed time offset from the start of
// the dive.
type Sample struct {
	Elapsed units.Time
	Depth   units.Depth
}

// Summary holds descriptive statistics computed over a dive profile.
type Summary struct {
	Count       int
	MaxDepth    units.Depth
	MeanDepth   float64
	StdDevDepth float64
	Duration    units.Time
}

// Summarize computes descriptive statistics over a series of depth
// samples. Samples need not be pre-sorted by elapsed time; Summarize
// sorts a copy before computing Duration.
func Summarize(samples []Sample) Summary {
	if len(samples) == 0 {
		return Summary{}
	}

	depths := make([]float64, len(samples))
	for i, s := range samples {
		depths[i] = s.Depth.Meters()
	}

	sorted := make([]Sample, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Elapsed < sorted[j].Elapsed })

	mean, stdDev := stat.MeanStdDev(depths, nil)
	maxDepth := floats.Max(depths)

	return Summary{
		Count:       len(samples),
		MaxDepth:    units.Depth(maxDepth),
		MeanDepth:   mean,
		StdDevDepth: stdDev,
		Duration:    sorted[len(sorted)-1].Elapsed - sorted[0].Elapsed,
	}
}
