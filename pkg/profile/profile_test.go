package profile

import (
	"math"
	"testing"

	"github.com/deepwater-eng/buhlmann/pkg/units"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Count != 0 {
		t.Errorf("expected empty summary, got %+v", s)
	}
}

func TestSummarizeComputesMaxAndMean(t *testing.T) {
	samples := []Sample{
		{Elapsed: units.TimeFromMinutes(0), Depth: 0},
		{Elapsed: units.TimeFromMinutes(5), Depth: 30},
		{Elapsed: units.TimeFromMinutes(10), Depth: 30},
		{Elapsed: units.TimeFromMinutes(15), Depth: 0},
	}
	s := Summarize(samples)
	if s.MaxDepth != 30 {
		t.Errorf("MaxDepth = %v, want 30", s.MaxDepth)
	}
	if !almostEqual(s.MeanDepth, 15, 1e-9) {
		t.Errorf("MeanDepth = %v, want 15", s.MeanDepth)
	}
	if s.Duration.Minutes() != 15 {
		t.Errorf("Duration = %v, want 15 minutes", s.Duration.Minutes())
	}
}

func TestSummarizeSortsByElapsedForDuration(t *testing.T) {
	samples := []Sample{
		{Elapsed: units.TimeFromMinutes(10), Depth: 20},
		{Elapsed: units.TimeFromMinutes(0), Depth: 0},
	}
	s := Summarize(samples)
	if s.Duration.Minutes() != 10 {
		t.Errorf("Duration = %v, want 10 minutes", s.Duration.Minutes())
	}
}
