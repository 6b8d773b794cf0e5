package units

import "fmt"

// Time is a non-negative duration measured in seconds. Like Depth, it is a
// defined float64 so it supports ordinary arithmetic and comparisons.
type Time float64

// TimeFromMinutes builds a Time from a duration given in minutes.
func TimeFromMinutes(minutes float64) Time {
	return Time(minutes * 60)
}

// Seconds returns the duration in seconds.
func (t Time) Seconds() float64 {
	return float64(t)
}

// Minutes returns the duration in minutes.
func (t Time) Minutes() float64 {
	return float64(t) / 60
}

func (t Time) String() string {
	return fmt.Sprintf("%ds", int64(t))
}
