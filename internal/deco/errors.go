package deco

import "errors"

// ErrEmptyGasList is returned when Plan is called with no candidate gases.
var ErrEmptyGasList = errors.New("deco: gas list must not be empty")

// ErrCurrentGasNotInList is returned when the diver's current gas is not
// among the candidate gases offered to the planner.
var ErrCurrentGasNotInList = errors.New("deco: current gas not present in gas list")

// ErrStopDurationExceeded is returned when a single stop stage would need
// to hold longer than maxStopMinutes (spec.md §4.4 step 5's 99-minute
// cap) to clear its ceiling, which indicates a misconfigured or
// pathological model rather than a plannable dive.
var ErrStopDurationExceeded = errors.New("deco: single stop exceeded 99-minute cap")
