package deco

import (
	"github.com/deepwater-eng/buhlmann/pkg/gas"
	"github.com/deepwater-eng/buhlmann/pkg/units"
)

// maxIterations bounds the planning loop so a misconfigured model (one
// that never clears its ceiling) cannot spin forever.
const maxIterations = 500

// maxStopMinutes is the hard cap on any single stop stage's duration
// (spec.md §4.4 step 5). A stop that has not cleared its ceiling after
// this long indicates a model that cannot be brought to the surface, and
// waitAtStop reports ErrStopDurationExceeded rather than returning a
// silently truncated stage.
const maxStopMinutes = 99

// Plan runs the decompression planner starting from sim's current state,
// returning an ordered list of stages plus time-to-surface figures.
func Plan(sim Sim, gases []gas.Gas, currentGas gas.Gas, opts Options) (*PlanResult, error) {
	if len(gases) == 0 {
		return nil, ErrEmptyGasList
	}
	if !containsGas(gases, currentGas) {
		return nil, ErrCurrentGasNotInList
	}

	stages, tts, err := planCore(sim.Clone(), gases, currentGas, opts)
	if err != nil {
		return nil, err
	}

	plus5Work := sim.Clone()
	if err := plus5Work.Record(plus5Work.Depth(), units.TimeFromMinutes(5), currentGas); err != nil {
		return nil, err
	}
	_, plus5TTS, err := planCore(plus5Work, gases, currentGas, opts)
	if err != nil {
		return nil, err
	}
	ttsPlus5 := plus5TTS

	return &PlanResult{
		Stages:   stages,
		TTS:      tts,
		TTSPlus5: ttsPlus5,
		TTSDelta: ttsPlus5 - tts,
	}, nil
}

// planCore runs the ascent/stop/gas-switch state machine on work (which
// the caller owns and may mutate freely) and returns the resulting stages
// and their total duration.
func planCore(work Sim, gases []gas.Gas, currentGas gas.Gas, opts Options) ([]Stage, units.Time, error) {
	activeGas := currentGas
	var raw []Stage
	var tts units.Time

	for i := 0; i < maxIterations; i++ {
		ceiling := work.Ceiling()

		if ceiling <= 0 && work.Depth() <= 0 {
			break
		}

		if ceiling <= 0 {
			stage, err := ascend(work, 0, activeGas, opts, actionAscentToCeil)
			if err != nil {
				return nil, 0, err
			}
			raw = append(raw, stage)
			tts += stage.Duration
			break
		}

		stopDepth := ceiling.RoundUpToStep(opts.CeilingWindow)

		if switchGas, ok := nextSwitchGas(gases, activeGas, work.Depth(), opts); ok {
			raw = append(raw, Stage{
				Type:       actionSwitchGas.stageType(),
				StartDepth: work.Depth(),
				EndDepth:   work.Depth(),
				Gas:        switchGas,
			})
			activeGas = switchGas
			continue
		}

		if switchDepth, ok := nextGasSwitchDepth(gases, activeGas, work.Depth(), stopDepth, opts); ok {
			stage, err := ascend(work, switchDepth, activeGas, opts, actionAscentToGasSwitchDepth)
			if err != nil {
				return nil, 0, err
			}
			raw = append(raw, stage)
			tts += stage.Duration
			continue
		}

		if work.Depth() > stopDepth {
			stage, err := ascend(work, stopDepth, activeGas, opts, actionAscentToCeil)
			if err != nil {
				return nil, 0, err
			}
			raw = append(raw, stage)
			tts += stage.Duration
			continue
		}

		stage, err := waitAtStop(work, activeGas, opts)
		if err != nil {
			return nil, 0, err
		}
		raw = append(raw, stage)
		tts += stage.Duration
	}

	return mergeConsecutive(raw), tts, nil
}

// nextGasSwitchDepth looks for a not-yet-usable richer gas whose maximum
// operating depth lies strictly between the target stop depth and the
// diver's current depth, so the planner should ascend only that far
// before reconsidering a gas switch.
func nextGasSwitchDepth(gases []gas.Gas, current gas.Gas, currentDepth, stopDepth units.Depth, opts Options) (units.Depth, bool) {
	found := false
	var best units.Depth

	for _, candidate := range gases {
		if sameGas(candidate, current) || candidate.FO2 <= current.FO2 {
			continue
		}
		mod := candidate.MaximumOperatingDepth(opts.SwitchPPO2Limit, opts.SurfacePressureMbar)
		if mod >= currentDepth || mod < stopDepth {
			continue
		}
		if !found || mod > best {
			best, found = mod, true
		}
	}
	return best, found
}

func ascend(work Sim, target units.Depth, g gas.Gas, opts Options, act action) (Stage, error) {
	start := work.Depth()
	if err := work.RecordTravelWithRate(target, opts.AscentRateMPerMin, g); err != nil {
		return Stage{}, err
	}
	deltaMeters := start.Meters() - target.Meters()
	if deltaMeters < 0 {
		deltaMeters = -deltaMeters
	}
	duration := units.TimeFromMinutes(deltaMeters / opts.AscentRateMPerMin)
	return Stage{
		Type:       act.stageType(),
		StartDepth: start,
		EndDepth:   target,
		Duration:   duration,
		Gas:        g,
	}, nil
}

// waitAtStop holds work at its current depth, advancing in StopStepSeconds
// increments, until the ceiling recedes to a shallower stop window. It
// fails with ErrStopDurationExceeded if the stop is still obligated after
// maxStopMinutes.
func waitAtStop(work Sim, g gas.Gas, opts Options) (Stage, error) {
	depth := work.Depth()
	step := opts.StopStepSeconds
	if step <= 0 {
		step = 1
	}
	stepTime := units.Time(step)
	maxSteps := int(units.TimeFromMinutes(maxStopMinutes).Seconds() / step)

	var elapsed units.Time
	for i := 0; i < maxSteps; i++ {
		if err := work.Record(depth, stepTime, g); err != nil {
			return Stage{}, err
		}
		elapsed += stepTime
		if work.Ceiling().RoundUpToStep(opts.CeilingWindow) < depth {
			return Stage{
				Type:       actionStop.stageType(),
				StartDepth: depth,
				EndDepth:   depth,
				Duration:   elapsed,
				Gas:        g,
			}, nil
		}
	}
	return Stage{}, ErrStopDurationExceeded
}

// mergeConsecutive collapses adjacent stages of the same type and gas into
// one, summing their durations and taking the outer start/end depths.
func mergeConsecutive(stages []Stage) []Stage {
	if len(stages) == 0 {
		return stages
	}
	out := make([]Stage, 0, len(stages))
	out = append(out, stages[0])
	for _, s := range stages[1:] {
		last := &out[len(out)-1]
		if last.Type == s.Type && sameGas(last.Gas, s.Gas) && last.EndDepth == s.StartDepth {
			last.EndDepth = s.EndDepth
			last.Duration += s.Duration
			continue
		}
		out = append(out, s)
	}
	return out
}
