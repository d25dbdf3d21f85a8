package ecokalman

import (
	"fmt"
)

// Step supports the daily operational pattern: given only yesterday's
// analysis and today's observation, it rolls the analysis forward one step,
// fuses the observation into a nowcast, then extends the nowcast over the
// requested horizon with no further data. The returned slice holds horizon+1
// beliefs: the nowcast at index 0 and the h-step-ahead forecasts at 1..horizon.
//
// With no new data the covariance trace never shrinks along the horizon, and
// grows strictly when the process noise is nonzero; coupling terms in the
// transition operator redistribute uncertainty among components but cannot
// reduce the total.
func (f *Filter) Step(prev Belief, obs Observation, horizon int) ([]Belief, error) {
	if horizon < 0 {
		return nil, fmt.Errorf("horizon must be non-negative, got %d", horizon)
	}
	if prev.Dim() != f.params.Dim() {
		return nil, fmt.Errorf("%sprevious analysis(%dx...) transition (M)(%dx...)", dimErrMsg, prev.Dim(), f.params.Dim())
	}

	fcst, err := Propagate(prev, f.params.transition, f.params.procNoise)
	if err != nil {
		return nil, fmt.Errorf("forecast to current step: %w", err)
	}
	nowcast, err := Analyze(fcst, obs, f.params.obsNoise)
	if err != nil {
		return nil, fmt.Errorf("nowcast analysis: %w", err)
	}

	out := make([]Belief, 0, horizon+1)
	out = append(out, nowcast)
	cur := nowcast
	for h := 1; h <= horizon; h++ {
		cur, err = Propagate(cur, f.params.transition, f.params.procNoise)
		if err != nil {
			return nil, fmt.Errorf("forecast at horizon %d: %w", h, err)
		}
		out = append(out, cur)
	}
	return out, nil
}
