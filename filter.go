package ecokalman

import (
	"fmt"
)

// Filter drives the analysis/forecast alternation for one fixed parameter
// set. It holds no estimation state: every run starts from the prior the
// caller supplies, so one Filter may serve any number of independent runs.
type Filter struct {
	params Params
}

// New returns a Filter around the provided parameters.
func New(params Params) *Filter {
	return &Filter{params}
}

// Params returns the filter's parameters.
func (f *Filter) Params() Params {
	return f.params
}

// Trajectory collects the beliefs produced by a batch run. For a T-step
// observation series, Forecasts holds T+1 entries: the prior at index 0 and,
// at index t for t=1..T, the pre-observation forecast for step t. Analyses
// holds T entries, one per observation; Analyses[t-1] is the post-observation
// belief at step t.
type Trajectory struct {
	Forecasts []Belief
	Analyses  []Belief
}

// Steps returns the number of assimilated observations T.
func (tr *Trajectory) Steps() int {
	return len(tr.Analyses)
}

// Run filters the full observation series in forward order, starting from
// the prior. Each step first propagates the previous belief through the
// transition model, then fuses the step's observation into that forecast.
// Any step error aborts the run; previously computed beliefs are not
// returned because the caller must not continue from a failed step.
func (f *Filter) Run(prior Belief, obs []Observation) (*Trajectory, error) {
	if prior.Dim() != f.params.Dim() {
		return nil, fmt.Errorf("%sprior(%dx...) transition (M)(%dx...)", dimErrMsg, prior.Dim(), f.params.Dim())
	}

	traj := &Trajectory{
		Forecasts: make([]Belief, 0, len(obs)+1),
		Analyses:  make([]Belief, 0, len(obs)),
	}
	traj.Forecasts = append(traj.Forecasts, prior)
	cur := prior
	for t, ob := range obs {
		fcst, err := Propagate(cur, f.params.transition, f.params.procNoise)
		if err != nil {
			return nil, fmt.Errorf("forecast at step %d: %w", t+1, err)
		}
		traj.Forecasts = append(traj.Forecasts, fcst)

		cur, err = Analyze(fcst, ob, f.params.obsNoise)
		if err != nil {
			return nil, fmt.Errorf("analysis at step %d: %w", t+1, err)
		}
		traj.Analyses = append(traj.Analyses, cur)
	}
	return traj, nil
}
