package ecokalman

import (
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// Ensemble stores the trajectories of repeated filter runs over resampled
// observation series, for Monte Carlo uncertainty propagation.
type Ensemble struct {
	Runs []*Trajectory
}

// NewEnsemble runs the filter once per sampled observation series, all from
// the same prior. The series callback must be safe for concurrent use; runs
// are independent and execute in parallel, bounded by the CPU count.
func NewEnsemble(runs int, f *Filter, prior Belief, series func(run int) []Observation) (*Ensemble, error) {
	if runs < 1 {
		return nil, fmt.Errorf("ensemble needs at least one run, got %d", runs)
	}
	trajectories := make([]*Trajectory, runs)
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for r := 0; r < runs; r++ {
		g.Go(func() error {
			traj, err := f.Run(prior, series(r))
			if err != nil {
				return fmt.Errorf("run %d: %w", r, err)
			}
			trajectories[r] = traj
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Ensemble{trajectories}, nil
}

// samples gathers the analysis mean of one state component at one step
// across all runs.
func (e *Ensemble) samples(step, index int) []float64 {
	xs := make([]float64, len(e.Runs))
	for r, run := range e.Runs {
		xs[r] = run.Analyses[step].mean.AtVec(index)
	}
	return xs
}

// Mean returns the ensemble mean of component index at the given step.
func (e *Ensemble) Mean(step, index int) float64 {
	return stat.Mean(e.samples(step, index), nil)
}

// StdDev returns the ensemble standard deviation of component index at the
// given step.
func (e *Ensemble) StdDev(step, index int) float64 {
	return stat.StdDev(e.samples(step, index), nil)
}

// Quantile returns the empirical p-quantile of component index at the given
// step.
func (e *Ensemble) Quantile(step, index int, p float64) float64 {
	xs := e.samples(step, index)
	sort.Float64s(xs)
	return stat.Quantile(p, stat.Empirical, xs, nil)
}

// Scenario names one parameter combination of a sensitivity sweep, e.g. the
// four deterministic/stochastic × uncoupled/coupled combinations.
type Scenario struct {
	Name   string
	Params Params
}

// RunScenarios filters the same prior and observation series under each
// scenario and returns the trajectories keyed by scenario name. Scenarios
// share no state and run concurrently.
func RunScenarios(scenarios []Scenario, prior Belief, obs []Observation) (map[string]*Trajectory, error) {
	seen := make(map[string]bool, len(scenarios))
	for _, sc := range scenarios {
		if seen[sc.Name] {
			return nil, fmt.Errorf("duplicate scenario name %q", sc.Name)
		}
		seen[sc.Name] = true
	}

	results := make([]*Trajectory, len(scenarios))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, sc := range scenarios {
		g.Go(func() error {
			traj, err := New(sc.Params).Run(prior, obs)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", sc.Name, err)
			}
			results[i] = traj
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]*Trajectory, len(scenarios))
	for i, sc := range scenarios {
		out[sc.Name] = results[i]
	}
	return out, nil
}
