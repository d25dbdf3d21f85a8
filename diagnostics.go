package ecokalman

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// NIS returns the per-step normalized innovation squared of a batch run:
// innov' S^{-1} innov over the observed index subset, where S is the
// innovation covariance of that subset. A consistent filter yields NIS
// samples that follow a chi-square distribution with as many degrees of
// freedom as there are observed indices. Steps with no observation carry NaN.
func NIS(traj *Trajectory, obs []Observation, params Params) ([]float64, error) {
	if len(traj.Forecasts) != len(obs)+1 {
		return nil, fmt.Errorf("trajectory has %d forecasts, want %d for %d observations", len(traj.Forecasts), len(obs)+1, len(obs))
	}
	out := make([]float64, len(obs))
	for t, ob := range obs {
		idx := ob.ObservedIndices()
		if len(idx) == 0 {
			out[t] = math.NaN()
			continue
		}
		fcst := traj.Forecasts[t+1]
		_, s, innov := restrictToObserved(fcst, ob, params.obsNoise, idx)

		var chol mat.Cholesky
		if ok := chol.Factorize(s); !ok {
			return nil, fmt.Errorf("step %d: %w", t+1, &SingularInnovationError{Observed: idx})
		}
		w := mat.NewVecDense(len(idx), nil)
		if err := chol.SolveVecTo(w, innov); err != nil {
			return nil, fmt.Errorf("step %d: %w", t+1, &SingularInnovationError{Observed: idx})
		}
		out[t] = mat.Dot(innov, w)
	}
	return out, nil
}

// NEES returns the per-step normalized estimation error squared of a batch
// run against a known truth: e' P_a^{-1} e with e the analysis mean error.
// A consistent filter yields chi-square samples with k degrees of freedom.
func NEES(traj *Trajectory, truth []*mat.VecDense) ([]float64, error) {
	if len(traj.Analyses) != len(truth) {
		return nil, fmt.Errorf("trajectory has %d analyses, truth has %d steps", len(traj.Analyses), len(truth))
	}
	out := make([]float64, len(truth))
	for t, analysis := range traj.Analyses {
		if truth[t].Len() != analysis.Dim() {
			return nil, fmt.Errorf("%struth(%dx...) analysis(%dx...)", dimErrMsg, truth[t].Len(), analysis.Dim())
		}
		e := mat.NewVecDense(analysis.Dim(), nil)
		e.SubVec(analysis.mean, truth[t])

		var chol mat.Cholesky
		if ok := chol.Factorize(analysis.cov); !ok {
			return nil, fmt.Errorf("step %d: analysis covariance is not positive definite", t+1)
		}
		w := mat.NewVecDense(analysis.Dim(), nil)
		if err := chol.SolveVecTo(w, e); err != nil {
			return nil, fmt.Errorf("step %d: analysis covariance is not positive definite", t+1)
		}
		out[t] = mat.Dot(e, w)
	}
	return out, nil
}

// ChiSquareBounds returns the acceptance interval for a chi-square statistic
// with df degrees of freedom at the given two-sided confidence level, e.g.
// df=2 and confidence=0.95 for a fully observed two-component system.
func ChiSquareBounds(df float64, confidence float64) (lo, hi float64, err error) {
	if df <= 0 {
		return 0, 0, fmt.Errorf("degrees of freedom must be positive, got %g", df)
	}
	if confidence <= 0 || confidence >= 1 {
		return 0, 0, fmt.Errorf("confidence must be in (0, 1), got %g", confidence)
	}
	dist := distuv.ChiSquared{K: df}
	alpha := 1 - confidence
	return dist.Quantile(alpha / 2), dist.Quantile(1 - alpha/2), nil
}
