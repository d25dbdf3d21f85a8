package ecokalman

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Analyze fuses a forecast belief with one observation, returning the
// analysis belief. Indices missing from the observation contribute nothing;
// if every index is missing the forecast is returned unchanged. State
// components are observed directly, so the observation operator is the
// identity restricted to the observed indices.
//
// The Kalman gain is obtained by a Cholesky solve of the innovation
// covariance rather than an explicit inverse; a factorization failure is
// returned as a *SingularInnovationError.
func Analyze(forecast Belief, obs Observation, obsNoise mat.Symmetric) (Belief, error) {
	k := forecast.Dim()
	if err := checkMatDims(forecast.cov, obsNoise, "forecast covariance", "observation noise (R)", rowsAndcols); err != nil {
		return Belief{}, err
	}
	if obs.Len() != k {
		return Belief{}, fmt.Errorf("%sobservation (y)(%dx...) forecast mean(%dx...)", dimErrMsg, obs.Len(), k)
	}

	idx := obs.ObservedIndices()
	if len(idx) == 0 {
		// No new information at this step.
		return forecast, nil
	}

	h, s, innov := restrictToObserved(forecast, obs, obsNoise, idx)

	var chol mat.Cholesky
	if ok := chol.Factorize(s); !ok {
		return Belief{}, &SingularInnovationError{Observed: idx}
	}

	// K = P_f H' S^{-1}, computed by solving S K' = H P_f.
	var hp, kT mat.Dense
	hp.Mul(h, forecast.cov)
	if err := chol.SolveTo(&kT, &hp); err != nil {
		return Belief{}, &SingularInnovationError{Observed: idx}
	}
	gain := kT.T()

	// mu_a = mu_f + K (y - H mu_f)
	var corr mat.VecDense
	corr.MulVec(gain, innov)
	mean := mat.NewVecDense(k, nil)
	mean.AddVec(forecast.mean, &corr)

	// P_a = (I - K H) P_f, symmetrized against floating-point drift.
	var kh, ikh, pa mat.Dense
	kh.Mul(gain, h)
	ikh.Sub(Identity(k), &kh)
	pa.Mul(&ikh, forecast.cov)

	return newBelief(mean, Symmetrize(&pa)), nil
}

// restrictToObserved builds the restricted observation operator H, the
// innovation covariance S = H P_f H' + R and the innovation y - H mu_f for
// the observed index subset. Shared by Analyze and the NIS diagnostic.
func restrictToObserved(forecast Belief, obs Observation, obsNoise mat.Symmetric, idx []int) (h *mat.Dense, s *mat.SymDense, innov *mat.VecDense) {
	k := forecast.Dim()
	h = selection(idx, k)

	var pht, hpht mat.Dense
	pht.Mul(forecast.cov, h.T())
	hpht.Mul(h, &pht)
	for i, ri := range idx {
		for j, rj := range idx {
			hpht.Set(i, j, hpht.At(i, j)+obsNoise.At(ri, rj))
		}
	}
	s = Symmetrize(&hpht)

	innov = mat.NewVecDense(len(idx), nil)
	for i, ri := range idx {
		innov.SetVec(i, obs.At(ri)-forecast.mean.AtVec(ri))
	}
	return h, s, innov
}
