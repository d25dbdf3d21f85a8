package ecokalman

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Propagate rolls an analysis belief one step forward through the linear
// transition operator and additive process noise:
//
//	mu_f = M mu_a
//	P_f  = M P_a M' + Q
//
// The result stays positive semi-definite whenever the inputs are, so no
// invertibility is required here.
func Propagate(analysis Belief, transition mat.Matrix, procNoise mat.Symmetric) (Belief, error) {
	r, c := transition.Dims()
	if r != c {
		return Belief{}, fmt.Errorf("transition operator must be square, got %dx%d", r, c)
	}
	if err := checkMatDims(transition, analysis.mean, "transition (M)", "analysis mean", cols2rows); err != nil {
		return Belief{}, err
	}
	if err := checkMatDims(transition, procNoise, "transition (M)", "process noise (Q)", rows2rows); err != nil {
		return Belief{}, err
	}

	mean := mat.NewVecDense(analysis.Dim(), nil)
	mean.MulVec(transition, analysis.mean)

	var mp, mpmT, pf mat.Dense
	mp.Mul(transition, analysis.cov)
	mpmT.Mul(&mp, transition.T())
	pf.Add(&mpmT, procNoise)

	return newBelief(mean, Symmetrize(&pf)), nil
}
