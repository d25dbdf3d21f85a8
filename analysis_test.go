package ecokalman

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestAnalyzeScalarTextbook(t *testing.T) {
	// Forecast N(0, 1), observation 2 with variance 1: the gain is 1/2.
	fcst, err := NewBelief(mat.NewVecDense(1, nil), mat.NewSymDense(1, []float64{1}))
	require.NoError(t, err)

	analysis, err := Analyze(fcst, NewObservation([]float64{2}), mat.NewSymDense(1, []float64{1}))
	require.NoError(t, err)
	require.InDelta(t, 1.0, analysis.Mean().AtVec(0), 1e-12)
	require.InDelta(t, 0.5, analysis.Covariance().At(0, 0), 1e-12)
}

func TestAnalyzePassThrough(t *testing.T) {
	fcst, err := NewBelief(
		mat.NewVecDense(2, []float64{1, -1}),
		mat.NewSymDense(2, []float64{1, 0.3, 0.3, 2}),
	)
	require.NoError(t, err)

	analysis, err := Analyze(fcst, NewObservation([]float64{math.NaN(), math.NaN()}), mat.NewSymDense(2, []float64{0.2, 0, 0, 0.2}))
	require.NoError(t, err)
	require.True(t, mat.Equal(fcst.Mean(), analysis.Mean()), "fully missing observation must not move the mean")
	require.True(t, mat.Equal(fcst.Covariance(), analysis.Covariance()), "fully missing observation must not change the covariance")
}

func TestAnalyzePartialObservation(t *testing.T) {
	// Only location 0 reports; the cross-covariance must pull location 1 along.
	fcst, err := NewBelief(
		mat.NewVecDense(2, nil),
		mat.NewSymDense(2, []float64{1, 0.5, 0.5, 1}),
	)
	require.NoError(t, err)
	r := mat.NewSymDense(2, []float64{0.2, 0, 0, 0.2})

	analysis, err := Analyze(fcst, NewObservation([]float64{2, math.NaN()}), r)
	require.NoError(t, err)

	require.InDelta(t, 2.0/1.2, analysis.Mean().AtVec(0), 1e-12)
	require.InDelta(t, 1.0/1.2, analysis.Mean().AtVec(1), 1e-12, "correlated unobserved component must be informed")
	require.InDelta(t, 1.0/6.0, analysis.Covariance().At(0, 0), 1e-12)
	require.InDelta(t, 19.0/24.0, analysis.Covariance().At(1, 1), 1e-12)

	// Information monotonicity over the observed subset.
	require.LessOrEqual(t, analysis.Covariance().At(0, 0), fcst.Covariance().At(0, 0))
	require.Less(t, analysis.CovarianceTrace(), fcst.CovarianceTrace())
}

func TestAnalyzePerfectObservation(t *testing.T) {
	eps := 1e-9
	fcst, err := NewBelief(mat.NewVecDense(2, nil), Identity(2))
	require.NoError(t, err)

	analysis, err := Analyze(fcst, NewObservation([]float64{5, 7}), mat.NewSymDense(2, []float64{eps, 0, 0, eps}))
	require.NoError(t, err)
	require.InDelta(t, 5.0, analysis.Mean().AtVec(0), 10*eps)
	require.InDelta(t, 7.0, analysis.Mean().AtVec(1), 10*eps)
}

func TestAnalyzeSingularInnovation(t *testing.T) {
	// Zero forecast covariance with zero observation noise leaves nothing to
	// factorize.
	fcst, err := NewBelief(mat.NewVecDense(2, nil), mat.NewSymDense(2, nil))
	require.NoError(t, err)

	_, err = Analyze(fcst, NewObservation([]float64{1, 2}), mat.NewSymDense(2, nil))
	require.Error(t, err)
	var sErr *SingularInnovationError
	require.True(t, errors.As(err, &sErr))
	require.Equal(t, []int{0, 1}, sErr.Observed)
}

func TestAnalyzeDimensionErrors(t *testing.T) {
	fcst, err := NewBelief(mat.NewVecDense(2, nil), Identity(2))
	require.NoError(t, err)

	_, err = Analyze(fcst, NewObservation([]float64{1, 2, 3}), mat.NewSymDense(2, nil))
	require.Error(t, err, "observation longer than the state must fail")

	_, err = Analyze(fcst, NewObservation([]float64{1, 2}), mat.NewSymDense(3, nil))
	require.Error(t, err, "observation noise of the wrong size must fail")
}

func TestAnalyzeCovarianceSymmetry(t *testing.T) {
	fcst, err := NewBelief(
		mat.NewVecDense(3, []float64{1, 2, 3}),
		mat.NewSymDense(3, []float64{2, 0.4, 0.1, 0.4, 1.5, 0.3, 0.1, 0.3, 1}),
	)
	require.NoError(t, err)
	r := mat.NewSymDense(3, []float64{0.2, 0, 0, 0, 0.3, 0, 0, 0, 0.4})

	analysis, err := Analyze(fcst, NewObservation([]float64{1.2, math.NaN(), 2.8}), r)
	require.NoError(t, err)
	cov := analysis.Covariance()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			require.InDelta(t, cov.At(j, i), cov.At(i, j), 1e-8)
		}
	}
}
