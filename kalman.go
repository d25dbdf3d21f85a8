// Package ecokalman implements a multivariate linear-Gaussian Kalman filter
// for ecological time series, such as disease activity levels tracked across
// several correlated locations. Observations may be partially missing at any
// time step; a fully missing observation leaves the estimate unchanged.
//
// The filter is split into two pure step functions, Analyze and Propagate,
// driven either in batch over a full observation series (Filter.Run) or
// incrementally one observation at a time (Filter.Step). All parameters are
// passed explicitly and every step returns new values, so independent runs
// share no state.
package ecokalman

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Belief is a Gaussian distribution over the latent state vector: a mean and
// a symmetric covariance. Beliefs are immutable once constructed; each filter
// step returns a new Belief rather than updating its input.
type Belief struct {
	mean *mat.VecDense
	cov  *mat.SymDense
}

// NewBelief returns a Belief from the provided mean and covariance, copying
// both so later changes to the arguments cannot alias into the filter.
func NewBelief(mean mat.Vector, cov mat.Symmetric) (Belief, error) {
	if mean == nil || cov == nil {
		return Belief{}, errors.New("mean and covariance must be specified")
	}
	if err := checkMatDims(mean, cov, "mean", "covariance", rows2rows); err != nil {
		return Belief{}, err
	}
	m := mat.NewVecDense(mean.Len(), nil)
	m.CloneFromVec(mean)
	c := mat.NewSymDense(cov.SymmetricDim(), nil)
	c.CopySym(cov)
	return Belief{m, c}, nil
}

// newBelief wraps freshly computed values without copying. The caller must
// not retain the arguments.
func newBelief(mean *mat.VecDense, cov *mat.SymDense) Belief {
	return Belief{mean, cov}
}

// Dim returns the state dimension k.
func (b Belief) Dim() int {
	return b.mean.Len()
}

// Mean returns the state mean. The returned vector must not be modified.
func (b Belief) Mean() mat.Vector {
	return b.mean
}

// Covariance returns the state covariance. The returned matrix must not be
// modified.
func (b Belief) Covariance() mat.Symmetric {
	return b.cov
}

// CovarianceTrace returns the trace of the covariance, a scalar summary of
// total uncertainty used by the monotonicity diagnostics.
func (b Belief) CovarianceTrace() float64 {
	return mat.Trace(b.cov)
}

// StdDev returns the marginal standard deviation of state component i.
func (b Belief) StdDev(i int) float64 {
	return math.Sqrt(b.cov.At(i, i))
}

// String implements the Stringer interface.
func (b Belief) String() string {
	return fmt.Sprintf("mean=%v\ncovariance=%v", mat.Formatted(b.mean, mat.Prefix("     ")), mat.Formatted(b.cov, mat.Prefix("           ")))
}

// Params holds the fixed matrices of one filter configuration: the state
// transition operator M, the process noise covariance Q and the observation
// noise covariance R. In the basic time-invariant design these are estimated
// offline (e.g. by a Bayesian calibration) and treated as known constants.
// For time-varying parameters, call Analyze and Propagate directly with
// per-step matrices.
type Params struct {
	transition *mat.Dense
	procNoise  *mat.SymDense
	obsNoise   *mat.SymDense
}

// NewParams validates and copies the filter matrices. All dimension checks
// happen here, before any computation is attempted.
func NewParams(transition mat.Matrix, procNoise, obsNoise mat.Symmetric) (Params, error) {
	if transition == nil || procNoise == nil || obsNoise == nil {
		return Params{}, errors.New("transition, process noise and observation noise must be specified")
	}
	r, c := transition.Dims()
	if r != c {
		return Params{}, fmt.Errorf("transition operator must be square, got %dx%d", r, c)
	}
	if err := checkMatDims(transition, procNoise, "transition (M)", "process noise (Q)", rows2rows); err != nil {
		return Params{}, err
	}
	if err := checkMatDims(transition, obsNoise, "transition (M)", "observation noise (R)", rows2rows); err != nil {
		return Params{}, err
	}
	m := mat.NewDense(r, c, nil)
	m.Copy(transition)
	q := mat.NewSymDense(procNoise.SymmetricDim(), nil)
	q.CopySym(procNoise)
	rr := mat.NewSymDense(obsNoise.SymmetricDim(), nil)
	rr.CopySym(obsNoise)
	return Params{m, q, rr}, nil
}

// Dim returns the state dimension k.
func (p Params) Dim() int {
	r, _ := p.transition.Dims()
	return r
}

// Transition returns the M matrix. The returned matrix must not be modified.
func (p Params) Transition() mat.Matrix {
	return p.transition
}

// ProcessNoise returns the Q matrix. The returned matrix must not be modified.
func (p Params) ProcessNoise() mat.Symmetric {
	return p.procNoise
}

// ObservationNoise returns the R matrix. The returned matrix must not be
// modified.
func (p Params) ObservationNoise() mat.Symmetric {
	return p.obsNoise
}

// String implements the Stringer interface.
func (p Params) String() string {
	return fmt.Sprintf("M=%v\nQ=%v\nR=%v", mat.Formatted(p.transition, mat.Prefix("  ")), mat.Formatted(p.procNoise, mat.Prefix("  ")), mat.Formatted(p.obsNoise, mat.Prefix("  ")))
}
