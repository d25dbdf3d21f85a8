package ecokalman

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// Noise generates the synthetic process and measurement disturbances used
// when simulating truth trajectories and Monte Carlo ensembles. The filter
// itself never samples noise; it only consumes the Q and R covariances.
type Noise interface {
	Process(k int) *mat.VecDense        // Returns the process noise w at step k
	Measurement(k int) *mat.VecDense    // Returns the measurement noise v at step k
	ProcessMatrix() mat.Symmetric       // Returns the process noise matrix Q
	MeasurementMatrix() mat.Symmetric   // Returns the measurement noise matrix R
	String() string                     // Stringer interface implementation
}

// Noiseless is noiseless and implements the Noise interface.
type Noiseless struct {
	Q, R                         mat.Symmetric
	processSize, measurementSize int
}

// NewNoiseless creates new zero-sample noise from the provided Q and R.
func NewNoiseless(Q, R mat.Symmetric) *Noiseless {
	if Q == nil || R == nil {
		panic("Q and R must be specified")
	}
	return &Noiseless{Q, R, Q.SymmetricDim(), R.SymmetricDim()}
}

// Process returns a zero vector of the correct size.
func (n Noiseless) Process(k int) *mat.VecDense {
	return mat.NewVecDense(n.processSize, nil)
}

// Measurement returns a zero vector of the correct size.
func (n Noiseless) Measurement(k int) *mat.VecDense {
	return mat.NewVecDense(n.measurementSize, nil)
}

// ProcessMatrix implements the Noise interface.
func (n Noiseless) ProcessMatrix() mat.Symmetric {
	return n.Q
}

// MeasurementMatrix implements the Noise interface.
func (n Noiseless) MeasurementMatrix() mat.Symmetric {
	return n.R
}

// String implements the Stringer interface.
func (n Noiseless) String() string {
	return fmt.Sprintf("Noiseless{\nQ=%v\nR=%v}\n", mat.Formatted(n.Q, mat.Prefix("  ")), mat.Formatted(n.R, mat.Prefix("  ")))
}

// AWGN implements the Noise interface and generates additive white Gaussian
// noise from the provided covariances, with a fixed seed so simulations
// reproduce.
type AWGN struct {
	Q, R        mat.Symmetric
	process     *distmv.Normal
	measurement *distmv.Normal
}

// NewAWGN creates new AWGN noise from the provided Q and R. It fails when
// either covariance is not positive definite, which the sampler requires.
func NewAWGN(Q, R mat.Symmetric, seed uint64) (*AWGN, error) {
	src := rand.NewPCG(seed, seed)
	process, ok := distmv.NewNormal(make([]float64, Q.SymmetricDim()), Q, src)
	if !ok {
		return nil, fmt.Errorf("process noise covariance is not positive definite")
	}
	measurement, ok := distmv.NewNormal(make([]float64, R.SymmetricDim()), R, src)
	if !ok {
		return nil, fmt.Errorf("measurement noise covariance is not positive definite")
	}
	return &AWGN{Q, R, process, measurement}, nil
}

// ProcessMatrix implements the Noise interface.
func (n AWGN) ProcessMatrix() mat.Symmetric {
	return n.Q
}

// MeasurementMatrix implements the Noise interface.
func (n AWGN) MeasurementMatrix() mat.Symmetric {
	return n.R
}

// Process implements the Noise interface.
func (n AWGN) Process(k int) *mat.VecDense {
	r := n.process.Rand(nil)
	return mat.NewVecDense(len(r), r)
}

// Measurement implements the Noise interface.
func (n AWGN) Measurement(k int) *mat.VecDense {
	r := n.measurement.Rand(nil)
	return mat.NewVecDense(len(r), r)
}

// String implements the Stringer interface.
func (n AWGN) String() string {
	return fmt.Sprintf("AWGN{\nQ=%v\nR=%v}\n", mat.Formatted(n.Q, mat.Prefix("  ")), mat.Formatted(n.R, mat.Prefix("  ")))
}
