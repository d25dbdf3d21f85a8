package ecokalman

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// MissingFunc reports whether the observation of state component index is
// withheld at the given step (both zero-based). A nil MissingFunc keeps
// every observation.
type MissingFunc func(step, index int) bool

// Simulation holds a synthetic truth trajectory and the observation series
// generated from it, for ensemble experiments and filter verification.
type Simulation struct {
	States       []*mat.VecDense // truth at steps 1..T
	Observations []Observation   // one per step, with missing entries per the MissingFunc
}

// Simulate generates steps of truth and observations from the transition
// operator: x_t = M x_{t-1} + w_t and y_t = x_t + v_t, with w and v drawn
// from the provided Noise and entries withheld where missing says so.
func Simulate(params Params, init mat.Vector, steps int, noise Noise, missing MissingFunc) (Simulation, error) {
	k := params.Dim()
	if init.Len() != k {
		return Simulation{}, fmt.Errorf("%sinitial state(%dx...) transition (M)(%dx...)", dimErrMsg, init.Len(), k)
	}
	if steps < 1 {
		return Simulation{}, fmt.Errorf("steps must be positive, got %d", steps)
	}

	states := make([]*mat.VecDense, steps)
	observations := make([]Observation, steps)
	cur := mat.NewVecDense(k, nil)
	cur.CloneFromVec(init)
	for t := 0; t < steps; t++ {
		next := mat.NewVecDense(k, nil)
		next.MulVec(params.transition, cur)
		next.AddVec(next, noise.Process(t))
		states[t] = next

		meas := noise.Measurement(t)
		vals := make([]float64, k)
		for i := 0; i < k; i++ {
			if missing != nil && missing(t, i) {
				vals[i] = math.NaN()
			} else {
				vals[i] = next.AtVec(i) + meas.AtVec(i)
			}
		}
		observations[t] = NewObservation(vals)
		cur = next
	}
	return Simulation{states, observations}, nil
}

// RMSE returns the per-component root mean squared error of the trajectory's
// analysis means against the simulated truth.
func (s Simulation) RMSE(traj *Trajectory) ([]float64, error) {
	if len(traj.Analyses) != len(s.States) {
		return nil, fmt.Errorf("trajectory has %d analyses, simulation has %d steps", len(traj.Analyses), len(s.States))
	}
	if len(s.States) == 0 {
		return nil, fmt.Errorf("simulation is empty")
	}
	k := s.States[0].Len()
	sums := make([]float64, k)
	for t, analysis := range traj.Analyses {
		if analysis.Dim() != k {
			return nil, fmt.Errorf("%sanalysis(%dx...) truth(%dx...)", dimErrMsg, analysis.Dim(), k)
		}
		for i := 0; i < k; i++ {
			d := analysis.mean.AtVec(i) - s.States[t].AtVec(i)
			sums[i] += d * d
		}
	}
	for i := range sums {
		sums[i] = math.Sqrt(sums[i] / float64(len(s.States)))
	}
	return sums, nil
}
