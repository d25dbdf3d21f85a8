package ecokalman

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Identity returns an identity matrix of the provided size.
func Identity(n int) mat.Symmetric {
	vals := make([]float64, n*n)
	for j := 0; j < n*n; j++ {
		if j%(n+1) == 0 {
			vals[j] = 1
		}
	}
	return mat.NewSymDense(n, vals)
}

// IsNil returns whether the provided matrix only has zero values.
func IsNil(m mat.Matrix) bool {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if m.At(i, j) != 0 {
				return false
			}
		}
	}
	return true
}

// AsSymDense attempts to return a SymDense from the provided Dense.
func AsSymDense(m *mat.Dense) (*mat.SymDense, error) {
	r, c := m.Dims()
	if r != c {
		return nil, errors.New("matrix must be square")
	}
	vals := make([]float64, r*c)
	idx := 0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if m.At(j, i) != m.At(i, j) {
				return nil, errors.New("matrix is not symmetric")
			}
			vals[idx] = m.At(i, j)
			idx++
		}
	}
	return mat.NewSymDense(r, vals), nil
}

// Symmetrize averages a square matrix with its transpose. Every covariance
// leaving a filter step passes through here so that floating-point asymmetry
// cannot accumulate over many steps. Panics if m is not square.
func Symmetrize(m *mat.Dense) *mat.SymDense {
	r, c := m.Dims()
	if r != c {
		panic("cannot symmetrize a non-square matrix")
	}
	s := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			s.SetSym(i, j, 0.5*(m.At(i, j)+m.At(j, i)))
		}
	}
	return s
}

// selection returns the m×k mapping matrix picking the observed state
// indices, i.e. the identity observation operator restricted to idx.
func selection(idx []int, k int) *mat.Dense {
	h := mat.NewDense(len(idx), k, nil)
	for i, j := range idx {
		h.Set(i, j, 1)
	}
	return h
}
