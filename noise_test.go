package ecokalman

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNoiseless(t *testing.T) {
	q := mat.NewSymDense(2, []float64{0.1, 0, 0, 0.1})
	r := mat.NewSymDense(2, []float64{0.2, 0, 0, 0.2})
	n := NewNoiseless(q, r)
	require.True(t, IsNil(n.Process(0)), "noiseless process sample must be zero")
	require.True(t, IsNil(n.Measurement(3)), "noiseless measurement sample must be zero")
	require.True(t, mat.Equal(q, n.ProcessMatrix()))
	require.True(t, mat.Equal(r, n.MeasurementMatrix()))
	require.NotEmpty(t, n.String())

	assertPanic(t, func() { NewNoiseless(nil, r) })
}

func TestAWGN(t *testing.T) {
	q := mat.NewSymDense(2, []float64{0.1, 0, 0, 0.1})
	r := mat.NewSymDense(2, []float64{0.2, 0, 0, 0.2})
	n, err := NewAWGN(q, r, 42)
	require.NoError(t, err)

	w := n.Process(0)
	require.Equal(t, 2, w.Len())
	v := n.Measurement(0)
	require.Equal(t, 2, v.Len())
	require.True(t, mat.Equal(q, n.ProcessMatrix()))
	require.True(t, mat.Equal(r, n.MeasurementMatrix()))

	// Same seed, same draws.
	n2, err := NewAWGN(q, r, 42)
	require.NoError(t, err)
	require.True(t, mat.Equal(w, n2.Process(0)), "sampling must be reproducible per seed")
}

func TestAWGNRejectsSingularCovariance(t *testing.T) {
	_, err := NewAWGN(mat.NewSymDense(2, nil), Identity(2), 1)
	require.Error(t, err, "zero process covariance is not samplable")
	_, err = NewAWGN(Identity(2), mat.NewSymDense(2, nil), 1)
	require.Error(t, err, "zero measurement covariance is not samplable")
}
