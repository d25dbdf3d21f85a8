package ecokalman

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestImplementsExporter(t *testing.T) {
	implements := func(Exporter) {}
	implements(new(CSVExporter))
}

func TestCSVExportFail(t *testing.T) {
	_, err := NewCSVExporter([]string{"loc1", "loc2"}, "/noNoNoNo/", "temp.csv")
	require.Error(t, err, "no issue when trying to create a file on root")
}

func TestCSVExport(t *testing.T) {
	dir := t.TempDir()
	ce, err := NewCSVExporter([]string{"loc1", "loc2"}, dir, "temp.csv")
	require.NoError(t, err)

	b, err := NewBelief(mat.NewVecDense(2, []float64{0.5, 1}), Identity(2))
	require.NoError(t, err)
	require.NoError(t, ce.Write(b))
	require.NoError(t, ce.Close())

	contents, err := os.ReadFile(dir + "/temp.csv")
	require.NoError(t, err)
	require.Contains(t, string(contents), "loc1,loc1+2s,loc1-2s,loc2,loc2+2s,loc2-2s")
	require.Contains(t, string(contents), "0.500000,2.000000,-2.000000,1.000000,2.000000,-2.000000")
}

func TestCSVExportTrajectory(t *testing.T) {
	dir := t.TempDir()
	ce, err := NewCSVExporter([]string{"loc1", "loc2"}, dir, "traj.csv")
	require.NoError(t, err)

	kf := New(twoLocationParams(t))
	prior, err := NewBelief(mat.NewVecDense(2, nil), Identity(2))
	require.NoError(t, err)
	traj, err := kf.Run(prior, []Observation{
		NewObservation([]float64{1, 0.5}),
		NewObservation([]float64{1.5, 1}),
	})
	require.NoError(t, err)
	require.NoError(t, ce.WriteTrajectory(traj))
	require.NoError(t, ce.Close())

	contents, err := os.ReadFile(dir + "/traj.csv")
	require.NoError(t, err)
	// Header, two data rows, and the creation/closing comment lines.
	lines := strings.Split(strings.TrimSpace(string(contents)), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
}
