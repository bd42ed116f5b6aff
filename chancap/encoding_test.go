package chancap

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestReadModel(t *testing.T) {
	model, err := ReadModel(filepath.Join("testdata", "textbook.yaml"))
	require.NoError(t, err)
	require.Equal(t, []float64{2.0, 2.2, 2.4, 2.6, 2.8}, model.Alpha)
	require.Equal(t, []float64{2.0, 2.2, 2.4, 2.6, 2.8}, model.Beta)
	require.Equal(t, 0.5, model.PowerTotal)
	require.Equal(t, 1.0, model.BandwidthTotal)

	sol, err := model.Solve()
	require.NoError(t, err)
	require.True(t, sol.IsOptimal())
	require.InDelta(t, 2.8*math.Log(2.4), sol.Utility, 1e-3)
}

func TestReadModelOmittedTotals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte("alpha: [1.0, 2.0]\nbeta: [1.0, 2.0]\n"), 0o644))

	model, err := ReadModel(path)
	require.NoError(t, err)
	require.Zero(t, model.PowerTotal)
	require.Zero(t, model.BandwidthTotal)

	sol, err := model.Solve()
	require.NoError(t, err)
	require.True(t, sol.IsOptimal())
}

func TestReadModelMissingFile(t *testing.T) {
	_, err := ReadModel(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestReadModelBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("alpha: [1.0\n"), 0o644))

	_, err := ReadModel(path)
	require.Error(t, err)
}

func TestSolutionYAML(t *testing.T) {
	model := Model{
		Alpha:          []float64{1.0, 2.0},
		Beta:           []float64{1.0, 2.0},
		PowerTotal:     1.0,
		BandwidthTotal: 1.0,
	}
	sol, err := model.Solve()
	require.NoError(t, err)

	out, err := yaml.Marshal(sol)
	require.NoError(t, err)
	require.Contains(t, string(out), "status: Optimal")
	require.Contains(t, string(out), "utility:")
}
