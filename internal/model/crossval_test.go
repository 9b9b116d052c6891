package model

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFolds_Deterministic(t *testing.T) {
	a := Folds(40, 5, 42)
	b := Folds(40, 5, 42)
	assert.Equal(t, a, b, "same seed, same folds")

	c := Folds(40, 5, 7)
	assert.NotEqual(t, a, c, "different seed should shuffle differently")
}

func TestFolds_PartitionIndexes(t *testing.T) {
	folds := Folds(23, 5, 42)
	require.Len(t, folds, 5)

	var all []int
	for _, f := range folds {
		all = append(all, f...)
	}
	sort.Ints(all)

	require.Len(t, all, 23, "every index appears exactly once")
	for i, idx := range all {
		assert.Equal(t, i, idx)
	}
}

func TestFolds_CapsAtN(t *testing.T) {
	folds := Folds(3, 5, 42)
	assert.Len(t, folds, 3, "cannot have more folds than observations")
}

func TestCrossValMSE_PerfectModel(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 2 * v
	}

	mse, err := CrossValMSE(x, y, Folds(len(x), 5, 42), func(tx, ty []float64) (func(float64) float64, error) {
		fit, err := FitLinear(tx, ty)
		if err != nil {
			return nil, err
		}
		return fit.Predict, nil
	})
	require.NoError(t, err)
	assert.InDelta(t, 0, mse, 1e-9, "a perfectly linear relationship holds out perfectly")
}

func TestCrossValMSE_TrainingFailureFailsCandidate(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{1, 2, 3, 4}

	_, err := CrossValMSE(x, y, Folds(len(x), 2, 42), func(tx, ty []float64) (func(float64) float64, error) {
		return nil, errors.New("singular matrix")
	})
	assert.Error(t, err)
}

func TestCrossValMSE_NeedsTwoFolds(t *testing.T) {
	_, err := CrossValMSE([]float64{1}, []float64{1}, Folds(1, 1, 42), nil)
	assert.Error(t, err)
}

func TestTunePolynomial_PrefersTrueDegree(t *testing.T) {
	// A cubic signal sampled widely: degree 3 should win on held-out
	// error against both the underfit line and the overfit quartic.
	var x, y []float64
	for v := -20.0; v <= 20.0; v += 1.0 {
		x = append(x, v)
		y = append(y, 0.002*v*v*v+0.8*v)
	}

	results, best, err := TunePolynomial(x, y, []int{1, 2, 3, 4, 5}, 5, 42)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.GreaterOrEqual(t, best, 3, "the cubic term must be captured")

	// R² must be non-decreasing in degree over the full fit.
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i].R2+1e-9, results[i-1].R2)
	}
}

func TestTunePolynomial_RejectsOverfitting(t *testing.T) {
	// Noisy linear data on a small sample: the quintic always wins on
	// training R² but must lose on held-out error.
	x := []float64{-10, -8, -6, -4, -2, 0, 2, 4, 6, 8, 10, 5}
	noise := []float64{1.2, -0.8, 0.5, -1.5, 0.9, -0.3, 1.7, -1.1, 0.4, -0.6, 1.0, -1.4}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 2*v + noise[i]
	}

	results, best, err := TunePolynomial(x, y, []int{1, 2, 3, 4, 5}, 5, 42)
	require.NoError(t, err)

	var trainBest DegreeResult
	for _, r := range results {
		if r.R2 > trainBest.R2 {
			trainBest = r
		}
	}
	assert.Equal(t, 5, trainBest.Degree, "training fit always favors the most flexible degree")
	assert.LessOrEqual(t, best, 3, "held-out error rejects the overfit degrees")
}

func TestTunePolynomial_Deterministic(t *testing.T) {
	x := []float64{-9, -7, -5, -3, -1, 1, 3, 5, 7, 9, 2, 4}
	y := []float64{-12, -9, -4, -4, 0, 2, 2, 7, 9, 11, 3, 6}

	_, bestA, errA := TunePolynomial(x, y, []int{1, 2, 3}, 5, 42)
	_, bestB, errB := TunePolynomial(x, y, []int{1, 2, 3}, 5, 42)
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, bestA, bestB, "same seed selects the same degree")
}

func TestTunePolynomial_TooFewObservations(t *testing.T) {
	_, _, err := TunePolynomial([]float64{1}, []float64{1}, []int{1}, 5, 42)
	assert.Error(t, err)
}
