package model

import (
	"fmt"
	"math"
	"math/rand"
)

// Folds splits n observation indexes into k shuffled folds. The shuffle
// is driven by seed so fold membership is reproducible.
func Folds(n, k int, seed int64) [][]int {
	if k > n {
		k = n
	}
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)

	folds := make([][]int, k)
	for i, idx := range perm {
		folds[i%k] = append(folds[i%k], idx)
	}
	return folds
}

// CrossValMSE computes the mean held-out squared error of a training
// routine over the given folds. Any fold whose training fails fails the
// whole candidate.
func CrossValMSE(x, y []float64, folds [][]int, train func(x, y []float64) (func(float64) float64, error)) (float64, error) {
	if len(folds) < 2 {
		return 0, fmt.Errorf("cross-validation needs at least 2 folds, got %d", len(folds))
	}

	held := make(map[int]bool, len(x))
	totalMSE := 0.0

	for _, fold := range folds {
		for k := range held {
			delete(held, k)
		}
		for _, idx := range fold {
			held[idx] = true
		}

		trainX := make([]float64, 0, len(x)-len(fold))
		trainY := make([]float64, 0, len(y)-len(fold))
		for i := range x {
			if !held[i] {
				trainX = append(trainX, x[i])
				trainY = append(trainY, y[i])
			}
		}

		predict, err := train(trainX, trainY)
		if err != nil {
			return 0, fmt.Errorf("fold training failed: %w", err)
		}

		sse := 0.0
		for _, idx := range fold {
			d := y[idx] - predict(x[idx])
			sse += d * d
		}
		totalMSE += sse / float64(len(fold))
	}

	return totalMSE / float64(len(folds)), nil
}

// DegreeResult is one polynomial degree candidate scored by
// cross-validation.
type DegreeResult struct {
	Degree int
	CVMSE  float64
	R2     float64
}

// TunePolynomial scores each candidate degree by k-fold cross-validated
// MSE (same folds for every degree) and returns the results with the
// degree minimizing held-out error. Degrees whose fit fails are
// excluded. The reported R² is from a fit on the full dataset, for
// interpretability only; selection uses the cross-validated error.
func TunePolynomial(x, y []float64, degrees []int, k int, seed int64) ([]DegreeResult, int, error) {
	if len(x) != len(y) || len(x) < 2 {
		return nil, 0, fmt.Errorf("tuning needs at least 2 observations, got %d", len(x))
	}

	folds := Folds(len(x), k, seed)

	var results []DegreeResult
	best := -1
	for _, d := range degrees {
		degree := d
		mse, err := CrossValMSE(x, y, folds, func(tx, ty []float64) (func(float64) float64, error) {
			fit, err := FitPolynomial(tx, ty, degree)
			if err != nil {
				return nil, err
			}
			return fit.Predict, nil
		})
		if err != nil {
			continue
		}

		full, err := FitPolynomial(x, y, degree)
		if err != nil {
			continue
		}

		results = append(results, DegreeResult{Degree: degree, CVMSE: mse, R2: full.R2})
		if best < 0 || mse < results[best].CVMSE {
			best = len(results) - 1
		}
	}

	if best < 0 {
		return nil, 0, fmt.Errorf("no polynomial degree could be fitted")
	}
	return results, results[best].Degree, nil
}

// MeanResidual returns the mean of y - predict(x); near zero for any
// least-squares fit over its own training data.
func MeanResidual(x, y []float64, predict func(float64) float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for i := range x {
		sum += y[i] - predict(x[i])
	}
	return sum / float64(len(x))
}
