// Package model fits league baseline curves mapping Q3 lead to expected
// final margin and selects between candidate fit families.
package model

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

// Fit is a fitted baseline curve.
type Fit struct {
	Family  string // "linear", "polynomial", "sigmoid"
	Degree  int    // polynomial degree; 0 for non-polynomial families
	Coeffs  []float64
	Predict func(x float64) float64
	R2      float64
}

// FitLinear fits an ordinary least squares line.
func FitLinear(x, y []float64) (*Fit, error) {
	if len(x) != len(y) || len(x) < 2 {
		return nil, fmt.Errorf("linear fit needs at least 2 observations, got %d", len(x))
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) {
		return nil, fmt.Errorf("linear fit is degenerate")
	}

	predict := func(v float64) float64 { return alpha + beta*v }
	return &Fit{
		Family:  "linear",
		Degree:  1,
		Coeffs:  []float64{alpha, beta},
		Predict: predict,
		R2:      RSquared(x, y, predict),
	}, nil
}

// FitPolynomial fits a least-squares polynomial of the given degree via
// QR decomposition of the Vandermonde matrix. Coefficients are in
// ascending order of power.
func FitPolynomial(x, y []float64, degree int) (*Fit, error) {
	if degree < 1 {
		return nil, fmt.Errorf("polynomial degree must be at least 1, got %d", degree)
	}
	if len(x) != len(y) || len(x) < degree+1 {
		return nil, fmt.Errorf("degree-%d fit needs at least %d observations, got %d", degree, degree+1, len(x))
	}

	n := len(x)
	a := mat.NewDense(n, degree+1, nil)
	for i := 0; i < n; i++ {
		pow := 1.0
		for j := 0; j <= degree; j++ {
			a.Set(i, j, pow)
			pow *= x[i]
		}
	}

	var qr mat.QR
	qr.Factorize(a)

	var c mat.VecDense
	if err := qr.SolveVecTo(&c, false, mat.NewVecDense(n, y)); err != nil {
		return nil, fmt.Errorf("polynomial fit failed: %w", err)
	}

	coeffs := make([]float64, degree+1)
	for j := range coeffs {
		coeffs[j] = c.AtVec(j)
		if math.IsNaN(coeffs[j]) || math.IsInf(coeffs[j], 0) {
			return nil, fmt.Errorf("polynomial fit is degenerate at degree %d", degree)
		}
	}

	predict := func(v float64) float64 {
		// Horner evaluation.
		acc := 0.0
		for j := degree; j >= 0; j-- {
			acc = acc*v + coeffs[j]
		}
		return acc
	}

	return &Fit{
		Family:  "polynomial",
		Degree:  degree,
		Coeffs:  coeffs,
		Predict: predict,
		R2:      RSquared(x, y, predict),
	}, nil
}

// sigmoid is the generalized logistic curve L/(1+exp(-k(x-x0))) + b.
func sigmoid(v, l, x0, k, b float64) float64 {
	return l/(1+math.Exp(-k*(v-x0))) + b
}

// FitSigmoid fits the 4-parameter logistic curve by minimizing the sum
// of squared errors with Nelder-Mead. The initial guess follows the
// usual heuristic: amplitude = range of y, midpoint = median of x,
// slope = 0.1, offset = min of y. Returns an error when the
// optimization fails to converge, which callers treat as "fit
// unavailable".
func FitSigmoid(x, y []float64) (*Fit, error) {
	if len(x) != len(y) || len(x) < 4 {
		return nil, fmt.Errorf("sigmoid fit needs at least 4 observations, got %d", len(x))
	}

	p0 := []float64{
		floats.Max(y) - floats.Min(y),
		median(x),
		0.1,
		floats.Min(y),
	}

	problem := optimize.Problem{
		Func: func(p []float64) float64 {
			sse := 0.0
			for i := range x {
				d := y[i] - sigmoid(x[i], p[0], p[1], p[2], p[3])
				sse += d * d
			}
			return sse
		},
	}

	result, err := optimize.Minimize(problem, p0, nil, &optimize.NelderMead{})
	if err != nil {
		return nil, fmt.Errorf("sigmoid fit failed to converge: %w", err)
	}
	if math.IsNaN(result.F) || math.IsInf(result.F, 0) {
		return nil, fmt.Errorf("sigmoid fit diverged")
	}

	p := result.X
	predict := func(v float64) float64 { return sigmoid(v, p[0], p[1], p[2], p[3]) }

	return &Fit{
		Family:  "sigmoid",
		Coeffs:  p,
		Predict: predict,
		R2:      RSquared(x, y, predict),
	}, nil
}

// RSquared computes the coefficient of determination of predict over
// the observations.
func RSquared(x, y []float64, predict func(float64) float64) float64 {
	meanY := stat.Mean(y, nil)

	var ssRes, ssTot float64
	for i := range y {
		r := y[i] - predict(x[i])
		ssRes += r * r
		t := y[i] - meanY
		ssTot += t * t
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

// FamilyResult is one candidate family in a model comparison.
type FamilyResult struct {
	Name  string
	CVMSE float64
	R2    float64
	Fit   *Fit
}

// CompareFamilies scores the linear, cubic polynomial and sigmoid
// candidates by k-fold cross-validated MSE over shared folds and
// returns the results with the index of the winner by minimum held-out
// error. R² comes from a fit over the full dataset, reported for
// interpretability only. Candidates whose fit fails anywhere carry NaN
// scores and are excluded rather than aborting the comparison.
func CompareFamilies(x, y []float64, k int, seed int64) ([]FamilyResult, int) {
	type candidate struct {
		name string
		fit  func(cx, cy []float64) (*Fit, error)
	}

	candidates := []candidate{
		{"Linear", func(cx, cy []float64) (*Fit, error) { return FitLinear(cx, cy) }},
		{"Polynomial (D3)", func(cx, cy []float64) (*Fit, error) { return FitPolynomial(cx, cy, 3) }},
		{"Sigmoid", func(cx, cy []float64) (*Fit, error) { return FitSigmoid(cx, cy) }},
	}

	folds := Folds(len(x), k, seed)

	var results []FamilyResult
	for _, c := range candidates {
		fitFn := c.fit

		full, err := fitFn(x, y)
		if err != nil {
			results = append(results, FamilyResult{Name: c.name, CVMSE: math.NaN(), R2: math.NaN()})
			continue
		}

		mse, err := CrossValMSE(x, y, folds, func(tx, ty []float64) (func(float64) float64, error) {
			f, err := fitFn(tx, ty)
			if err != nil {
				return nil, err
			}
			return f.Predict, nil
		})
		if err != nil {
			results = append(results, FamilyResult{Name: c.name, CVMSE: math.NaN(), R2: math.NaN()})
			continue
		}

		results = append(results, FamilyResult{Name: c.name, CVMSE: mse, R2: full.R2, Fit: full})
	}

	winner := -1
	for i, r := range results {
		if r.Fit == nil {
			continue
		}
		if winner < 0 || r.CVMSE < results[winner].CVMSE {
			winner = i
		}
	}
	return results, winner
}

func median(x []float64) float64 {
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}
