package cluster

import (
	"errors"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Engine groups feature vectors with k-means. Seeded so that repeated
// runs over the same input produce the same assignment.
type Engine struct {
	K       int
	Seed    int64
	MaxIter int
}

// Result holds the converged clustering: one label per input row and
// the final centroids in feature space.
type Result struct {
	Labels    []int
	Centroids [][]float64
}

func NewEngine(k int, seed int64) *Engine {
	return &Engine{K: k, Seed: seed, MaxIter: 300}
}

// Fit clusters the rows of features. All rows must share a dimension.
// Fewer rows than clusters is an error; equal rows and clusters is a
// degenerate but valid assignment.
func (e *Engine) Fit(features [][]float64) (*Result, error) {
	n := len(features)
	if n == 0 {
		return nil, errors.New("cluster: no feature vectors")
	}
	if e.K <= 0 {
		return nil, errors.New("cluster: k must be positive")
	}
	if n < e.K {
		return nil, errors.New("cluster: fewer vectors than clusters")
	}
	dim := len(features[0])
	for _, f := range features {
		if len(f) != dim {
			return nil, errors.New("cluster: inconsistent feature dimensions")
		}
	}

	rng := rand.New(rand.NewSource(e.Seed))
	centroids := e.seedCentroids(features, rng)
	labels := make([]int, n)

	maxIter := e.MaxIter
	if maxIter <= 0 {
		maxIter = 300
	}
	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, f := range features {
			best := nearest(f, centroids)
			if best != labels[i] {
				labels[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}
		recompute(features, labels, centroids, rng)
	}

	return &Result{Labels: labels, Centroids: centroids}, nil
}

// seedCentroids implements k-means++ initialization: the first center
// is uniform, each subsequent one is drawn proportionally to squared
// distance from the nearest existing center.
func (e *Engine) seedCentroids(features [][]float64, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, e.K)
	first := make([]float64, len(features[0]))
	copy(first, features[rng.Intn(len(features))])
	centroids = append(centroids, first)

	dists := make([]float64, len(features))
	for len(centroids) < e.K {
		total := 0.0
		for i, f := range features {
			d := sqDist(f, centroids[0])
			for _, c := range centroids[1:] {
				if v := sqDist(f, c); v < d {
					d = v
				}
			}
			dists[i] = d
			total += d
		}

		idx := 0
		if total > 0 {
			target := rng.Float64() * total
			acc := 0.0
			for i, d := range dists {
				acc += d
				if acc >= target {
					idx = i
					break
				}
			}
		} else {
			idx = rng.Intn(len(features))
		}

		next := make([]float64, len(features[idx]))
		copy(next, features[idx])
		centroids = append(centroids, next)
	}
	return centroids
}

func nearest(f []float64, centroids [][]float64) int {
	best := 0
	bestDist := sqDist(f, centroids[0])
	for j := 1; j < len(centroids); j++ {
		if d := sqDist(f, centroids[j]); d < bestDist {
			bestDist = d
			best = j
		}
	}
	return best
}

// recompute moves each centroid to the mean of its members. An emptied
// cluster is reseeded on a random point so k clusters survive.
func recompute(features [][]float64, labels []int, centroids [][]float64, rng *rand.Rand) {
	dim := len(features[0])
	counts := make([]int, len(centroids))
	for j := range centroids {
		for d := 0; d < dim; d++ {
			centroids[j][d] = 0
		}
	}
	for i, f := range features {
		j := labels[i]
		floats.Add(centroids[j], f)
		counts[j]++
	}
	for j := range centroids {
		if counts[j] == 0 {
			copy(centroids[j], features[rng.Intn(len(features))])
			continue
		}
		floats.Scale(1/float64(counts[j]), centroids[j])
	}
}

func sqDist(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	if math.IsNaN(sum) {
		return math.Inf(1)
	}
	return sum
}
