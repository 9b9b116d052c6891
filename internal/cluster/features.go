package cluster

import (
	"errors"
	"sort"

	"nba_analysis/internal/closing"
	"nba_analysis/internal/model"

	"gonum.org/v1/gonum/stat"
)

// Scaler standardizes feature columns to zero mean and unit variance
// and remembers the parameters so centroids can be mapped back to the
// original units.
type Scaler struct {
	Mean   []float64
	StdDev []float64
}

// FitScaler derives column statistics from the feature rows. Constant
// columns get a standard deviation of 1 so standardization is a no-op
// for them rather than a division by zero.
func FitScaler(features [][]float64) (*Scaler, error) {
	if len(features) == 0 {
		return nil, errors.New("cluster: no rows to standardize")
	}
	dim := len(features[0])
	s := &Scaler{Mean: make([]float64, dim), StdDev: make([]float64, dim)}
	col := make([]float64, len(features))
	for d := 0; d < dim; d++ {
		for i, f := range features {
			col[i] = f[d]
		}
		mean, std := stat.MeanStdDev(col, nil)
		if std == 0 || len(features) < 2 {
			std = 1
		}
		s.Mean[d] = mean
		s.StdDev[d] = std
	}
	return s, nil
}

// Transform returns standardized copies of the rows.
func (s *Scaler) Transform(features [][]float64) [][]float64 {
	out := make([][]float64, len(features))
	for i, f := range features {
		row := make([]float64, len(f))
		for d := range f {
			row[d] = (f[d] - s.Mean[d]) / s.StdDev[d]
		}
		out[i] = row
	}
	return out
}

// Inverse maps a standardized vector back to original units.
func (s *Scaler) Inverse(v []float64) []float64 {
	out := make([]float64, len(v))
	for d := range v {
		out[d] = v[d]*s.StdDev[d] + s.Mean[d]
	}
	return out
}

// TeamFeatures is one team's clustering input: mean residual per
// situation bucket, optionally extended with the team's best-fitting
// polynomial degree.
type TeamFeatures struct {
	Team   string
	Vector []float64
}

// BuildFeatures assembles per-team feature rows from situation
// profiles. When fits is non-empty, each team's best degree is
// appended as an extra dimension; teams without a fit entry are
// dropped so every row keeps the same dimension.
func BuildFeatures(profiles []closing.TeamSituationProfile, fits []model.TeamFit) []TeamFeatures {
	degreeByTeam := make(map[string]int, len(fits))
	for _, f := range fits {
		degreeByTeam[f.Team] = f.BestDegree
	}

	var rows []TeamFeatures
	for _, p := range profiles {
		vec := make([]float64, 0, closing.NumSituations+1)
		vec = append(vec, p.Mean[:]...)
		if len(fits) > 0 {
			deg, ok := degreeByTeam[p.Team]
			if !ok {
				continue
			}
			vec = append(vec, float64(deg))
		}
		rows = append(rows, TeamFeatures{Team: p.Team, Vector: vec})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Team < rows[j].Team })
	return rows
}

// Archetype summarizes one cluster: which teams landed in it and the
// situations where its centroid is strongest and weakest, expressed in
// original (unstandardized) residual units.
type Archetype struct {
	Cluster   int
	Teams     []string
	Centroid  []float64
	Strongest closing.Situation
	Weakest   closing.Situation
}

// Archetypes interprets a clustering over standardized features. The
// scaler maps centroids back to residual points per situation; only
// the first NumSituations dimensions are situation buckets, any extra
// feature (best degree) is carried through but not ranked.
func Archetypes(rows []TeamFeatures, res *Result, scaler *Scaler) []Archetype {
	arche := make([]Archetype, len(res.Centroids))
	for j, c := range res.Centroids {
		orig := scaler.Inverse(c)
		a := Archetype{Cluster: j, Centroid: orig}
		a.Strongest, a.Weakest = extremes(orig)
		arche[j] = a
	}
	for i, row := range rows {
		j := res.Labels[i]
		arche[j].Teams = append(arche[j].Teams, row.Team)
	}
	for j := range arche {
		sort.Strings(arche[j].Teams)
	}
	return arche
}

func extremes(centroid []float64) (strongest, weakest closing.Situation) {
	n := closing.NumSituations
	if len(centroid) < n {
		n = len(centroid)
	}
	for s := 1; s < n; s++ {
		if centroid[s] > centroid[strongest] {
			strongest = closing.Situation(s)
		}
		if centroid[s] < centroid[weakest] {
			weakest = closing.Situation(s)
		}
	}
	return strongest, weakest
}
