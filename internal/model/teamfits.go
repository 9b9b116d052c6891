package model

import (
	"math"
	"sort"

	"nba_analysis/internal/closing"

	"github.com/rs/zerolog/log"
)

// TeamFit is a team's regression-complexity profile: the cross-validated
// MSE of polynomial degrees 1-3 over its own games, and the degree that
// generalizes best.
type TeamFit struct {
	Team       string
	Games      int
	MSE        [3]float64 // indexed by degree-1; NaN where the candidate failed
	BestDegree int
}

// teamFitDegrees are the candidate degrees for per-team comparison.
// Higher degrees overfit the small per-team samples.
var teamFitDegrees = []int{1, 2, 3}

// FitTeams runs the per-team degree comparison. Teams with fewer than
// minGames observations are skipped entirely; a fit over so few games
// is statistically unreliable. Fold count adapts downward for small
// samples (half the observations, floor 2, cap 5).
func FitTeams(data []closing.TeamGameMargin, minGames int, seed int64) []TeamFit {
	byTeam := make(map[string][]closing.TeamGameMargin)
	for _, d := range data {
		byTeam[d.Team] = append(byTeam[d.Team], d)
	}

	teams := make([]string, 0, len(byTeam))
	for team := range byTeam {
		teams = append(teams, team)
	}
	sort.Strings(teams)

	var fits []TeamFit
	for _, team := range teams {
		games := byTeam[team]
		if len(games) < minGames {
			log.Warn().
				Str("team", team).
				Int("games", len(games)).
				Int("min", minGames).
				Msg("Skipping team with too few observations for degree comparison")
			continue
		}

		x, y := closing.Leads(games)

		k := len(games) / 2
		if k > 5 {
			k = 5
		}
		if k < 2 {
			k = 2
		}

		folds := Folds(len(x), k, seed)

		// Degrees that fail to fit keep NaN so the report cannot
		// mistake them for a perfect score.
		fit := TeamFit{
			Team:       team,
			Games:      len(games),
			MSE:        [3]float64{math.NaN(), math.NaN(), math.NaN()},
			BestDegree: 1,
		}
		bestMSE := 0.0
		haveBest := false
		for _, d := range teamFitDegrees {
			degree := d
			mse, err := CrossValMSE(x, y, folds, func(tx, ty []float64) (func(float64) float64, error) {
				f, err := FitPolynomial(tx, ty, degree)
				if err != nil {
					return nil, err
				}
				return f.Predict, nil
			})
			if err != nil {
				log.Warn().Err(err).Str("team", team).Int("degree", degree).Msg("Degree candidate failed")
				continue
			}
			fit.MSE[degree-1] = mse
			if !haveBest || mse < bestMSE {
				bestMSE = mse
				fit.BestDegree = degree
				haveBest = true
			}
		}

		if haveBest {
			fits = append(fits, fit)
		}
	}

	return fits
}
