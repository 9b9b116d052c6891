package model

import (
	"fmt"
	"math"
	"testing"

	"nba_analysis/internal/closing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// teamGames fabricates n games for a team whose final result follows
// the given curve of the Q3 lead.
func teamGames(team string, n int, f func(float64) float64) []closing.TeamGameMargin {
	games := make([]closing.TeamGameMargin, n)
	for i := 0; i < n; i++ {
		lead := float64(i%21 - 10)
		games[i] = closing.TeamGameMargin{
			GameID:      fmt.Sprintf("%s-%d", team, i),
			Team:        team,
			Q3Lead:      lead,
			FinalResult: f(lead),
		}
	}
	return games
}

func TestFitTeams_SkipsThinTeams(t *testing.T) {
	linear := func(v float64) float64 { return 1.1 * v }

	data := append(
		teamGames("BOS", 30, linear),
		teamGames("SEA", 8, linear)..., // below the floor
	)

	fits := FitTeams(data, 10, 42)
	require.Len(t, fits, 1, "the eight-game team is excluded")
	assert.Equal(t, "BOS", fits[0].Team)
	assert.Equal(t, 30, fits[0].Games)
}

func TestFitTeams_PicksSimplestDegreeForLinearTeam(t *testing.T) {
	data := teamGames("BOS", 42, func(v float64) float64 { return 2 + 0.9*v })

	fits := FitTeams(data, 10, 42)
	require.Len(t, fits, 1)

	f := fits[0]
	assert.InDelta(t, 0, f.MSE[f.BestDegree-1], 1e-9, "noiseless data holds out exactly")
	for _, mse := range f.MSE {
		assert.GreaterOrEqual(t, mse+1e-9, f.MSE[f.BestDegree-1],
			"best degree minimizes cross-validated error")
	}
}

func TestFitTeams_FailedDegreeIsNaN(t *testing.T) {
	// Four games split into two folds leave two training points per
	// fold: enough for a line, not for degree 2 or 3.
	data := teamGames("BOS", 4, func(v float64) float64 { return v })

	fits := FitTeams(data, 4, 42)
	require.Len(t, fits, 1)

	f := fits[0]
	assert.Equal(t, 1, f.BestDegree)
	assert.False(t, math.IsNaN(f.MSE[0]), "the line fits")
	assert.True(t, math.IsNaN(f.MSE[1]), "a failed candidate must not read as a perfect score")
	assert.True(t, math.IsNaN(f.MSE[2]), "a failed candidate must not read as a perfect score")
}

func TestFitTeams_Deterministic(t *testing.T) {
	data := append(
		teamGames("BOS", 25, func(v float64) float64 { return v + 3 }),
		teamGames("NYK", 25, func(v float64) float64 { return 0.1*v*v + v })...,
	)

	a := FitTeams(data, 10, 42)
	b := FitTeams(data, 10, 42)
	assert.Equal(t, a, b, "same seed, same fits")
}

func TestFitTeams_SortedByTeam(t *testing.T) {
	linear := func(v float64) float64 { return v }
	data := append(
		teamGames("UTA", 20, linear),
		teamGames("ATL", 20, linear)...,
	)

	fits := FitTeams(data, 10, 42)
	require.Len(t, fits, 2)
	assert.Equal(t, "ATL", fits[0].Team)
	assert.Equal(t, "UTA", fits[1].Team)
}

func TestFitTeams_Empty(t *testing.T) {
	assert.Empty(t, FitTeams(nil, 10, 42))
}
