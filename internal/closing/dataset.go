// Package closing builds the closing-ability dataset: for every
// completed game, how each team's lead at the end of the third quarter
// compared to its final margin.
package closing

import (
	"context"

	"github.com/rs/zerolog/log"
)

// ScoreRow is one play-by-play score observation, ordered by event
// number within a game. Scores are nil on rows where the feed omitted
// them (non-scoring events).
type ScoreRow struct {
	GameID    string
	HomeTeam  string
	AwayTeam  string
	EventNum  int
	Period    int
	ScoreHome *int
	ScoreAway *int
}

// TeamGameMargin is one team's side of one game: its margin at the end
// of the third quarter and at the final buzzer. For every game the
// dataset carries exactly two of these and their fields are exact
// negations of each other.
type TeamGameMargin struct {
	GameID      string
	Team        string
	Q3Lead      float64
	FinalResult float64
}

// RowSource supplies ordered play-by-play score rows for a set of
// season IDs.
type RowSource interface {
	ScoreRows(ctx context.Context, seasonIDs []string) ([]ScoreRow, error)
}

// DatasetBuilder assembles TeamGameMargin records from a row source.
type DatasetBuilder struct {
	source RowSource
}

// NewDatasetBuilder creates a builder over the given source.
func NewDatasetBuilder(source RowSource) *DatasetBuilder {
	return &DatasetBuilder{source: source}
}

// Build returns the closing dataset for the given seasons. A store
// failure yields an empty dataset (logged); callers treat empty output
// as "no data available" and abort gracefully.
func (b *DatasetBuilder) Build(ctx context.Context, seasonIDs []string) []TeamGameMargin {
	rows, err := b.source.ScoreRows(ctx, seasonIDs)
	if err != nil {
		log.Error().Err(err).Strs("season_ids", seasonIDs).Msg("Failed to load score rows")
		return nil
	}
	return BuildFromRows(rows)
}

// gameSnapshot is the filled score pair at the last event of one
// period.
type gameSnapshot struct {
	home, away int
	valid      bool
}

// BuildFromRows is the pure dataset core. Rows must be ordered by
// (game, event number). Within each game, missing scores are filled
// forward from the previous non-missing row; the snapshot for a period
// is the filled pair at that period's last event. Games missing a
// period-3 or period-4 snapshot are dropped. Every surviving game emits
// a home-perspective row and a sign-negated away-perspective row.
func BuildFromRows(rows []ScoreRow) []TeamGameMargin {
	type gameState struct {
		homeTeam, awayTeam string
		lastHome, lastAway *int
		q3, final          gameSnapshot
	}

	var order []string
	games := make(map[string]*gameState)

	for _, row := range rows {
		g, ok := games[row.GameID]
		if !ok {
			g = &gameState{homeTeam: row.HomeTeam, awayTeam: row.AwayTeam}
			games[row.GameID] = g
			order = append(order, row.GameID)
		}

		// Forward-fill within the game.
		if row.ScoreHome != nil {
			g.lastHome = row.ScoreHome
		}
		if row.ScoreAway != nil {
			g.lastAway = row.ScoreAway
		}

		// Rows are ordered, so the running value at the final row of a
		// period is that period's snapshot.
		if row.Period == 3 || row.Period == 4 {
			snap := gameSnapshot{}
			if g.lastHome != nil && g.lastAway != nil {
				snap = gameSnapshot{home: *g.lastHome, away: *g.lastAway, valid: true}
			}
			if row.Period == 3 {
				g.q3 = snap
			} else {
				g.final = snap
			}
		}
	}

	var home, away []TeamGameMargin
	for _, gameID := range order {
		g := games[gameID]
		if !g.q3.valid || !g.final.valid {
			log.Debug().Str("game_id", gameID).Msg("Dropping game without complete period snapshots")
			continue
		}

		q3Margin := float64(g.q3.home - g.q3.away)
		finalMargin := float64(g.final.home - g.final.away)

		home = append(home, TeamGameMargin{
			GameID:      gameID,
			Team:        g.homeTeam,
			Q3Lead:      q3Margin,
			FinalResult: finalMargin,
		})
		away = append(away, TeamGameMargin{
			GameID:      gameID,
			Team:        g.awayTeam,
			Q3Lead:      -q3Margin,
			FinalResult: -finalMargin,
		})
	}

	return append(home, away...)
}

// Leads returns the Q3 leads and final results as parallel slices, the
// shape the fitting routines want.
func Leads(data []TeamGameMargin) (x, y []float64) {
	x = make([]float64, len(data))
	y = make([]float64, len(data))
	for i, d := range data {
		x[i] = d.Q3Lead
		y[i] = d.FinalResult
	}
	return x, y
}
