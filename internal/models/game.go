package models

import (
	"database/sql"
	"strings"
	"time"

	"nba_analysis/internal/client"
)

// Game is one scheduled or completed game, keyed by the league game ID
// (a 10-character string like "0022400561").
type Game struct {
	GameID     string        `db:"game_id"`
	GameDate   time.Time     `db:"game_date"`
	SeasonID   string        `db:"season_id"`
	Matchup    string        `db:"matchup"`
	HomeTeamID int           `db:"home_team_id"`
	AwayTeamID int           `db:"away_team_id"`
	HomePts    sql.NullInt32 `db:"home_pts"`
	AwayPts    sql.NullInt32 `db:"away_pts"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
}

// IsCompleted reports whether both final scores are recorded.
func (g *Game) IsCompleted() bool {
	return g.HomePts.Valid && g.AwayPts.Valid
}

// IsHomeScheduleRow reports whether a schedule row is the home side of
// its game. The game finder emits one row per team; the home team's
// matchup reads "BOS vs. NYK", the visitor's "NYK @ BOS".
func IsHomeScheduleRow(row client.Row) bool {
	return strings.Contains(row.Str("matchup"), " vs. ")
}

// GameFromScheduleRows builds a Game from the home-side and away-side
// rows of the same game.
func GameFromScheduleRows(home, away client.Row) *Game {
	g := &Game{
		GameID:     home.Str("game_id"),
		SeasonID:   home.Str("season_id"),
		Matchup:    home.Str("matchup"),
		HomeTeamID: home.Int("team_id"),
		AwayTeamID: away.Int("team_id"),
		HomePts:    nullInt32(home.IntPtr("pts")),
		AwayPts:    nullInt32(away.IntPtr("pts")),
	}

	if d, err := time.Parse("2006-01-02", home.Str("game_date")); err == nil {
		g.GameDate = d
	}

	return g
}
