package models

import (
	"database/sql"
	"time"

	"nba_analysis/internal/client"
)

// Team is one NBA franchise, keyed by the league team ID.
type Team struct {
	TeamID       int            `db:"team_id"`
	Abbreviation string         `db:"abbreviation"`
	Nickname     sql.NullString `db:"nickname"`
	City         sql.NullString `db:"city"`
	State        sql.NullString `db:"state"`
	YearFounded  sql.NullInt32  `db:"year_founded"`
	Arena        sql.NullString `db:"arena"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// TeamFromScheduleRow builds a Team from a normalized schedule row.
// The game finder only carries identity fields; the rest stays NULL
// until a richer source fills it in.
func TeamFromScheduleRow(row client.Row) *Team {
	return &Team{
		TeamID:       row.Int("team_id"),
		Abbreviation: row.Str("team_abbr"),
		Nickname:     nullString(row.Str("team_name")),
	}
}
