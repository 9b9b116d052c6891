package models

import (
	"database/sql"

	"nba_analysis/internal/client"
)

// GameRotation is one substitution shift: a player entering and leaving
// the floor. Shifts have no natural key, so the row ID is a serial
// assigned by the database.
type GameRotation struct {
	RowID    int           `db:"row_id"`
	GameID   string        `db:"game_id"`
	PlayerID int           `db:"player_id"`
	TeamID   sql.NullInt32 `db:"team_id"`

	InTimeReal  sql.NullFloat64 `db:"in_time_real"`
	OutTimeReal sql.NullFloat64 `db:"out_time_real"`
	PtDiff      sql.NullFloat64 `db:"pt_diff"`
}

func GameRotationFromRow(gameID string, row client.Row) *GameRotation {
	return &GameRotation{
		GameID:      gameID,
		PlayerID:    row.Int("player_id"),
		TeamID:      nullInt32(row.IntPtr("team_id")),
		InTimeReal:  nullFloat64(row.FloatPtr("in_time_real")),
		OutTimeReal: nullFloat64(row.FloatPtr("out_time_real")),
		PtDiff:      nullFloat64(row.FloatPtr("pt_diff")),
	}
}
