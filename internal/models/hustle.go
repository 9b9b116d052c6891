package models

import (
	"database/sql"

	"nba_analysis/internal/client"
)

// HustleStats is one player's hustle box score for one game, keyed by
// (game, player).
type HustleStats struct {
	GameID   string        `db:"game_id"`
	PlayerID int           `db:"player_id"`
	TeamID   sql.NullInt32 `db:"team_id"`

	ScreenAssists       sql.NullInt32 `db:"screen_assists"`
	Deflections         sql.NullInt32 `db:"deflections"`
	LooseBallsRecovered sql.NullInt32 `db:"loose_balls_recovered"`
	ChargesDrawn        sql.NullInt32 `db:"charges_drawn"`
	ContestedShots      sql.NullInt32 `db:"contested_shots"`
	BoxOuts             sql.NullInt32 `db:"box_outs"`
}

func HustleStatsFromRow(gameID string, row client.Row) *HustleStats {
	return &HustleStats{
		GameID:              gameID,
		PlayerID:            row.Int("player_id"),
		TeamID:              nullInt32(row.IntPtr("team_id")),
		ScreenAssists:       nullInt32(row.IntPtr("screen_assists")),
		Deflections:         nullInt32(row.IntPtr("deflections")),
		LooseBallsRecovered: nullInt32(row.IntPtr("loose_balls_recovered")),
		ChargesDrawn:        nullInt32(row.IntPtr("charges_drawn")),
		ContestedShots:      nullInt32(row.IntPtr("contested_shots")),
		BoxOuts:             nullInt32(row.IntPtr("box_outs")),
	}
}
