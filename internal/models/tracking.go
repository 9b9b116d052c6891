package models

import (
	"database/sql"

	"nba_analysis/internal/client"
)

// TrackingStats is one player's speed and distance line for one game,
// keyed by (game, player).
type TrackingStats struct {
	GameID   string `db:"game_id"`
	PlayerID int    `db:"player_id"`

	DistMiles   sql.NullFloat64 `db:"dist_miles"`
	AvgSpeed    sql.NullFloat64 `db:"avg_speed"`
	AvgSpeedOff sql.NullFloat64 `db:"avg_speed_off"`
	AvgSpeedDef sql.NullFloat64 `db:"avg_speed_def"`
}

func TrackingStatsFromRow(gameID string, row client.Row) *TrackingStats {
	return &TrackingStats{
		GameID:      gameID,
		PlayerID:    row.Int("player_id"),
		DistMiles:   nullFloat64(row.FloatPtr("dist_miles")),
		AvgSpeed:    nullFloat64(row.FloatPtr("avg_speed")),
		AvgSpeedOff: nullFloat64(row.FloatPtr("avg_speed_off")),
		AvgSpeedDef: nullFloat64(row.FloatPtr("avg_speed_def")),
	}
}
