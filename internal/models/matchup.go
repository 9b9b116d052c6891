package models

import (
	"database/sql"

	"nba_analysis/internal/client"
)

// PlayerMatchup is one who-guarded-whom record, keyed by (game,
// offensive player, defensive player).
type PlayerMatchup struct {
	GameID      string `db:"game_id"`
	OffPlayerID int    `db:"off_player_id"`
	DefPlayerID int    `db:"def_player_id"`

	MatchupMinutes sql.NullFloat64 `db:"matchup_minutes"`
	PointsAllowed  sql.NullInt32   `db:"points_allowed"`
	MatchupAst     sql.NullInt32   `db:"matchup_ast"`
	MatchupTov     sql.NullInt32   `db:"matchup_tov"`
	MatchupBlk     sql.NullInt32   `db:"matchup_blk"`
}

// PlayerMatchupFromRow builds a matchup from a normalized row. Returns
// nil when either side of the matchup is missing; the API pads the
// table with subtotal rows that have no player pair.
func PlayerMatchupFromRow(gameID string, row client.Row) *PlayerMatchup {
	off := row.IntPtr("off_player_id")
	def := row.IntPtr("def_player_id")
	if off == nil || def == nil {
		return nil
	}

	return &PlayerMatchup{
		GameID:         gameID,
		OffPlayerID:    *off,
		DefPlayerID:    *def,
		MatchupMinutes: nullFloat64(row.FloatPtr("matchup_minutes")),
		PointsAllowed:  nullInt32(row.IntPtr("points_allowed")),
		MatchupAst:     nullInt32(row.IntPtr("matchup_ast")),
		MatchupTov:     nullInt32(row.IntPtr("matchup_tov")),
		MatchupBlk:     nullInt32(row.IntPtr("matchup_blk")),
	}
}
