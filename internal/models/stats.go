package models

import (
	"database/sql"

	"nba_analysis/internal/client"
)

// PlayerGameStats is one player's box score line for one game,
// traditional and advanced columns merged, keyed by (game, player).
type PlayerGameStats struct {
	GameID   string        `db:"game_id"`
	PlayerID int           `db:"player_id"`
	TeamID   sql.NullInt32 `db:"team_id"`

	Minutes   sql.NullString  `db:"minutes"`
	Pts       sql.NullInt32   `db:"pts"`
	Reb       sql.NullInt32   `db:"reb"`
	Ast       sql.NullInt32   `db:"ast"`
	Stl       sql.NullInt32   `db:"stl"`
	Blk       sql.NullInt32   `db:"blk"`
	Tov       sql.NullInt32   `db:"tov"`
	Pf        sql.NullInt32   `db:"pf"`
	PlusMinus sql.NullFloat64 `db:"plus_minus"`

	// Shooting
	Fgm    sql.NullInt32   `db:"fgm"`
	Fga    sql.NullInt32   `db:"fga"`
	FgPct  sql.NullFloat64 `db:"fg_pct"`
	Fg3m   sql.NullInt32   `db:"fg3m"`
	Fg3a   sql.NullInt32   `db:"fg3a"`
	Fg3Pct sql.NullFloat64 `db:"fg3_pct"`
	Ftm    sql.NullInt32   `db:"ftm"`
	Fta    sql.NullInt32   `db:"fta"`
	FtPct  sql.NullFloat64 `db:"ft_pct"`

	// Advanced
	OffRating sql.NullFloat64 `db:"off_rating"`
	DefRating sql.NullFloat64 `db:"def_rating"`
	NetRating sql.NullFloat64 `db:"net_rating"`
	UsgPct    sql.NullFloat64 `db:"usg_pct"`
	Pace      sql.NullFloat64 `db:"pace"`
	Pie       sql.NullFloat64 `db:"pie"`
}

// PlayerGameStatsFromRow builds a stats line from a normalized row.
// Traditional and advanced payloads share identity columns, so the same
// constructor works for both; MergeAdvanced folds the advanced columns
// into an existing traditional line.
func PlayerGameStatsFromRow(gameID string, row client.Row) *PlayerGameStats {
	return &PlayerGameStats{
		GameID:    gameID,
		PlayerID:  row.Int("player_id"),
		TeamID:    nullInt32(row.IntPtr("team_id")),
		Minutes:   nullString(row.Str("minutes")),
		Pts:       nullInt32(row.IntPtr("pts")),
		Reb:       nullInt32(row.IntPtr("reb")),
		Ast:       nullInt32(row.IntPtr("ast")),
		Stl:       nullInt32(row.IntPtr("stl")),
		Blk:       nullInt32(row.IntPtr("blk")),
		Tov:       nullInt32(row.IntPtr("tov")),
		Pf:        nullInt32(row.IntPtr("pf")),
		PlusMinus: nullFloat64(row.FloatPtr("plus_minus")),
		Fgm:       nullInt32(row.IntPtr("fgm")),
		Fga:       nullInt32(row.IntPtr("fga")),
		FgPct:     nullFloat64(row.FloatPtr("fg_pct")),
		Fg3m:      nullInt32(row.IntPtr("fg3m")),
		Fg3a:      nullInt32(row.IntPtr("fg3a")),
		Fg3Pct:    nullFloat64(row.FloatPtr("fg3_pct")),
		Ftm:       nullInt32(row.IntPtr("ftm")),
		Fta:       nullInt32(row.IntPtr("fta")),
		FtPct:     nullFloat64(row.FloatPtr("ft_pct")),
	}
}

// MergeAdvanced copies the advanced-rating columns from row into s.
func (s *PlayerGameStats) MergeAdvanced(row client.Row) {
	s.OffRating = nullFloat64(row.FloatPtr("off_rating"))
	s.DefRating = nullFloat64(row.FloatPtr("def_rating"))
	s.NetRating = nullFloat64(row.FloatPtr("net_rating"))
	s.UsgPct = nullFloat64(row.FloatPtr("usg_pct"))
	s.Pace = nullFloat64(row.FloatPtr("pace"))
	s.Pie = nullFloat64(row.FloatPtr("pie"))
}
