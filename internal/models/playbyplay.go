package models

import (
	"database/sql"

	"nba_analysis/internal/client"
)

// PlayByPlayEvent is one event in a game's play-by-play log, keyed by
// (game, event number). Running scores are only present on scoring
// events; other rows carry NULL scores and are filled forward when the
// closing dataset is built.
type PlayByPlayEvent struct {
	GameID      string         `db:"game_id"`
	EventNum    int            `db:"event_num"`
	Period      int            `db:"period"`
	Clock       sql.NullString `db:"clock"`
	TeamID      sql.NullInt32  `db:"team_id"`
	PlayerID    sql.NullInt32  `db:"player_id"`
	ActionType  sql.NullString `db:"action_type"`
	SubType     sql.NullString `db:"sub_type"`
	Description sql.NullString `db:"description"`
	ShotResult  sql.NullString `db:"shot_result"`
	LocX        sql.NullInt32  `db:"loc_x"`
	LocY        sql.NullInt32  `db:"loc_y"`
	ScoreHome   sql.NullInt32  `db:"score_home"`
	ScoreAway   sql.NullInt32  `db:"score_away"`
}

// PlayByPlayFromRow builds an event from a normalized play-by-play row.
func PlayByPlayFromRow(gameID string, row client.Row) *PlayByPlayEvent {
	return &PlayByPlayEvent{
		GameID:      gameID,
		EventNum:    row.Int("event_num"),
		Period:      row.Int("period"),
		Clock:       nullString(row.Str("clock")),
		TeamID:      nullInt32(row.IntPtr("team_id")),
		PlayerID:    nullInt32(row.IntPtr("player_id")),
		ActionType:  nullString(row.Str("action_type")),
		SubType:     nullString(row.Str("sub_type")),
		Description: nullString(row.Str("description")),
		ShotResult:  nullString(row.Str("shot_result")),
		LocX:        nullInt32(row.IntPtr("loc_x")),
		LocY:        nullInt32(row.IntPtr("loc_y")),
		ScoreHome:   nullInt32(row.IntPtr("score_home")),
		ScoreAway:   nullInt32(row.IntPtr("score_away")),
	}
}
