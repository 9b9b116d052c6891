package models

import (
	"database/sql"
	"strings"
	"time"

	"nba_analysis/internal/client"
)

// Player is one NBA player, keyed by the league person ID.
type Player struct {
	PlayerID  int            `db:"player_id"`
	FullName  string         `db:"full_name"`
	FirstName sql.NullString `db:"first_name"`
	LastName  sql.NullString `db:"last_name"`
	IsActive  bool           `db:"is_active"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

// PlayerFromBoxScoreRow builds a Player from a normalized box score
// row. v3 payloads split the name into firstName/familyName, v2 ships
// a single PLAYER_NAME.
func PlayerFromBoxScoreRow(row client.Row) *Player {
	first := row.Str("player_name")
	last := row.Str("family_name")

	full := first
	if last != "" {
		full = strings.TrimSpace(first + " " + last)
	}

	return &Player{
		PlayerID:  row.Int("player_id"),
		FullName:  full,
		FirstName: nullString(first),
		LastName:  nullString(last),
		IsActive:  true,
	}
}
