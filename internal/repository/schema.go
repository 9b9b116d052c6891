package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// SchemaManager creates and drops the fixed relational schema. Natural
// keys throughout: the league's game/team/player identifiers.
type SchemaManager struct {
	db *Database
}

var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS teams (
		team_id      INTEGER PRIMARY KEY,
		abbreviation VARCHAR(10) NOT NULL,
		nickname     VARCHAR(50),
		city         VARCHAR(50),
		state        VARCHAR(50),
		year_founded INTEGER,
		arena        VARCHAR(100),
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS players (
		player_id  INTEGER PRIMARY KEY,
		full_name  VARCHAR(100) NOT NULL,
		first_name VARCHAR(50),
		last_name  VARCHAR(50),
		is_active  BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS games (
		game_id      VARCHAR(20) PRIMARY KEY,
		game_date    DATE,
		season_id    VARCHAR(10) NOT NULL,
		matchup      VARCHAR(50),
		home_team_id INTEGER REFERENCES teams(team_id),
		away_team_id INTEGER REFERENCES teams(team_id),
		home_pts     INTEGER,
		away_pts     INTEGER,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_games_season ON games(season_id)`,
	`CREATE TABLE IF NOT EXISTS player_game_stats (
		game_id    VARCHAR(20) NOT NULL REFERENCES games(game_id),
		player_id  INTEGER NOT NULL REFERENCES players(player_id),
		team_id    INTEGER REFERENCES teams(team_id),
		minutes    VARCHAR(10),
		pts        INTEGER,
		reb        INTEGER,
		ast        INTEGER,
		stl        INTEGER,
		blk        INTEGER,
		tov        INTEGER,
		pf         INTEGER,
		plus_minus DOUBLE PRECISION,
		fgm        INTEGER,
		fga        INTEGER,
		fg_pct     DOUBLE PRECISION,
		fg3m       INTEGER,
		fg3a       INTEGER,
		fg3_pct    DOUBLE PRECISION,
		ftm        INTEGER,
		fta        INTEGER,
		ft_pct     DOUBLE PRECISION,
		off_rating DOUBLE PRECISION,
		def_rating DOUBLE PRECISION,
		net_rating DOUBLE PRECISION,
		usg_pct    DOUBLE PRECISION,
		pace       DOUBLE PRECISION,
		pie        DOUBLE PRECISION,
		PRIMARY KEY (game_id, player_id)
	)`,
	`CREATE TABLE IF NOT EXISTS play_by_play (
		game_id     VARCHAR(20) NOT NULL REFERENCES games(game_id),
		event_num   INTEGER NOT NULL,
		period      INTEGER,
		clock       VARCHAR(20),
		team_id     INTEGER,
		player_id   INTEGER,
		action_type VARCHAR(50),
		sub_type    VARCHAR(50),
		description VARCHAR(255),
		shot_result VARCHAR(20),
		loc_x       INTEGER,
		loc_y       INTEGER,
		score_home  INTEGER,
		score_away  INTEGER,
		PRIMARY KEY (game_id, event_num)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_pbp_period ON play_by_play(game_id, period)`,
	`CREATE TABLE IF NOT EXISTS hustle_stats (
		game_id               VARCHAR(20) NOT NULL REFERENCES games(game_id),
		player_id             INTEGER NOT NULL,
		team_id               INTEGER,
		screen_assists        INTEGER,
		deflections           INTEGER,
		loose_balls_recovered INTEGER,
		charges_drawn         INTEGER,
		contested_shots       INTEGER,
		box_outs              INTEGER,
		PRIMARY KEY (game_id, player_id)
	)`,
	`CREATE TABLE IF NOT EXISTS tracking_stats (
		game_id       VARCHAR(20) NOT NULL REFERENCES games(game_id),
		player_id     INTEGER NOT NULL,
		dist_miles    DOUBLE PRECISION,
		avg_speed     DOUBLE PRECISION,
		avg_speed_off DOUBLE PRECISION,
		avg_speed_def DOUBLE PRECISION,
		PRIMARY KEY (game_id, player_id)
	)`,
	`CREATE TABLE IF NOT EXISTS game_rotations (
		row_id        SERIAL PRIMARY KEY,
		game_id       VARCHAR(20) NOT NULL REFERENCES games(game_id),
		player_id     INTEGER,
		team_id       INTEGER,
		in_time_real  DOUBLE PRECISION,
		out_time_real DOUBLE PRECISION,
		pt_diff       DOUBLE PRECISION
	)`,
	`CREATE INDEX IF NOT EXISTS idx_rotations_game ON game_rotations(game_id)`,
	`CREATE TABLE IF NOT EXISTS player_matchups (
		game_id         VARCHAR(20) NOT NULL REFERENCES games(game_id),
		off_player_id   INTEGER NOT NULL,
		def_player_id   INTEGER NOT NULL,
		matchup_minutes DOUBLE PRECISION,
		points_allowed  INTEGER,
		matchup_ast     INTEGER,
		matchup_tov     INTEGER,
		matchup_blk     INTEGER,
		PRIMARY KEY (game_id, off_player_id, def_player_id)
	)`,
}

// dropOrder drops dependents before their referenced tables.
var dropOrder = []string{
	"player_matchups",
	"game_rotations",
	"tracking_stats",
	"hustle_stats",
	"play_by_play",
	"player_game_stats",
	"games",
	"players",
	"teams",
}

// CreateAll creates every table and index, idempotently.
func (s *SchemaManager) CreateAll(ctx context.Context) error {
	for _, stmt := range createStatements {
		if _, err := s.db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	log.Info().Msg("Schema created")
	return nil
}

// DropAll drops every table. Intended for tests and full rebuilds.
func (s *SchemaManager) DropAll(ctx context.Context) error {
	for _, table := range dropOrder {
		if _, err := s.db.Pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to drop %s: %w", table, err)
		}
	}
	log.Info().Msg("Schema dropped")
	return nil
}
