package repository

import (
	"context"
	"fmt"

	"nba_analysis/internal/models"
)

// GameDataRepository handles the supplemental per-game tables: hustle,
// tracking, rotations and matchups.
type GameDataRepository struct {
	db *Database
}

// DeleteGame removes every per-game row for gameID across all
// dependent tables, so a re-ingest starts from a clean slate. Order
// matters only for readability; none of these tables reference each
// other.
func (r *GameDataRepository) DeleteGame(ctx context.Context, gameID string) error {
	tables := []string{
		"player_matchups",
		"game_rotations",
		"tracking_stats",
		"hustle_stats",
		"play_by_play",
		"player_game_stats",
	}
	for _, table := range tables {
		_, err := r.db.Pool.Exec(ctx,
			fmt.Sprintf("DELETE FROM %s WHERE game_id = $1", table), gameID)
		if err != nil {
			return fmt.Errorf("failed to clear %s for game %s: %w", table, gameID, err)
		}
	}
	return nil
}

func (r *GameDataRepository) InsertHustle(ctx context.Context, rows []*models.HustleStats) error {
	query := `
		INSERT INTO hustle_stats (
			game_id, player_id, team_id, screen_assists, deflections,
			loose_balls_recovered, charges_drawn, contested_shots, box_outs
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for _, h := range rows {
		_, err := r.db.Pool.Exec(ctx, query,
			h.GameID, h.PlayerID, h.TeamID, h.ScreenAssists, h.Deflections,
			h.LooseBallsRecovered, h.ChargesDrawn, h.ContestedShots, h.BoxOuts,
		)
		if err != nil {
			return fmt.Errorf("failed to insert hustle stats for game %s: %w", h.GameID, err)
		}
	}
	return nil
}

func (r *GameDataRepository) InsertTracking(ctx context.Context, rows []*models.TrackingStats) error {
	query := `
		INSERT INTO tracking_stats (game_id, player_id, dist_miles, avg_speed, avg_speed_off, avg_speed_def)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, t := range rows {
		_, err := r.db.Pool.Exec(ctx, query,
			t.GameID, t.PlayerID, t.DistMiles, t.AvgSpeed, t.AvgSpeedOff, t.AvgSpeedDef,
		)
		if err != nil {
			return fmt.Errorf("failed to insert tracking stats for game %s: %w", t.GameID, err)
		}
	}
	return nil
}

func (r *GameDataRepository) InsertRotations(ctx context.Context, rows []*models.GameRotation) error {
	query := `
		INSERT INTO game_rotations (game_id, player_id, team_id, in_time_real, out_time_real, pt_diff)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, g := range rows {
		_, err := r.db.Pool.Exec(ctx, query,
			g.GameID, g.PlayerID, g.TeamID, g.InTimeReal, g.OutTimeReal, g.PtDiff,
		)
		if err != nil {
			return fmt.Errorf("failed to insert rotation for game %s: %w", g.GameID, err)
		}
	}
	return nil
}

func (r *GameDataRepository) InsertMatchups(ctx context.Context, rows []*models.PlayerMatchup) error {
	query := `
		INSERT INTO player_matchups (
			game_id, off_player_id, def_player_id,
			matchup_minutes, points_allowed, matchup_ast, matchup_tov, matchup_blk
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (game_id, off_player_id, def_player_id) DO NOTHING
	`
	for _, m := range rows {
		_, err := r.db.Pool.Exec(ctx, query,
			m.GameID, m.OffPlayerID, m.DefPlayerID,
			m.MatchupMinutes, m.PointsAllowed, m.MatchupAst, m.MatchupTov, m.MatchupBlk,
		)
		if err != nil {
			return fmt.Errorf("failed to insert matchup for game %s: %w", m.GameID, err)
		}
	}
	return nil
}
