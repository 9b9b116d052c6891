package repository

import (
	"context"
	"fmt"

	"nba_analysis/internal/models"
)

// StatsRepository handles player box score database operations
type StatsRepository struct {
	db *Database
}

// InsertBatch inserts a game's merged box score lines. Prior lines for
// the game are deleted by the caller before insert.
func (r *StatsRepository) InsertBatch(ctx context.Context, stats []*models.PlayerGameStats) error {
	query := `
		INSERT INTO player_game_stats (
			game_id, player_id, team_id, minutes,
			pts, reb, ast, stl, blk, tov, pf, plus_minus,
			fgm, fga, fg_pct, fg3m, fg3a, fg3_pct, ftm, fta, ft_pct,
			off_rating, def_rating, net_rating, usg_pct, pace, pie
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		        $13, $14, $15, $16, $17, $18, $19, $20, $21,
		        $22, $23, $24, $25, $26, $27)
	`

	for _, s := range stats {
		_, err := r.db.Pool.Exec(ctx, query,
			s.GameID, s.PlayerID, s.TeamID, s.Minutes,
			s.Pts, s.Reb, s.Ast, s.Stl, s.Blk, s.Tov, s.Pf, s.PlusMinus,
			s.Fgm, s.Fga, s.FgPct, s.Fg3m, s.Fg3a, s.Fg3Pct, s.Ftm, s.Fta, s.FtPct,
			s.OffRating, s.DefRating, s.NetRating, s.UsgPct, s.Pace, s.Pie,
		)
		if err != nil {
			return fmt.Errorf("failed to insert stats for player %d game %s: %w", s.PlayerID, s.GameID, err)
		}
	}
	return nil
}

// DeleteByGame removes all of a game's box score lines.
func (r *StatsRepository) DeleteByGame(ctx context.Context, gameID string) error {
	_, err := r.db.Pool.Exec(ctx, "DELETE FROM player_game_stats WHERE game_id = $1", gameID)
	if err != nil {
		return fmt.Errorf("failed to delete stats for game %s: %w", gameID, err)
	}
	return nil
}

// Count returns the total number of stored box score lines.
func (r *StatsRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM player_game_stats").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count stats: %w", err)
	}
	return count, nil
}
