package repository

import (
	"context"
	"fmt"

	"nba_analysis/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// GameRepository handles game database operations
type GameRepository struct {
	db *Database
}

// Upsert inserts or updates a game
func (r *GameRepository) Upsert(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (
			game_id, game_date, season_id, matchup,
			home_team_id, away_team_id, home_pts, away_pts
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (game_id) DO UPDATE SET
			game_date = EXCLUDED.game_date,
			season_id = EXCLUDED.season_id,
			matchup = EXCLUDED.matchup,
			home_team_id = EXCLUDED.home_team_id,
			away_team_id = EXCLUDED.away_team_id,
			home_pts = EXCLUDED.home_pts,
			away_pts = EXCLUDED.away_pts,
			updated_at = NOW()
	`

	_, err := r.db.Pool.Exec(ctx, query,
		game.GameID, game.GameDate, game.SeasonID, game.Matchup,
		game.HomeTeamID, game.AwayTeamID, game.HomePts, game.AwayPts,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}

	log.Debug().
		Str("game_id", game.GameID).
		Str("matchup", game.Matchup).
		Msg("Game upserted")

	return nil
}

// GetByID retrieves a game by its league game ID
func (r *GameRepository) GetByID(ctx context.Context, gameID string) (*models.Game, error) {
	query := `
		SELECT game_id, game_date, season_id, matchup,
		       home_team_id, away_team_id, home_pts, away_pts,
		       created_at, updated_at
		FROM games
		WHERE game_id = $1
	`

	var game models.Game
	err := r.db.Pool.QueryRow(ctx, query, gameID).Scan(
		&game.GameID, &game.GameDate, &game.SeasonID, &game.Matchup,
		&game.HomeTeamID, &game.AwayTeamID, &game.HomePts, &game.AwayPts,
		&game.CreatedAt, &game.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("game not found: game_id=%s", gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return &game, nil
}

// GetBySeason retrieves all games for a season ID ordered by date
func (r *GameRepository) GetBySeason(ctx context.Context, seasonID string) ([]*models.Game, error) {
	query := `
		SELECT game_id, game_date, season_id, matchup,
		       home_team_id, away_team_id, home_pts, away_pts,
		       created_at, updated_at
		FROM games
		WHERE season_id = $1
		ORDER BY game_date, game_id
	`

	rows, err := r.db.Pool.Query(ctx, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get games by season: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		var game models.Game
		err := rows.Scan(
			&game.GameID, &game.GameDate, &game.SeasonID, &game.Matchup,
			&game.HomeTeamID, &game.AwayTeamID, &game.HomePts, &game.AwayPts,
			&game.CreatedAt, &game.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, &game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games: %w", err)
	}

	return games, nil
}

// IngestedGameIDs returns the IDs of games that already have box score
// rows stored. Used to diff the schedule against prior ingest runs.
func (r *GameRepository) IngestedGameIDs(ctx context.Context) (map[string]bool, error) {
	query := `SELECT DISTINCT game_id FROM player_game_stats`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get ingested game IDs: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan game ID: %w", err)
		}
		ids[id] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating game IDs: %w", err)
	}

	return ids, nil
}

// Count returns the total number of games
func (r *GameRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM games`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}
	return count, nil
}
