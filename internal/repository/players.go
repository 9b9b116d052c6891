package repository

import (
	"context"
	"fmt"

	"nba_analysis/internal/models"

	"github.com/jackc/pgx/v5"
)

// PlayerRepository handles player database operations
type PlayerRepository struct {
	db *Database
}

// Upsert inserts or updates a player
func (r *PlayerRepository) Upsert(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (player_id, full_name, first_name, last_name, is_active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (player_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			first_name = COALESCE(EXCLUDED.first_name, players.first_name),
			last_name = COALESCE(EXCLUDED.last_name, players.last_name),
			is_active = EXCLUDED.is_active,
			updated_at = NOW()
	`

	_, err := r.db.Pool.Exec(ctx, query,
		player.PlayerID, player.FullName, player.FirstName, player.LastName, player.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert player: %w", err)
	}

	return nil
}

// GetByID retrieves a player by its league person ID
func (r *PlayerRepository) GetByID(ctx context.Context, playerID int) (*models.Player, error) {
	query := `
		SELECT player_id, full_name, first_name, last_name, is_active, created_at, updated_at
		FROM players
		WHERE player_id = $1
	`

	var player models.Player
	err := r.db.Pool.QueryRow(ctx, query, playerID).Scan(
		&player.PlayerID, &player.FullName, &player.FirstName, &player.LastName,
		&player.IsActive, &player.CreatedAt, &player.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("player not found: player_id=%d", playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return &player, nil
}

// Count returns the total number of players
func (r *PlayerRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM players`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}
