package repository

import (
	"context"
	"fmt"

	"nba_analysis/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// TeamRepository handles team database operations
type TeamRepository struct {
	db *Database
}

// Upsert inserts or updates a team
func (r *TeamRepository) Upsert(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (team_id, abbreviation, nickname, city, state, year_founded, arena)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (team_id) DO UPDATE SET
			abbreviation = EXCLUDED.abbreviation,
			nickname = COALESCE(EXCLUDED.nickname, teams.nickname),
			city = COALESCE(EXCLUDED.city, teams.city),
			state = COALESCE(EXCLUDED.state, teams.state),
			year_founded = COALESCE(EXCLUDED.year_founded, teams.year_founded),
			arena = COALESCE(EXCLUDED.arena, teams.arena),
			updated_at = NOW()
	`

	_, err := r.db.Pool.Exec(ctx, query,
		team.TeamID, team.Abbreviation, team.Nickname, team.City,
		team.State, team.YearFounded, team.Arena,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert team: %w", err)
	}

	log.Debug().
		Int("team_id", team.TeamID).
		Str("abbr", team.Abbreviation).
		Msg("Team upserted")

	return nil
}

// GetByID retrieves a team by its league team ID
func (r *TeamRepository) GetByID(ctx context.Context, teamID int) (*models.Team, error) {
	query := `
		SELECT team_id, abbreviation, nickname, city, state, year_founded, arena,
		       created_at, updated_at
		FROM teams
		WHERE team_id = $1
	`

	var team models.Team
	err := r.db.Pool.QueryRow(ctx, query, teamID).Scan(
		&team.TeamID, &team.Abbreviation, &team.Nickname, &team.City,
		&team.State, &team.YearFounded, &team.Arena,
		&team.CreatedAt, &team.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("team not found: team_id=%d", teamID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return &team, nil
}

// ListAll retrieves all teams ordered by abbreviation
func (r *TeamRepository) ListAll(ctx context.Context) ([]*models.Team, error) {
	query := `
		SELECT team_id, abbreviation, nickname, city, state, year_founded, arena,
		       created_at, updated_at
		FROM teams
		ORDER BY abbreviation
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []*models.Team
	for rows.Next() {
		var team models.Team
		err := rows.Scan(
			&team.TeamID, &team.Abbreviation, &team.Nickname, &team.City,
			&team.State, &team.YearFounded, &team.Arena,
			&team.CreatedAt, &team.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, &team)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teams: %w", err)
	}

	return teams, nil
}

// Count returns the total number of teams
func (r *TeamRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM teams`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count teams: %w", err)
	}
	return count, nil
}
