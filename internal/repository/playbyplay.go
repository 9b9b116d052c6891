package repository

import (
	"context"
	"fmt"
	"time"

	"nba_analysis/internal/closing"
	"nba_analysis/internal/metrics"
	"nba_analysis/internal/models"
)

// PlayByPlayRepository handles play-by-play event database operations
type PlayByPlayRepository struct {
	db *Database
}

// InsertBatch inserts a game's events. Callers delete the game's prior
// events first, so a plain insert keeps reruns from silently merging
// two fetches of the same game.
func (r *PlayByPlayRepository) InsertBatch(ctx context.Context, events []*models.PlayByPlayEvent) error {
	query := `
		INSERT INTO play_by_play (
			game_id, event_num, period, clock, team_id, player_id,
			action_type, sub_type, description, shot_result,
			loc_x, loc_y, score_home, score_away
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	start := time.Now()
	for _, e := range events {
		_, err := r.db.Pool.Exec(ctx, query,
			e.GameID, e.EventNum, e.Period, e.Clock, e.TeamID, e.PlayerID,
			e.ActionType, e.SubType, e.Description, e.ShotResult,
			e.LocX, e.LocY, e.ScoreHome, e.ScoreAway,
		)
		if err != nil {
			metrics.RecordDBQuery("insert", "play_by_play", "error", time.Since(start).Seconds())
			return fmt.Errorf("failed to insert event %d for game %s: %w", e.EventNum, e.GameID, err)
		}
	}
	metrics.RecordDBQuery("insert", "play_by_play", "success", time.Since(start).Seconds())
	return nil
}

// DeleteByGame removes all of a game's events.
func (r *PlayByPlayRepository) DeleteByGame(ctx context.Context, gameID string) error {
	_, err := r.db.Pool.Exec(ctx, "DELETE FROM play_by_play WHERE game_id = $1", gameID)
	if err != nil {
		return fmt.Errorf("failed to delete play-by-play for game %s: %w", gameID, err)
	}
	return nil
}

// CountByGame returns the number of stored events for a game.
func (r *PlayByPlayRepository) CountByGame(ctx context.Context, gameID string) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM play_by_play WHERE game_id = $1", gameID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count play-by-play: %w", err)
	}
	return count, nil
}

// Count returns the total number of stored events.
func (r *PlayByPlayRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM play_by_play").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count play-by-play: %w", err)
	}
	return count, nil
}

// ScoreRows streams the score-bearing event sequence for the closing
// dataset: regulation events for every game in the given seasons,
// joined to team abbreviations, ordered by game and event number so
// forward-filling sees events in game order.
func (r *PlayByPlayRepository) ScoreRows(ctx context.Context, seasonIDs []string) ([]closing.ScoreRow, error) {
	query := `
		SELECT p.game_id, ht.abbreviation, at.abbreviation,
		       p.event_num, p.period, p.score_home, p.score_away
		FROM play_by_play p
		JOIN games g  ON g.game_id = p.game_id
		JOIN teams ht ON ht.team_id = g.home_team_id
		JOIN teams at ON at.team_id = g.away_team_id
		WHERE g.season_id = ANY($1)
		  AND p.period BETWEEN 1 AND 4
		ORDER BY p.game_id, p.event_num
	`

	start := time.Now()
	rows, err := r.db.Pool.Query(ctx, query, seasonIDs)
	if err != nil {
		metrics.RecordDBQuery("select", "play_by_play", "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("failed to query score rows: %w", err)
	}
	defer rows.Close()

	var out []closing.ScoreRow
	for rows.Next() {
		var sr closing.ScoreRow
		if err := rows.Scan(
			&sr.GameID, &sr.HomeTeam, &sr.AwayTeam,
			&sr.EventNum, &sr.Period, &sr.ScoreHome, &sr.ScoreAway,
		); err != nil {
			return nil, fmt.Errorf("failed to scan score row: %w", err)
		}
		out = append(out, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read score rows: %w", err)
	}
	metrics.RecordDBQuery("select", "play_by_play", "success", time.Since(start).Seconds())
	return out, nil
}
