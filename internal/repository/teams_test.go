//go:build integration

package repository

import (
	"database/sql"
	"testing"

	"nba_analysis/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamRepository_Upsert(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	team := &models.Team{
		TeamID:       1610612738,
		Abbreviation: "BOS",
		Nickname:     sql.NullString{String: "Celtics", Valid: true},
		City:         sql.NullString{String: "Boston", Valid: true},
	}

	err := db.Teams.Upsert(ctx, team)
	require.NoError(t, err, "Should successfully insert team")

	retrieved, err := db.Teams.GetByID(ctx, team.TeamID)
	require.NoError(t, err, "Should retrieve inserted team")
	assert.Equal(t, "BOS", retrieved.Abbreviation)
	assert.Equal(t, "Celtics", retrieved.Nickname.String)

	// A sparser row must not blank out known fields.
	err = db.Teams.Upsert(ctx, &models.Team{TeamID: 1610612738, Abbreviation: "BOS"})
	require.NoError(t, err, "Should successfully update team")

	updated, err := db.Teams.GetByID(ctx, team.TeamID)
	require.NoError(t, err)
	assert.Equal(t, "Celtics", updated.Nickname.String, "Nickname survives a sparse upsert")
}

func TestTeamRepository_Count(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	require.NoError(t, db.Teams.Upsert(ctx, &models.Team{TeamID: 1, Abbreviation: "AAA"}))
	require.NoError(t, db.Teams.Upsert(ctx, &models.Team{TeamID: 2, Abbreviation: "BBB"}))
	require.NoError(t, db.Teams.Upsert(ctx, &models.Team{TeamID: 1, Abbreviation: "AAA"}))

	count, err := db.Teams.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "Upserting the same team twice counts once")
}
