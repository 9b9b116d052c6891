//go:build integration

package repository

import (
	"database/sql"
	"testing"
	"time"

	"nba_analysis/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameRepository_UpsertAndGet(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	require.NoError(t, db.Teams.Upsert(ctx, &models.Team{TeamID: 1, Abbreviation: "BOS"}))
	require.NoError(t, db.Teams.Upsert(ctx, &models.Team{TeamID: 2, Abbreviation: "NYK"}))

	game := &models.Game{
		GameID:     "0022400561",
		GameDate:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		SeasonID:   "22024",
		Matchup:    "BOS vs. NYK",
		HomeTeamID: 1,
		AwayTeamID: 2,
	}
	require.NoError(t, db.Games.Upsert(ctx, game), "Should insert scheduled game")

	retrieved, err := db.Games.GetByID(ctx, "0022400561")
	require.NoError(t, err)
	assert.False(t, retrieved.IsCompleted(), "No scores yet")

	// Scores arrive after the game finishes.
	game.HomePts = sql.NullInt32{Int32: 110, Valid: true}
	game.AwayPts = sql.NullInt32{Int32: 100, Valid: true}
	require.NoError(t, db.Games.Upsert(ctx, game), "Should update with final scores")

	final, err := db.Games.GetByID(ctx, "0022400561")
	require.NoError(t, err)
	assert.True(t, final.IsCompleted())
	assert.Equal(t, int32(110), final.HomePts.Int32)
}

func TestGameRepository_GetByID_NotFound(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	_, err := db.Games.GetByID(ctx, "does-not-exist")
	assert.Error(t, err)
}

func TestGameRepository_IngestedGameIDs(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	seedGame(t, ctx, db, "0022400561", 1, 2)
	require.NoError(t, db.Players.Upsert(ctx, &models.Player{PlayerID: 100, FullName: "Test Player"}))

	ids, err := db.Games.IngestedGameIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids, "No box scores stored yet")

	stats := []*models.PlayerGameStats{{GameID: "0022400561", PlayerID: 100}}
	require.NoError(t, db.Stats.InsertBatch(ctx, stats))

	ids, err = db.Games.IngestedGameIDs(ctx)
	require.NoError(t, err)
	assert.True(t, ids["0022400561"], "Game with stored box scores counts as ingested")
}

func TestGameDataRepository_DeleteGameClearsEverything(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	seedGame(t, ctx, db, "0022400561", 1, 2)
	require.NoError(t, db.Players.Upsert(ctx, &models.Player{PlayerID: 100, FullName: "Test Player"}))

	require.NoError(t, db.Stats.InsertBatch(ctx, []*models.PlayerGameStats{
		{GameID: "0022400561", PlayerID: 100},
	}))
	require.NoError(t, db.PlayByPlay.InsertBatch(ctx, []*models.PlayByPlayEvent{
		{GameID: "0022400561", EventNum: 1, Period: 1},
	}))
	require.NoError(t, db.GameData.InsertHustle(ctx, []*models.HustleStats{
		{GameID: "0022400561", PlayerID: 100},
	}))

	require.NoError(t, db.GameData.DeleteGame(ctx, "0022400561"))

	pbp, err := db.PlayByPlay.CountByGame(ctx, "0022400561")
	require.NoError(t, err)
	assert.Equal(t, 0, pbp)

	ids, err := db.Games.IngestedGameIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids, "Delete-then-reinsert starts from a clean slate")

	// The game row itself survives; only per-game detail is cleared.
	_, err = db.Games.GetByID(ctx, "0022400561")
	assert.NoError(t, err)
}
