package ingest

import (
	"context"
	"fmt"
	"time"

	"nba_analysis/internal/cache"
	"nba_analysis/internal/client"
	"nba_analysis/internal/config"
	"nba_analysis/internal/metrics"
	"nba_analysis/internal/models"
	"nba_analysis/internal/repository"

	"github.com/rs/zerolog/log"
)

// Ingester pulls the season schedule and per-game data from the stats
// API into Postgres. Ingestion is idempotent per game: prior rows are
// cleared before reinsert, so a crashed run can simply be restarted.
type Ingester struct {
	cfg    *config.Config
	client *client.Client
	db     *repository.Database
	cache  *cache.RedisCache
}

func NewIngester(cfg *config.Config, c *client.Client, db *repository.Database, rc *cache.RedisCache) *Ingester {
	return &Ingester{cfg: cfg, client: c, db: db, cache: rc}
}

// Run syncs the schedule, then ingests every completed game not yet in
// the store. Individual game failures do not stop the run; the game is
// recorded as failed and the loop moves on.
func (i *Ingester) Run(ctx context.Context) error {
	start := time.Now()

	games, err := i.SyncSchedule(ctx)
	if err != nil {
		metrics.RecordIngestRun(time.Since(start).Seconds(), false)
		return fmt.Errorf("schedule sync failed: %w", err)
	}

	ingested, err := i.db.Games.IngestedGameIDs(ctx)
	if err != nil {
		metrics.RecordIngestRun(time.Since(start).Seconds(), false)
		return fmt.Errorf("loading ingested game set: %w", err)
	}

	var pending []*models.Game
	for _, g := range games {
		if !g.IsCompleted() || ingested[g.GameID] {
			continue
		}
		if i.cache.IsIngested(ctx, g.GameID) {
			continue
		}
		pending = append(pending, g)
	}

	log.Info().
		Int("scheduled", len(games)).
		Int("already_ingested", len(ingested)).
		Int("pending", len(pending)).
		Msg("Starting game ingestion")

	failed := 0
	for n, g := range pending {
		if err := ctx.Err(); err != nil {
			metrics.RecordIngestRun(time.Since(start).Seconds(), false)
			return err
		}

		if err := i.IngestGame(ctx, g.GameID); err != nil {
			failed++
			metrics.RecordGameIngested("failed")
			log.Error().Err(err).Str("game_id", g.GameID).Msg("Game ingestion failed")
		} else {
			metrics.RecordGameIngested("success")
			i.cache.MarkIngested(ctx, g.GameID, i.cfg.CacheTTLIngested)
		}

		// Pause between games so the upstream API sees a browsing
		// cadence rather than a crawler.
		if n < len(pending)-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(i.cfg.GamePause):
			}
		}
	}

	i.updateStoreStats(ctx)
	metrics.RecordIngestRun(time.Since(start).Seconds(), failed == 0)

	log.Info().
		Int("ingested", len(pending)-failed).
		Int("failed", failed).
		Dur("elapsed", time.Since(start)).
		Msg("Ingestion run complete")
	return nil
}

// SyncSchedule fetches the season's game list, upserts the teams and
// games it names, and returns the games. The game finder emits one row
// per team per game; rows are paired by game ID into home/away sides.
func (i *Ingester) SyncSchedule(ctx context.Context) ([]*models.Game, error) {
	rows, err := i.client.LeagueGameFinder(ctx, i.cfg.Season, i.cfg.SeasonType)
	if err != nil {
		return nil, fmt.Errorf("fetching schedule: %w", err)
	}

	type pair struct{ home, away client.Row }
	pairs := make(map[string]*pair)
	var order []string
	for _, row := range rows {
		gameID := row.Str("game_id")
		if gameID == "" {
			continue
		}
		p, ok := pairs[gameID]
		if !ok {
			p = &pair{}
			pairs[gameID] = p
			order = append(order, gameID)
		}
		if models.IsHomeScheduleRow(row) {
			p.home = row
		} else {
			p.away = row
		}

		if err := i.db.Teams.Upsert(ctx, models.TeamFromScheduleRow(row)); err != nil {
			return nil, err
		}
	}

	var games []*models.Game
	for _, gameID := range order {
		p := pairs[gameID]
		if p.home == nil || p.away == nil {
			// Neutral-site or malformed listings can miss a side.
			log.Warn().Str("game_id", gameID).Msg("Unpaired schedule row, skipping game")
			continue
		}
		g := models.GameFromScheduleRows(p.home, p.away)
		if err := i.db.Games.Upsert(ctx, g); err != nil {
			return nil, err
		}
		games = append(games, g)
	}

	log.Info().Int("games", len(games)).Str("season", i.cfg.Season).Msg("Schedule synced")
	return games, nil
}

// IngestGame fetches every per-game endpoint and stores the results.
// Transient upstream failures retry the whole game with a long pause;
// terminal failures on the core endpoints fail the game, while the
// supplemental endpoints (hustle, rotations, matchups) are allowed to
// be missing.
func (i *Ingester) IngestGame(ctx context.Context, gameID string) error {
	retry := client.NewRetryController(i.cfg.RetryMaxAttempts, i.cfg.RetryBasePause)
	return retry.Run(ctx, func(ctx context.Context) error {
		return i.ingestGameOnce(ctx, gameID)
	})
}

func (i *Ingester) ingestGameOnce(ctx context.Context, gameID string) error {
	log.Info().Str("game_id", gameID).Msg("Ingesting game")

	if err := i.db.GameData.DeleteGame(ctx, gameID); err != nil {
		return err
	}

	stats, err := i.fetchBoxScore(ctx, gameID)
	if err != nil {
		return err
	}
	if err := i.db.Stats.InsertBatch(ctx, stats); err != nil {
		return err
	}
	i.pause(ctx)

	pbpRows, err := i.client.PlayByPlay(ctx, gameID)
	if err != nil {
		return err
	}
	events := make([]*models.PlayByPlayEvent, 0, len(pbpRows))
	for _, row := range pbpRows {
		events = append(events, models.PlayByPlayFromRow(gameID, row))
	}
	if err := i.db.PlayByPlay.InsertBatch(ctx, events); err != nil {
		return err
	}
	i.pause(ctx)

	i.ingestSupplemental(ctx, gameID)

	log.Info().
		Str("game_id", gameID).
		Int("stats", len(stats)).
		Int("events", len(events)).
		Msg("Game stored")
	return nil
}

// fetchBoxScore pulls the traditional and advanced box scores, merges
// them into one line per player, and upserts the players they name.
func (i *Ingester) fetchBoxScore(ctx context.Context, gameID string) ([]*models.PlayerGameStats, error) {
	tradRows, err := i.client.BoxScoreTraditional(ctx, gameID)
	if err != nil {
		return nil, err
	}
	i.pause(ctx)

	byPlayer := make(map[int]*models.PlayerGameStats)
	var order []int
	for _, row := range tradRows {
		s := models.PlayerGameStatsFromRow(gameID, row)
		if s.PlayerID == 0 {
			continue
		}
		if err := i.db.Players.Upsert(ctx, models.PlayerFromBoxScoreRow(row)); err != nil {
			return nil, err
		}
		byPlayer[s.PlayerID] = s
		order = append(order, s.PlayerID)
	}

	advRows, err := i.client.BoxScoreAdvanced(ctx, gameID)
	if err != nil {
		return nil, err
	}
	for _, row := range advRows {
		if s, ok := byPlayer[row.Int("player_id")]; ok {
			s.MergeAdvanced(row)
		}
	}

	stats := make([]*models.PlayerGameStats, 0, len(order))
	for _, id := range order {
		stats = append(stats, byPlayer[id])
	}
	return stats, nil
}

// ingestSupplemental fetches the optional endpoints. Failures here are
// logged and dropped: a game without hustle or matchup data is still a
// usable game.
func (i *Ingester) ingestSupplemental(ctx context.Context, gameID string) {
	if rows, err := i.client.HustleStats(ctx, gameID); err != nil {
		i.logSupplemental(err, gameID, "hustle")
	} else {
		hustle := make([]*models.HustleStats, 0, len(rows))
		tracking := make([]*models.TrackingStats, 0, len(rows))
		for _, row := range rows {
			hustle = append(hustle, models.HustleStatsFromRow(gameID, row))
			if row.Has("dist_miles") {
				tracking = append(tracking, models.TrackingStatsFromRow(gameID, row))
			}
		}
		if err := i.db.GameData.InsertHustle(ctx, hustle); err != nil {
			log.Error().Err(err).Str("game_id", gameID).Msg("Failed to store hustle stats")
		}
		if len(tracking) > 0 {
			if err := i.db.GameData.InsertTracking(ctx, tracking); err != nil {
				log.Error().Err(err).Str("game_id", gameID).Msg("Failed to store tracking stats")
			}
		}
	}
	i.pause(ctx)

	if rows, err := i.client.GameRotation(ctx, gameID); err != nil {
		i.logSupplemental(err, gameID, "rotations")
	} else {
		rotations := make([]*models.GameRotation, 0, len(rows))
		for _, row := range rows {
			rotations = append(rotations, models.GameRotationFromRow(gameID, row))
		}
		if err := i.db.GameData.InsertRotations(ctx, rotations); err != nil {
			log.Error().Err(err).Str("game_id", gameID).Msg("Failed to store rotations")
		}
	}
	i.pause(ctx)

	if rows, err := i.client.PlayerMatchups(ctx, gameID); err != nil {
		i.logSupplemental(err, gameID, "matchups")
	} else {
		var matchups []*models.PlayerMatchup
		for _, row := range rows {
			if m := models.PlayerMatchupFromRow(gameID, row); m != nil {
				matchups = append(matchups, m)
			}
		}
		if err := i.db.GameData.InsertMatchups(ctx, matchups); err != nil {
			log.Error().Err(err).Str("game_id", gameID).Msg("Failed to store matchups")
		}
	}
}

func (i *Ingester) logSupplemental(err error, gameID, endpoint string) {
	metrics.RecordError("ingest", endpoint)
	log.Warn().Err(err).Str("game_id", gameID).Str("endpoint", endpoint).Msg("Supplemental endpoint failed, continuing without it")
}

func (i *Ingester) pause(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(i.cfg.EndpointPause):
	}
}

func (i *Ingester) updateStoreStats(ctx context.Context) {
	games, err := i.db.Games.Count(ctx)
	if err != nil {
		return
	}
	pbp, err := i.db.PlayByPlay.Count(ctx)
	if err != nil {
		return
	}
	metrics.UpdateStoreStats(int64(games), int64(pbp))
}
