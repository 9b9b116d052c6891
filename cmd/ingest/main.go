// Command ingest runs a single ingestion pass: schedule sync plus
// per-game fetch for every completed game not yet stored, then exits.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"nba_analysis/internal/cache"
	"nba_analysis/internal/client"
	"nba_analysis/internal/config"
	"nba_analysis/internal/ingest"
	"nba_analysis/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	gameID := flag.String("game", "", "ingest a single game by ID instead of the full pending set")
	rebuild := flag.Bool("rebuild-schema", false, "drop and recreate all tables before ingesting")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	cfg := config.MustLoad()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info().Msg("Interrupted, finishing current game then exiting...")
		cancel()
	}()

	db, err := repository.NewDatabase(ctx, repository.Config{
		Host:     cfg.DatabaseHost,
		Port:     strconv.Itoa(cfg.DatabasePort),
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		Database: cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if *rebuild {
		log.Info().Msg("Rebuilding schema...")
		if err := db.Schema.DropAll(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to drop schema")
		}
	}
	if err := db.Schema.CreateAll(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to create schema")
	}

	redisCache, err := cache.NewRedisCache(cache.Config{
		Host:     cfg.RedisHost,
		Port:     strconv.Itoa(cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable - continuing without cache")
		redisCache = nil
	} else {
		defer redisCache.Close()
	}

	// A rebuilt store has no games, so the markers from previous runs
	// no longer describe it.
	if *rebuild {
		if err := redisCache.FlushIngested(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to flush ingested-game markers")
		}
	}

	statsClient := client.NewClient(cfg.NBAStatsBaseURL, cfg.NBAStatsTimeout, cfg.APIRateLimit, cfg.APIBurst)
	ingester := ingest.NewIngester(cfg, statsClient, db, redisCache)

	if *gameID != "" {
		log.Info().Str("game_id", *gameID).Msg("Ingesting single game")
		if err := ingester.IngestGame(ctx, *gameID); err != nil {
			log.Fatal().Err(err).Msg("Game ingestion failed")
		}
		log.Info().Msg("Game ingested")
		return
	}

	if err := ingester.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Ingestion run failed")
	}
}
