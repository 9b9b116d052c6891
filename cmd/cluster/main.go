// Command cluster groups teams into closing archetypes: teams whose
// situation-bucket residual profiles look alike land in the same
// cluster.
package main

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"nba_analysis/internal/closing"
	"nba_analysis/internal/cluster"
	"nba_analysis/internal/config"
	"nba_analysis/internal/model"
	"nba_analysis/internal/report"
	"nba_analysis/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	cfg := config.MustLoad()
	ctx := context.Background()

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

	builder := closing.NewDatasetBuilder(db.PlayByPlay)
	data := builder.Build(ctx, cfg.SeasonIDs)
	if len(data) == 0 {
		log.Error().Msg("Empty closing dataset, nothing to cluster")
		return
	}

	x, y := closing.Leads(data)
	baseline, err := model.FitLinear(x, y)
	if err != nil {
		log.Fatal().Err(err).Msg("Baseline fit failed")
	}

	obs := closing.Residuals(data, baseline.Predict)
	profiles := closing.SituationProfiles(obs)
	fits := model.FitTeams(data, cfg.MinTeamGames, cfg.RandomSeed)

	rows := cluster.BuildFeatures(profiles, fits)
	if len(rows) < cfg.NumClusters {
		log.Fatal().
			Int("teams", len(rows)).
			Int("clusters", cfg.NumClusters).
			Msg("Not enough teams with full profiles to cluster")
	}

	features := make([][]float64, len(rows))
	for i, r := range rows {
		features[i] = r.Vector
	}

	scaler, err := cluster.FitScaler(features)
	if err != nil {
		log.Fatal().Err(err).Msg("Standardization failed")
	}

	engine := cluster.NewEngine(cfg.NumClusters, cfg.RandomSeed)
	result, err := engine.Fit(scaler.Transform(features))
	if err != nil {
		log.Fatal().Err(err).Msg("Clustering failed")
	}

	archetypes := cluster.Archetypes(rows, result, scaler)
	for _, a := range archetypes {
		log.Info().
			Int("cluster", a.Cluster).
			Str("teams", strings.Join(a.Teams, ", ")).
			Str("strongest", a.Strongest.String()).
			Str("weakest", a.Weakest.String()).
			Msg("Closing archetype")
	}

	w := report.NewWriter(cfg.ReportsDir)
	if err := w.WriteClusters(cfg.ClustersFile, archetypes); err != nil {
		log.Fatal().Err(err).Msg("Failed to write cluster report")
	}

	log.Info().Msg("Cluster analysis complete")
}
