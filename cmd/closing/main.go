// Command closing builds the closing-ability dataset from stored
// play-by-play and ranks every team by how it finishes games relative
// to its third-quarter position.
package main

import (
	"context"
	"math"
	"os"
	"strconv"
	"time"

	"nba_analysis/internal/closing"
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
		log.Error().Msg("Empty closing dataset, nothing to analyze")
		return
	}
	log.Info().Int("observations", len(data)).Msg("Closing dataset built")

	x, y := closing.Leads(data)

	// Family showdown: which functional form best maps a Q3 lead to
	// the final margin over the whole league.
	families, winner := model.CompareFamilies(x, y, 5, cfg.RandomSeed)
	for _, f := range families {
		if math.IsNaN(f.R2) {
			log.Warn().Str("family", f.Name).Msg("Family failed to fit")
			continue
		}
		log.Info().Str("family", f.Name).Float64("cv_mse", f.CVMSE).Float64("r2", f.R2).Msg("Family scored")
	}
	if winner >= 0 {
		log.Info().Str("family", families[winner].Name).Msg("Best family by cross-validated MSE")
	}

	// Degree tuning by held-out error, then the baseline used for
	// residuals.
	degrees, bestDegree, err := model.TunePolynomial(x, y, []int{1, 2, 3, 4, 5}, 5, cfg.RandomSeed)
	if err != nil {
		log.Fatal().Err(err).Msg("Degree tuning failed")
	}
	for _, d := range degrees {
		log.Info().Int("degree", d.Degree).Float64("cv_mse", d.CVMSE).Float64("r2", d.R2).Msg("Degree scored")
	}
	log.Info().Int("degree", bestDegree).Msg("Best degree by cross-validated MSE")

	baseline, err := model.FitPolynomial(x, y, bestDegree)
	if err != nil {
		log.Fatal().Err(err).Msg("Baseline fit failed")
	}

	obs := closing.Residuals(data, baseline.Predict)
	ranks := closing.RankTeams(obs)
	profiles := closing.SituationProfiles(obs)

	for i, r := range ranks {
		if i < 5 || i >= len(ranks)-5 {
			log.Info().
				Int("rank", i+1).
				Str("team", r.Team).
				Int("games", r.Games).
				Float64("mean_residual", r.MeanResidual).
				Msg("Team closing rank")
		}
	}

	fits := model.FitTeams(data, cfg.MinTeamGames, cfg.RandomSeed)

	w := report.NewWriter(cfg.ReportsDir)
	if err := w.WriteRankings(cfg.RankingsFile, ranks); err != nil {
		log.Fatal().Err(err).Msg("Failed to write rankings report")
	}
	if err := w.WriteSituations(cfg.SituationsFile, profiles); err != nil {
		log.Fatal().Err(err).Msg("Failed to write situations report")
	}
	if err := w.WriteTeamFits(cfg.TeamFitsFile, fits); err != nil {
		log.Fatal().Err(err).Msg("Failed to write team fits report")
	}

	log.Info().Msg("Closing analysis complete")
}
