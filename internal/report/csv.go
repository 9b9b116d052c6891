package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nba_analysis/internal/closing"
	"nba_analysis/internal/cluster"
	"nba_analysis/internal/model"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
)

// Writer persists analysis outputs as CSV files in a reports
// directory, creating it on first use.
type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

type rankingRow struct {
	Rank         int     `csv:"rank"`
	Team         string  `csv:"team"`
	Games        int     `csv:"games"`
	MeanResidual float64 `csv:"mean_residual"`
}

// WriteRankings writes the team closing-ability leaderboard.
func (w *Writer) WriteRankings(file string, ranks []closing.TeamRank) error {
	rows := make([]rankingRow, len(ranks))
	for i, r := range ranks {
		rows[i] = rankingRow{
			Rank:         i + 1,
			Team:         r.Team,
			Games:        r.Games,
			MeanResidual: r.MeanResidual,
		}
	}
	return w.write(file, rows)
}

type situationRow struct {
	Team      string  `csv:"team"`
	Situation string  `csv:"situation"`
	Games     int     `csv:"games"`
	MeanResid float64 `csv:"mean_residual"`
}

// WriteSituations writes one row per team per situation bucket.
func (w *Writer) WriteSituations(file string, profiles []closing.TeamSituationProfile) error {
	var rows []situationRow
	for _, p := range profiles {
		for s := 0; s < closing.NumSituations; s++ {
			rows = append(rows, situationRow{
				Team:      p.Team,
				Situation: closing.Situation(s).String(),
				Games:     p.Counts[s],
				MeanResid: p.Mean[s],
			})
		}
	}
	return w.write(file, rows)
}

type teamFitRow struct {
	Team       string  `csv:"team"`
	Games      int     `csv:"games"`
	MSEDeg1    float64 `csv:"mse_degree_1"`
	MSEDeg2    float64 `csv:"mse_degree_2"`
	MSEDeg3    float64 `csv:"mse_degree_3"`
	BestDegree int     `csv:"best_degree"`
}

// WriteTeamFits writes the per-team polynomial degree comparison.
func (w *Writer) WriteTeamFits(file string, fits []model.TeamFit) error {
	rows := make([]teamFitRow, len(fits))
	for i, f := range fits {
		rows[i] = teamFitRow{
			Team:       f.Team,
			Games:      f.Games,
			MSEDeg1:    f.MSE[0],
			MSEDeg2:    f.MSE[1],
			MSEDeg3:    f.MSE[2],
			BestDegree: f.BestDegree,
		}
	}
	return w.write(file, rows)
}

type clusterRow struct {
	Cluster   int    `csv:"cluster"`
	Teams     string `csv:"teams"`
	Strongest string `csv:"strongest_situation"`
	Weakest   string `csv:"weakest_situation"`
}

// WriteClusters writes one row per archetype with its member teams.
func (w *Writer) WriteClusters(file string, archetypes []cluster.Archetype) error {
	rows := make([]clusterRow, len(archetypes))
	for i, a := range archetypes {
		rows[i] = clusterRow{
			Cluster:   a.Cluster,
			Teams:     strings.Join(a.Teams, "|"),
			Strongest: a.Strongest.String(),
			Weakest:   a.Weakest.String(),
		}
	}
	return w.write(file, rows)
}

func (w *Writer) write(file string, rows interface{}) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("creating reports dir: %w", err)
	}
	path := filepath.Join(w.dir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(rows, f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	log.Info().Str("file", path).Msg("Report written")
	return nil
}
