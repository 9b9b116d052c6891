package closing

import "sort"

// Observation is a TeamGameMargin scored against the league baseline.
type Observation struct {
	TeamGameMargin
	Expected float64
	Residual float64
}

// Residuals scores every record against a baseline prediction function.
// Residual = observed final result minus the baseline's expectation for
// the same Q3 lead.
func Residuals(data []TeamGameMargin, predict func(float64) float64) []Observation {
	obs := make([]Observation, len(data))
	for i, d := range data {
		expected := predict(d.Q3Lead)
		obs[i] = Observation{
			TeamGameMargin: d,
			Expected:       expected,
			Residual:       d.FinalResult - expected,
		}
	}
	return obs
}

// TeamRank is a team's mean residual over all its observations.
type TeamRank struct {
	Team         string
	Games        int
	MeanResidual float64
}

// RankTeams aggregates mean residual by team, sorted descending. The
// best closers are at the front and the worst at the back; there is one
// sorted sequence, read from both ends.
func RankTeams(obs []Observation) []TeamRank {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, o := range obs {
		sums[o.Team] += o.Residual
		counts[o.Team]++
	}

	ranks := make([]TeamRank, 0, len(sums))
	for team, sum := range sums {
		ranks = append(ranks, TeamRank{
			Team:         team,
			Games:        counts[team],
			MeanResidual: sum / float64(counts[team]),
		})
	}

	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].MeanResidual != ranks[j].MeanResidual {
			return ranks[i].MeanResidual > ranks[j].MeanResidual
		}
		return ranks[i].Team < ranks[j].Team
	})

	return ranks
}

// TeamSituationProfile is a team's mean residual per situation bucket.
// Buckets with no observations stay at zero so feature vectors remain
// fixed-width.
type TeamSituationProfile struct {
	Team   string
	Mean   [NumSituations]float64
	Counts [NumSituations]int
}

// SituationProfiles aggregates mean residual by (team, situation),
// sorted by team name.
func SituationProfiles(obs []Observation) []TeamSituationProfile {
	type acc struct {
		sums   [NumSituations]float64
		counts [NumSituations]int
	}

	byTeam := make(map[string]*acc)
	for _, o := range obs {
		a, ok := byTeam[o.Team]
		if !ok {
			a = &acc{}
			byTeam[o.Team] = a
		}
		s := SituationFor(o.Q3Lead)
		a.sums[s] += o.Residual
		a.counts[s]++
	}

	teams := make([]string, 0, len(byTeam))
	for team := range byTeam {
		teams = append(teams, team)
	}
	sort.Strings(teams)

	profiles := make([]TeamSituationProfile, 0, len(teams))
	for _, team := range teams {
		a := byTeam[team]
		p := TeamSituationProfile{Team: team, Counts: a.counts}
		for s := 0; s < NumSituations; s++ {
			if a.counts[s] > 0 {
				p.Mean[s] = a.sums[s] / float64(a.counts[s])
			}
		}
		profiles = append(profiles, p)
	}

	return profiles
}
