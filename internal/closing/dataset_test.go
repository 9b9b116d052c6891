package closing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func TestBuildFromRows_TwoGames(t *testing.T) {
	rows := []ScoreRow{
		// Game A: home up 20 after three, wins by 10.
		{GameID: "A", HomeTeam: "BOS", AwayTeam: "NYK", EventNum: 1, Period: 3, ScoreHome: intp(80), ScoreAway: intp(60)},
		{GameID: "A", HomeTeam: "BOS", AwayTeam: "NYK", EventNum: 2, Period: 4, ScoreHome: intp(110), ScoreAway: intp(100)},
		// Game B: home down 5 after three, wins by 5.
		{GameID: "B", HomeTeam: "LAL", AwayTeam: "DEN", EventNum: 1, Period: 3, ScoreHome: intp(70), ScoreAway: intp(75)},
		{GameID: "B", HomeTeam: "LAL", AwayTeam: "DEN", EventNum: 2, Period: 4, ScoreHome: intp(105), ScoreAway: intp(100)},
	}

	data := BuildFromRows(rows)
	require.Len(t, data, 4, "Two games should yield four team-game rows")

	// Home perspectives first, in game order, then away perspectives.
	assert.Equal(t, TeamGameMargin{GameID: "A", Team: "BOS", Q3Lead: 20, FinalResult: 10}, data[0])
	assert.Equal(t, TeamGameMargin{GameID: "B", Team: "LAL", Q3Lead: -5, FinalResult: 5}, data[1])
	assert.Equal(t, TeamGameMargin{GameID: "A", Team: "NYK", Q3Lead: -20, FinalResult: -10}, data[2])
	assert.Equal(t, TeamGameMargin{GameID: "B", Team: "DEN", Q3Lead: 5, FinalResult: -5}, data[3])
}

func TestBuildFromRows_NegationInvariant(t *testing.T) {
	rows := []ScoreRow{
		{GameID: "A", HomeTeam: "BOS", AwayTeam: "NYK", EventNum: 1, Period: 3, ScoreHome: intp(81), ScoreAway: intp(77)},
		{GameID: "A", HomeTeam: "BOS", AwayTeam: "NYK", EventNum: 2, Period: 4, ScoreHome: intp(112), ScoreAway: intp(109)},
		{GameID: "B", HomeTeam: "MIA", AwayTeam: "CHI", EventNum: 1, Period: 3, ScoreHome: intp(60), ScoreAway: intp(90)},
		{GameID: "B", HomeTeam: "MIA", AwayTeam: "CHI", EventNum: 2, Period: 4, ScoreHome: intp(95), ScoreAway: intp(120)},
	}

	data := BuildFromRows(rows)
	require.Len(t, data, 4)

	n := len(data) / 2
	for i := 0; i < n; i++ {
		h, a := data[i], data[n+i]
		assert.Equal(t, h.GameID, a.GameID, "Halves should pair up by game")
		assert.Equal(t, h.Q3Lead, -a.Q3Lead, "Q3 leads should negate")
		assert.Equal(t, h.FinalResult, -a.FinalResult, "Final results should negate")
	}
}

func TestBuildFromRows_ForwardFillRepairsGaps(t *testing.T) {
	// Non-scoring events carry nil scores; the period-ending event
	// itself may be one of them. The filled running value must win.
	rows := []ScoreRow{
		{GameID: "A", HomeTeam: "BOS", AwayTeam: "NYK", EventNum: 1, Period: 3, ScoreHome: intp(82), ScoreAway: intp(79)},
		{GameID: "A", HomeTeam: "BOS", AwayTeam: "NYK", EventNum: 2, Period: 3}, // timeout, no score
		{GameID: "A", HomeTeam: "BOS", AwayTeam: "NYK", EventNum: 3, Period: 4, ScoreHome: intp(108), ScoreAway: intp(101)},
		{GameID: "A", HomeTeam: "BOS", AwayTeam: "NYK", EventNum: 4, Period: 4}, // final buzzer, no score
	}

	data := BuildFromRows(rows)
	require.Len(t, data, 2)
	assert.Equal(t, 3.0, data[0].Q3Lead, "Q3 snapshot should come from the last filled score")
	assert.Equal(t, 7.0, data[0].FinalResult)
}

func TestBuildFromRows_PartialFillAcrossSides(t *testing.T) {
	// One side of the score can lag the other; each side fills
	// independently.
	rows := []ScoreRow{
		{GameID: "A", HomeTeam: "BOS", AwayTeam: "NYK", EventNum: 1, Period: 3, ScoreHome: intp(70), ScoreAway: intp(68)},
		{GameID: "A", HomeTeam: "BOS", AwayTeam: "NYK", EventNum: 2, Period: 3, ScoreHome: intp(72)},
		{GameID: "A", HomeTeam: "BOS", AwayTeam: "NYK", EventNum: 3, Period: 4, ScoreAway: intp(90)},
		{GameID: "A", HomeTeam: "BOS", AwayTeam: "NYK", EventNum: 4, Period: 4, ScoreHome: intp(95)},
	}

	data := BuildFromRows(rows)
	require.Len(t, data, 2)
	assert.Equal(t, 4.0, data[0].Q3Lead, "72-68 at the end of the third")
	assert.Equal(t, 5.0, data[0].FinalResult, "95-90 at the final event")
}

func TestBuildFromRows_DropsGameWithoutSnapshots(t *testing.T) {
	rows := []ScoreRow{
		// Game A never produces a score before the end of the third:
		// no snapshot can be filled, the whole game is dropped.
		{GameID: "A", HomeTeam: "BOS", AwayTeam: "NYK", EventNum: 1, Period: 3},
		{GameID: "A", HomeTeam: "BOS", AwayTeam: "NYK", EventNum: 2, Period: 4, ScoreHome: intp(100), ScoreAway: intp(90)},
		// Game B is complete and must survive its neighbor's removal.
		{GameID: "B", HomeTeam: "LAL", AwayTeam: "DEN", EventNum: 1, Period: 3, ScoreHome: intp(75), ScoreAway: intp(70)},
		{GameID: "B", HomeTeam: "LAL", AwayTeam: "DEN", EventNum: 2, Period: 4, ScoreHome: intp(100), ScoreAway: intp(98)},
	}

	data := BuildFromRows(rows)
	require.Len(t, data, 2, "Only the complete game should survive")
	assert.Equal(t, "B", data[0].GameID)
	assert.Equal(t, "B", data[1].GameID)
}

func TestBuildFromRows_GameWithoutFourthPeriodDropped(t *testing.T) {
	rows := []ScoreRow{
		{GameID: "A", HomeTeam: "BOS", AwayTeam: "NYK", EventNum: 1, Period: 3, ScoreHome: intp(80), ScoreAway: intp(75)},
	}

	data := BuildFromRows(rows)
	assert.Empty(t, data, "A game with no final snapshot yields nothing")
}

func TestBuildFromRows_Empty(t *testing.T) {
	assert.Empty(t, BuildFromRows(nil))
}

type failingSource struct{}

func (failingSource) ScoreRows(context.Context, []string) ([]ScoreRow, error) {
	return nil, errors.New("connection refused")
}

func TestDatasetBuilder_StoreFailureYieldsEmpty(t *testing.T) {
	b := NewDatasetBuilder(failingSource{})
	data := b.Build(context.Background(), []string{"22024"})
	assert.Empty(t, data, "A store failure should degrade to an empty dataset")
}

func TestLeads(t *testing.T) {
	data := []TeamGameMargin{
		{Q3Lead: 10, FinalResult: 5},
		{Q3Lead: -10, FinalResult: -5},
	}
	x, y := Leads(data)
	assert.Equal(t, []float64{10, -10}, x)
	assert.Equal(t, []float64{5, -5}, y)
}
