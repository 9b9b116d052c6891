package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveColumns_V2AndV3Headers(t *testing.T) {
	// v2 endpoint: SCREAMING_SNAKE headers.
	v2 := ResolveColumns([]string{"GAME_ID", "PLAYER_ID", "PTS", "REB"})
	assert.Equal(t, 0, v2["game_id"])
	assert.Equal(t, 1, v2["player_id"])
	assert.Equal(t, 2, v2["pts"])
	assert.Equal(t, 3, v2["reb"])

	// v3 endpoint: camelCase headers for the same logical fields.
	v3 := ResolveColumns([]string{"gameId", "personId", "points", "reboundsTotal"})
	assert.Equal(t, 0, v3["game_id"])
	assert.Equal(t, 1, v3["player_id"])
	assert.Equal(t, 2, v3["pts"])
	assert.Equal(t, 3, v3["reb"])
}

func TestResolveColumns_FirstMatchWins(t *testing.T) {
	// Both spellings present: the earlier candidate takes priority.
	cols := ResolveColumns([]string{"PLAYER_ID", "personId"})
	assert.Equal(t, 1, cols["player_id"], "personId is the preferred candidate")
}

func TestResolveColumns_UnknownHeadersIgnored(t *testing.T) {
	cols := ResolveColumns([]string{"COMMENT", "SOME_FUTURE_COLUMN", "PTS"})
	assert.Equal(t, 2, cols["pts"])
	_, ok := cols["comment"]
	assert.False(t, ok)
}

func TestNormalizeRows(t *testing.T) {
	headers := []string{"GAME_ID", "PLAYER_ID", "PTS", "FG_PCT"}
	rowSet := [][]any{
		{"0022400561", float64(1628369), float64(31), float64(0.523)},
		{"0022400561", float64(201939), nil, nil},
	}

	rows := NormalizeRows(headers, rowSet)
	require.Len(t, rows, 2)

	assert.Equal(t, "0022400561", rows[0].Str("game_id"))
	assert.Equal(t, 1628369, rows[0].Int("player_id"))
	assert.Equal(t, 31, rows[0].Int("pts"))
	assert.InDelta(t, 0.523, rows[0].Float("fg_pct"), 1e-9)

	assert.Nil(t, rows[1].IntPtr("pts"), "NULL cells surface as nil pointers")
	assert.Nil(t, rows[1].FloatPtr("fg_pct"))
	assert.Equal(t, 0, rows[1].Int("pts"), "non-pointer accessor zero-values NULLs")
}

func TestRow_NumericStrings(t *testing.T) {
	// Some payloads ship numbers as strings.
	rows := NormalizeRows([]string{"PERIOD", "PTS"}, [][]any{{"3", "12"}})
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Int("period"))
	assert.Equal(t, 12, rows[0].Int("pts"))
}

func TestRow_Has(t *testing.T) {
	rows := NormalizeRows([]string{"PTS", "REB"}, [][]any{{float64(10), nil}})
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Has("pts"))
	assert.False(t, rows[0].Has("reb"), "NULL cell does not count as present")
	assert.False(t, rows[0].Has("ast"), "column absent from the payload")
}

func TestNormalizeRows_RaggedRowSkipped(t *testing.T) {
	headers := []string{"GAME_ID", "PTS"}
	rowSet := [][]any{
		{"001"},                   // short row
		{"002", float64(10)},      // good
		{"003", float64(20), nil}, // long row still reads its mapped columns
	}

	rows := NormalizeRows(headers, rowSet)
	for _, r := range rows {
		if r.Str("game_id") == "002" {
			assert.Equal(t, 10, r.Int("pts"))
		}
	}
}
