package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	c := NewClient(baseURL, 5*time.Second, 1000, 10)
	c.retryDelay = time.Millisecond
	return c
}

const gameFinderBody = `{
	"resource": "leaguegamefinder",
	"resultSets": [{
		"name": "LeagueGameFinderResults",
		"headers": ["SEASON_ID", "TEAM_ID", "TEAM_ABBREVIATION", "GAME_ID", "GAME_DATE", "MATCHUP", "WL", "PTS"],
		"rowSet": [
			["22024", 1610612738, "BOS", "0022400561", "2025-01-15", "BOS vs. NYK", "W", 110],
			["22024", 1610612752, "NYK", "0022400561", "2025-01-15", "NYK @ BOS", "L", 100]
		]
	}]
}`

func TestLeagueGameFinder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/leaguegamefinder", r.URL.Path)
		assert.Equal(t, "00", r.URL.Query().Get("LeagueID"))
		assert.Equal(t, "2024-25", r.URL.Query().Get("Season"))
		assert.Equal(t, "T", r.URL.Query().Get("PlayerOrTeam"))
		assert.NotEmpty(t, r.Header.Get("Referer"), "browser headers must be present")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(gameFinderBody))
	}))
	defer srv.Close()

	rows, err := testClient(srv.URL).LeagueGameFinder(context.Background(), "2024-25", "Regular Season")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "0022400561", rows[0].Str("game_id"))
	assert.Equal(t, 1610612738, rows[0].Int("team_id"))
	assert.Equal(t, "BOS", rows[0].Str("team_abbr"))
	assert.Equal(t, "22024", rows[0].Str("season_id"))
	assert.Equal(t, 110, rows[0].Int("pts"))
	assert.Equal(t, "NYK @ BOS", rows[1].Str("matchup"))
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(gameFinderBody))
	}))
	defer srv.Close()

	rows, err := testClient(srv.URL).LeagueGameFinder(context.Background(), "2024-25", "Regular Season")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_ForbiddenIsTerminal(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).LeagueGameFinder(context.Background(), "2024-25", "Regular Season")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "403 must not be retried")
	assert.False(t, IsRetryable(err))
}

func TestClient_HTMLBodyIsRetryable(t *testing.T) {
	// Rate-limited responses come back as HTML with status 200.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>Access Denied</html>"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).LeagueGameFinder(context.Background(), "2024-25", "Regular Season")
	require.Error(t, err)
	assert.True(t, IsRetryable(err), "an undecodable body should be treated as transient")
}

func TestResponse_SetLookup(t *testing.T) {
	resp := &Response{ResultSets: []ResultSet{
		{Name: "First", Headers: []string{"PTS"}, RowSet: [][]any{{float64(1)}}},
		{Name: "Second", Headers: []string{"PTS"}, RowSet: [][]any{{float64(2)}}},
	}}

	require.NotNil(t, resp.Set("Second"))
	assert.Nil(t, resp.Set("Missing"))

	assert.Equal(t, "First", resp.SetOrFirst("Missing").Name, "falls back to the first set")
	assert.Equal(t, "Second", resp.SetOrFirst("Second").Name)

	var empty *ResultSet
	assert.Empty(t, empty.Rows(), "nil result set yields no rows")
}
