package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"nba_analysis/internal/metrics"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Response is the resultSets envelope every stats API endpoint returns.
type Response struct {
	Resource   string      `json:"resource"`
	ResultSets []ResultSet `json:"resultSets"`
}

// ResultSet is one named table inside a stats API response.
type ResultSet struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	RowSet  [][]any  `json:"rowSet"`
}

// Set returns the result set with the given name, or nil.
func (r *Response) Set(name string) *ResultSet {
	for i := range r.ResultSets {
		if r.ResultSets[i].Name == name {
			return &r.ResultSets[i]
		}
	}
	return nil
}

// SetOrFirst returns the named result set, falling back to the first
// one. Endpoints occasionally rename their sets between API revisions.
func (r *Response) SetOrFirst(name string) *ResultSet {
	if s := r.Set(name); s != nil {
		return s
	}
	if len(r.ResultSets) > 0 {
		return &r.ResultSets[0]
	}
	return nil
}

// Rows normalizes the result set through the canonical column map.
func (s *ResultSet) Rows() []Row {
	if s == nil {
		return nil
	}
	return NormalizeRows(s.Headers, s.RowSet)
}

// Client is the stats.nba.com API client. All calls go through a shared
// rate limiter so there is never more than one in-flight request and
// requests are spaced out; the API blocks aggressive callers.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates a stats API client. rps is the sustained request
// rate; burst is usually 1 for this API.
func NewClient(baseURL string, timeout time.Duration, rps float64, burst int) *Client {
	if burst < 1 {
		burst = 1
	}
	return &Client{
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		maxRetries: 3,
		retryDelay: 2 * time.Second,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// get performs a GET request with rate limiting and bounded retry.
func (c *Client) get(ctx context.Context, endpoint string, params map[string]string) (*Response, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, endpoint)

	var resp *Response
	retry := NewRetryController(c.maxRetries, c.retryDelay)
	err := retry.Run(ctx, func(ctx context.Context) error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		start := time.Now()
		r, err := c.doRequest(ctx, url, params)
		metrics.RecordAPICall(endpoint, statusLabel(err), time.Since(start).Seconds())
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	return resp, nil
}

func statusLabel(err error) string {
	if err == nil {
		return "ok"
	}
	if IsRetryable(err) {
		return "retryable"
	}
	return "error"
}

func (c *Client) doRequest(ctx context.Context, url string, params map[string]string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// stats.nba.com rejects requests without browser-looking headers.
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	if len(params) > 0 {
		q := req.URL.Query()
		for key, value := range params {
			q.Add(key, value)
		}
		req.URL.RawQuery = q.Encode()
	}

	log.Debug().Str("url", req.URL.String()).Msg("Making API request")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		// Network errors and timeouts are transient.
		return nil, Retryable(fmt.Errorf("API request failed: %w", err))
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, Retryable(fmt.Errorf("failed to read response body: %w", err))
	}

	switch httpResp.StatusCode {
	case http.StatusOK:
		var resp Response
		if err := json.Unmarshal(body, &resp); err != nil {
			// Rate-limited responses come back as HTML with a 200.
			return nil, Retryable(fmt.Errorf("failed to decode response: %w", err))
		}
		return &resp, nil

	case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return nil, Retryable(fmt.Errorf("API returned retryable status %d", httpResp.StatusCode))

	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("API rejected request (status %d)", httpResp.StatusCode)

	default:
		return nil, fmt.Errorf("API returned status %d: %s", httpResp.StatusCode, truncate(body, 200))
	}
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}

// LeagueGameFinder fetches the schedule rows for a season. Each
// completed game appears twice, once per participating team.
func (c *Client) LeagueGameFinder(ctx context.Context, season, seasonType string) ([]Row, error) {
	resp, err := c.get(ctx, "leaguegamefinder", map[string]string{
		"LeagueID":     "00",
		"Season":       season,
		"SeasonType":   seasonType,
		"PlayerOrTeam": "T",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}
	return resp.SetOrFirst("LeagueGameFinderResults").Rows(), nil
}

// BoxScoreTraditional fetches per-player traditional box score rows.
func (c *Client) BoxScoreTraditional(ctx context.Context, gameID string) ([]Row, error) {
	resp, err := c.get(ctx, "boxscoretraditionalv2", gameParams(gameID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch traditional box score: %w", err)
	}
	return resp.SetOrFirst("PlayerStats").Rows(), nil
}

// BoxScoreAdvanced fetches per-player advanced box score rows.
func (c *Client) BoxScoreAdvanced(ctx context.Context, gameID string) ([]Row, error) {
	resp, err := c.get(ctx, "boxscoreadvancedv2", gameParams(gameID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch advanced box score: %w", err)
	}
	return resp.SetOrFirst("PlayerStats").Rows(), nil
}

// PlayByPlay fetches the event log for a game, including running
// scores.
func (c *Client) PlayByPlay(ctx context.Context, gameID string) ([]Row, error) {
	resp, err := c.get(ctx, "playbyplayv3", map[string]string{
		"GameID":      gameID,
		"StartPeriod": "0",
		"EndPeriod":   "10",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch play-by-play: %w", err)
	}
	return resp.SetOrFirst("PlayByPlay").Rows(), nil
}

// HustleStats fetches per-player hustle box score rows.
func (c *Client) HustleStats(ctx context.Context, gameID string) ([]Row, error) {
	resp, err := c.get(ctx, "hustlestatsboxscore", map[string]string{"GameID": gameID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hustle stats: %w", err)
	}
	return resp.SetOrFirst("PlayerStats").Rows(), nil
}

// PlayerMatchups fetches who-guarded-whom rows for a game.
func (c *Client) PlayerMatchups(ctx context.Context, gameID string) ([]Row, error) {
	resp, err := c.get(ctx, "boxscorematchupsv3", gameParams(gameID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matchups: %w", err)
	}
	return resp.SetOrFirst("PlayerStats").Rows(), nil
}

// GameRotation fetches substitution shifts for both teams.
func (c *Client) GameRotation(ctx context.Context, gameID string) ([]Row, error) {
	resp, err := c.get(ctx, "gamerotation", map[string]string{"GameID": gameID, "LeagueID": "00"})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rotations: %w", err)
	}
	var rows []Row
	for _, name := range []string{"AwayTeam", "HomeTeam"} {
		rows = append(rows, resp.Set(name).Rows()...)
	}
	if rows == nil {
		rows = resp.SetOrFirst("").Rows()
	}
	return rows, nil
}

func gameParams(gameID string) map[string]string {
	return map[string]string{
		"GameID":      gameID,
		"StartPeriod": "0",
		"EndPeriod":   "10",
		"StartRange":  "0",
		"EndRange":    "0",
		"RangeType":   "0",
	}
}
