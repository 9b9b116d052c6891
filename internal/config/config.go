package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// NBA Stats API
	NBAStatsBaseURL string        `envconfig:"NBA_STATS_BASE_URL" default:"https://stats.nba.com/stats"`
	NBAStatsTimeout time.Duration `envconfig:"NBA_STATS_TIMEOUT" default:"30s"`

	// Database
	DatabaseHost     string `envconfig:"DATABASE_HOST" default:"localhost"`
	DatabasePort     int    `envconfig:"DATABASE_PORT" default:"5432"`
	DatabaseName     string `envconfig:"DATABASE_NAME" default:"nba_analysis"`
	DatabaseUser     string `envconfig:"DATABASE_USER" default:"nba_user"`
	DatabasePassword string `envconfig:"DATABASE_PASSWORD" required:"true"`
	DatabaseSSLMode  string `envconfig:"DATABASE_SSL_MODE" default:"disable"`

	// Redis
	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Ingestion
	Season           string        `envconfig:"SEASON" default:"2024-25"`
	SeasonType       string        `envconfig:"SEASON_TYPE" default:"Regular Season"`
	GamePause        time.Duration `envconfig:"GAME_PAUSE" default:"1500ms"`
	EndpointPause    time.Duration `envconfig:"ENDPOINT_PAUSE" default:"600ms"`
	RetryMaxAttempts int           `envconfig:"RETRY_MAX_ATTEMPTS" default:"3"`
	RetryBasePause   time.Duration `envconfig:"RETRY_BASE_PAUSE" default:"5m"`

	// Scheduler
	EnableScheduler    bool   `envconfig:"ENABLE_SCHEDULER" default:"true"`
	InitialSyncEnabled bool   `envconfig:"INITIAL_SYNC_ENABLED" default:"true"`
	NightlyIngestCron  string `envconfig:"NIGHTLY_INGEST_CRON" default:"0 4 * * *"`

	// API Rate Limiting (requests per second to stats.nba.com)
	APIRateLimit float64 `envconfig:"API_RATE_LIMIT" default:"1"`
	APIBurst     int     `envconfig:"API_BURST" default:"1"`

	// Caching TTL
	CacheTTLIngested time.Duration `envconfig:"CACHE_TTL_INGESTED" default:"720h"`

	// Analysis
	SeasonIDs      []string `envconfig:"SEASON_IDS" default:"22024"`
	NumClusters    int      `envconfig:"NUM_CLUSTERS" default:"6"`
	RandomSeed     int64    `envconfig:"RANDOM_SEED" default:"42"`
	MinTeamGames   int      `envconfig:"MIN_TEAM_GAMES" default:"10"`
	ReportsDir     string   `envconfig:"REPORTS_DIR" default:"reports"`
	TeamFitsFile   string   `envconfig:"TEAM_FITS_FILE" default:"team_best_fits.csv"`
	RankingsFile   string   `envconfig:"RANKINGS_FILE" default:"closing_rankings.csv"`
	SituationsFile string   `envconfig:"SITUATIONS_FILE" default:"closing_situations.csv"`
	ClustersFile   string   `envconfig:"CLUSTERS_FILE" default:"cluster_assignments.csv"`

	// Monitoring
	EnableMetrics bool `envconfig:"ENABLE_METRICS" default:"true"`
	MetricsPort   int  `envconfig:"METRICS_PORT" default:"9090"`
}

// Load loads configuration from environment variables
// It first attempts to load from a .env file if present
func Load() (*Config, error) {
	// Try to load .env file (ignore error if doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DatabasePassword == "" {
		return fmt.Errorf("DATABASE_PASSWORD is required")
	}

	if c.RetryMaxAttempts < 1 {
		return fmt.Errorf("RETRY_MAX_ATTEMPTS must be at least 1")
	}

	if c.NumClusters < 2 {
		return fmt.Errorf("NUM_CLUSTERS must be at least 2")
	}

	if !strings.Contains(c.Season, "-") {
		return fmt.Errorf("SEASON must look like 2024-25, got %q", c.Season)
	}

	return nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseName,
		c.DatabaseSSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// MustLoad loads configuration or panics on error
// Use this in main() where we want to fail fast
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
