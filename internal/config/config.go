package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"local"`

	// Source
	RedditUserAgent string  `env:"REDDIT_USER_AGENT" envDefault:"kaiwa-scout/1.0"`
	RedditBaseURL   string  `env:"REDDIT_BASE_URL" envDefault:"https://www.reddit.com"`
	RedditRPS       float64 `env:"REDDIT_RPS" envDefault:"1"`
	MaxPosts        int     `env:"MAX_POSTS_PER_RUN" envDefault:"100"`

	// Analysis
	LLMAPIKey           string  `env:"LLM_API_KEY"`
	LLMModel            string  `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	LLMRPS              float64 `env:"LLM_RPS" envDefault:"1"`
	SignalThreshold     int     `env:"SIGNAL_THRESHOLD" envDefault:"7"`
	ScoreBatchSize      int     `env:"SCORE_BATCH_SIZE" envDefault:"10"`
	WorthinessJudgment  bool    `env:"WORTHINESS_JUDGMENT" envDefault:"true"`
	MaxPromptBodyLength int     `env:"MAX_PROMPT_BODY_LENGTH" envDefault:"1000"`

	// Filtering
	KeepUnmatched bool `env:"KEEP_UNMATCHED" envDefault:"false"`

	// Sinks
	CSVPath               string `env:"CSV_PATH" envDefault:"data/leads.csv"`
	SheetsCredentialsFile string `env:"SHEETS_CREDENTIALS_FILE"`
	SheetsSpreadsheetID   string `env:"SHEETS_SPREADSHEET_ID"`
	SheetNamePrefix       string `env:"SHEET_NAME_PREFIX" envDefault:"Leads "`

	// Seen ledger for cross-run dedup. Empty path disables it.
	SeenDBPath    string        `env:"SEEN_DB_PATH" envDefault:"data/seen.db"`
	SeenRetention time.Duration `env:"SEEN_RETENTION" envDefault:"720h"`

	// Serve mode
	ScoutInterval time.Duration `env:"SCOUT_INTERVAL" envDefault:"60m"`
	HealthPort    int           `env:"HEALTH_PORT" envDefault:"8080"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate fails fast on settings that would otherwise only surface mid-run,
// after source and analysis calls have already been spent. Analysis, Sheets,
// and the mock client are enabled by flag, so their requirements are checked
// here rather than via required env tags.
func (c *Config) Validate(analyze, sheets, mock bool) error {
	if c.SignalThreshold < 1 || c.SignalThreshold > 10 {
		return fmt.Errorf("SIGNAL_THRESHOLD must be within 1..10, got %d", c.SignalThreshold)
	}

	if c.ScoreBatchSize < 1 {
		return fmt.Errorf("SCORE_BATCH_SIZE must be positive, got %d", c.ScoreBatchSize)
	}

	if c.MaxPosts < 1 {
		return fmt.Errorf("MAX_POSTS_PER_RUN must be positive, got %d", c.MaxPosts)
	}

	if c.RedditRPS <= 0 {
		return fmt.Errorf("REDDIT_RPS must be positive, got %f", c.RedditRPS)
	}

	if c.LLMRPS <= 0 {
		return fmt.Errorf("LLM_RPS must be positive, got %f", c.LLMRPS)
	}

	if analyze && !mock && c.LLMAPIKey == "" {
		return fmt.Errorf("LLM_API_KEY is required when analysis is enabled and --mock is not set")
	}

	if sheets {
		if c.SheetsSpreadsheetID == "" {
			return fmt.Errorf("SHEETS_SPREADSHEET_ID is required when the Sheets sink is enabled")
		}

		if c.SheetsCredentialsFile == "" {
			return fmt.Errorf("SHEETS_CREDENTIALS_FILE is required when the Sheets sink is enabled")
		}
	}

	if c.SeenDBPath != "" && c.SeenRetention <= 0 {
		return fmt.Errorf("SEEN_RETENTION must be positive when the seen ledger is enabled")
	}

	return nil
}
