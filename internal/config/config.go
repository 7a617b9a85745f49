package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Watchlist struct {
		US []string `yaml:"us"`
		HK []string `yaml:"hk"`
	} `yaml:"watchlist"`
	Scan struct {
		Universe        []string `yaml:"universe"`
		Threshold       int      `yaml:"threshold"`
		SingleThreshold int      `yaml:"single_threshold"`
		TopN            int      `yaml:"top_n"`
	} `yaml:"scan"`
	StopLoss struct {
		ThresholdPct float64 `yaml:"threshold_pct"`
		HoldingsUS   string  `yaml:"holdings_us"`
		HoldingsHK   string  `yaml:"holdings_hk"`
	} `yaml:"stop_loss"`
	Index struct {
		US string `yaml:"us"`
		HK string `yaml:"hk"`
	} `yaml:"index"`
	DataSource struct {
		Proxy           string `yaml:"proxy"`
		FetchIntervalMS int    `yaml:"fetch_interval_ms"`
	} `yaml:"data_source"`
	LLM struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
		Model   string `yaml:"model"`
	} `yaml:"llm"`
	Email struct {
		SMTPHost string   `yaml:"smtp_host"`
		SMTPPort int      `yaml:"smtp_port"`
		Username string   `yaml:"username"`
		Password string   `yaml:"password"`
		From     string   `yaml:"from"`
		To       []string `yaml:"to"`
	} `yaml:"email"`
	Schedule struct {
		WatchlistCron string `yaml:"watchlist_cron"`
		ScanCron      string `yaml:"scan_cron"`
		IndexCron     string `yaml:"index_cron"`
		StopLossCron  string `yaml:"stop_loss_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.Email.SMTPHost = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Email.SMTPPort = port
		}
	}
	if v := os.Getenv("SMTP_USERNAME"); v != "" {
		cfg.Email.Username = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.Email.Password = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.DataSource.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Scan.Threshold == 0 {
		cfg.Scan.Threshold = 10
	}
	if cfg.Scan.SingleThreshold == 0 {
		cfg.Scan.SingleThreshold = 6
	}
	if cfg.Scan.TopN == 0 {
		cfg.Scan.TopN = 5
	}
	if cfg.StopLoss.ThresholdPct == 0 {
		cfg.StopLoss.ThresholdPct = 7.0
	}
	if cfg.StopLoss.HoldingsUS == "" {
		cfg.StopLoss.HoldingsUS = "data/holdings_us.json"
	}
	if cfg.StopLoss.HoldingsHK == "" {
		cfg.StopLoss.HoldingsHK = "data/holdings_hk.json"
	}
	if cfg.Index.US == "" {
		cfg.Index.US = "^IXIC"
	}
	if cfg.Index.HK == "" {
		cfg.Index.HK = "^HSI"
	}
	if cfg.DataSource.FetchIntervalMS == 0 {
		cfg.DataSource.FetchIntervalMS = 500
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4o-mini"
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 465
	}
	if cfg.Schedule.WatchlistCron == "" {
		cfg.Schedule.WatchlistCron = "0 0 8 * * 1"
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 30 8 * * 1"
	}
	if cfg.Schedule.IndexCron == "" {
		cfg.Schedule.IndexCron = "0 0 9 * * 1"
	}
	if cfg.Schedule.StopLossCron == "" {
		cfg.Schedule.StopLossCron = "0 0 22 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/trend_sentry.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if len(c.Watchlist.US) == 0 && len(c.Watchlist.HK) == 0 && len(c.Scan.Universe) == 0 {
		return fmt.Errorf("watchlist or scan.universe must list at least one symbol")
	}
	if c.Scan.Threshold < 0 || c.Scan.Threshold > 10 {
		return fmt.Errorf("scan.threshold must be between 0 and 10")
	}
	if c.Scan.SingleThreshold < 0 || c.Scan.SingleThreshold > 10 {
		return fmt.Errorf("scan.single_threshold must be between 0 and 10")
	}
	if c.StopLoss.ThresholdPct <= 0 {
		return fmt.Errorf("stop_loss.threshold_pct must be positive")
	}
	return nil
}
