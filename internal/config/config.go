package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"TrendSentinel/internal/indicator"
	"TrendSentinel/internal/strategy"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider     string `yaml:"provider" validate:"oneof=yahoo vstrader mock"`
		BaseURL      string `yaml:"base_url" validate:"required_if=Provider vstrader"`
		APIKey       string `yaml:"api_key"`
		LookbackDays int    `yaml:"lookback_days" validate:"gte=1"`
	} `yaml:"data_source"`
	Watchlist []string `yaml:"watchlist" validate:"dive,required"`
	Schedule  struct {
		AnalysisCron string `yaml:"analysis_cron" validate:"required"`
	} `yaml:"schedule"`
	Telegram struct {
		Enabled  bool   `yaml:"enabled"`
		BotToken string `yaml:"bot_token" validate:"required_if=Enabled true"`
		ChatID   string `yaml:"chat_id" validate:"required_if=Enabled true"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Cache struct {
		RedisAddr     string        `yaml:"redis_addr"`
		RedisPassword string        `yaml:"redis_password"`
		RedisDB       int           `yaml:"redis_db" validate:"gte=0"`
		TTL           time.Duration `yaml:"ttl" validate:"gte=0"`
	} `yaml:"cache"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Log struct {
		Level string `yaml:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	} `yaml:"log"`
	Analysis struct {
		Workers    int              `yaml:"workers" validate:"gte=0"`
		Indicators indicator.Params `yaml:"indicators"`
		Scoring    strategy.Scoring `yaml:"scoring"`
	} `yaml:"analysis"`
	Proxy string `yaml:"proxy" validate:"omitempty,url"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file yields a config built from the
// environment and defaults alone.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	// Indicator and scoring sections start from their defaults so a partial
	// YAML block only overrides the keys it names.
	cfg.Analysis.Indicators = indicator.DefaultParams()
	cfg.Analysis.Scoring = strategy.DefaultScoring()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()

	// Defaults
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
		if cfg.DataSource.BaseURL != "" {
			cfg.DataSource.Provider = "vstrader"
		}
	}
	if cfg.DataSource.LookbackDays == 0 {
		cfg.DataSource.LookbackDays = 250
	}
	if len(cfg.Watchlist) == 0 {
		cfg.Watchlist = []string{"SPX500"}
	}
	for i, s := range cfg.Watchlist {
		cfg.Watchlist[i] = strings.ToUpper(strings.TrimSpace(s))
	}
	if cfg.Schedule.AnalysisCron == "" {
		cfg.Schedule.AnalysisCron = "0 30 22 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/trend_sentinel.db"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 6 * time.Hour
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if cfg.Analysis.Workers == 0 {
		cfg.Analysis.Workers = 4
	}

	return cfg, nil
}

// applyEnv lets the environment override secrets and deployment settings.
func (c *Config) applyEnv() {
	fields := map[string]*string{
		"TELEGRAM_BOT_TOKEN": &c.Telegram.BotToken,
		"TELEGRAM_CHAT_ID":   &c.Telegram.ChatID,
		"VSTRADER_BASE_URL":  &c.DataSource.BaseURL,
		"VSTRADER_API_KEY":   &c.DataSource.APIKey,
		"HTTPS_PROXY":        &c.Proxy,
		"SQLITE_PATH":        &c.Database.SQLitePath,
		"REDIS_ADDR":         &c.Cache.RedisAddr,
		"REDIS_PASSWORD":     &c.Cache.RedisPassword,
		"METRICS_ADDR":       &c.Metrics.Addr,
		"LOG_LEVEL":          &c.Log.Level,
		"CRON_ANALYSIS":      &c.Schedule.AnalysisCron,
	}
	for name, field := range fields {
		if v := os.Getenv(name); v != "" {
			*field = v
		}
	}
	// A token in the environment is taken as intent to run the bot.
	if os.Getenv("TELEGRAM_BOT_TOKEN") != "" {
		c.Telegram.Enabled = true
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		c.Watchlist = splitList(v)
	}
}

var validate = validator.New()

// Validate checks field constraints and the indicator and scoring
// parameter sets.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Analysis.Indicators.Validate(); err != nil {
		return fmt.Errorf("analysis.indicators: %w", err)
	}
	if err := c.Analysis.Scoring.Validate(); err != nil {
		return fmt.Errorf("analysis.scoring: %w", err)
	}
	// The longest lookback still has to be fetched.
	if need := c.Analysis.Indicators.MinBars(); c.DataSource.LookbackDays < need {
		return fmt.Errorf("data_source.lookback_days %d is below the %d bars the indicators need", c.DataSource.LookbackDays, need)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
