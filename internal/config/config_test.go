package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "yahoo", cfg.DataSource.Provider)
	assert.Equal(t, 250, cfg.DataSource.LookbackDays)
	assert.Equal(t, []string{"SPX500"}, cfg.Watchlist)
	assert.Equal(t, "0 30 22 * * 1-5", cfg.Schedule.AnalysisCron)
	assert.Equal(t, "data/trend_sentinel.db", cfg.Database.SQLitePath)
	assert.Equal(t, 6*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 4, cfg.Analysis.Workers)
	assert.Equal(t, 20, cfg.Analysis.Indicators.MovingAverages.SMAShort)
	assert.Equal(t, 0.30, cfg.Analysis.Scoring.Weights.Trend)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAMLOverridesOnlyNamedKeys(t *testing.T) {
	path := writeConfig(t, `
data_source:
  provider: vstrader
  base_url: https://api.example.com
  lookback_days: 400
watchlist: [aapl, " msft "]
telegram:
  enabled: true
  bot_token: token
  chat_id: "42"
cache:
  redis_addr: localhost:6379
  ttl: 30m
log:
  level: DEBUG
analysis:
  workers: 8
  indicators:
    momentum:
      rsi_period: 10
  scoring:
    weights:
      volatility: 0.5
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "vstrader", cfg.DataSource.Provider)
	assert.Equal(t, 400, cfg.DataSource.LookbackDays)
	assert.Equal(t, []string{"AAPL", "MSFT"}, cfg.Watchlist)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 8, cfg.Analysis.Workers)
	assert.Equal(t, 10, cfg.Analysis.Indicators.Momentum.RSIPeriod)
	assert.Equal(t, 70.0, cfg.Analysis.Indicators.Momentum.RSIOverbought)
	assert.Equal(t, 0.5, cfg.Analysis.Scoring.Weights.Volatility)
	assert.Equal(t, 0.30, cfg.Analysis.Scoring.Weights.Trend)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("TELEGRAM_CHAT_ID", "99")
	t.Setenv("VSTRADER_BASE_URL", "https://vs.example.com")
	t.Setenv("WATCHLIST", "spy, qqq,,iwm")
	t.Setenv("CRON_ANALYSIS", "0 0 * * * *")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("METRICS_ADDR", ":9100")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("LOG_LEVEL", "Warn")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.True(t, cfg.Telegram.Enabled)
	assert.Equal(t, "env-token", cfg.Telegram.BotToken)
	assert.Equal(t, "99", cfg.Telegram.ChatID)
	assert.Equal(t, "vstrader", cfg.DataSource.Provider)
	assert.Equal(t, []string{"SPY", "QQQ", "IWM"}, cfg.Watchlist)
	assert.Equal(t, "0 0 * * * *", cfg.Schedule.AnalysisCron)
	assert.Equal(t, "redis:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, ":9100", cfg.Metrics.Addr)
	assert.Equal(t, "/tmp/x.db", cfg.Database.SQLitePath)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "watchlist: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"telegram enabled without token", func(c *Config) { c.Telegram.Enabled = true }, "BotToken"},
		{"vstrader without url", func(c *Config) { c.DataSource.Provider = "vstrader" }, "BaseURL"},
		{"unknown provider", func(c *Config) { c.DataSource.Provider = "bloomberg" }, "Provider"},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }, "Level"},
		{"bad proxy", func(c *Config) { c.Proxy = "not a url" }, "Proxy"},
		{"indicator periods", func(c *Config) { c.Analysis.Indicators.MovingAverages.SMAShort = 80 }, "analysis.indicators"},
		{"scoring thresholds", func(c *Config) { c.Analysis.Scoring.Thresholds.Buy = 0.9 }, "analysis.scoring"},
		{"short lookback", func(c *Config) { c.DataSource.LookbackDays = 30 }, "lookback_days"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
			require.NoError(t, err)
			tt.mutate(cfg)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
