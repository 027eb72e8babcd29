// Package config loads the application configuration from a YAML file and the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath は CONFIG_PATH 未設定時に読み込む設定ファイルです。
const DefaultPath = "configs/watchlist.yaml"

// SeedStock は起動時に投入する銘柄です。
type SeedStock struct {
	Symbol     string `yaml:"symbol"`
	Name       string `yaml:"name"`
	MASettings string `yaml:"ma"`
	Market     string `yaml:"market"`
}

// SeedGroup は起動時に投入するグループです。
type SeedGroup struct {
	Name   string      `yaml:"name"`
	Note   string      `yaml:"note"`
	Stocks []SeedStock `yaml:"stocks"`
}

// Config はアプリケーション全体の設定です。
type Config struct {
	Server struct {
		Port        string   `yaml:"port"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
	LogLevel string `yaml:"log_level"`
	Yahoo    struct {
		BaseURL           string        `yaml:"base_url"`
		UserAgent         string        `yaml:"user_agent"`
		Timeout           time.Duration `yaml:"timeout"`
		DisplayZone       string        `yaml:"display_zone"`
		RequestsPerMinute int           `yaml:"requests_per_minute"`
		MaxConnsPerHost   int           `yaml:"max_conns_per_host"`
	} `yaml:"yahoo"`
	Quotes struct {
		SummaryRange string        `yaml:"summary_range"`
		ChartRange   string        `yaml:"chart_range"`
		Interval     string        `yaml:"interval"`
		CacheTTL     time.Duration `yaml:"cache_ttl"`
		FailureTTL   time.Duration `yaml:"failure_ttl"`
		Workers      int           `yaml:"workers"`
		PurgeCron    string        `yaml:"purge_cron"` // インメモリキャッシュから期限切れを掃除する周期
	} `yaml:"quotes"`
	Redis struct {
		Host      string `yaml:"host"`
		Port      string `yaml:"port"`
		Password  string `yaml:"password"`
		Namespace string `yaml:"namespace"`
	} `yaml:"redis"`
	Database struct {
		DSN string `yaml:"dsn"`
	} `yaml:"database"`
	Warmup struct {
		Cron string `yaml:"cron"`
	} `yaml:"warmup"`
	Seed struct {
		Groups []SeedGroup `yaml:"groups"`
	} `yaml:"seed"`
}

// Path は CONFIG_PATH か既定のパスを返します。
func Path() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return DefaultPath
}

// Load はYAMLファイルを読み込み、環境変数で上書きし、最後に既定値を埋めます。
// ファイルが存在しない場合は環境変数と既定値だけで構成します。
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

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// Environment variable overrides
func (c *Config) applyEnv() {
	setString(&c.Server.Port, "PORT")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.Yahoo.BaseURL, "YAHOO_BASE_URL")
	setDuration(&c.Yahoo.Timeout, "YAHOO_TIMEOUT")
	setString(&c.Yahoo.DisplayZone, "DISPLAY_ZONE")
	setInt(&c.Yahoo.RequestsPerMinute, "YAHOO_REQUESTS_PER_MINUTE")
	setDuration(&c.Quotes.CacheTTL, "QUOTE_CACHE_TTL")
	setDuration(&c.Quotes.FailureTTL, "QUOTE_FAILURE_TTL")
	setInt(&c.Quotes.Workers, "QUOTE_WORKERS")
	setString(&c.Quotes.PurgeCron, "QUOTE_PURGE_CRON")
	setString(&c.Redis.Host, "REDIS_HOST")
	setString(&c.Redis.Port, "REDIS_PORT")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Database.DSN, "DATABASE_DSN")
	setString(&c.Warmup.Cron, "WARMUP_CRON")
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
}

// Defaults
// quotes/yahooの既定値は各パッケージ側で埋めるので、ここではアプリ固有のものだけ扱います。
func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Quotes.PurgeCron == "" {
		c.Quotes.PurgeCron = "@every 5m"
	}
	if c.Redis.Port == "" {
		c.Redis.Port = "6379"
	}
	if c.Redis.Namespace == "" {
		c.Redis.Namespace = "quotes"
	}
	if c.Database.DSN == "" {
		c.Database.DSN = "file:watchlist?mode=memory&cache=shared"
	}
}

// SlogLevel は log_level を slog.Level に変換します。未知の値は info です。
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// RedisEnabled はRedisのホストが設定されているかを返します。
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring invalid integer env", "key", key, "value", v)
		return
	}
	*dst = n
}

func setDuration(dst *time.Duration, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("ignoring invalid duration env", "key", key, "value", v)
		return
	}
	*dst = d
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
