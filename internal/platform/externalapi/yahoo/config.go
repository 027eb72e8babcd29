// Package yahoo provides a client for the Yahoo Finance chart API.
package yahoo

import (
	"log/slog"
	"time"

	// 実行環境にtzdataがなくても表示タイムゾーンを解決できるようにする
	_ "time/tzdata"
)

const (
	// DefaultBaseURL はYahoo Finance chart APIのベースURLです。
	DefaultBaseURL = "https://query1.finance.yahoo.com"
	// DefaultUserAgent はブラウザを装うUser-Agentです。指定しないと上流に拒否されます。
	DefaultUserAgent = "Mozilla/5.0"
	// DefaultTimeout は1リクエストあたりのタイムアウトです。
	DefaultTimeout = 5 * time.Second
	// DefaultDisplayZone はバーのタイムスタンプを変換する表示用タイムゾーンです。
	DefaultDisplayZone = "Asia/Taipei"
)

// Config はYahoo chart APIクライアントの設定を保持します。
type Config struct {
	BaseURL     string         // APIのベースURL（例: "https://query1.finance.yahoo.com"）
	UserAgent   string         // 送信するUser-Agent
	Timeout     time.Duration  // HTTPリクエストタイムアウト
	DisplayZone *time.Location // タイムスタンプ変換先
}

// DefaultConfig はデフォルト値で埋めたConfigを返します。
func DefaultConfig() Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		UserAgent:   DefaultUserAgent,
		Timeout:     DefaultTimeout,
		DisplayZone: LoadZone(DefaultDisplayZone),
	}
}

// LoadZone resolves an IANA zone name. Unknown names fall back to UTC+8,
// the offset of the default display zone.
func LoadZone(name string) *time.Location {
	if name == "" {
		name = DefaultDisplayZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		slog.Warn("unknown display zone, falling back to UTC+8", "zone", name, "error", err)
		return time.FixedZone("UTC+8", 8*60*60)
	}
	return loc
}

// withDefaults fills zero fields so a partially populated Config is usable.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.DisplayZone == nil {
		c.DisplayZone = LoadZone(DefaultDisplayZone)
	}
	return c
}
