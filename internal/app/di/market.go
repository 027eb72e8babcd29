// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"watchlist_backend/internal/config"
	"watchlist_backend/internal/platform/externalapi/yahoo"
	infrahttp "watchlist_backend/internal/platform/http"
	"watchlist_backend/internal/shared/ratelimiter"
)

// NewMarket creates a fully configured YahooMarket with HTTP client and optional rate limit.
func NewMarket(cfg *config.Config) *yahoo.YahooMarket {
	ycfg := yahoo.Config{
		BaseURL:     cfg.Yahoo.BaseURL,
		UserAgent:   cfg.Yahoo.UserAgent,
		Timeout:     cfg.Yahoo.Timeout,
		DisplayZone: yahoo.LoadZone(cfg.Yahoo.DisplayZone),
	}
	timeout := ycfg.Timeout
	if timeout <= 0 {
		timeout = yahoo.DefaultTimeout
	}
	httpClient := infrahttp.NewHTTPClient(timeout, cfg.Yahoo.MaxConnsPerHost)

	var opts []yahoo.Option
	if rpm := cfg.Yahoo.RequestsPerMinute; rpm > 0 {
		opts = append(opts, yahoo.WithLimiter(ratelimiter.NewRateLimiter(rpm, time.Minute)))
	}
	return yahoo.NewYahooMarket(ycfg, httpClient, opts...)
}
