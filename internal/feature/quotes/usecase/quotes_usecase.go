package usecase

import (
	"context"
	"fmt"
	"strings"

	"watchlist_backend/internal/feature/quotes/domain/entity"
)

const (
	// DefaultSummaryRange はサマリー（最新値・前日比）取得に使う期間です。
	DefaultSummaryRange = "5d"
	// DefaultChartRange はチャート表示に使う期間です。
	DefaultChartRange = "6mo"
	// DefaultInterval はバーの時間間隔です。
	DefaultInterval = "1d"
	// DefaultWorkers はグループ集計の同時実行数です。
	DefaultWorkers = 5
)

// Config はquotesユースケースの調整可能なパラメータです。
type Config struct {
	SummaryRange string
	ChartRange   string
	Interval     string
	Workers      int
}

func (c Config) withDefaults() Config {
	if c.SummaryRange == "" {
		c.SummaryRange = DefaultSummaryRange
	}
	if c.ChartRange == "" {
		c.ChartRange = DefaultChartRange
	}
	if c.Interval == "" {
		c.Interval = DefaultInterval
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	return c
}

// Chart は1銘柄のチャート表示用データです。
type Chart struct {
	Series         entity.Series
	Summary        entity.QuoteSummary
	MovingAverages entity.MovingAverageSet
	Windows        []int
}

// QuotesUsecase は系列取得とその派生値の計算をまとめます。
type QuotesUsecase struct {
	series SeriesRepository
	cfg    Config
}

// NewQuotesUsecase はQuotesUsecaseの新しいインスタンスを生成します。
func NewQuotesUsecase(series SeriesRepository, cfg Config) *QuotesUsecase {
	return &QuotesUsecase{series: series, cfg: cfg.withDefaults()}
}

// ChartRange returns the configured default chart range.
func (u *QuotesUsecase) ChartRange() string { return u.cfg.ChartRange }

// Interval returns the configured default bar interval.
func (u *QuotesUsecase) Interval() string { return u.cfg.Interval }

// GetSummary は銘柄の最新値と前日比を返します。取得できない場合はok=falseです。
func (u *QuotesUsecase) GetSummary(ctx context.Context, symbol string) (entity.QuoteSummary, bool) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return entity.QuoteSummary{}, false
	}
	s, ok := u.series.GetOrFetch(ctx, symbol, u.cfg.SummaryRange, u.cfg.Interval)
	if !ok {
		return entity.QuoteSummary{}, false
	}
	return Summarize(s)
}

// GetChart returns the bars, summary and moving averages for one symbol.
// Empty rng/interval fall back to the configured defaults.
func (u *QuotesUsecase) GetChart(ctx context.Context, symbol, rng, interval string, windows []int) (Chart, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return Chart{}, ErrEmptySymbol
	}
	if rng == "" {
		rng = u.cfg.ChartRange
	}
	if interval == "" {
		interval = u.cfg.Interval
	}
	if !entity.IsValidRange(rng) {
		return Chart{}, fmt.Errorf("%w: %q", ErrInvalidRange, rng)
	}
	if !entity.IsValidInterval(interval) {
		return Chart{}, fmt.Errorf("%w: %q", ErrInvalidInterval, interval)
	}

	s, ok := u.series.GetOrFetch(ctx, symbol, rng, interval)
	if !ok {
		return Chart{}, fmt.Errorf("%w: %s", ErrUnavailable, symbol)
	}
	sum, ok := Summarize(s)
	if !ok {
		return Chart{}, fmt.Errorf("%w: %s", ErrUnavailable, symbol)
	}

	return Chart{
		Series:         s,
		Summary:        sum,
		MovingAverages: MovingAverages(s, windows),
		Windows:        windows,
	}, nil
}

func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
