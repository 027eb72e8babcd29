package usecase_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watchlist_backend/internal/feature/quotes/domain/entity"
	"watchlist_backend/internal/feature/quotes/usecase"
)

// mockSeriesRepository はSeriesRepositoryインターフェースのモック実装です。
type mockSeriesRepository struct {
	GetOrFetchFunc func(ctx context.Context, symbol, rng, interval string) (entity.Series, bool)

	mu    sync.Mutex
	calls []string
}

func (m *mockSeriesRepository) GetOrFetch(ctx context.Context, symbol, rng, interval string) (entity.Series, bool) {
	m.mu.Lock()
	m.calls = append(m.calls, symbol+"|"+rng+"|"+interval)
	m.mu.Unlock()
	if m.GetOrFetchFunc != nil {
		return m.GetOrFetchFunc(ctx, symbol, rng, interval)
	}
	return entity.Series{}, false
}

// fixedSeries は銘柄ごとに決まった系列を返すモックを作ります。未登録の銘柄は利用不可です。
func fixedSeries(bySymbol map[string]entity.Series) *mockSeriesRepository {
	return &mockSeriesRepository{
		GetOrFetchFunc: func(_ context.Context, symbol, _, _ string) (entity.Series, bool) {
			s, ok := bySymbol[symbol]
			return s, ok
		},
	}
}

// TestQuotesUsecase_GetSummary はデフォルトのrange/intervalで取得されることを検証します。
func TestQuotesUsecase_GetSummary(t *testing.T) {
	t.Parallel()

	repo := fixedSeries(map[string]entity.Series{"2330.TW": seriesOf("2330.TW", 100, 102)})
	uc := usecase.NewQuotesUsecase(repo, usecase.Config{})

	sum, ok := uc.GetSummary(context.Background(), " 2330.tw ")
	require.True(t, ok)
	assert.InDelta(t, 2.0, sum.ChangePercent.Float64, 1e-9)
	assert.Equal(t, []string{"2330.TW|5d|1d"}, repo.calls)

	_, ok = uc.GetSummary(context.Background(), "")
	assert.False(t, ok)
	_, ok = uc.GetSummary(context.Background(), "MISSING")
	assert.False(t, ok)
}

// TestQuotesUsecase_GetChart はパラメータ検証と派生値の計算をテストします。
func TestQuotesUsecase_GetChart(t *testing.T) {
	t.Parallel()

	repo := fixedSeries(map[string]entity.Series{"AAPL": seriesOf("AAPL", 1, 2, 3, 4, 5, 6)})
	uc := usecase.NewQuotesUsecase(repo, usecase.Config{ChartRange: "1y"})

	testCases := []struct {
		name        string
		symbol      string
		rng         string
		interval    string
		expectedErr error
	}{
		{name: "success with defaults", symbol: "aapl"},
		{name: "success explicit", symbol: "AAPL", rng: "6mo", interval: "1wk"},
		{name: "empty symbol", symbol: " ", expectedErr: usecase.ErrEmptySymbol},
		{name: "invalid range", symbol: "AAPL", rng: "7d", expectedErr: usecase.ErrInvalidRange},
		{name: "invalid interval", symbol: "AAPL", interval: "1day", expectedErr: usecase.ErrInvalidInterval},
		{name: "unavailable", symbol: "ZZZZ", expectedErr: usecase.ErrUnavailable},
	}

	// 並列のサブテストがすべて終わってから呼び出し履歴を検証する
	t.Run("cases", func(t *testing.T) {
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()
				chart, err := uc.GetChart(context.Background(), tc.symbol, tc.rng, tc.interval, []int{3})
				if tc.expectedErr != nil {
					assert.ErrorIs(t, err, tc.expectedErr)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, 6, chart.Series.Len())
				assert.InDelta(t, 20.0, chart.Summary.ChangePercent.Float64, 1e-9)
				require.Len(t, chart.MovingAverages[3], 6)
				assert.False(t, chart.MovingAverages[3][1].Valid)
				assert.InDelta(t, 5.0, chart.MovingAverages[3][5].Float64, 1e-9)
			})
		}
	})

	repo.mu.Lock()
	calls := append([]string(nil), repo.calls...)
	repo.mu.Unlock()
	assert.Contains(t, calls, "AAPL|1y|1d")
	assert.Contains(t, calls, "AAPL|6mo|1wk")
}

// TestQuotesUsecase_AggregateGroup は失敗した銘柄を平均から除外することを検証します。
func TestQuotesUsecase_AggregateGroup(t *testing.T) {
	t.Parallel()

	repo := fixedSeries(map[string]entity.Series{
		"A":    seriesOf("A", 100, 102), // +2%
		"B":    seriesOf("B", 100, 96),  // -4%
		"ZERO": seriesOf("ZERO", 0, 3),  // 変化率未定義
		"FLAT": seriesOf("FLAT", 10),    // 1本のみ: 0%
	})
	uc := usecase.NewQuotesUsecase(repo, usecase.Config{Workers: 2})

	tests := []struct {
		name      string
		symbols   []string
		wantValid bool
		wantAvg   float64
		wantOK    int
		wantFail  int
		wantTrend entity.Trend
	}{
		{name: "partial failure excluded", symbols: []string{"A", "B", "C"}, wantValid: true, wantAvg: -1.0, wantOK: 2, wantFail: 1, wantTrend: entity.TrendDown},
		{name: "all failed is undefined", symbols: []string{"X", "Y"}, wantValid: false, wantOK: 0, wantFail: 2, wantTrend: entity.TrendNone},
		{name: "empty group is undefined", symbols: nil, wantValid: false, wantTrend: entity.TrendNone},
		{name: "undefined percent excluded", symbols: []string{"A", "ZERO"}, wantValid: true, wantAvg: 2.0, wantOK: 1, wantFail: 1, wantTrend: entity.TrendUp},
		{name: "all flat is zero not undefined", symbols: []string{"FLAT"}, wantValid: true, wantAvg: 0, wantOK: 1, wantTrend: entity.TrendFlat},
		{name: "duplicates counted once", symbols: []string{"A", "a", "A"}, wantValid: true, wantAvg: 2.0, wantOK: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			agg := uc.AggregateGroup(context.Background(), tt.symbols)
			assert.Equal(t, tt.wantValid, agg.AveragePercent.Valid)
			if tt.wantValid {
				assert.InDelta(t, tt.wantAvg, agg.AveragePercent.Float64, 1e-9)
			}
			assert.Equal(t, tt.wantOK, agg.Succeeded)
			assert.Equal(t, tt.wantFail, agg.Failed)
			if tt.wantTrend != "" {
				assert.Equal(t, tt.wantTrend, agg.Trend())
			}
		})
	}
}

// TestQuotesUsecase_SummarizeSymbols_BoundedConcurrency は同時実行数が上限を超えないことを検証します。
func TestQuotesUsecase_SummarizeSymbols_BoundedConcurrency(t *testing.T) {
	t.Parallel()

	const workers = 3
	var inFlight, peak atomic.Int32
	repo := &mockSeriesRepository{
		GetOrFetchFunc: func(_ context.Context, symbol, _, _ string) (entity.Series, bool) {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			inFlight.Add(-1)
			return seriesOf(symbol, 1, 2), true
		},
	}
	uc := usecase.NewQuotesUsecase(repo, usecase.Config{Workers: workers})

	symbols := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}
	got := uc.SummarizeSymbols(context.Background(), symbols)

	assert.Len(t, got, len(symbols))
	assert.LessOrEqual(t, peak.Load(), int32(workers))
	assert.Len(t, repo.calls, len(symbols))
}

// TestReduceGroup は集約結果が銘柄の並び順に依存しないことを検証します。
func TestReduceGroup(t *testing.T) {
	t.Parallel()

	a, _ := usecase.Summarize(seriesOf("A", 100, 102))
	b, _ := usecase.Summarize(seriesOf("B", 100, 96))
	sums := map[string]entity.QuoteSummary{"A": a, "B": b}

	x := usecase.ReduceGroup([]string{"A", "B", "C"}, sums)
	y := usecase.ReduceGroup([]string{"c", "b", "a"}, sums)
	assert.Equal(t, x, y)
	assert.InDelta(t, -1.0, x.AveragePercent.Float64, 1e-9)
	assert.Equal(t, 1, x.Failed)
}
