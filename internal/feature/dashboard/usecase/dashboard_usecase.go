// Package usecase はウォッチリストと株価を組み合わせた画面用データを組み立てます。
package usecase

import (
	"context"
	"fmt"

	quoteentity "watchlist_backend/internal/feature/quotes/domain/entity"
	quoteusecase "watchlist_backend/internal/feature/quotes/usecase"
	"watchlist_backend/internal/feature/watchlist/domain/entity"
)

// WatchlistReader はダッシュボードが必要とするレコードストアの読み取り操作です。
type WatchlistReader interface {
	ListGroups(ctx context.Context) ([]entity.Group, error)
	GetGroup(ctx context.Context, id uint) (entity.Group, error)
	ListStocks(ctx context.Context, groupID uint) ([]entity.Stock, error)
	GetStock(ctx context.Context, id uint) (entity.Stock, error)
}

// QuoteReader はダッシュボードが必要とする株価の操作です。
type QuoteReader interface {
	SummarizeSymbols(ctx context.Context, symbols []string) map[string]quoteentity.QuoteSummary
	AggregateGroup(ctx context.Context, symbols []string) quoteentity.GroupAggregate
	GetChart(ctx context.Context, symbol, rng, interval string, windows []int) (quoteusecase.Chart, error)
}

// GroupOverview はグループ一覧の1行です。
type GroupOverview struct {
	Group      entity.Group
	StockCount int
	Aggregate  quoteentity.GroupAggregate
}

// StockQuote は銘柄とそのサマリーです。取得できなかった場合はAvailable=falseです。
type StockQuote struct {
	Stock     entity.Stock
	Summary   quoteentity.QuoteSummary
	Available bool
}

// GroupDetail はグループ詳細画面のデータです。
type GroupDetail struct {
	Group     entity.Group
	Stocks    []StockQuote
	Aggregate quoteentity.GroupAggregate
}

// StockChart は銘柄チャート画面のデータです。
type StockChart struct {
	Stock entity.Stock
	Chart quoteusecase.Chart
}

// DashboardUsecase はダッシュボードの3画面分のデータを提供します。
type DashboardUsecase struct {
	watchlist WatchlistReader
	quotes    QuoteReader
}

// NewDashboardUsecase はDashboardUsecaseの新しいインスタンスを生成します。
func NewDashboardUsecase(w WatchlistReader, q QuoteReader) *DashboardUsecase {
	return &DashboardUsecase{watchlist: w, quotes: q}
}

// Overview は全グループとその平均変化率を返します。
// グループごとに銘柄を並列取得し、グループ自体は順に処理します。
func (u *DashboardUsecase) Overview(ctx context.Context) ([]GroupOverview, error) {
	groups, err := u.watchlist.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	out := make([]GroupOverview, 0, len(groups))
	for _, g := range groups {
		stocks, err := u.watchlist.ListStocks(ctx, g.ID)
		if err != nil {
			return nil, fmt.Errorf("list stocks of group %d: %w", g.ID, err)
		}
		out = append(out, GroupOverview{
			Group:      g,
			StockCount: len(stocks),
			Aggregate:  u.quotes.AggregateGroup(ctx, symbolsOf(stocks)),
		})
	}
	return out, nil
}

// GroupDetail はグループの銘柄ごとのサマリーと平均変化率を返します。
func (u *DashboardUsecase) GroupDetail(ctx context.Context, groupID uint) (GroupDetail, error) {
	g, err := u.watchlist.GetGroup(ctx, groupID)
	if err != nil {
		return GroupDetail{}, err
	}
	stocks, err := u.watchlist.ListStocks(ctx, groupID)
	if err != nil {
		return GroupDetail{}, err
	}

	symbols := symbolsOf(stocks)
	sums := u.quotes.SummarizeSymbols(ctx, symbols)

	items := make([]StockQuote, 0, len(stocks))
	for _, s := range stocks {
		sum, ok := sums[s.Symbol]
		items = append(items, StockQuote{Stock: s, Summary: sum, Available: ok})
	}
	return GroupDetail{
		Group:     g,
		Stocks:    items,
		Aggregate: quoteusecase.ReduceGroup(symbols, sums),
	}, nil
}

// StockChart は銘柄のチャートを返します。maOverrideが空でなければ保存済みの設定の代わりに使います。
func (u *DashboardUsecase) StockChart(ctx context.Context, stockID uint, rng, maOverride string) (StockChart, error) {
	s, err := u.watchlist.GetStock(ctx, stockID)
	if err != nil {
		return StockChart{}, err
	}
	ma := s.MASettings
	if maOverride != "" {
		ma = maOverride
	}
	chart, err := u.quotes.GetChart(ctx, s.Symbol, rng, "", quoteusecase.ParseWindows(ma))
	if err != nil {
		return StockChart{}, err
	}
	return StockChart{Stock: s, Chart: chart}, nil
}

func symbolsOf(stocks []entity.Stock) []string {
	out := make([]string, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, s.Symbol)
	}
	return out
}
