package usecase

import (
	"context"
	"sync"

	"github.com/guregu/null/v6"
	"golang.org/x/sync/errgroup"

	"watchlist_backend/internal/feature/quotes/domain/entity"
)

// SummarizeSymbols は複数銘柄のサマリーを並列に取得します。
// 同時実行数はConfig.Workersで制限され、全銘柄の完了を待ってから返ります。
// 取得できなかった銘柄は結果のmapに含まれません。
func (u *QuotesUsecase) SummarizeSymbols(ctx context.Context, symbols []string) map[string]entity.QuoteSummary {
	var (
		mu  sync.Mutex
		out = make(map[string]entity.QuoteSummary, len(symbols))
	)

	var g errgroup.Group
	g.SetLimit(u.cfg.Workers)
	for _, sym := range uniqueSymbols(symbols) {
		g.Go(func() error {
			sum, ok := u.GetSummary(ctx, sym)
			if !ok {
				return nil
			}
			mu.Lock()
			out[sym] = sum
			mu.Unlock()
			return nil
		})
	}
	// 各タスクは失敗をok=falseとして吸収するため、Waitがエラーを返すことはない
	_ = g.Wait()

	return out
}

// AggregateGroup returns the mean change percent over the symbols whose
// summary has a defined percent. Failed symbols count in neither the sum nor
// the denominator. When none succeed the average is invalid.
func (u *QuotesUsecase) AggregateGroup(ctx context.Context, symbols []string) entity.GroupAggregate {
	uniq := uniqueSymbols(symbols)
	return ReduceGroup(uniq, u.SummarizeSymbols(ctx, uniq))
}

// ReduceGroup はSummarizeSymbolsの結果をグループの平均変化率に集約します。
// 和と件数だけを使うため、完了順序に依存しません。
func ReduceGroup(symbols []string, sums map[string]entity.QuoteSummary) entity.GroupAggregate {
	uniq := uniqueSymbols(symbols)

	var (
		total float64
		count int
	)
	for _, sym := range uniq {
		s, ok := sums[sym]
		if !ok || !s.ChangePercent.Valid {
			continue
		}
		total += s.ChangePercent.Float64
		count++
	}

	agg := entity.GroupAggregate{Succeeded: count, Failed: len(uniq) - count}
	if count > 0 {
		agg.AveragePercent = null.FloatFrom(total / float64(count))
	}
	return agg
}

// uniqueSymbols normalizes symbols and drops empties and duplicates.
func uniqueSymbols(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = normalizeSymbol(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
