// Package usecase は株価系列の取得・集計ロジックを実装します。
package usecase

import (
	"context"

	"watchlist_backend/internal/feature/quotes/domain/entity"
)

// MarketRepository は外部の株価データソースを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketRepository interface {
	// GetChart は1銘柄の時系列を取得します。失敗時はエラーを返します。
	GetChart(ctx context.Context, symbol, rng, interval string) (entity.Series, error)
}

// SeriesRepository はキャッシュ付きの系列取得を抽象化します。
// 失敗理由は呼び出し元に伝えず、ok=false（利用不可）のみを返します。
type SeriesRepository interface {
	GetOrFetch(ctx context.Context, symbol, rng, interval string) (entity.Series, bool)
}
