// Package usecase はウォッチリスト（グループと銘柄）の操作を実装します。
package usecase

import (
	"context"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
)

// GroupRepository はグループの永続化レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
// 存在しないIDにはdomain.ErrGroupNotFoundを返します。
type GroupRepository interface {
	ListGroups(ctx context.Context) ([]entity.Group, error)
	FindGroup(ctx context.Context, id uint) (entity.Group, error)
	CreateGroup(ctx context.Context, g entity.Group) (entity.Group, error)
	SaveGroup(ctx context.Context, g entity.Group) error
	// DeleteGroup はグループと所属する銘柄をまとめて削除します。
	DeleteGroup(ctx context.Context, id uint) error
	CountGroups(ctx context.Context) (int64, error)
}

// StockRepository は銘柄の永続化レイヤーを抽象化します。
// 存在しないIDにはdomain.ErrStockNotFoundを返します。
type StockRepository interface {
	ListStocks(ctx context.Context, groupID uint) ([]entity.Stock, error)
	FindStock(ctx context.Context, id uint) (entity.Stock, error)
	CreateStock(ctx context.Context, s entity.Stock) (entity.Stock, error)
	SaveStock(ctx context.Context, s entity.Stock) error
	DeleteStock(ctx context.Context, id uint) error
}
