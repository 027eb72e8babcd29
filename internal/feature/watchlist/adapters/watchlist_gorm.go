// Package adapters はwatchlistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"watchlist_backend/internal/feature/watchlist/domain"
	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/feature/watchlist/usecase"
)

// watchlistGorm はGroupRepositoryとStockRepositoryのGORM実装です。
type watchlistGorm struct {
	db *gorm.DB
}

// watchlistGormが両方のリポジトリを実装していることをコンパイル時に検証します。
var (
	_ usecase.GroupRepository = (*watchlistGorm)(nil)
	_ usecase.StockRepository = (*watchlistGorm)(nil)
)

// NewWatchlistRepository は指定されたDB接続でwatchlistGormの新しいインスタンスを生成します。
func NewWatchlistRepository(db *gorm.DB) *watchlistGorm {
	return &watchlistGorm{db: db}
}

// ListGroups はID順にすべてのグループを返します。
func (r *watchlistGorm) ListGroups(ctx context.Context) ([]entity.Group, error) {
	var models []GroupModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Group, 0, len(models))
	for i := range models {
		out = append(out, models[i].ToEntity())
	}
	return out, nil
}

// FindGroup はIDでグループを取得します。
func (r *watchlistGorm) FindGroup(ctx context.Context, id uint) (entity.Group, error) {
	var m GroupModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.Group{}, domain.ErrGroupNotFound
		}
		return entity.Group{}, err
	}
	return m.ToEntity(), nil
}

// CreateGroup はグループを追加し、採番されたIDを含めて返します。
func (r *watchlistGorm) CreateGroup(ctx context.Context, g entity.Group) (entity.Group, error) {
	m := GroupModel{Name: g.Name, Note: g.Note}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return entity.Group{}, err
	}
	return m.ToEntity(), nil
}

// SaveGroup はグループの名前とメモを更新します。
func (r *watchlistGorm) SaveGroup(ctx context.Context, g entity.Group) error {
	res := r.db.WithContext(ctx).
		Model(&GroupModel{ID: g.ID}).
		Select("name", "note").
		Updates(GroupModel{Name: g.Name, Note: g.Note})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrGroupNotFound
	}
	return nil
}

// DeleteGroup はグループと所属する銘柄をトランザクション内で削除します。
func (r *watchlistGorm) DeleteGroup(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&StockModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&GroupModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrGroupNotFound
		}
		return nil
	})
}

// CountGroups はグループ数を返します。
func (r *watchlistGorm) CountGroups(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&GroupModel{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// ListStocks はグループに属する銘柄を追加順に返します。
func (r *watchlistGorm) ListStocks(ctx context.Context, groupID uint) ([]entity.Stock, error) {
	var models []StockModel
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("id ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Stock, 0, len(models))
	for i := range models {
		out = append(out, models[i].ToEntity())
	}
	return out, nil
}

// FindStock はIDで銘柄を取得します。
func (r *watchlistGorm) FindStock(ctx context.Context, id uint) (entity.Stock, error) {
	var m StockModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.Stock{}, domain.ErrStockNotFound
		}
		return entity.Stock{}, err
	}
	return m.ToEntity(), nil
}

// CreateStock は銘柄を追加し、採番されたIDを含めて返します。
func (r *watchlistGorm) CreateStock(ctx context.Context, s entity.Stock) (entity.Stock, error) {
	s.ID = 0
	m := StockModelFromEntity(s)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return entity.Stock{}, err
	}
	return m.ToEntity(), nil
}

// SaveStock は銘柄の変更可能な項目をすべて更新します。
func (r *watchlistGorm) SaveStock(ctx context.Context, s entity.Stock) error {
	m := StockModelFromEntity(s)
	res := r.db.WithContext(ctx).
		Model(&StockModel{ID: s.ID}).
		Select("group_id", "symbol", "name", "ma_settings", "note", "market").
		Updates(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStockNotFound
	}
	return nil
}

// DeleteStock はIDで銘柄を削除します。
func (r *watchlistGorm) DeleteStock(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&StockModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStockNotFound
	}
	return nil
}
