package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"watchlist_backend/internal/feature/watchlist/domain"
	"watchlist_backend/internal/feature/watchlist/domain/entity"
)

// StockInput は銘柄の追加・更新に使う入力です。
// Marketが空の場合はシンボルの接尾辞から判定します。
type StockInput struct {
	Symbol string
	Name   string
	Market string
}

// SeedStock は初期データの銘柄です。
type SeedStock struct {
	Symbol     string
	Name       string
	MASettings string
	Market     string
}

// SeedGroup は初期データのグループです。
type SeedGroup struct {
	Name   string
	Note   string
	Stocks []SeedStock
}

// WatchlistUsecase はグループと銘柄の管理を提供します。
type WatchlistUsecase struct {
	groups GroupRepository
	stocks StockRepository
}

// NewWatchlistUsecase はWatchlistUsecaseの新しいインスタンスを生成します。
func NewWatchlistUsecase(groups GroupRepository, stocks StockRepository) *WatchlistUsecase {
	return &WatchlistUsecase{groups: groups, stocks: stocks}
}

// ListGroups はすべてのグループを返します。
func (u *WatchlistUsecase) ListGroups(ctx context.Context) ([]entity.Group, error) {
	return u.groups.ListGroups(ctx)
}

// GetGroup はIDでグループを返します。
func (u *WatchlistUsecase) GetGroup(ctx context.Context, id uint) (entity.Group, error) {
	return u.groups.FindGroup(ctx, id)
}

// CreateGroup は名前を指定してグループを作成します。
func (u *WatchlistUsecase) CreateGroup(ctx context.Context, name string) (entity.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entity.Group{}, domain.ErrEmptyName
	}
	return u.groups.CreateGroup(ctx, entity.Group{Name: name})
}

// RenameGroup はグループ名を変更します。
func (u *WatchlistUsecase) RenameGroup(ctx context.Context, id uint, name string) (entity.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entity.Group{}, domain.ErrEmptyName
	}
	g, err := u.groups.FindGroup(ctx, id)
	if err != nil {
		return entity.Group{}, err
	}
	g.Name = name
	if err := u.groups.SaveGroup(ctx, g); err != nil {
		return entity.Group{}, err
	}
	return g, nil
}

// UpdateGroupNote はグループのメモを上書きします。
func (u *WatchlistUsecase) UpdateGroupNote(ctx context.Context, id uint, note string) (entity.Group, error) {
	g, err := u.groups.FindGroup(ctx, id)
	if err != nil {
		return entity.Group{}, err
	}
	g.Note = note
	if err := u.groups.SaveGroup(ctx, g); err != nil {
		return entity.Group{}, err
	}
	return g, nil
}

// DeleteGroup はグループと所属銘柄を削除します。
func (u *WatchlistUsecase) DeleteGroup(ctx context.Context, id uint) error {
	return u.groups.DeleteGroup(ctx, id)
}

// ListStocks はグループの銘柄一覧を返します。グループが存在しない場合はErrGroupNotFoundです。
func (u *WatchlistUsecase) ListStocks(ctx context.Context, groupID uint) ([]entity.Stock, error) {
	if _, err := u.groups.FindGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return u.stocks.ListStocks(ctx, groupID)
}

// GetStock はIDで銘柄を返します。
func (u *WatchlistUsecase) GetStock(ctx context.Context, id uint) (entity.Stock, error) {
	return u.stocks.FindStock(ctx, id)
}

// AddStock はグループに銘柄を追加します。シンボルは大文字に揃え、移動平均設定は既定値になります。
func (u *WatchlistUsecase) AddStock(ctx context.Context, groupID uint, in StockInput) (entity.Stock, error) {
	if _, err := u.groups.FindGroup(ctx, groupID); err != nil {
		return entity.Stock{}, err
	}
	s := entity.Stock{GroupID: groupID, MASettings: entity.DefaultMASettings}
	if err := applyInput(&s, in); err != nil {
		return entity.Stock{}, err
	}
	return u.stocks.CreateStock(ctx, s)
}

// UpdateStock は銘柄のシンボル・名称・市場を更新します。
func (u *WatchlistUsecase) UpdateStock(ctx context.Context, id uint, in StockInput) (entity.Stock, error) {
	s, err := u.stocks.FindStock(ctx, id)
	if err != nil {
		return entity.Stock{}, err
	}
	if err := applyInput(&s, in); err != nil {
		return entity.Stock{}, err
	}
	if err := u.stocks.SaveStock(ctx, s); err != nil {
		return entity.Stock{}, err
	}
	return s, nil
}

// DeleteStock は銘柄を削除します。
func (u *WatchlistUsecase) DeleteStock(ctx context.Context, id uint) error {
	return u.stocks.DeleteStock(ctx, id)
}

// UpdateStockNote は銘柄のメモを上書きします。
func (u *WatchlistUsecase) UpdateStockNote(ctx context.Context, id uint, note string) (entity.Stock, error) {
	s, err := u.stocks.FindStock(ctx, id)
	if err != nil {
		return entity.Stock{}, err
	}
	s.Note = note
	if err := u.stocks.SaveStock(ctx, s); err != nil {
		return entity.Stock{}, err
	}
	return s, nil
}

// UpdateStockMA saves the moving-average setting as entered. Invalid tokens
// are kept and ignored when the averages are computed.
func (u *WatchlistUsecase) UpdateStockMA(ctx context.Context, id uint, ma string) (entity.Stock, error) {
	s, err := u.stocks.FindStock(ctx, id)
	if err != nil {
		return entity.Stock{}, err
	}
	s.MASettings = strings.TrimSpace(ma)
	if err := u.stocks.SaveStock(ctx, s); err != nil {
		return entity.Stock{}, err
	}
	return s, nil
}

// Seed はグループが1件もない場合に限り初期データを投入します。投入した場合はtrueを返します。
func (u *WatchlistUsecase) Seed(ctx context.Context, seed []SeedGroup) (bool, error) {
	n, err := u.groups.CountGroups(ctx)
	if err != nil {
		return false, fmt.Errorf("count groups: %w", err)
	}
	if n > 0 || len(seed) == 0 {
		return false, nil
	}

	for _, sg := range seed {
		g, err := u.CreateGroup(ctx, sg.Name)
		if err != nil {
			return false, fmt.Errorf("seed group %q: %w", sg.Name, err)
		}
		if sg.Note != "" {
			if _, err := u.UpdateGroupNote(ctx, g.ID, sg.Note); err != nil {
				return false, fmt.Errorf("seed group %q: %w", sg.Name, err)
			}
		}
		for _, ss := range sg.Stocks {
			s, err := u.AddStock(ctx, g.ID, StockInput{Symbol: ss.Symbol, Name: ss.Name, Market: ss.Market})
			if err != nil {
				return false, fmt.Errorf("seed stock %q: %w", ss.Symbol, err)
			}
			if ss.MASettings != "" && ss.MASettings != s.MASettings {
				if _, err := u.UpdateStockMA(ctx, s.ID, ss.MASettings); err != nil {
					return false, fmt.Errorf("seed stock %q: %w", ss.Symbol, err)
				}
			}
		}
	}
	slog.Info("watchlist seeded", "groups", len(seed))
	return true, nil
}

func applyInput(s *entity.Stock, in StockInput) error {
	sym := strings.ToUpper(strings.TrimSpace(in.Symbol))
	if sym == "" {
		return domain.ErrEmptySymbol
	}
	market := entity.MarketForSymbol(sym)
	if in.Market != "" {
		m, ok := entity.ParseMarket(in.Market)
		if !ok {
			return fmt.Errorf("%w: %q", domain.ErrInvalidMarket, in.Market)
		}
		market = m
	}
	s.Symbol = sym
	s.Name = strings.TrimSpace(in.Name)
	s.Market = market
	return nil
}
