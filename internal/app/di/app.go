package di

import (
	"context"
	"fmt"
	"log/slog"

	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"watchlist_backend/internal/config"
	dashboardusecase "watchlist_backend/internal/feature/dashboard/usecase"
	quoteusecase "watchlist_backend/internal/feature/quotes/usecase"
	watchadapters "watchlist_backend/internal/feature/watchlist/adapters"
	watchusecase "watchlist_backend/internal/feature/watchlist/usecase"
	"watchlist_backend/internal/platform/cache"
	infradb "watchlist_backend/internal/platform/db"
	infraredis "watchlist_backend/internal/platform/redis"
	"watchlist_backend/internal/platform/scheduler"
)

// App はサーバーとCLIで共有するユースケース群です。
type App struct {
	DB        *gorm.DB
	Redis     *redisv9.Client // nilならキャッシュはインメモリ
	Watchlist *watchusecase.WatchlistUsecase
	Quotes    *quoteusecase.QuotesUsecase
	Dashboard *dashboardusecase.DashboardUsecase
	Store     cache.Store
	Jobs      *scheduler.Scheduler // 未開始。サーバーが Start する
}

// Build はDB・キャッシュ・上流クライアントを組み立て、空のレコードストアに初期データを投入します。
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := infradb.OpenDB(cfg.Database.DSN, watchadapters.Models()...)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Redis
	var rdb *redisv9.Client
	if cfg.RedisEnabled() {
		rdb, err = infraredis.NewRedisClient(ctx, infraredis.Options{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
		})
		if err != nil {
			slog.Warn("Redis unavailable. Using in-memory quote cache.", "error", err)
			rdb = nil
		}
	}

	// Repository
	watchRepo := watchadapters.NewWatchlistRepository(db)
	store := NewSeriesStore(rdb, cfg.Redis.Namespace)
	series := NewSeriesCache(cfg, NewMarket(cfg), store)

	// Usecase
	watchUC := watchusecase.NewWatchlistUsecase(watchRepo, watchRepo)
	quotesUC := quoteusecase.NewQuotesUsecase(series, quoteusecase.Config{
		SummaryRange: cfg.Quotes.SummaryRange,
		ChartRange:   cfg.Quotes.ChartRange,
		Interval:     cfg.Quotes.Interval,
		Workers:      cfg.Quotes.Workers,
	})
	dashboardUC := dashboardusecase.NewDashboardUsecase(watchUC, quotesUC)

	app := &App{DB: db, Redis: rdb, Watchlist: watchUC, Quotes: quotesUC, Dashboard: dashboardUC, Store: store}

	// Jobs
	app.Jobs, err = NewJobs(ctx, store, dashboardUC, cfg.Quotes.PurgeCron, cfg.Warmup.Cron)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("schedule jobs: %w", err)
	}

	if _, err := watchUC.Seed(ctx, SeedGroups(cfg)); err != nil {
		app.Close()
		return nil, fmt.Errorf("seed watchlist: %w", err)
	}
	return app, nil
}

// Close はジョブを止め、RedisとDBの接続を閉じます。
func (a *App) Close() {
	if a.Jobs != nil {
		a.Jobs.Stop()
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			slog.Error("Failed to close Redis client", "error", err)
		}
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}
}

// SeedGroups は設定ファイルの初期データをユースケースの型に変換します。
func SeedGroups(cfg *config.Config) []watchusecase.SeedGroup {
	out := make([]watchusecase.SeedGroup, 0, len(cfg.Seed.Groups))
	for _, g := range cfg.Seed.Groups {
		sg := watchusecase.SeedGroup{Name: g.Name, Note: g.Note}
		for _, s := range g.Stocks {
			sg.Stocks = append(sg.Stocks, watchusecase.SeedStock{
				Symbol:     s.Symbol,
				Name:       s.Name,
				MASettings: s.MASettings,
				Market:     s.Market,
			})
		}
		out = append(out, sg)
	}
	return out
}
