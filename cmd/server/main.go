package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"watchlist_backend/internal/app/di"
	"watchlist_backend/internal/app/router"
	"watchlist_backend/internal/config"
	dashboardhandler "watchlist_backend/internal/feature/dashboard/transport/handler"
	quoteshandler "watchlist_backend/internal/feature/quotes/transport/handler"
	watchlisthandler "watchlist_backend/internal/feature/watchlist/transport/handler"
	"watchlist_backend/internal/platform/http/handler"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg, err := config.Load(config.Path())
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := di.Build(ctx, cfg)
	if err != nil {
		slog.Error("failed to build application", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	// キャッシュ掃除とウォームアップ（任意）
	app.Jobs.Start()
	if cfg.Warmup.Cron != "" {
		go func() { _ = app.Jobs.RunNow(di.WarmupTask) }()
	}

	// ヘルスチェック
	checks := map[string]handler.Check{
		"database": func(ctx context.Context) error {
			sqlDB, err := app.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if app.Redis != nil {
		checks["quote_cache"] = func(ctx context.Context) error {
			return app.Redis.Ping(ctx).Err()
		}
	}

	// ルータ生成
	r := router.NewRouter(router.Handlers{
		Quotes:      quoteshandler.NewQuotesHandler(app.Quotes),
		Watchlist:   watchlisthandler.NewWatchlistHandler(app.Watchlist),
		Dashboard:   dashboardhandler.NewDashboardHandler(app.Dashboard),
		Health:      handler.Health(checks),
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
