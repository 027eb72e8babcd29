// Command snapshot prints the average daily change of every watchlist group once and exits.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"watchlist_backend/internal/app/di"
	"watchlist_backend/internal/config"
	dashboardusecase "watchlist_backend/internal/feature/dashboard/usecase"
	quotedto "watchlist_backend/internal/feature/quotes/transport/http/dto"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg, err := config.Load(config.Path())
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	app, err := di.Build(ctx, cfg)
	if err != nil {
		slog.Error("failed to build application", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	rows, err := app.Dashboard.Overview(ctx)
	if err != nil {
		slog.Error("failed to compute overview", "error", err)
		os.Exit(1)
	}
	if err := writeTable(os.Stdout, rows); err != nil {
		slog.Error("failed to write table", "error", err)
		os.Exit(1)
	}
	slog.Info("snapshot ok", "groups", len(rows))
}

// writeTable は1グループ1行で平均変化率を出力します。未定義の平均は "-" です。
func writeTable(w io.Writer, rows []dashboardusecase.GroupOverview) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GROUP\tSTOCKS\tAVG %\tTREND\tOK\tFAILED")
	for _, r := range rows {
		avg := "-"
		if p := quotedto.FormatPercent(r.Aggregate.AveragePercent); p.Valid {
			avg = p.String
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%d\t%d\n",
			r.Group.Name, r.StockCount, avg, r.Aggregate.Trend(), r.Aggregate.Succeeded, r.Aggregate.Failed)
	}
	return tw.Flush()
}
