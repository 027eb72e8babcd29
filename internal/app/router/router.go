package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	dashboardhandler "watchlist_backend/internal/feature/dashboard/transport/handler"
	quoteshandler "watchlist_backend/internal/feature/quotes/transport/handler"
	watchlisthandler "watchlist_backend/internal/feature/watchlist/transport/handler"
)

// Handlers はルーターに登録するハンドラー群です。
type Handlers struct {
	Quotes      *quoteshandler.QuotesHandler
	Watchlist   *watchlisthandler.WatchlistHandler
	Dashboard   *dashboardhandler.DashboardHandler
	Health      gin.HandlerFunc
	CORSOrigins []string // 空なら全オリジンを許可
}

func NewRouter(h Handlers) *gin.Engine {
	r := gin.Default()

	// ブラウザのダッシュボードから直接呼ばれるためCORSを許可
	if len(h.CORSOrigins) == 0 {
		r.Use(cors.Default())
	} else {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = h.CORSOrigins
		r.Use(cors.New(cfg))
	}

	// 導通確認用
	r.GET("/healthz", h.Health)
	r.HEAD("/healthz", h.Health)

	// 株価
	r.GET("/quotes/:symbol", h.Quotes.GetSummary)
	r.GET("/quotes/:symbol/chart", h.Quotes.GetChart)

	// グループ
	r.GET("/groups", h.Watchlist.ListGroups)
	r.POST("/groups", h.Watchlist.CreateGroup)
	r.PATCH("/groups/:id", h.Watchlist.RenameGroup)
	r.DELETE("/groups/:id", h.Watchlist.DeleteGroup)
	r.PUT("/groups/:id/note", h.Watchlist.UpdateGroupNote)
	r.GET("/groups/:id/stocks", h.Watchlist.ListStocks)
	r.POST("/groups/:id/stocks", h.Watchlist.AddStock)

	// 銘柄
	r.PATCH("/stocks/:id", h.Watchlist.UpdateStock)
	r.DELETE("/stocks/:id", h.Watchlist.DeleteStock)
	r.PUT("/stocks/:id/note", h.Watchlist.UpdateStockNote)
	r.PUT("/stocks/:id/ma", h.Watchlist.UpdateStockMA)

	// ダッシュボード
	dashboard := r.Group("/dashboard")
	{
		dashboard.GET("/groups", h.Dashboard.Overview)
		dashboard.GET("/groups/:id", h.Dashboard.GroupDetail)
		dashboard.GET("/stocks/:id/chart", h.Dashboard.StockChart)
	}

	return r
}
