// Package handler はdashboardフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"watchlist_backend/internal/feature/dashboard/transport/http/dto"
	"watchlist_backend/internal/feature/dashboard/usecase"
	quotehandler "watchlist_backend/internal/feature/quotes/transport/handler"
	"watchlist_backend/internal/feature/watchlist/domain"
	watchhandler "watchlist_backend/internal/feature/watchlist/transport/handler"
	"watchlist_backend/internal/platform/http/response"
)

// DashboardUsecase はダッシュボード画面のユースケースです。
type DashboardUsecase interface {
	Overview(ctx context.Context) ([]usecase.GroupOverview, error)
	GroupDetail(ctx context.Context, groupID uint) (usecase.GroupDetail, error)
	StockChart(ctx context.Context, stockID uint, rng, maOverride string) (usecase.StockChart, error)
}

// DashboardHandler はダッシュボードのHTTPリクエストを処理します。
type DashboardHandler struct {
	uc DashboardUsecase
}

// NewDashboardHandler はDashboardHandlerの新しいインスタンスを生成します。
func NewDashboardHandler(uc DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Overview は GET /dashboard/groups を処理します。
func (h *DashboardHandler) Overview(c *gin.Context) {
	rows, err := h.uc.Overview(c.Request.Context())
	if err != nil {
		slog.Error("dashboard overview failed", "error", err)
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "internal error"})
		return
	}
	out := make([]dto.GroupOverviewItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.NewGroupOverviewItem(r))
	}
	c.JSON(http.StatusOK, out)
}

// GroupDetail は GET /dashboard/groups/:id を処理します。
func (h *DashboardHandler) GroupDetail(c *gin.Context) {
	id, ok := watchhandler.ParseID(c)
	if !ok {
		return
	}
	d, err := h.uc.GroupDetail(c.Request.Context(), id)
	if err != nil {
		watchhandler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewGroupDetailResponse(d))
}

// StockChart は GET /dashboard/stocks/:id/chart?range=6mo&ma=5,20 を処理します。
// ma を指定すると保存済みの設定を変更せずに移動平均の期間を差し替えます。
func (h *DashboardHandler) StockChart(c *gin.Context) {
	id, ok := watchhandler.ParseID(c)
	if !ok {
		return
	}
	sc, err := h.uc.StockChart(c.Request.Context(), id, c.Query("range"), c.Query("ma"))
	if err != nil {
		if errors.Is(err, domain.ErrStockNotFound) {
			watchhandler.WriteError(c, err)
			return
		}
		quotehandler.WriteChartError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewStockChartResponse(sc))
}
