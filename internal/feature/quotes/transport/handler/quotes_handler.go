// Package handler はquotesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"watchlist_backend/internal/feature/quotes/domain/entity"
	"watchlist_backend/internal/feature/quotes/transport/http/dto"
	"watchlist_backend/internal/feature/quotes/usecase"
	"watchlist_backend/internal/platform/http/response"
)

// DefaultWindows は ma クエリが指定されない場合の移動平均の期間です。
const DefaultWindows = "5,10,20"

// QuotesUsecase は株価取得のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type QuotesUsecase interface {
	GetSummary(ctx context.Context, symbol string) (entity.QuoteSummary, bool)
	GetChart(ctx context.Context, symbol, rng, interval string, windows []int) (usecase.Chart, error)
}

// QuotesHandler は株価データのHTTPリクエストを処理します。
type QuotesHandler struct {
	uc QuotesUsecase
}

// NewQuotesHandler は指定されたusecaseでQuotesHandlerの新しいインスタンスを生成します。
func NewQuotesHandler(uc QuotesUsecase) *QuotesHandler {
	return &QuotesHandler{uc: uc}
}

// GetSummary は銘柄の最新値と前日比を返します。
//
// エンドポイント例:
// GET /quotes/2330.TW
func (h *QuotesHandler) GetSummary(c *gin.Context) {
	symbol := c.Param("symbol")
	sum, ok := h.uc.GetSummary(c.Request.Context(), symbol)
	if !ok {
		c.JSON(http.StatusBadGateway, response.ErrorResponse{Error: "quote unavailable"})
		return
	}
	c.JSON(http.StatusOK, dto.NewSummaryResponse(sum))
}

// GetChart は銘柄のローソク足・サマリー・移動平均を返します。
//
// エンドポイント例:
// GET /quotes/2330.TW/chart?range=6mo&interval=1d&ma=5,20
func (h *QuotesHandler) GetChart(c *gin.Context) {
	symbol := c.Param("symbol")
	windows := usecase.ParseWindows(c.DefaultQuery("ma", DefaultWindows))

	chart, err := h.uc.GetChart(c.Request.Context(), symbol, c.Query("range"), c.Query("interval"), windows)
	if err != nil {
		WriteChartError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewChartResponse(chart.Series, chart.Summary, chart.MovingAverages))
}

// WriteChartError はGetChartのエラーをHTTPステータスに対応付けて書き込みます。
func WriteChartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidRange),
		errors.Is(err, usecase.ErrInvalidInterval),
		errors.Is(err, usecase.ErrEmptySymbol):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrUnavailable):
		c.JSON(http.StatusBadGateway, response.ErrorResponse{Error: "quote unavailable"})
	default:
		slog.Error("chart request failed", "error", err)
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "internal error"})
	}
}
