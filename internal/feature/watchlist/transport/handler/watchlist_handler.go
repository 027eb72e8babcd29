// Package handler はwatchlistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"watchlist_backend/internal/feature/watchlist/domain"
	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/feature/watchlist/transport/http/dto"
	"watchlist_backend/internal/feature/watchlist/usecase"
	"watchlist_backend/internal/platform/http/response"
)

// WatchlistUsecase はグループと銘柄の管理ユースケースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type WatchlistUsecase interface {
	ListGroups(ctx context.Context) ([]entity.Group, error)
	CreateGroup(ctx context.Context, name string) (entity.Group, error)
	RenameGroup(ctx context.Context, id uint, name string) (entity.Group, error)
	UpdateGroupNote(ctx context.Context, id uint, note string) (entity.Group, error)
	DeleteGroup(ctx context.Context, id uint) error
	ListStocks(ctx context.Context, groupID uint) ([]entity.Stock, error)
	AddStock(ctx context.Context, groupID uint, in usecase.StockInput) (entity.Stock, error)
	UpdateStock(ctx context.Context, id uint, in usecase.StockInput) (entity.Stock, error)
	UpdateStockNote(ctx context.Context, id uint, note string) (entity.Stock, error)
	UpdateStockMA(ctx context.Context, id uint, ma string) (entity.Stock, error)
	DeleteStock(ctx context.Context, id uint) error
}

// WatchlistHandler はグループと銘柄のHTTPリクエストを処理します。
type WatchlistHandler struct {
	uc WatchlistUsecase
}

// NewWatchlistHandler はWatchlistHandlerの新しいインスタンスを生成します。
func NewWatchlistHandler(uc WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

// ListGroups は GET /groups を処理します。
func (h *WatchlistHandler) ListGroups(c *gin.Context) {
	groups, err := h.uc.ListGroups(c.Request.Context())
	if err != nil {
		WriteError(c, err)
		return
	}
	out := make([]dto.GroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, dto.NewGroupResponse(g))
	}
	c.JSON(http.StatusOK, out)
}

// CreateGroup は POST /groups を処理します。
func (h *WatchlistHandler) CreateGroup(c *gin.Context) {
	var req dto.GroupRequest
	if !bind(c, &req) {
		return
	}
	g, err := h.uc.CreateGroup(c.Request.Context(), req.Name)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewGroupResponse(g))
}

// RenameGroup は PATCH /groups/:id を処理します。
func (h *WatchlistHandler) RenameGroup(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}
	var req dto.GroupRequest
	if !bind(c, &req) {
		return
	}
	g, err := h.uc.RenameGroup(c.Request.Context(), id, req.Name)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewGroupResponse(g))
}

// UpdateGroupNote は PUT /groups/:id/note を処理します。
func (h *WatchlistHandler) UpdateGroupNote(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}
	var req dto.NoteRequest
	if !bind(c, &req) {
		return
	}
	g, err := h.uc.UpdateGroupNote(c.Request.Context(), id, *req.Note)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewGroupResponse(g))
}

// DeleteGroup は DELETE /groups/:id を処理します。所属する銘柄も削除されます。
func (h *WatchlistHandler) DeleteGroup(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}
	if err := h.uc.DeleteGroup(c.Request.Context(), id); err != nil {
		WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListStocks は GET /groups/:id/stocks を処理します。
func (h *WatchlistHandler) ListStocks(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}
	stocks, err := h.uc.ListStocks(c.Request.Context(), id)
	if err != nil {
		WriteError(c, err)
		return
	}
	out := make([]dto.StockResponse, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, dto.NewStockResponse(s))
	}
	c.JSON(http.StatusOK, out)
}

// AddStock は POST /groups/:id/stocks を処理します。
func (h *WatchlistHandler) AddStock(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}
	var req dto.StockRequest
	if !bind(c, &req) {
		return
	}
	s, err := h.uc.AddStock(c.Request.Context(), id, usecase.StockInput{Symbol: req.Symbol, Name: req.Name, Market: req.Market})
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewStockResponse(s))
}

// UpdateStock は PATCH /stocks/:id を処理します。
func (h *WatchlistHandler) UpdateStock(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}
	var req dto.StockRequest
	if !bind(c, &req) {
		return
	}
	s, err := h.uc.UpdateStock(c.Request.Context(), id, usecase.StockInput{Symbol: req.Symbol, Name: req.Name, Market: req.Market})
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewStockResponse(s))
}

// UpdateStockNote は PUT /stocks/:id/note を処理します。
func (h *WatchlistHandler) UpdateStockNote(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}
	var req dto.NoteRequest
	if !bind(c, &req) {
		return
	}
	s, err := h.uc.UpdateStockNote(c.Request.Context(), id, *req.Note)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewStockResponse(s))
}

// UpdateStockMA は PUT /stocks/:id/ma を処理します。
func (h *WatchlistHandler) UpdateStockMA(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}
	var req dto.MARequest
	if !bind(c, &req) {
		return
	}
	s, err := h.uc.UpdateStockMA(c.Request.Context(), id, *req.MASettings)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewStockResponse(s))
}

// DeleteStock は DELETE /stocks/:id を処理します。
func (h *WatchlistHandler) DeleteStock(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}
	if err := h.uc.DeleteStock(c.Request.Context(), id); err != nil {
		WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ParseID は :id パスパラメータを解析します。不正な場合は400を書き込みfalseを返します。
func ParseID(c *gin.Context) (uint, bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || n == 0 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return uint(n), true
}

// WriteError はドメインエラーをHTTPステータスに対応付けて書き込みます。
func WriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrGroupNotFound), errors.Is(err, domain.ErrStockNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrEmptyName), errors.Is(err, domain.ErrEmptySymbol), errors.Is(err, domain.ErrInvalidMarket):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("watchlist request failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "internal error"})
	}
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		slog.Warn("request validation failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid request"})
		return false
	}
	return true
}
