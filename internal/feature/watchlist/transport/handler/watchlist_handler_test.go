package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"watchlist_backend/internal/feature/watchlist/domain"
	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/feature/watchlist/transport/handler"
	"watchlist_backend/internal/feature/watchlist/usecase"
)

// mockWatchlistUsecase はWatchlistUsecaseインターフェースのモック実装です。
// 未設定の関数はゼロ値を返します。
type mockWatchlistUsecase struct {
	ListGroupsFunc      func(ctx context.Context) ([]entity.Group, error)
	CreateGroupFunc     func(ctx context.Context, name string) (entity.Group, error)
	RenameGroupFunc     func(ctx context.Context, id uint, name string) (entity.Group, error)
	UpdateGroupNoteFunc func(ctx context.Context, id uint, note string) (entity.Group, error)
	DeleteGroupFunc     func(ctx context.Context, id uint) error
	ListStocksFunc      func(ctx context.Context, groupID uint) ([]entity.Stock, error)
	AddStockFunc        func(ctx context.Context, groupID uint, in usecase.StockInput) (entity.Stock, error)
	UpdateStockFunc     func(ctx context.Context, id uint, in usecase.StockInput) (entity.Stock, error)
	UpdateStockNoteFunc func(ctx context.Context, id uint, note string) (entity.Stock, error)
	UpdateStockMAFunc   func(ctx context.Context, id uint, ma string) (entity.Stock, error)
	DeleteStockFunc     func(ctx context.Context, id uint) error
}

func (m *mockWatchlistUsecase) ListGroups(ctx context.Context) ([]entity.Group, error) {
	if m.ListGroupsFunc == nil {
		return nil, nil
	}
	return m.ListGroupsFunc(ctx)
}

func (m *mockWatchlistUsecase) CreateGroup(ctx context.Context, name string) (entity.Group, error) {
	if m.CreateGroupFunc == nil {
		return entity.Group{}, nil
	}
	return m.CreateGroupFunc(ctx, name)
}

func (m *mockWatchlistUsecase) RenameGroup(ctx context.Context, id uint, name string) (entity.Group, error) {
	if m.RenameGroupFunc == nil {
		return entity.Group{}, nil
	}
	return m.RenameGroupFunc(ctx, id, name)
}

func (m *mockWatchlistUsecase) UpdateGroupNote(ctx context.Context, id uint, note string) (entity.Group, error) {
	if m.UpdateGroupNoteFunc == nil {
		return entity.Group{}, nil
	}
	return m.UpdateGroupNoteFunc(ctx, id, note)
}

func (m *mockWatchlistUsecase) DeleteGroup(ctx context.Context, id uint) error {
	if m.DeleteGroupFunc == nil {
		return nil
	}
	return m.DeleteGroupFunc(ctx, id)
}

func (m *mockWatchlistUsecase) ListStocks(ctx context.Context, groupID uint) ([]entity.Stock, error) {
	if m.ListStocksFunc == nil {
		return nil, nil
	}
	return m.ListStocksFunc(ctx, groupID)
}

func (m *mockWatchlistUsecase) AddStock(ctx context.Context, groupID uint, in usecase.StockInput) (entity.Stock, error) {
	if m.AddStockFunc == nil {
		return entity.Stock{}, nil
	}
	return m.AddStockFunc(ctx, groupID, in)
}

func (m *mockWatchlistUsecase) UpdateStock(ctx context.Context, id uint, in usecase.StockInput) (entity.Stock, error) {
	if m.UpdateStockFunc == nil {
		return entity.Stock{}, nil
	}
	return m.UpdateStockFunc(ctx, id, in)
}

func (m *mockWatchlistUsecase) UpdateStockNote(ctx context.Context, id uint, note string) (entity.Stock, error) {
	if m.UpdateStockNoteFunc == nil {
		return entity.Stock{}, nil
	}
	return m.UpdateStockNoteFunc(ctx, id, note)
}

func (m *mockWatchlistUsecase) UpdateStockMA(ctx context.Context, id uint, ma string) (entity.Stock, error) {
	if m.UpdateStockMAFunc == nil {
		return entity.Stock{}, nil
	}
	return m.UpdateStockMAFunc(ctx, id, ma)
}

func (m *mockWatchlistUsecase) DeleteStock(ctx context.Context, id uint) error {
	if m.DeleteStockFunc == nil {
		return nil
	}
	return m.DeleteStockFunc(ctx, id)
}

func setupRouter(uc handler.WatchlistUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewWatchlistHandler(uc)
	r.GET("/groups", h.ListGroups)
	r.POST("/groups", h.CreateGroup)
	r.PATCH("/groups/:id", h.RenameGroup)
	r.DELETE("/groups/:id", h.DeleteGroup)
	r.PUT("/groups/:id/note", h.UpdateGroupNote)
	r.GET("/groups/:id/stocks", h.ListStocks)
	r.POST("/groups/:id/stocks", h.AddStock)
	r.PATCH("/stocks/:id", h.UpdateStock)
	r.DELETE("/stocks/:id", h.DeleteStock)
	r.PUT("/stocks/:id/note", h.UpdateStockNote)
	r.PUT("/stocks/:id/ma", h.UpdateStockMA)
	return r
}

func TestWatchlistHandler(t *testing.T) {
	tsmc := entity.Stock{ID: 7, GroupID: 1, Symbol: "2330.TW", Name: "台積電", MASettings: "5,10,20", Market: entity.MarketTW}

	tests := []struct {
		name           string
		method         string
		url            string
		body           string
		uc             *mockWatchlistUsecase
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "list groups",
			method: http.MethodGet,
			url:    "/groups",
			uc: &mockWatchlistUsecase{ListGroupsFunc: func(context.Context) ([]entity.Group, error) {
				return []entity.Group{{ID: 1, Name: "半導體", Note: "n"}}, nil
			}},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"id":1,"name":"半導體","note":"n"}]`,
		},
		{
			name:           "list groups empty is array",
			method:         http.MethodGet,
			url:            "/groups",
			uc:             &mockWatchlistUsecase{},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name:   "list groups store failure",
			method: http.MethodGet,
			url:    "/groups",
			uc: &mockWatchlistUsecase{ListGroupsFunc: func(context.Context) ([]entity.Group, error) {
				return nil, errors.New("disk I/O error")
			}},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal error"}`,
		},
		{
			name:   "create group",
			method: http.MethodPost,
			url:    "/groups",
			body:   `{"name":"金融"}`,
			uc: &mockWatchlistUsecase{CreateGroupFunc: func(_ context.Context, name string) (entity.Group, error) {
				return entity.Group{ID: 3, Name: name}, nil
			}},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"id":3,"name":"金融","note":""}`,
		},
		{
			name:           "create group missing name",
			method:         http.MethodPost,
			url:            "/groups",
			body:           `{}`,
			uc:             &mockWatchlistUsecase{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request"}`,
		},
		{
			name:   "create group blank name",
			method: http.MethodPost,
			url:    "/groups",
			body:   `{"name":"  "}`,
			uc: &mockWatchlistUsecase{CreateGroupFunc: func(context.Context, string) (entity.Group, error) {
				return entity.Group{}, domain.ErrEmptyName
			}},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"group name is required"}`,
		},
		{
			name:   "rename unknown group",
			method: http.MethodPatch,
			url:    "/groups/9",
			body:   `{"name":"x"}`,
			uc: &mockWatchlistUsecase{RenameGroupFunc: func(context.Context, uint, string) (entity.Group, error) {
				return entity.Group{}, domain.ErrGroupNotFound
			}},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"group not found"}`,
		},
		{
			name:           "invalid id",
			method:         http.MethodDelete,
			url:            "/groups/abc",
			uc:             &mockWatchlistUsecase{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid id"}`,
		},
		{
			name:           "delete group",
			method:         http.MethodDelete,
			url:            "/groups/1",
			uc:             &mockWatchlistUsecase{},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:   "clear group note",
			method: http.MethodPut,
			url:    "/groups/1/note",
			body:   `{"note":""}`,
			uc: &mockWatchlistUsecase{UpdateGroupNoteFunc: func(_ context.Context, id uint, note string) (entity.Group, error) {
				return entity.Group{ID: id, Name: "A", Note: note}, nil
			}},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"id":1,"name":"A","note":""}`,
		},
		{
			name:           "note field required",
			method:         http.MethodPut,
			url:            "/groups/1/note",
			body:           `{}`,
			uc:             &mockWatchlistUsecase{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "list stocks",
			method: http.MethodGet,
			url:    "/groups/1/stocks",
			uc: &mockWatchlistUsecase{ListStocksFunc: func(context.Context, uint) ([]entity.Stock, error) {
				return []entity.Stock{tsmc}, nil
			}},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"id":7,"group_id":1,"symbol":"2330.TW","name":"台積電","display_name":"2330.TW 台積電","market":"TW","ma_settings":"5,10,20","note":""}]`,
		},
		{
			name:   "add stock",
			method: http.MethodPost,
			url:    "/groups/1/stocks",
			body:   `{"symbol":"2330.tw","name":"台積電"}`,
			uc: &mockWatchlistUsecase{AddStockFunc: func(_ context.Context, groupID uint, in usecase.StockInput) (entity.Stock, error) {
				if groupID != 1 || in.Symbol != "2330.tw" {
					return entity.Stock{}, errors.New("unexpected input")
				}
				return tsmc, nil
			}},
			expectedStatus: http.StatusCreated,
		},
		{
			name:   "add stock invalid market",
			method: http.MethodPost,
			url:    "/groups/1/stocks",
			body:   `{"symbol":"7203.T","market":"JP"}`,
			uc: &mockWatchlistUsecase{AddStockFunc: func(context.Context, uint, usecase.StockInput) (entity.Stock, error) {
				return entity.Stock{}, domain.ErrInvalidMarket
			}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "update ma",
			method: http.MethodPut,
			url:    "/stocks/7/ma",
			body:   `{"ma_settings":"20,60"}`,
			uc: &mockWatchlistUsecase{UpdateStockMAFunc: func(_ context.Context, _ uint, ma string) (entity.Stock, error) {
				s := tsmc
				s.MASettings = ma
				return s, nil
			}},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"id":7,"group_id":1,"symbol":"2330.TW","name":"台積電","display_name":"2330.TW 台積電","market":"TW","ma_settings":"20,60","note":""}`,
		},
		{
			name:   "delete unknown stock",
			method: http.MethodDelete,
			url:    "/stocks/99",
			uc: &mockWatchlistUsecase{DeleteStockFunc: func(context.Context, uint) error {
				return domain.ErrStockNotFound
			}},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"stock not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(tt.method, tt.url, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			setupRouter(tt.uc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}
