// Package dto defines data transfer objects for the dashboard HTTP API.
package dto

import (
	"github.com/guregu/null/v6"

	"watchlist_backend/internal/feature/dashboard/usecase"
	quotedto "watchlist_backend/internal/feature/quotes/transport/http/dto"
	watchdto "watchlist_backend/internal/feature/watchlist/transport/http/dto"
)

// GroupOverviewItem はグループ一覧の1行です。平均変化率が未定義ならnullです。
type GroupOverviewItem struct {
	ID             uint        `json:"id"`
	Name           string      `json:"name"`
	Note           string      `json:"note"`
	StockCount     int         `json:"stock_count"`
	AveragePercent null.String `json:"average_percent"`
	Trend          string      `json:"trend"`
	Succeeded      int         `json:"succeeded"`
	Failed         int         `json:"failed"`
}

// StockQuoteItem は銘柄とそのサマリーです。取得できなかった場合quoteはnullです。
type StockQuoteItem struct {
	watchdto.StockResponse
	Quote *quotedto.SummaryResponse `json:"quote"`
}

// GroupDetailResponse はグループ詳細のレスポンスDTOです。
type GroupDetailResponse struct {
	Group  GroupOverviewItem `json:"group"`
	Stocks []StockQuoteItem  `json:"stocks"`
}

// StockChartResponse は銘柄チャートのレスポンスDTOです。
type StockChartResponse struct {
	Stock   watchdto.StockResponse `json:"stock"`
	Windows []int                  `json:"windows"`
	Chart   quotedto.ChartResponse `json:"chart"`
}

// NewGroupOverviewItem はGroupOverviewをDTOに変換します。
func NewGroupOverviewItem(o usecase.GroupOverview) GroupOverviewItem {
	return GroupOverviewItem{
		ID:             o.Group.ID,
		Name:           o.Group.Name,
		Note:           o.Group.Note,
		StockCount:     o.StockCount,
		AveragePercent: quotedto.FormatPercent(o.Aggregate.AveragePercent),
		Trend:          string(o.Aggregate.Trend()),
		Succeeded:      o.Aggregate.Succeeded,
		Failed:         o.Aggregate.Failed,
	}
}

// NewGroupDetailResponse はGroupDetailをDTOに変換します。
func NewGroupDetailResponse(d usecase.GroupDetail) GroupDetailResponse {
	items := make([]StockQuoteItem, 0, len(d.Stocks))
	for _, sq := range d.Stocks {
		item := StockQuoteItem{StockResponse: watchdto.NewStockResponse(sq.Stock)}
		if sq.Available {
			q := quotedto.NewSummaryResponse(sq.Summary)
			item.Quote = &q
		}
		items = append(items, item)
	}
	return GroupDetailResponse{
		Group: NewGroupOverviewItem(usecase.GroupOverview{
			Group:      d.Group,
			StockCount: len(d.Stocks),
			Aggregate:  d.Aggregate,
		}),
		Stocks: items,
	}
}

// NewStockChartResponse はStockChartをDTOに変換します。
func NewStockChartResponse(sc usecase.StockChart) StockChartResponse {
	windows := sc.Chart.Windows
	if windows == nil {
		windows = []int{}
	}
	return StockChartResponse{
		Stock:   watchdto.NewStockResponse(sc.Stock),
		Windows: windows,
		Chart:   quotedto.NewChartResponse(sc.Chart.Series, sc.Chart.Summary, sc.Chart.MovingAverages),
	}
}
