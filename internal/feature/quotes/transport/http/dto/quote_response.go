// Package dto defines data transfer objects for the quotes HTTP API.
package dto

import (
	"time"

	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"

	"watchlist_backend/internal/feature/quotes/domain/entity"
)

// SummaryResponse は最新値と前日比のレスポンスDTOです。
// 価格・変化量は小数点以下2桁の文字列、未定義の変化率はnullです。
type SummaryResponse struct {
	Symbol        string      `json:"symbol"`
	Price         string      `json:"price"`
	PreviousClose string      `json:"previous_close"`
	Change        string      `json:"change"`
	ChangePercent null.String `json:"change_percent"`
	Trend         string      `json:"trend"`
}

// BarResponse はローソク足1本のレスポンスDTOです。
type BarResponse struct {
	Time   string  `json:"time"` // 表示タイムゾーンのRFC3339
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume *int64  `json:"volume"`
}

// ChartResponse はチャート表示用のレスポンスDTOです。
// MovingAveragesのキーは期間、値はBarsと同じ長さで、窓が埋まる前はnullです。
type ChartResponse struct {
	Symbol         string               `json:"symbol"`
	Range          string               `json:"range"`
	Interval       string               `json:"interval"`
	Summary        SummaryResponse      `json:"summary"`
	Bars           []BarResponse        `json:"bars"`
	MovingAverages map[int][]null.Float `json:"moving_averages"`
}

// FormatPrice は価格を小数点以下2桁の文字列にします。
func FormatPrice(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatPercent は定義済みの変化率を小数点以下2桁の文字列にします。未定義ならnullです。
func FormatPercent(p null.Float) null.String {
	if !p.Valid {
		return null.String{}
	}
	return null.StringFrom(decimal.NewFromFloat(p.Float64).StringFixed(2))
}

// NewSummaryResponse はQuoteSummaryをレスポンスDTOに変換します。
func NewSummaryResponse(s entity.QuoteSummary) SummaryResponse {
	return SummaryResponse{
		Symbol:        s.Symbol,
		Price:         FormatPrice(s.LatestClose),
		PreviousClose: FormatPrice(s.PreviousClose),
		Change:        FormatPrice(s.ChangeAmount),
		ChangePercent: FormatPercent(s.ChangePercent),
		Trend:         string(s.Trend()),
	}
}

// NewChartResponse は系列・サマリー・移動平均をレスポンスDTOに変換します。
func NewChartResponse(s entity.Series, sum entity.QuoteSummary, ma entity.MovingAverageSet) ChartResponse {
	bars := make([]BarResponse, 0, len(s.Bars))
	for _, b := range s.Bars {
		bars = append(bars, BarResponse{
			Time:   b.Time.Format(time.RFC3339),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}
	if ma == nil {
		ma = entity.MovingAverageSet{}
	}
	return ChartResponse{
		Symbol:         s.Symbol,
		Range:          s.Range,
		Interval:       s.Interval,
		Summary:        NewSummaryResponse(sum),
		Bars:           bars,
		MovingAverages: ma,
	}
}
