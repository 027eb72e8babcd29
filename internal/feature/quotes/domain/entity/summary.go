package entity

import "github.com/guregu/null/v6"

// Trend は価格変化の方向を表す3値分類です。
// ちょうど0の変化を区別するため、booleanではなく3値で表現します。
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
	// TrendNone は集計値そのものが未定義（全銘柄失敗など）で、0%の flat と区別するための値です。
	TrendNone Trend = "none"
)

// ClassifyChange は変化量を up / down / flat に分類します。
func ClassifyChange(v float64) Trend {
	switch {
	case v > 0:
		return TrendUp
	case v < 0:
		return TrendDown
	default:
		return TrendFlat
	}
}

// QuoteSummary は系列から導出した最新値と前日比です。
// 系列に1本以上のバーがある場合のみ定義されます。
type QuoteSummary struct {
	Symbol        string
	LatestClose   float64
	PreviousClose float64
	ChangeAmount  float64
	// ChangePercent は前日終値が0のとき未定義（Valid=false）になります。
	ChangePercent null.Float
}

// Trend は変化量に基づく分類を返します。
func (q QuoteSummary) Trend() Trend {
	return ClassifyChange(q.ChangeAmount)
}

// MovingAverageSet maps a window length to rolling means aligned one-to-one
// with the series bars. Slots before the window fills are invalid.
type MovingAverageSet map[int][]null.Float

// GroupAggregate is the reduced result of a group fan-out.
type GroupAggregate struct {
	// AveragePercent is invalid when no symbol produced a usable percent.
	AveragePercent null.Float
	Succeeded      int
	Failed         int
}

// Trend classifies the average percent. An undefined aggregate is TrendNone.
func (g GroupAggregate) Trend() Trend {
	if !g.AveragePercent.Valid {
		return TrendNone
	}
	return ClassifyChange(g.AveragePercent.Float64)
}
