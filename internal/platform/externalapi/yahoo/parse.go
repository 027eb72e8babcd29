package yahoo

import (
	"fmt"
	"math"
	"sort"
	"time"

	"watchlist_backend/internal/feature/quotes/domain/entity"
	"watchlist_backend/internal/platform/externalapi/yahoo/dto"
)

// ParseChart converts a decoded chart response into a Series.
//
// 変換ルール:
//   - chart.result[0] がない場合は ErrNoData（パースエラーではない）
//   - indicators.quote[0] がない場合は ErrMalformedPayload
//   - 配列はインデックスで突き合わせ、close が null のバーは除外
//   - open/high/low が欠けている場合は close で補完
//   - タイムスタンプ（epoch秒）は loc に変換し、昇順・重複なしに整列
func ParseChart(body dto.ChartResponse, symbol, rng, interval string, loc *time.Location) (entity.Series, error) {
	if body.Chart == nil {
		return entity.Series{}, fmt.Errorf("%w: missing chart", ErrMalformedPayload)
	}
	if body.Chart.Error != nil {
		return entity.Series{}, fmt.Errorf("%w: %s", ErrNoData, body.Chart.Error.Description)
	}
	if len(body.Chart.Result) == 0 {
		return entity.Series{}, ErrNoData
	}

	result := body.Chart.Result[0]
	if result.Indicators == nil || len(result.Indicators.Quote) == 0 {
		return entity.Series{}, fmt.Errorf("%w: missing indicators.quote[0]", ErrMalformedPayload)
	}
	if len(result.Timestamp) == 0 {
		return entity.Series{}, ErrNoData
	}
	if loc == nil {
		loc = time.UTC
	}

	q := result.Indicators.Quote[0]
	bars := make([]entity.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		c, ok := at(q.Close, i)
		if !ok {
			continue
		}
		bar := entity.Bar{
			Time:  time.Unix(ts, 0).In(loc),
			Open:  orDefault(q.Open, i, c),
			High:  orDefault(q.High, i, c),
			Low:   orDefault(q.Low, i, c),
			Close: c,
		}
		if v, ok := at(q.Volume, i); ok && v >= 0 {
			vol := int64(math.Round(v))
			bar.Volume = &vol
		}
		bars = append(bars, bar)
	}

	bars = normalizeOrder(bars)
	if len(bars) == 0 {
		return entity.Series{}, ErrNoData
	}

	return entity.Series{
		Symbol:   symbol,
		Range:    rng,
		Interval: interval,
		Bars:     bars,
	}, nil
}

// at returns the finite value at index i of a nullable array.
func at(values []*float64, i int) (float64, bool) {
	if i >= len(values) || values[i] == nil {
		return 0, false
	}
	v := *values[i]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func orDefault(values []*float64, i int, def float64) float64 {
	if v, ok := at(values, i); ok {
		return v
	}
	return def
}

// normalizeOrder sorts bars by time and keeps only the last bar for a
// repeated timestamp, so the result is strictly increasing.
func normalizeOrder(bars []entity.Bar) []entity.Bar {
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	out := bars[:0]
	for _, b := range bars {
		if n := len(out); n > 0 && out[n-1].Time.Equal(b.Time) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}
