package usecase

import (
	"strconv"
	"strings"

	"github.com/guregu/null/v6"

	"watchlist_backend/internal/feature/quotes/domain/entity"
)

// Summarize は系列の最新終値と前日比を計算します。
//
//   - バーが0本: ok=false
//   - バーが1本: 変化量・変化率ともに0
//   - 2本以上: 末尾2本の終値で計算。前日終値が0なら変化率は未定義
func Summarize(s entity.Series) (entity.QuoteSummary, bool) {
	last, ok := s.Latest()
	if !ok {
		return entity.QuoteSummary{}, false
	}

	latest := last.Close
	n := s.Len()
	if n == 1 {
		return entity.QuoteSummary{
			Symbol:        s.Symbol,
			LatestClose:   latest,
			PreviousClose: latest,
			ChangePercent: null.FloatFrom(0),
		}, true
	}

	prev := s.Bars[n-2].Close
	sum := entity.QuoteSummary{
		Symbol:        s.Symbol,
		LatestClose:   latest,
		PreviousClose: prev,
		ChangeAmount:  latest - prev,
	}
	if prev != 0 {
		sum.ChangePercent = null.FloatFrom((latest - prev) / prev * 100)
	}
	return sum, true
}

// MovingAverages computes the simple rolling mean of close prices for each
// window. Position i is valid only once w bars up to and including i exist.
func MovingAverages(s entity.Series, windows []int) entity.MovingAverageSet {
	closes := s.Closes()
	out := make(entity.MovingAverageSet, len(windows))
	for _, w := range windows {
		if w <= 0 {
			continue
		}
		if _, done := out[w]; done {
			continue
		}
		vals := make([]null.Float, len(closes))
		var sum float64
		for i, c := range closes {
			sum += c
			if i >= w {
				sum -= closes[i-w]
			}
			if i+1 >= w {
				vals[i] = null.FloatFrom(sum / float64(w))
			}
		}
		out[w] = vals
	}
	return out
}

// ParseWindows はカンマ区切りの移動平均設定（例: "5,10,20"）を解析します。
// 正の整数でないトークンは黙って読み飛ばします。重複は除き、出現順を保ちます。
func ParseWindows(s string) []int {
	seen := map[int]struct{}{}
	var out []int
	for _, tok := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil || n <= 0 {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
