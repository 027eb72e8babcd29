package entity

import "strings"

// Market は銘柄の上場市場です。表示形式の切り替えに使います。
type Market string

const (
	MarketTW Market = "TW"
	MarketUS Market = "US"
)

// DefaultMASettings は銘柄追加時の移動平均設定です。
const DefaultMASettings = "5,10,20"

// Stock はグループに属するウォッチ対象の銘柄です。
type Stock struct {
	ID         uint
	GroupID    uint
	Symbol     string
	Name       string
	MASettings string // カンマ区切りの移動平均の期間（例: "5,10,20"）
	Note       string
	Market     Market
}

// MarketForSymbol derives the market from the exchange suffix of symbol.
// ".TW" (TWSE) and ".TWO" (TPEx) are Taiwan listings; everything else is US.
func MarketForSymbol(symbol string) Market {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if strings.HasSuffix(s, ".TW") || strings.HasSuffix(s, ".TWO") {
		return MarketTW
	}
	return MarketUS
}

// ParseMarket は文字列をMarketに変換します。空や未知の値はok=falseです。
func ParseMarket(s string) (Market, bool) {
	switch Market(strings.ToUpper(strings.TrimSpace(s))) {
	case MarketTW:
		return MarketTW, true
	case MarketUS:
		return MarketUS, true
	default:
		return "", false
	}
}

// DisplayName は台湾銘柄なら「コード 名称」、それ以外はコードを返します。
func (s Stock) DisplayName() string {
	if s.Market == MarketTW && s.Name != "" {
		return s.Symbol + " " + s.Name
	}
	return s.Symbol
}
