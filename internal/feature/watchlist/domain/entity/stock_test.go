package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarketForSymbol(t *testing.T) {
	t.Parallel()

	tests := []struct {
		symbol string
		want   Market
	}{
		{"2330.TW", MarketTW},
		{"3131.two", MarketTW},
		{"AAPL", MarketUS},
		{"TWLO", MarketUS},
		{"TW", MarketUS},
		{"", MarketUS},
	}
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MarketForSymbol(tt.symbol))
		})
	}
}

func TestStock_DisplayName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2330.TW 台積電", Stock{Symbol: "2330.TW", Name: "台積電", Market: MarketTW}.DisplayName())
	assert.Equal(t, "2330.TW", Stock{Symbol: "2330.TW", Market: MarketTW}.DisplayName())
	assert.Equal(t, "NVDA", Stock{Symbol: "NVDA", Name: "NVIDIA", Market: MarketUS}.DisplayName())
}

func TestParseMarket(t *testing.T) {
	t.Parallel()

	m, ok := ParseMarket(" tw ")
	assert.True(t, ok)
	assert.Equal(t, MarketTW, m)
	_, ok = ParseMarket("JP")
	assert.False(t, ok)
}
