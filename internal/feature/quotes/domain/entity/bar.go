// Package entity defines the domain models for the quotes feature.
package entity

import "time"

// Bar represents one OHLCV sample for a single period.
// Time is already converted to the display zone.
type Bar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume *int64    `json:"volume,omitempty"` // nil when upstream reported no volume
}

// Series is the time-ordered sequence of bars for one symbol over one
// (range, interval) request. Bars are strictly increasing in time and
// never contain a bar without a close price.
//
// A Series is treated as immutable once returned; callers must copy Bars
// before modifying them.
type Series struct {
	Symbol   string `json:"symbol"`
	Range    string `json:"range"`
	Interval string `json:"interval"`
	Bars     []Bar  `json:"bars"`
}

// Len returns the number of bars in the series.
func (s Series) Len() int {
	return len(s.Bars)
}

// Closes returns the close prices in bar order.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Close
	}
	return out
}

// Latest returns the last bar and false when the series is empty.
func (s Series) Latest() (Bar, bool) {
	if len(s.Bars) == 0 {
		return Bar{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}
