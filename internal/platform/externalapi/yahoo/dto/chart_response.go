// Package dto defines data transfer objects for the Yahoo Finance chart API responses.
package dto

// ChartResponse represents the JSON response from the /v8/finance/chart endpoint.
// Every nested level is a pointer or slice so that missing keys can be told
// apart from empty values.
type ChartResponse struct {
	Chart *Chart `json:"chart"`
}

// Chart wraps the result list and an optional upstream error.
type Chart struct {
	Result []ChartResult `json:"result"`
	Error  *ChartError   `json:"error"`
}

// ChartError is returned by Yahoo for unknown symbols and bad parameters.
type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ChartResult holds the parallel arrays for one symbol.
type ChartResult struct {
	Meta       *Meta       `json:"meta"`
	Timestamp  []int64     `json:"timestamp"`
	Indicators *Indicators `json:"indicators"`
}

// Meta is the subset of result metadata we read.
type Meta struct {
	Symbol               string `json:"symbol"`
	Currency             string `json:"currency"`
	ExchangeTimezoneName string `json:"exchangeTimezoneName"`
}

// Indicators holds the quote arrays.
type Indicators struct {
	Quote []QuoteArrays `json:"quote"`
}

// QuoteArrays are index-aligned with ChartResult.Timestamp. Entries are null
// for periods without trades. Volume is decoded as float because Yahoo
// occasionally emits it in exponent form.
type QuoteArrays struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`
}
