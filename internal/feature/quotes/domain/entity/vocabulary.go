package entity

// Ranges accepted by the upstream chart endpoint.
var validRanges = map[string]struct{}{
	"1d": {}, "5d": {}, "1mo": {}, "3mo": {}, "6mo": {},
	"1y": {}, "2y": {}, "5y": {}, "10y": {}, "ytd": {}, "max": {},
}

// Intervals accepted by the upstream chart endpoint.
var validIntervals = map[string]struct{}{
	"1m": {}, "2m": {}, "5m": {}, "15m": {}, "30m": {}, "60m": {}, "90m": {},
	"1h": {}, "1d": {}, "5d": {}, "1wk": {}, "1mo": {}, "3mo": {},
}

// IsValidRange reports whether r is part of the upstream range vocabulary.
func IsValidRange(r string) bool {
	_, ok := validRanges[r]
	return ok
}

// IsValidInterval reports whether i is part of the upstream interval vocabulary.
func IsValidInterval(i string) bool {
	_, ok := validIntervals[i]
	return ok
}
