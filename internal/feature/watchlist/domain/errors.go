// Package domain defines domain-level errors for the watchlist feature.
package domain

import "errors"

var (
	// ErrGroupNotFound indicates that no group exists with the given id.
	ErrGroupNotFound = errors.New("group not found")

	// ErrStockNotFound indicates that no stock exists with the given id.
	ErrStockNotFound = errors.New("stock not found")

	// ErrEmptyName is returned when a group is created or renamed with a blank name.
	ErrEmptyName = errors.New("group name is required")

	// ErrEmptySymbol is returned when a stock is added or updated with a blank symbol.
	ErrEmptySymbol = errors.New("stock symbol is required")

	// ErrInvalidMarket is returned for a market other than TW or US.
	ErrInvalidMarket = errors.New("invalid market")
)
