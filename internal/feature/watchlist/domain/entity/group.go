// Package entity defines the domain models for the watchlist feature.
package entity

// Group は銘柄をまとめる名前付きのグループです。
type Group struct {
	ID   uint
	Name string
	Note string
}
