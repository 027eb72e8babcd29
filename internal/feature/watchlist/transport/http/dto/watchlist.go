// Package dto defines data transfer objects for the watchlist HTTP API.
package dto

import "watchlist_backend/internal/feature/watchlist/domain/entity"

// GroupRequest はグループ作成・名前変更のリクエストです。
type GroupRequest struct {
	Name string `json:"name" binding:"required"`
}

// NoteRequest はメモ更新のリクエストです。空文字でメモを消せます。
type NoteRequest struct {
	Note *string `json:"note" binding:"required"`
}

// StockRequest は銘柄追加・更新のリクエストです。marketは省略可能です（"TW" / "US"）。
type StockRequest struct {
	Symbol string `json:"symbol" binding:"required"`
	Name   string `json:"name"`
	Market string `json:"market"`
}

// MARequest は移動平均設定の更新リクエストです。
type MARequest struct {
	MASettings *string `json:"ma_settings" binding:"required"`
}

// GroupResponse はグループのレスポンスDTOです。
type GroupResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Note string `json:"note"`
}

// StockResponse は銘柄のレスポンスDTOです。
type StockResponse struct {
	ID          uint   `json:"id"`
	GroupID     uint   `json:"group_id"`
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Market      string `json:"market"`
	MASettings  string `json:"ma_settings"`
	Note        string `json:"note"`
}

// NewGroupResponse はGroupをレスポンスDTOに変換します。
func NewGroupResponse(g entity.Group) GroupResponse {
	return GroupResponse{ID: g.ID, Name: g.Name, Note: g.Note}
}

// NewStockResponse はStockをレスポンスDTOに変換します。
func NewStockResponse(s entity.Stock) StockResponse {
	return StockResponse{
		ID:          s.ID,
		GroupID:     s.GroupID,
		Symbol:      s.Symbol,
		Name:        s.Name,
		DisplayName: s.DisplayName(),
		Market:      string(s.Market),
		MASettings:  s.MASettings,
		Note:        s.Note,
	}
}
