// Package response はHTTPハンドラー共通のレスポンス型を提供します。
package response

// ErrorResponse はエラー時のレスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse はボディを持たない成功時のレスポンスです。
type MessageResponse struct {
	Message string `json:"message"`
}
