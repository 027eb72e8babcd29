package usecase

import "errors"

var (
	// ErrUnavailable は系列が取得できなかった（上流の失敗・データなし）ことを示します。
	ErrUnavailable = errors.New("quote data unavailable")
	// ErrInvalidRange は上流が受け付けないrangeが指定されたことを示します。
	ErrInvalidRange = errors.New("invalid range")
	// ErrInvalidInterval は上流が受け付けないintervalが指定されたことを示します。
	ErrInvalidInterval = errors.New("invalid interval")
	// ErrEmptySymbol は銘柄コードが空であることを示します。
	ErrEmptySymbol = errors.New("symbol is required")
	// ErrRateLimited は上流の呼び出し枠を待つ間に打ち切られたことを示します。銘柄の失敗ではありません。
	ErrRateLimited = errors.New("upstream rate limit wait aborted")
)
