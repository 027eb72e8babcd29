package yahoo

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData は上流がデータを返さなかったことを示します（chart.result[0]なし、有効なバーなし）。
	ErrNoData = errors.New("yahoo: no data")
	// ErrMalformedPayload は期待するJSON構造が欠けていることを示します。
	ErrMalformedPayload = errors.New("yahoo: malformed payload")
	// ErrEmptySymbol は銘柄コードが空であることを示します。
	ErrEmptySymbol = errors.New("yahoo: empty symbol")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("yahoo http %d", e.StatusCode)
}
