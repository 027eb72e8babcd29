package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"watchlist_backend/internal/feature/quotes/domain/entity"
	"watchlist_backend/internal/feature/quotes/usecase"
	"watchlist_backend/internal/platform/externalapi/yahoo/dto"
)

// Limiter は上流へのリクエスト頻度を制限します。
type Limiter interface {
	Wait(ctx context.Context) error
}

// YahooMarket はYahoo chart APIから株価データを取得するMarketRepository実装です。
type YahooMarket struct {
	cfg     Config
	client  *http.Client
	limiter Limiter
}

// YahooMarketがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*YahooMarket)(nil)

// Option はYahooMarketの構成オプションです。
type Option func(*YahooMarket)

// WithLimiter sets a limiter consulted before every upstream request.
func WithLimiter(l Limiter) Option {
	return func(y *YahooMarket) {
		y.limiter = l
	}
}

// NewYahooMarket は指定された設定とHTTPクライアントでYahooMarketの新しいインスタンスを生成します。
func NewYahooMarket(cfg Config, client *http.Client, opts ...Option) *YahooMarket {
	if client == nil {
		client = &http.Client{Timeout: cfg.withDefaults().Timeout}
	}
	y := &YahooMarket{cfg: cfg.withDefaults(), client: client}
	for _, opt := range opts {
		opt(y)
	}
	return y
}

// GetChart はYahoo chart APIから1銘柄の時系列を取得し、entity.Seriesとして返します。
// 失敗理由はエラーで区別できますが、キャッシュ層ですべて「利用不可」に変換されます。
func (y *YahooMarket) GetChart(ctx context.Context, symbol, rng, interval string) (entity.Series, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return entity.Series{}, ErrEmptySymbol
	}

	// 枠待ちは呼び出し元のctxで行い、リクエストのタイムアウトに含めない
	if y.limiter != nil {
		if err := y.limiter.Wait(ctx); err != nil {
			return entity.Series{}, fmt.Errorf("%w: %w", usecase.ErrRateLimited, err)
		}
	}

	// 1リクエストごとに短いタイムアウトを設定
	ctx, cancel := context.WithTimeout(ctx, y.cfg.Timeout)
	defer cancel()

	q := url.Values{}
	q.Set("range", rng)
	q.Set("interval", interval)
	q.Set("includePrePost", "false")
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", strings.TrimRight(y.cfg.BaseURL, "/"), url.PathEscape(symbol), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.Series{}, err
	}
	req.Header.Set("User-Agent", y.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	res, err := y.client.Do(req)
	if err != nil {
		return entity.Series{}, fmt.Errorf("yahoo fetch %s: %w", symbol, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return entity.Series{}, &StatusError{StatusCode: res.StatusCode}
	}

	var body dto.ChartResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return entity.Series{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	return ParseChart(body, symbol, rng, interval, y.cfg.DisplayZone)
}
