// Package ratelimiter は上流APIへの呼び出し頻度を制限します。
package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Limiter は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type Limiter interface {
	Wait(ctx context.Context) error
}

// RateLimiter は固定ウィンドウ方式で操作の頻度を制限します。
// 複数のgoroutineから同時に利用できます。
type RateLimiter struct {
	limit    int           // ウィンドウあたりの上限
	interval time.Duration // どの単位でリセットするか

	mu          sync.Mutex
	count       int
	windowStart time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

var _ Limiter = (*RateLimiter)(nil)

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
// limitが0以下の場合は制限しません。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if interval <= 0 {
		interval = time.Minute
	}
	return &RateLimiter{
		limit:       limit,
		interval:    interval,
		windowStart: time.Now(),
		now:         time.Now,
		sleep:       sleepContext,
	}
}

// Wait は枠を1つ予約し、予約したウィンドウが始まるまで待機します。
// 待機中にctxが終了した場合は予約を取り消してctx.Err()を返します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl == nil || rl.limit <= 0 {
		return nil
	}

	rl.mu.Lock()
	now := rl.now()
	// 現在のウィンドウが終わっていれば、現在時刻から新しいウィンドウを始める
	if now.Sub(rl.windowStart) >= rl.interval {
		rl.windowStart = now
		rl.count = 0
	}
	// 上限に達していれば次のウィンドウに予約する
	for rl.count >= rl.limit {
		rl.windowStart = rl.windowStart.Add(rl.interval)
		rl.count = 0
	}
	rl.count++
	reserved := rl.windowStart
	wait := reserved.Sub(now)
	rl.mu.Unlock()

	if wait <= 0 {
		return nil
	}
	slog.Debug("rate limit reached, waiting", "limit", rl.limit, "wait", wait)
	if err := rl.sleep(ctx, wait); err != nil {
		rl.release(reserved)
		return err
	}
	return nil
}

// release は使われなかった予約を返却します。
// 後続がさらに先のウィンドウを予約済みの場合は返却しません。
func (rl *RateLimiter) release(window time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if rl.windowStart.Equal(window) && rl.count > 0 {
		rl.count--
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
