// Package redis builds the optional Redis client used as a shared quote cache.
package redis

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrDisabled はRedisのホストが設定されていないことを表します。
var ErrDisabled = errors.New("redis disabled")

// pingTimeout は起動時の接続確認に使うタイムアウトです。
const pingTimeout = 2 * time.Second

// Options はRedisクライアントの接続設定です。
type Options struct {
	Host     string
	Port     string
	Password string
}

// NewRedisClient はRedisに接続し、疎通を確認したクライアントを返します。
// Hostが空ならErrDisabled、疎通できなければエラーを返すので、呼び出し側はインメモリにフォールバックします。
func NewRedisClient(ctx context.Context, opts Options) (*redis.Client, error) {
	if opts.Host == "" {
		return nil, ErrDisabled
	}
	port := opts.Port
	if port == "" {
		port = "6379"
	}
	addr := net.JoinHostPort(opts.Host, port)

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: opts.Password,
		DB:       0,
	})

	// 接続確認
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
