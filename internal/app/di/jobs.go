package di

import (
	"context"
	"log/slog"

	dashboardusecase "watchlist_backend/internal/feature/dashboard/usecase"
	"watchlist_backend/internal/platform/cache"
	"watchlist_backend/internal/platform/scheduler"
)

const (
	// WarmupTask は一覧を取得してキャッシュを温めるジョブ名です。
	WarmupTask = "quote-warmup"
	// PurgeTask はインメモリキャッシュの期限切れエントリを掃除するジョブ名です。
	PurgeTask = "quote-cache-purge"
)

// PurgeExpired は store から期限切れのエントリを取り除くジョブを返します。
func PurgeExpired(store *cache.MemoryStore) scheduler.Task {
	return func(context.Context) error {
		removed := store.Purge()
		slog.Debug("quote cache purged", "removed", removed, "remaining", store.Len())
		return nil
	}
}

// WarmOverview は一覧の集計を1回走らせてキャッシュを埋めるジョブを返します。
func WarmOverview(dashboard *dashboardusecase.DashboardUsecase) scheduler.Task {
	return func(ctx context.Context) error {
		_, err := dashboard.Overview(ctx)
		return err
	}
}

// NewJobs はバックグラウンドジョブを登録したSchedulerを返します。開始は呼び出し側で行います。
// Redisは自前でTTLを失効させるので、掃除ジョブはインメモリストアのときだけ登録します。
func NewJobs(ctx context.Context, store cache.Store, dashboard *dashboardusecase.DashboardUsecase, purgeSpec, warmupSpec string) (*scheduler.Scheduler, error) {
	s := scheduler.New(ctx)
	if mem, ok := store.(*cache.MemoryStore); ok && purgeSpec != "" {
		if err := s.Register(PurgeTask, purgeSpec, PurgeExpired(mem)); err != nil {
			return nil, err
		}
	}
	if warmupSpec != "" {
		if err := s.Register(WarmupTask, warmupSpec, WarmOverview(dashboard)); err != nil {
			return nil, err
		}
	}
	return s, nil
}
