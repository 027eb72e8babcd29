// Package scheduler runs periodic background jobs such as the quote cache warm-up.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Task はスケジュール実行されるジョブです。
type Task func(ctx context.Context) error

// parser は秒フィールドを省略可能にし、"@every 55s" などの記述子も受け付けます。
var parser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Scheduler はcronジョブを管理します。
type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context

	mu    sync.Mutex
	tasks map[string]Task
}

// New はSchedulerを生成します。ctxは各ジョブに渡され、キャンセルされるとジョブも中断されます。
// 前回の実行が終わっていなければ次の実行はスキップします。
func New(ctx context.Context) *Scheduler {
	logger := slogLogger{}
	return &Scheduler{
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		ctx:   ctx,
		tasks: map[string]Task{},
	}
}

// Register はspecのスケジュールでtaskを登録します。
func (s *Scheduler) Register(name, spec string, task Task) error {
	if _, err := s.cron.AddFunc(spec, func() { s.run(name, task) }); err != nil {
		return fmt.Errorf("register %s task: %w", name, err)
	}
	s.mu.Lock()
	s.tasks[name] = task
	s.mu.Unlock()
	slog.Info("scheduled task registered", "task", name, "spec", spec)
	return nil
}

// RunNow は登録済みのジョブを即座に1回実行します（起動直後のウォームアップ用）。
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	task, ok := s.tasks[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown task %q", name)
	}
	s.run(name, task)
	return nil
}

// Len は登録済みのジョブ数を返します。
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started", "tasks", s.Len())
}

// Stop は新しい実行を止め、実行中のジョブの終了を待ちます。
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	slog.Info("scheduler stopped")
}

func (s *Scheduler) run(name string, task Task) {
	if s.ctx.Err() != nil {
		return
	}
	if err := task(s.ctx); err != nil {
		slog.Error("scheduled task failed", "task", name, "error", err)
		return
	}
	slog.Debug("scheduled task finished", "task", name)
}

// slogLogger adapts cron.Logger to slog.
type slogLogger struct{}

func (slogLogger) Info(msg string, keysAndValues ...any) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (slogLogger) Error(err error, msg string, keysAndValues ...any) {
	slog.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
