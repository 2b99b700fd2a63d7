package reminders

import (
	"context"
	"time"

	"appointmed-service/internal/app/config"
	"appointmed-service/internal/app/contracts"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// leaderLockKey is the fixed key used to ensure a single reminder scanner.
const leaderLockKey = "reminders:leader"

// Worker periodically runs the reminder scan on one instance at a time.
type Worker struct {
	log             *zap.Logger
	cfg             *config.InternalConfig
	locker          contracts.LockerService
	reminderUsecase contracts.ReminderUsecase
	stop            chan struct{}
	cron            *cron.Cron
	runCtx          context.Context
	cancel          context.CancelFunc
}

func NewWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, reminderUsecase contracts.ReminderUsecase) *Worker {
	return &Worker{log: log, cfg: cfg, locker: lockerSvc, reminderUsecase: reminderUsecase, stop: make(chan struct{})}
}

// Start begins the periodic loop.
func (w *Worker) Start(ctx context.Context) {
	// create run context we can cancel from Stop()
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.App.ReminderCronSpec
	_, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("reminders.worker: failed to schedule with provided cron spec; falling back to */15", zap.Error(err))
		c = cron.New()
		_, _ = c.AddFunc("*/15 * * * *", func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop gracefully stops the worker cron and any in-flight runOnce refreshers.
func (w *Worker) Stop() {
	select {
	case <-w.stop:
		// already closed
	default:
		close(w.stop)
	}
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		ctx := w.cron.Stop() // wait for running jobs to finish
		<-ctx.Done()
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	ttl := 2 * time.Minute // fixed small TTL; cron cadence is independent
	acquired, token, err := w.locker.TryLock(ctx, leaderLockKey, ttl)
	if err != nil {
		w.log.Warn("reminders.worker: leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Info("reminders.worker: leader lock not acquired; another instance is running")
		return
	}
	defer w.locker.Unlock(ctx, leaderLockKey, token)

	// refresh the leader lock while the scan runs
	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go func() {
		tick := time.NewTicker(ttl / 2)
		defer tick.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-tick.C:
				if err := w.locker.Refresh(ctx, leaderLockKey, token, ttl); err != nil {
					w.log.Warn("reminders.worker: failed to refresh leader lock TTL", zap.Error(err))
				}
			}
		}
	}()

	if err := w.reminderUsecase.RunScan(ctx, time.Now().UTC()); err != nil {
		w.log.Warn("reminders.worker: scan failed", zap.Error(err))
	}
}
