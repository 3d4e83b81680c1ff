package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"flight-connection/utils"
)

// Job is one unit of scheduled work
type Job func(ctx context.Context) error

// RunStats counts finished runs
type RunStats struct {
	Succeeded int
	Failed    int
	LastRun   time.Time
	LastErr   error
}

// Watcher runs a job on a cron schedule (seconds field enabled)
type Watcher struct {
	name     string
	schedule string
	job      Job
	logger   *utils.Logger
	cron     *cron.Cron

	mu    sync.Mutex
	stats RunStats
}

// New creates a Watcher. The schedule is only parsed by Start.
func New(name, schedule string, job Job, logger *utils.Logger) *Watcher {
	cl := cronLogger{logger: logger}
	return &Watcher{
		name:     name,
		schedule: schedule,
		job:      job,
		logger:   logger,
		// Prevent overlapping runs
		cron: cron.New(cron.WithSeconds(), cron.WithLogger(cl), cron.WithChain(cron.SkipIfStillRunning(cl))),
	}
}

// Start registers the job and blocks until ctx is cancelled
func (w *Watcher) Start(ctx context.Context) error {
	_, err := w.cron.AddFunc(w.schedule, func() {
		if err := w.RunOnce(ctx); err != nil {
			w.logger.Error("Scheduled run of %s failed: %v", w.name, err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	w.logger.Info("Watching %s with schedule: %s", w.name, w.schedule)
	w.cron.Start()

	<-ctx.Done()
	w.logger.Info("Watcher stopped for %s", w.name)
	// wait for a run in progress to return
	<-w.cron.Stop().Done()
	return ctx.Err()
}

// RunOnce runs the job immediately and records the outcome
func (w *Watcher) RunOnce(ctx context.Context) error {
	start := time.Now()
	w.logger.Info("Starting %s run...", w.name)

	err := w.job(ctx)

	w.mu.Lock()
	w.stats.LastRun = start
	w.stats.LastErr = err
	if err != nil {
		w.stats.Failed++
	} else {
		w.stats.Succeeded++
	}
	w.mu.Unlock()

	if err != nil {
		return fmt.Errorf("%s run failed: %w", w.name, err)
	}
	w.logger.Info("%s run finished in %s", w.name, time.Since(start).Round(time.Millisecond))
	return nil
}

// Stats returns a snapshot of the run counters
func (w *Watcher) Stats() RunStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// cronLogger routes cron's key/value logging through utils.Logger
type cronLogger struct {
	logger *utils.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: %s %v", msg, keysAndValues)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: %s: %v %v", msg, err, keysAndValues)
}
