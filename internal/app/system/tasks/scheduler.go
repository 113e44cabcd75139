// internal/app/system/tasks/scheduler.go
package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a named unit of background work run on a cron schedule.
// Schedule accepts standard five-field specs and descriptors such as
// "@every 5m" or "@daily".
type Job struct {
	Name     string
	Schedule string
	Run      func(ctx context.Context) error
}

// Scheduler runs Jobs. Runs of one job never overlap, and a panicking job
// is recovered and logged.
type Scheduler struct {
	cron   *cron.Cron
	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	started bool
	names   map[string]cron.EntryID
}

// NewScheduler returns a stopped scheduler.
func NewScheduler(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	cl := cronLogger{log: logger.Named("tasks")}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		log:    logger,
		ctx:    ctx,
		cancel: cancel,
		names:  make(map[string]cron.EntryID),
	}
}

// Add registers j. Names must be unique.
func (s *Scheduler) Add(j Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.names[j.Name]; dup {
		return fmt.Errorf("task %q already registered", j.Name)
	}
	id, err := s.cron.AddFunc(j.Schedule, func() { s.run(j) })
	if err != nil {
		return fmt.Errorf("schedule task %q (%s): %w", j.Name, j.Schedule, err)
	}
	s.names[j.Name] = id
	return nil
}

// RunNow runs the named job once, synchronously.
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	id, ok := s.names[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("task %q not registered", name)
	}
	s.cron.Entry(id).WrappedJob.Run()
	return nil
}

// Jobs returns the registered job names.
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	return out
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.cron.Start()
	s.log.Info("task scheduler started", zap.Int("jobs", len(s.names)))
}

// Stop halts scheduling, cancels running jobs' context, and waits for them
// to return or for ctx to end.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	started := s.started
	s.started = false
	s.mu.Unlock()

	s.cancel()
	if !started {
		return nil
	}
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("task scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("stop task scheduler: %w", ctx.Err())
	}
}

func (s *Scheduler) run(j Job) {
	if s.ctx.Err() != nil {
		return
	}
	if err := j.Run(s.ctx); err != nil {
		s.log.Warn("task failed", zap.String("task", j.Name), zap.Error(err))
		return
	}
	s.log.Debug("task ran", zap.String("task", j.Name))
}

// cronLogger adapts zap to cron's logger.
type cronLogger struct{ log *zap.Logger }

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(msg, zap.Any("details", keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(msg, zap.Error(err), zap.Any("details", keysAndValues))
}
