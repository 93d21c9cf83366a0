package job

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const sweepTimeout = 5 * time.Minute

type DefaultsSweeper interface {
	SweepDefaults(ctx context.Context, graceDays int) (int, error)
}

// Scheduler runs the loan default sweep on a cron schedule. Overlapping runs
// are skipped and a panicking run does not stop the scheduler.
type Scheduler struct {
	cron      *cron.Cron
	sweeper   DefaultsSweeper
	graceDays int
	log       *zap.Logger
}

func NewScheduler(s DefaultsSweeper, spec string, graceDays int, log *zap.Logger) (*Scheduler, error) {
	cl := cronLogger{log.Sugar()}
	sc := &Scheduler{
		cron:      cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		sweeper:   s,
		graceDays: graceDays,
		log:       log,
	}
	if _, err := sc.cron.AddFunc(spec, sc.RunOnce); err != nil {
		return nil, fmt.Errorf("job: bad sweep schedule %q: %w", spec, err)
	}
	return sc, nil
}

// RunOnce performs a single sweep.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	start := time.Now()
	n, err := s.sweeper.SweepDefaults(ctx, s.graceDays)
	if err != nil {
		s.log.Error("job: default sweep failed", zap.Int("marked", n), zap.Error(err))
		return
	}
	s.log.Info("job: default sweep done",
		zap.Int("marked", n),
		zap.Int("grace_days", s.graceDays),
		zap.Duration("took", time.Since(start)),
	)
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts scheduling and waits for a running sweep, or for ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct{ s *zap.SugaredLogger }

func (l cronLogger) Info(msg string, kv ...interface{}) { l.s.Debugw("cron: "+msg, kv...) }
func (l cronLogger) Error(err error, msg string, kv ...interface{}) {
	l.s.Errorw("cron: "+msg, append(kv, "error", err)...)
}
