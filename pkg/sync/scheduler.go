package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Scheduler drives the engine on two cadences: a fast incremental check and a
// slow forced full resync. Jobs are wrapped with SkipIfStillRunning so a slow
// cycle can never overlap the next firing, and with Recover so a panicking
// cycle is logged instead of killing the process.
type Scheduler struct {
	engine *Engine
	cron   *cron.Cron
	fast   time.Duration
	slow   time.Duration
}

func NewScheduler(engine *Engine, fastInterval string, slowInterval string) (*Scheduler, error) {
	fast, err := time.ParseDuration(fastInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid fast interval %q: %w", fastInterval, err)
	}
	slow, err := time.ParseDuration(slowInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid slow interval %q: %w", slowInterval, err)
	}
	if fast <= 0 || slow <= 0 {
		return nil, fmt.Errorf("sync intervals must be positive, got fast=%s slow=%s", fast, slow)
	}
	if fast >= slow {
		return nil, fmt.Errorf("fast interval (%s) must be shorter than slow interval (%s)", fast, slow)
	}

	logger := cronLogger{}
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(logger),
		cron.Recover(logger),
	))

	return &Scheduler{
		engine: engine,
		cron:   c,
		fast:   fast,
		slow:   slow,
	}, nil
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.fast), s.incrementalCycle); err != nil {
		return fmt.Errorf("failed to schedule incremental sync: %w", err)
	}
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.slow), s.fullCycle); err != nil {
		return fmt.Errorf("failed to schedule full resync: %w", err)
	}

	s.cron.Start()
	log.Infof("sync scheduler started: incremental every %s, full resync every %s", s.fast, s.slow)
	return nil
}

// Stop halts the timers and waits for an in-flight cycle to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("sync scheduler stopped")
}

func (s *Scheduler) Status() Status {
	return s.engine.Status()
}

func (s *Scheduler) incrementalCycle() {
	report, err := s.engine.Sync(context.Background())
	logCycle("incremental", report, err)
}

func (s *Scheduler) fullCycle() {
	report, err := s.engine.ForceFullSync(context.Background())
	logCycle("full", report, err)
}

func logCycle(kind string, report Report, err error) {
	if err != nil {
		log.Errorf("%s sync cycle failed: %v", kind, err)
		return
	}
	log.Infof("%s sync cycle done: considered=%d rewritten=%d unchanged=%d skipped=%d failed=%d",
		kind, report.Considered, report.Rewritten, report.Unchanged, report.Skipped, report.Failed)
}

// cronLogger adapts the cron logging interface to logrus.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debugf("cron: %s %v", msg, keysAndValues)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Errorf("cron: %s: %v %v", msg, err, keysAndValues)
}
