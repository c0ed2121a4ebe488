package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// JobFunc is one scheduled unit of work. The context is cancelled on Stop.
type JobFunc func(ctx context.Context) error

// Scheduler runs jobs on cron specs with seconds precision, in UTC.
type Scheduler struct {
	cron   *cron.Cron
	log    logrus.FieldLogger
	ctx    context.Context
	cancel context.CancelFunc
}

func New(log logrus.FieldLogger) *Scheduler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithSeconds(),
		),
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Add registers fn under spec ("sec min hour dom month dow" or a descriptor like "@daily").
func (s *Scheduler) Add(name, spec string, fn JobFunc) error {
	if _, err := s.cron.AddFunc(spec, func() { s.run(name, fn) }); err != nil {
		return fmt.Errorf("register job %s (%q): %w", name, spec, err)
	}
	s.log.WithFields(logrus.Fields{"job": name, "spec": spec}).Info("cron job registered")
	return nil
}

// run keeps a panicking job from taking the process down.
func (s *Scheduler) run(name string, fn JobFunc) {
	entry := s.log.WithField("job", name)
	defer func() {
		if r := recover(); r != nil {
			entry.WithField("panic", r).Error("job panicked")
		}
	}()

	start := time.Now()
	entry.Info("starting job")
	if err := fn(s.ctx); err != nil {
		entry.WithError(err).WithField("elapsed", time.Since(start).String()).Error("job failed")
		return
	}
	entry.WithField("elapsed", time.Since(start).String()).Info("job completed")
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.WithField("jobs", len(s.cron.Entries())).Info("cron scheduler started")
}

// Stop cancels running jobs' context and waits for them to return.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	s.log.Info("cron scheduler stopped")
}

func (s *Scheduler) Len() int { return len(s.cron.Entries()) }
