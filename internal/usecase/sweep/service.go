package sweep

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"wfh-backend/internal/domain/wfhrequest"
	"wfh-backend/internal/metrics"
	"wfh-backend/pkg/dateutil"
)

// RetentionMonths is how long a request may stay Pending before it is auto-rejected.
const RetentionMonths = 2

var ErrSweepInProgress = errors.New("auto-rejection sweep already running")

// Cutoff is today minus the retention window, in calendar months.
func Cutoff(today time.Time) time.Time {
	return dateutil.SubtractMonths(today, RetentionMonths)
}

// AutoRejecter is the lifecycle operation the sweep drives.
type AutoRejecter interface {
	AutoReject(ctx context.Context, cutoff time.Time) (int, error)
}

// Locker guards against overlapping runs across replicas. Acquire returns
// ErrSweepInProgress when another run holds the lock.
type Locker interface {
	Acquire(ctx context.Context) (release func(context.Context) error, err error)
}

type Result struct {
	Cutoff    time.Time
	Cancelled int
	DryRun    bool
}

type Service struct {
	engine  AutoRejecter
	counter wfhrequest.Repository
	lock    Locker
	now     func() time.Time
	log     logrus.FieldLogger
}

type Option func(*Service)

func WithLocker(l Locker) Option                 { return func(s *Service) { s.lock = l } }
func WithClock(now func() time.Time) Option      { return func(s *Service) { s.now = now } }
func WithLogger(l logrus.FieldLogger) Option     { return func(s *Service) { s.log = l } }
func WithCounter(r wfhrequest.Repository) Option { return func(s *Service) { s.counter = r } }

func NewService(engine AutoRejecter, opts ...Option) *Service {
	s := &Service{engine: engine, now: time.Now, log: logrus.StandardLogger()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Run performs one sweep. Failures are reported, never retried here.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	cutoff := Cutoff(s.now())
	entry := s.log.WithField("cutoff", dateutil.Format(cutoff))

	if s.lock != nil {
		release, err := s.lock.Acquire(ctx)
		if err != nil {
			metrics.RecordSweep(metrics.SweepSkipped, 0)
			if errors.Is(err, ErrSweepInProgress) {
				entry.Warn("auto-rejection sweep skipped: another run holds the lock")
				return nil, ErrSweepInProgress
			}
			entry.WithError(err).Error("auto-rejection sweep: lock unavailable")
			return nil, wfhrequest.StorageError(err)
		}
		defer func() {
			// the lease TTL cleans up if this fails
			if err := release(context.WithoutCancel(ctx)); err != nil {
				entry.WithError(err).Warn("auto-rejection sweep: release lock")
			}
		}()
	}

	n, err := s.engine.AutoReject(ctx, cutoff)
	if err != nil {
		metrics.RecordSweep(metrics.SweepError, 0)
		entry.WithError(err).Error("auto-rejection sweep failed, batch rolled back")
		return nil, err
	}

	metrics.RecordSweep(metrics.SweepOK, n)
	entry.WithField("cancelled", n).Info("auto-rejection complete")
	return &Result{Cutoff: cutoff, Cancelled: n}, nil
}

// Preview counts what Run would cancel right now without changing anything.
func (s *Service) Preview(ctx context.Context) (*Result, error) {
	if s.counter == nil {
		return nil, errors.New("sweep: preview needs a request repository")
	}
	cutoff := Cutoff(s.now())
	n, err := s.counter.CountStalePending(ctx, cutoff)
	if err != nil {
		return nil, wfhrequest.StorageError(err)
	}
	return &Result{Cutoff: cutoff, Cancelled: int(n), DryRun: true}, nil
}
