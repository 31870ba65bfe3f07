package rate

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultRefreshInterval = 5 * time.Minute

type refresher interface {
	Refresh(ctx context.Context) Snapshot
}

type Scheduler struct {
	rates           refresher
	refreshInterval time.Duration
	// -----
	mu    sync.Mutex
	sched gocron.Scheduler
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	job := func(jobCtx context.Context) {
		RefreshJob(jobCtx, uuid.NewString(), s.rates)
	}

	// overlapping runs are rescheduled, so refreshes never race each other here
	_, err = scheduler.NewJob(
		gocron.DurationJob(s.refreshInterval),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()
	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}

func (s *Scheduler) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched != nil
}

// RefreshJob runs one refresh and logs its outcome under execID.
func RefreshJob(ctx context.Context, execID string, rates refresher) {
	snap := rates.Refresh(ctx)
	fields := logrus.Fields{"exec_id": execID, "pairs": len(snap.Rates), "base": snap.Base}
	if snap.Degraded {
		logrus.WithFields(fields).Warnf("Rates refreshed with degraded data: %s", snap.Reason)
		return
	}
	logrus.WithFields(fields).Info("Rates refreshed")
}

func NewScheduler(rates refresher, refreshInterval time.Duration) *Scheduler {
	if refreshInterval <= 0 {
		refreshInterval = defaultRefreshInterval
	}
	return &Scheduler{rates: rates, refreshInterval: refreshInterval}
}
