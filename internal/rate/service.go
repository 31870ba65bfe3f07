package rate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"ratelock/internal/adapters"
	"ratelock/internal/domain"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

const defaultFetchTimeout = 5 * time.Second

var errEmptyTable = errors.New("rates table yields no pairs")

type Options struct {
	Base            string
	Codes           []string
	FallbackEnabled bool
	FetchTimeout    time.Duration
	Clock           clockwork.Clock
}

// Service holds the latest snapshot and refreshes it from the rate source.
type Service struct {
	client          adapters.RateClient
	base            string
	codes           []string
	fallbackEnabled bool
	fetchTimeout    time.Duration
	clock           clockwork.Clock

	mu        sync.RWMutex
	current   *Snapshot
	startSeq  uint64
	storedSeq uint64
}

// Current returns the latest snapshot. Before the first refresh it is empty and degraded.
func (s *Service) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return NewSnapshot(s.base, nil, time.Time{}).degraded(ReasonNoData)
	}
	return *s.current
}

// Refresh fetches the base table and replaces the current snapshot. It never
// fails: on a source error it installs degraded data. When two refreshes
// overlap the one that started last wins.
func (s *Service) Refresh(ctx context.Context) Snapshot {
	s.mu.Lock()
	s.startSeq++
	seq := s.startSeq
	s.mu.Unlock()

	snap, err := s.fetch(ctx)
	if err != nil {
		logrus.WithError(err).WithField("base", s.base).Warn("Rate refresh failed, serving degraded rates")
		snap = s.degradedSnapshot()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.storedSeq {
		// a newer refresh already landed
		return *s.current
	}
	s.storedSeq = seq
	s.current = &snap
	return snap
}

func (s *Service) fetch(ctx context.Context) (Snapshot, error) {
	reqCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	table, err := s.client.GetLatestRates(reqCtx, s.base)
	if err != nil {
		return Snapshot{}, err
	}

	now := s.clock.Now()
	rates := BuildRates(table.Base, table.Rates, s.codes, now)
	if len(rates) == 0 {
		return Snapshot{}, fmt.Errorf("%w: base %q", errEmptyTable, table.Base)
	}
	return NewSnapshot(table.Base, rates, now), nil
}

func (s *Service) degradedSnapshot() Snapshot {
	if s.fallbackEnabled {
		return FallbackSnapshot(s.base, s.clock.Now())
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil || len(s.current.Rates) == 0 {
		return NewSnapshot(s.base, nil, s.clock.Now()).degraded(ReasonNoData)
	}
	return s.current.degraded(ReasonStale)
}

type Conversion struct {
	From     string
	To       string
	Amount   float64
	Result   float64
	Rate     float64
	Degraded bool
	AsOf     time.Time
}

// Convert converts against the current snapshot, domain.ErrRateUnavailable
// when the pair is missing. Amounts above domain.MaxAmount and results that
// are not finite fail with domain.ErrAmountTooLarge.
func (s *Service) Convert(amount float64, from, to string) (Conversion, error) {
	if amount > domain.MaxAmount {
		return Conversion{}, domain.ErrAmountTooLarge
	}
	snap := s.Current()
	result, ok := snap.Convert(amount, from, to)
	if !ok {
		return Conversion{}, domain.ErrRateUnavailable
	}
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return Conversion{}, domain.ErrAmountTooLarge
	}
	r := 1.0
	if from != to {
		r, _ = snap.Lookup(from, to)
	}
	return Conversion{
		From:     from,
		To:       to,
		Amount:   amount,
		Result:   result,
		Rate:     r,
		Degraded: snap.Degraded,
		AsOf:     snap.FetchedAt,
	}, nil
}

func NewService(client adapters.RateClient, opts Options) *Service {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = defaultFetchTimeout
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &Service{
		client:          client,
		base:            opts.Base,
		codes:           opts.Codes,
		fallbackEnabled: opts.FallbackEnabled,
		fetchTimeout:    opts.FetchTimeout,
		clock:           opts.Clock,
	}
}
