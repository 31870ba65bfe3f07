package lock

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"ratelock/internal/adapters"
	"ratelock/internal/domain"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

const (
	defaultOpTimeout     = 5 * time.Second
	maxReferenceAttempts = 3
)

var (
	ErrUserRequired  = errors.New("user is required")
	ErrInvalidAmount = errors.New("amount must be a positive number")
	ErrInvalidRate   = errors.New("rate must be a positive number")

	// ErrToAmountOutOfRange is returned when amount*rate overflows or underflows.
	ErrToAmountOutOfRange = errors.New("converted amount is out of range")
)

type pairValidator interface {
	ValidatePair(from, to string) error
}

type Options struct {
	OpTimeout    time.Duration
	Clock        clockwork.Clock
	NewReference func() (string, error)
}

type Service struct {
	repo         adapters.RateLockRepository
	cache        adapters.LockListCache
	validator    pairValidator
	opTimeout    time.Duration
	clock        clockwork.Clock
	newReference func() (string, error)
}

// CreateLock validates, snapshots amount*rate and persists a new active lock.
// Nothing is cached or returned unless the write succeeded.
func (s *Service) CreateLock(ctx context.Context, userID, from, to string, amount, rate float64) (View, error) {
	if userID == "" {
		return View{}, ErrUserRequired
	}
	if err := s.validator.ValidatePair(from, to); err != nil {
		return View{}, err
	}
	if !positive(amount) {
		return View{}, ErrInvalidAmount
	}
	if amount > domain.MaxAmount {
		return View{}, domain.ErrAmountTooLarge
	}
	if !positive(rate) {
		return View{}, ErrInvalidRate
	}
	toAmount := amount * rate
	if !positive(toAmount) {
		return View{}, ErrToAmountOutOfRange
	}

	// postgres keeps microseconds, truncate so the stored record equals the returned one
	createdAt := s.clock.Now().UTC().Truncate(time.Microsecond)
	newLock := domain.NewRateLock{
		UserID:     userID,
		From:       from,
		To:         to,
		FromAmount: amount,
		ToAmount:   toAmount,
		Rate:       rate,
		CreatedAt:  createdAt,
		ExpiresAt:  createdAt.Add(domain.LockTTL),
	}

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	var created domain.RateLock
	for attempt := 1; ; attempt++ {
		ref, err := s.newReference()
		if err != nil {
			return View{}, err
		}
		newLock.Reference = ref

		created, err = s.repo.Insert(ctx, newLock)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrReferenceTaken) && attempt < maxReferenceAttempts {
			logrus.WithField("attempt", attempt).Warn("Rate lock reference collision, retrying")
			continue
		}
		return View{}, fmt.Errorf("failed to create rate lock: %w", err)
	}

	s.cache.Invalidate(userID)
	return NewView(created, s.clock.Now()), nil
}

// MarkUsed redeems an active lock. Used or expired locks are rejected with
// domain.ErrLockAlreadyUsed or domain.ErrLockExpired, both domain.ErrLockNotEligible.
func (s *Service) MarkUsed(ctx context.Context, userID string, id uuid.UUID) (View, error) {
	if userID == "" {
		return View{}, ErrUserRequired
	}

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	current, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return View{}, err
	}
	now := s.clock.Now()
	if err = eligibility(current, now); err != nil {
		return View{}, err
	}

	updated, err := s.repo.MarkUsed(ctx, userID, id, now)
	if err != nil {
		if !errors.Is(err, domain.ErrLockNotEligible) {
			return View{}, fmt.Errorf("failed to mark rate lock used: %w", err)
		}
		// lost a race with another redeem or with the clock, report what happened
		current, err = s.repo.GetByID(ctx, userID, id)
		if err != nil {
			return View{}, err
		}
		if current.Status == domain.LockStatusUsed {
			return View{}, domain.ErrLockAlreadyUsed
		}
		return View{}, domain.ErrLockExpired
	}

	s.cache.Invalidate(userID)
	return NewView(updated, s.clock.Now()), nil
}

func eligibility(l domain.RateLock, now time.Time) error {
	switch DeriveDisplayStatus(l, now) {
	case domain.DisplayUsed:
		return domain.ErrLockAlreadyUsed
	case domain.DisplayExpired:
		return domain.ErrLockExpired
	}
	return nil
}

// ListLocks returns every lock of userID in storage order.
func (s *Service) ListLocks(ctx context.Context, userID string) ([]View, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}

	locks, ok := s.cache.Get(userID)
	if !ok {
		ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
		defer cancel()

		var err error
		locks, err = s.repo.ListByUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list rate locks: %w", err)
		}
		s.cache.Set(userID, locks)
	}

	now := s.clock.Now()
	views := make([]View, 0, len(locks))
	for _, l := range locks {
		views = append(views, NewView(l, now))
	}
	return views, nil
}

func (s *Service) GetLock(ctx context.Context, userID string, id uuid.UUID) (View, error) {
	if userID == "" {
		return View{}, ErrUserRequired
	}
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	l, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return View{}, err
	}
	return NewView(l, s.clock.Now()), nil
}

func (s *Service) GetByReference(ctx context.Context, userID, reference string) (View, error) {
	if userID == "" {
		return View{}, ErrUserRequired
	}
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	l, err := s.repo.GetByReference(ctx, userID, reference)
	if err != nil {
		return View{}, err
	}
	return NewView(l, s.clock.Now()), nil
}

func positive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

type noopCache struct{}

func (noopCache) Get(string) ([]domain.RateLock, bool) { return nil, false }
func (noopCache) Set(string, []domain.RateLock) {}
func (noopCache) Invalidate(string) {}

func NewService(repo adapters.RateLockRepository, cache adapters.LockListCache, validator pairValidator, opts Options) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	if opts.OpTimeout <= 0 {
		opts.OpTimeout = defaultOpTimeout
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.NewReference == nil {
		opts.NewReference = NewReference
	}
	return &Service{
		repo:         repo,
		cache:        cache,
		validator:    validator,
		opTimeout:    opts.OpTimeout,
		clock:        opts.Clock,
		newReference: opts.NewReference,
	}
}
