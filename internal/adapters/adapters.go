package adapters

import (
	"context"
	"time"

	"ratelock/internal/domain"

	"github.com/google/uuid"
)

type RateClient interface {
	GetLatestRates(ctx context.Context, base string) (domain.BaseRates, error)
}

// RateLockRepository is scoped by owner on every read and write; a lock owned by
// someone else is reported as domain.ErrLockNotFound.
type RateLockRepository interface {
	Insert(ctx context.Context, lock domain.NewRateLock) (domain.RateLock, error)
	ListByUser(ctx context.Context, userID string) ([]domain.RateLock, error)
	GetByID(ctx context.Context, userID string, id uuid.UUID) (domain.RateLock, error)
	GetByReference(ctx context.Context, userID string, reference string) (domain.RateLock, error)
	// MarkUsed flips an active, unexpired lock to used. It returns
	// domain.ErrLockNotEligible when the lock was not in that state at now.
	MarkUsed(ctx context.Context, userID string, id uuid.UUID, now time.Time) (domain.RateLock, error)
}

type LockListCache interface {
	Get(userID string) ([]domain.RateLock, bool)
	Set(userID string, locks []domain.RateLock)
	Invalidate(userID string)
}
