package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"ratelock/internal/domain"

	"github.com/google/uuid"
)

// RateLockRepository is a process-local store with the same owner scoping
// and compare-and-swap semantics as the postgres repository.
type RateLockRepository struct {
	mu    sync.RWMutex
	locks map[uuid.UUID]domain.RateLock
	refs  map[string]uuid.UUID
}

func (r *RateLockRepository) Insert(ctx context.Context, l domain.NewRateLock) (domain.RateLock, error) {
	if err := ctx.Err(); err != nil {
		return domain.RateLock{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.refs[l.Reference]; taken {
		return domain.RateLock{}, domain.ErrReferenceTaken
	}
	created := domain.RateLock{
		ID:         uuid.New(),
		UserID:     l.UserID,
		From:       l.From,
		To:         l.To,
		FromAmount: l.FromAmount,
		ToAmount:   l.ToAmount,
		Rate:       l.Rate,
		CreatedAt:  l.CreatedAt,
		ExpiresAt:  l.ExpiresAt,
		Status:     domain.LockStatusActive,
		Reference:  l.Reference,
	}
	r.locks[created.ID] = created
	r.refs[created.Reference] = created.ID
	return created, nil
}

// ListByUser returns newest first, like the postgres repository.
func (r *RateLockRepository) ListByUser(ctx context.Context, userID string) ([]domain.RateLock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.RateLock, 0, 16)
	for _, l := range r.locks {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	slices.SortFunc(out, func(a, b domain.RateLock) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})
	return out, nil
}

func (r *RateLockRepository) GetByID(ctx context.Context, userID string, id uuid.UUID) (domain.RateLock, error) {
	if err := ctx.Err(); err != nil {
		return domain.RateLock{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.locks[id]
	if !ok || l.UserID != userID {
		return domain.RateLock{}, domain.ErrLockNotFound
	}
	return l, nil
}

func (r *RateLockRepository) GetByReference(ctx context.Context, userID string, reference string) (domain.RateLock, error) {
	if err := ctx.Err(); err != nil {
		return domain.RateLock{}, err
	}
	r.mu.RLock()
	id, ok := r.refs[reference]
	r.mu.RUnlock()
	if !ok {
		return domain.RateLock{}, domain.ErrLockNotFound
	}
	return r.GetByID(ctx, userID, id)
}

func (r *RateLockRepository) MarkUsed(ctx context.Context, userID string, id uuid.UUID, now time.Time) (domain.RateLock, error) {
	if err := ctx.Err(); err != nil {
		return domain.RateLock{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.locks[id]
	if !ok || l.UserID != userID || l.Status != domain.LockStatusActive || !l.ExpiresAt.After(now) {
		return domain.RateLock{}, domain.ErrLockNotEligible
	}
	l.Status = domain.LockStatusUsed
	usedAt := now
	l.UsedAt = &usedAt
	r.locks[id] = l
	return l, nil
}

func NewRateLockRepository() *RateLockRepository {
	return &RateLockRepository{
		locks: make(map[uuid.UUID]domain.RateLock),
		refs:  make(map[string]uuid.UUID),
	}
}
