package memory

import (
	"context"
	"testing"
	"time"

	"ratelock/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)

func newLock(userID, reference string, at time.Time) domain.NewRateLock {
	return domain.NewRateLock{
		UserID: userID, From: "USD", To: "EUR",
		FromAmount: 1000, ToAmount: 920, Rate: 0.92,
		CreatedAt: at, ExpiresAt: at.Add(domain.LockTTL),
		Reference: reference,
	}
}

func TestRateLockRepository_InsertAndRead(t *testing.T) {
	repo := NewRateLockRepository()
	ctx := context.Background()

	created, err := repo.Insert(ctx, newLock("user-1", "AAAAAAAAAA", createdAt))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	require.Equal(t, domain.LockStatusActive, created.Status)

	got, err := repo.GetByID(ctx, "user-1", created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)

	got, err = repo.GetByReference(ctx, "user-1", "AAAAAAAAAA")
	require.NoError(t, err)
	require.Equal(t, created, got)

	_, err = repo.GetByID(ctx, "user-2", created.ID)
	require.ErrorIs(t, err, domain.ErrLockNotFound)
	_, err = repo.GetByReference(ctx, "user-2", "AAAAAAAAAA")
	require.ErrorIs(t, err, domain.ErrLockNotFound)
}

func TestRateLockRepository_DuplicateReference(t *testing.T) {
	repo := NewRateLockRepository()
	ctx := context.Background()

	_, err := repo.Insert(ctx, newLock("user-1", "AAAAAAAAAA", createdAt))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, newLock("user-2", "AAAAAAAAAA", createdAt))
	require.ErrorIs(t, err, domain.ErrReferenceTaken)
}

func TestRateLockRepository_ListByUserNewestFirst(t *testing.T) {
	repo := NewRateLockRepository()
	ctx := context.Background()

	_, err := repo.Insert(ctx, newLock("user-1", "AAAAAAAAAA", createdAt))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, newLock("user-1", "BBBBBBBBBB", createdAt.Add(time.Hour)))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, newLock("user-2", "CCCCCCCCCC", createdAt))
	require.NoError(t, err)

	locks, err := repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, locks, 2)
	require.Equal(t, "BBBBBBBBBB", locks[0].Reference)
	require.Equal(t, "AAAAAAAAAA", locks[1].Reference)
}

func TestRateLockRepository_MarkUsed(t *testing.T) {
	repo := NewRateLockRepository()
	ctx := context.Background()

	created, err := repo.Insert(ctx, newLock("user-1", "AAAAAAAAAA", createdAt))
	require.NoError(t, err)

	_, err = repo.MarkUsed(ctx, "user-2", created.ID, createdAt)
	require.ErrorIs(t, err, domain.ErrLockNotEligible)

	_, err = repo.MarkUsed(ctx, "user-1", created.ID, created.ExpiresAt)
	require.ErrorIs(t, err, domain.ErrLockNotEligible)

	used, err := repo.MarkUsed(ctx, "user-1", created.ID, createdAt.Add(time.Hour))
	require.NoError(t, err)
	require.Equal(t, domain.LockStatusUsed, used.Status)
	require.True(t, used.UsedAt.Equal(createdAt.Add(time.Hour)))

	_, err = repo.MarkUsed(ctx, "user-1", created.ID, createdAt.Add(2*time.Hour))
	require.ErrorIs(t, err, domain.ErrLockNotEligible)
}

func TestRateLockRepository_CanceledContext(t *testing.T) {
	repo := NewRateLockRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Insert(ctx, newLock("user-1", "AAAAAAAAAA", createdAt))
	require.ErrorIs(t, err, context.Canceled)

	locks, err := repo.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Empty(t, locks)
}
