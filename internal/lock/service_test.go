package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"ratelock/internal/adapters/memory"
	"ratelock/internal/currency"
	"ratelock/internal/domain"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memRepo counts store round trips on top of the in-memory repository.
type memRepo struct {
	*memory.RateLockRepository
	mu      sync.Mutex
	inserts int
	lists   int
}

func newMemRepo() *memRepo {
	return &memRepo{RateLockRepository: memory.NewRateLockRepository()}
}

func (r *memRepo) Insert(ctx context.Context, nl domain.NewRateLock) (domain.RateLock, error) {
	r.mu.Lock()
	r.inserts++
	r.mu.Unlock()
	return r.RateLockRepository.Insert(ctx, nl)
}

func (r *memRepo) ListByUser(ctx context.Context, userID string) ([]domain.RateLock, error) {
	r.mu.Lock()
	r.lists++
	r.mu.Unlock()
	return r.RateLockRepository.ListByUser(ctx, userID)
}

// --- Testify mocks ---

type MockRepo struct{ mock.Mock }

func (m *MockRepo) Insert(ctx context.Context, nl domain.NewRateLock) (domain.RateLock, error) {
	args := m.Called(ctx, nl)
	l, _ := args.Get(0).(domain.RateLock)
	return l, args.Error(1)
}

func (m *MockRepo) ListByUser(ctx context.Context, userID string) ([]domain.RateLock, error) {
	args := m.Called(ctx, userID)
	l, _ := args.Get(0).([]domain.RateLock)
	return l, args.Error(1)
}

func (m *MockRepo) GetByID(ctx context.Context, userID string, id uuid.UUID) (domain.RateLock, error) {
	args := m.Called(ctx, userID, id)
	l, _ := args.Get(0).(domain.RateLock)
	return l, args.Error(1)
}

func (m *MockRepo) GetByReference(ctx context.Context, userID string, reference string) (domain.RateLock, error) {
	args := m.Called(ctx, userID, reference)
	l, _ := args.Get(0).(domain.RateLock)
	return l, args.Error(1)
}

func (m *MockRepo) MarkUsed(ctx context.Context, userID string, id uuid.UUID, now time.Time) (domain.RateLock, error) {
	args := m.Called(ctx, userID, id, now)
	l, _ := args.Get(0).(domain.RateLock)
	return l, args.Error(1)
}

type MockCache struct{ mock.Mock }

func (m *MockCache) Get(userID string) ([]domain.RateLock, bool) {
	args := m.Called(userID)
	l, _ := args.Get(0).([]domain.RateLock)
	return l, args.Bool(1)
}

func (m *MockCache) Set(userID string, locks []domain.RateLock) { m.Called(userID, locks) }

func (m *MockCache) Invalidate(userID string) { m.Called(userID) }

// mapCache is a plain map cache for tests that only care about hits.
type mapCache struct {
	mu sync.Mutex
	m  map[string][]domain.RateLock
}

func (c *mapCache) Get(userID string) ([]domain.RateLock, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.m[userID]
	return l, ok
}

func (c *mapCache) Set(userID string, locks []domain.RateLock) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[userID] = locks
}

func (c *mapCache) Invalidate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, userID)
}

func newTestService(repo *memRepo) (*Service, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClockAt(createdAt)
	svc := NewService(repo, &mapCache{m: make(map[string][]domain.RateLock)}, currency.NewCatalogValidator(), Options{
		OpTimeout: time.Second,
		Clock:     clock,
	})
	return svc, clock
}

func TestService_CreateLock(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newTestService(repo)

	v, err := svc.CreateLock(context.Background(), "user-1", "USD", "EUR", 1000, 0.92)
	require.NoError(t, err)

	require.NotEqual(t, uuid.Nil, v.ID)
	require.Equal(t, "user-1", v.UserID)
	require.Equal(t, "USD", v.From)
	require.Equal(t, "EUR", v.To)
	require.InDelta(t, 920.0, v.ToAmount, 1e-9)
	require.Equal(t, 0.92, v.Rate)
	require.True(t, v.CreatedAt.Equal(createdAt))
	require.True(t, v.ExpiresAt.Equal(createdAt.Add(24*time.Hour)))
	require.Equal(t, domain.LockStatusActive, v.Status)
	require.Equal(t, domain.DisplayActive, v.Display)
	require.Equal(t, 24*time.Hour, v.Remaining)
	require.Len(t, v.Reference, ReferenceLength)
	require.Nil(t, v.UsedAt)
}

func TestService_CreateLock_UniqueReferences(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newTestService(repo)

	refs := make(map[string]struct{})
	for range 50 {
		v, err := svc.CreateLock(context.Background(), "user-1", "EUR", "GBP", 10, 0.86)
		require.NoError(t, err)
		refs[v.Reference] = struct{}{}
	}
	require.Len(t, refs, 50)
}

func TestService_CreateLock_Validation(t *testing.T) {
	tests := []struct {
		name      string
		userID    string
		from, to  string
		amount    float64
		rate      float64
		wantError error
	}{
		{"missing user", "", "USD", "EUR", 10, 0.9, ErrUserRequired},
		{"unsupported from", "u", "XXX", "EUR", 10, 0.9, currency.ErrFromUnsupported},
		{"unsupported to", "u", "USD", "XXX", 10, 0.9, currency.ErrToUnsupported},
		{"same codes", "u", "USD", "USD", 10, 1, currency.ErrSameCodes},
		{"zero amount", "u", "USD", "EUR", 0, 0.9, ErrInvalidAmount},
		{"negative amount", "u", "USD", "EUR", -5, 0.9, ErrInvalidAmount},
		{"zero rate", "u", "USD", "EUR", 10, 0, ErrInvalidRate},
		{"amount above cap", "u", "USD", "JPY", 1e300, 1e10, domain.ErrAmountTooLarge},
		{"product overflows", "u", "USD", "JPY", domain.MaxAmount, 1e300, ErrToAmountOutOfRange},
		{"product underflows", "u", "USD", "JPY", 1e-300, 1e-30, ErrToAmountOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemRepo()
			svc, _ := newTestService(repo)

			_, err := svc.CreateLock(context.Background(), tt.userID, tt.from, tt.to, tt.amount, tt.rate)
			require.ErrorIs(t, err, tt.wantError)
			require.Zero(t, repo.inserts)
		})
	}
}

func TestService_CreateLock_AtAmountCap(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newTestService(repo)

	v, err := svc.CreateLock(context.Background(), "user-1", "USD", "JPY", domain.MaxAmount, 150)
	require.NoError(t, err)
	require.InDelta(t, 1.5e14, v.ToAmount, 1)
	require.Equal(t, 1, repo.inserts)
}

func TestService_CreateLock_WriteFailureLeavesCacheUntouched(t *testing.T) {
	repo := new(MockRepo)
	cache := new(MockCache)
	svc := NewService(repo, cache, currency.NewCatalogValidator(), Options{Clock: clockwork.NewFakeClockAt(createdAt)})

	repo.On("Insert", mock.Anything, mock.Anything).Return(domain.RateLock{}, errors.New("db down")).Once()

	_, err := svc.CreateLock(context.Background(), "user-1", "USD", "EUR", 1000, 0.92)
	require.Error(t, err)
	require.ErrorContains(t, err, "db down")

	repo.AssertExpectations(t)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}

func TestService_CreateLock_RetriesReferenceCollision(t *testing.T) {
	repo := new(MockRepo)
	cache := new(MockCache)
	refs := []string{"AAAAAAAAAA", "BBBBBBBBBB"}
	calls := 0
	svc := NewService(repo, cache, currency.NewCatalogValidator(), Options{
		Clock: clockwork.NewFakeClockAt(createdAt),
		NewReference: func() (string, error) {
			ref := refs[calls]
			calls++
			return ref, nil
		},
	})

	repo.On("Insert", mock.Anything, mock.MatchedBy(func(nl domain.NewRateLock) bool { return nl.Reference == "AAAAAAAAAA" })).
		Return(domain.RateLock{}, domain.ErrReferenceTaken).Once()
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(nl domain.NewRateLock) bool { return nl.Reference == "BBBBBBBBBB" })).
		Return(domain.RateLock{ID: uuid.New(), Reference: "BBBBBBBBBB", Status: domain.LockStatusActive, ExpiresAt: createdAt.Add(domain.LockTTL)}, nil).Once()
	cache.On("Invalidate", "user-1").Once()

	v, err := svc.CreateLock(context.Background(), "user-1", "USD", "EUR", 1, 0.92)
	require.NoError(t, err)
	require.Equal(t, "BBBBBBBBBB", v.Reference)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_CreateLock_GivesUpAfterRepeatedCollisions(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo, nil, currency.NewCatalogValidator(), Options{
		Clock:        clockwork.NewFakeClockAt(createdAt),
		NewReference: func() (string, error) { return "AAAAAAAAAA", nil },
	})

	repo.On("Insert", mock.Anything, mock.Anything).Return(domain.RateLock{}, domain.ErrReferenceTaken).Times(maxReferenceAttempts)

	_, err := svc.CreateLock(context.Background(), "user-1", "USD", "EUR", 1, 0.92)
	require.ErrorIs(t, err, domain.ErrReferenceTaken)
	repo.AssertExpectations(t)
}

func TestService_CreateLock_ExpiresAfterOneDay(t *testing.T) {
	repo := newMemRepo()
	svc, clock := newTestService(repo)

	v, err := svc.CreateLock(context.Background(), "user-1", "USD", "EUR", 1000, 0.92)
	require.NoError(t, err)

	clock.Advance(25 * time.Hour)

	got, err := svc.GetLock(context.Background(), "user-1", v.ID)
	require.NoError(t, err)
	require.Equal(t, domain.DisplayExpired, got.Display)
	require.Zero(t, got.Remaining)
	require.Equal(t, domain.LockStatusActive, got.Status)

	_, err = svc.MarkUsed(context.Background(), "user-1", v.ID)
	require.ErrorIs(t, err, domain.ErrLockExpired)
	require.ErrorIs(t, err, domain.ErrLockNotEligible)
}

func TestService_MarkUsed(t *testing.T) {
	repo := newMemRepo()
	svc, clock := newTestService(repo)

	v, err := svc.CreateLock(context.Background(), "user-1", "USD", "EUR", 1000, 0.92)
	require.NoError(t, err)

	clock.Advance(time.Hour)
	used, err := svc.MarkUsed(context.Background(), "user-1", v.ID)
	require.NoError(t, err)
	require.Equal(t, domain.LockStatusUsed, used.Status)
	require.Equal(t, domain.DisplayUsed, used.Display)
	require.NotNil(t, used.UsedAt)
	require.True(t, used.UsedAt.Equal(createdAt.Add(time.Hour)))

	_, err = svc.MarkUsed(context.Background(), "user-1", v.ID)
	require.ErrorIs(t, err, domain.ErrLockAlreadyUsed)

	clock.Advance(48 * time.Hour)
	got, err := svc.GetLock(context.Background(), "user-1", v.ID)
	require.NoError(t, err)
	require.Equal(t, domain.DisplayUsed, got.Display)
}

func TestService_MarkUsed_OtherOwnerLooksNotFound(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newTestService(repo)

	v, err := svc.CreateLock(context.Background(), "user-1", "USD", "EUR", 1000, 0.92)
	require.NoError(t, err)

	_, err = svc.MarkUsed(context.Background(), "user-2", v.ID)
	require.ErrorIs(t, err, domain.ErrLockNotFound)

	_, err = svc.MarkUsed(context.Background(), "user-1", uuid.New())
	require.ErrorIs(t, err, domain.ErrLockNotFound)

	got, err := svc.GetLock(context.Background(), "user-1", v.ID)
	require.NoError(t, err)
	require.Equal(t, domain.DisplayActive, got.Display)
}

func TestService_MarkUsed_ConcurrentOnlyOneWins(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newTestService(repo)

	v, err := svc.CreateLock(context.Background(), "user-1", "USD", "EUR", 1000, 0.92)
	require.NoError(t, err)

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.MarkUsed(context.Background(), "user-1", v.ID)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		require.ErrorIs(t, err, domain.ErrLockAlreadyUsed)
	}
	require.Equal(t, 1, wins)
}

func TestService_MarkUsed_LostRaceReportsCause(t *testing.T) {
	repo := new(MockRepo)
	cache := new(MockCache)
	clock := clockwork.NewFakeClockAt(createdAt)
	svc := NewService(repo, cache, currency.NewCatalogValidator(), Options{Clock: clock})

	id := uuid.New()
	active := domain.RateLock{ID: id, UserID: "user-1", Status: domain.LockStatusActive, ExpiresAt: createdAt.Add(domain.LockTTL)}
	used := active
	used.Status = domain.LockStatusUsed

	repo.On("GetByID", mock.Anything, "user-1", id).Return(active, nil).Once()
	repo.On("MarkUsed", mock.Anything, "user-1", id, createdAt).Return(domain.RateLock{}, domain.ErrLockNotEligible).Once()
	repo.On("GetByID", mock.Anything, "user-1", id).Return(used, nil).Once()

	_, err := svc.MarkUsed(context.Background(), "user-1", id)
	require.ErrorIs(t, err, domain.ErrLockAlreadyUsed)
	repo.AssertExpectations(t)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything)
}

func TestService_MarkUsed_StoreError(t *testing.T) {
	repo := new(MockRepo)
	clock := clockwork.NewFakeClockAt(createdAt)
	svc := NewService(repo, nil, currency.NewCatalogValidator(), Options{Clock: clock})

	id := uuid.New()
	active := domain.RateLock{ID: id, UserID: "user-1", Status: domain.LockStatusActive, ExpiresAt: createdAt.Add(domain.LockTTL)}
	repo.On("GetByID", mock.Anything, "user-1", id).Return(active, nil).Once()
	repo.On("MarkUsed", mock.Anything, "user-1", id, createdAt).Return(domain.RateLock{}, errors.New("conn reset")).Once()

	_, err := svc.MarkUsed(context.Background(), "user-1", id)
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrLockNotEligible)
	repo.AssertExpectations(t)
}

func TestService_ListLocks_CachesAndInvalidates(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	for i := range 3 {
		_, err := svc.CreateLock(ctx, "user-1", "USD", "EUR", float64(100*(i+1)), 0.92)
		require.NoError(t, err)
	}
	_, err := svc.CreateLock(ctx, "user-2", "GBP", "USD", 5, 1.27)
	require.NoError(t, err)

	views, err := svc.ListLocks(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, views, 3)
	for _, v := range views {
		require.Equal(t, "user-1", v.UserID)
	}

	_, err = svc.ListLocks(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, 1, repo.lists)

	_, err = svc.MarkUsed(ctx, "user-1", views[0].ID)
	require.NoError(t, err)

	views, err = svc.ListLocks(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, 2, repo.lists)
	require.Equal(t, domain.DisplayUsed, views[0].Display)
}

func TestService_ListLocks_DerivesStatusAtReadTime(t *testing.T) {
	repo := newMemRepo()
	svc, clock := newTestService(repo)
	ctx := context.Background()

	_, err := svc.CreateLock(ctx, "user-1", "USD", "EUR", 100, 0.92)
	require.NoError(t, err)
	_, err = svc.ListLocks(ctx, "user-1")
	require.NoError(t, err)

	clock.Advance(domain.LockTTL)

	views, err := svc.ListLocks(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, 1, repo.lists)
	require.Equal(t, domain.DisplayExpired, views[0].Display)
}

func TestService_ListLocks_StoreError(t *testing.T) {
	repo := new(MockRepo)
	cache := new(MockCache)
	svc := NewService(repo, cache, currency.NewCatalogValidator(), Options{})

	cache.On("Get", "user-1").Return(nil, false).Once()
	repo.On("ListByUser", mock.Anything, "user-1").Return(nil, fmt.Errorf("timeout: %w", context.DeadlineExceeded)).Once()

	_, err := svc.ListLocks(context.Background(), "user-1")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}

func TestService_GetByReference(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	v, err := svc.CreateLock(ctx, "user-1", "USD", "JPY", 10, 151.69)
	require.NoError(t, err)

	got, err := svc.GetByReference(ctx, "user-1", v.Reference)
	require.NoError(t, err)
	require.Equal(t, v.ID, got.ID)

	_, err = svc.GetByReference(ctx, "user-2", v.Reference)
	require.ErrorIs(t, err, domain.ErrLockNotFound)
}

func TestService_RequiresUser(t *testing.T) {
	svc, _ := newTestService(newMemRepo())
	ctx := context.Background()

	_, err := svc.ListLocks(ctx, "")
	require.ErrorIs(t, err, ErrUserRequired)
	_, err = svc.GetLock(ctx, "", uuid.New())
	require.ErrorIs(t, err, ErrUserRequired)
	_, err = svc.GetByReference(ctx, "", "REF")
	require.ErrorIs(t, err, ErrUserRequired)
	_, err = svc.MarkUsed(ctx, "", uuid.New())
	require.ErrorIs(t, err, ErrUserRequired)
}
