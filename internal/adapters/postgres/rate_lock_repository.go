package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ratelock/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	uniqueViolation     = "23505"
	referenceConstraint = "rate_locks_reference_key"

	lockColumns = `id, user_id, from_currency, to_currency, from_amount, to_amount, rate,
		created_at, expires_at, status, reference, used_at`
)

type RateLockRepository struct {
	pool *pgxpool.Pool
}

func (r *RateLockRepository) Insert(ctx context.Context, l domain.NewRateLock) (domain.RateLock, error) {
	const q = `
		insert into rate_locks (user_id, from_currency, to_currency, from_amount, to_amount, rate,
		                        created_at, expires_at, status, reference)
		values ($1, $2, $3, $4, $5, $6, $7, $8, 'active', $9)
		returning ` + lockColumns

	created, err := scanLock(r.pool.QueryRow(ctx, q,
		l.UserID, l.From, l.To, l.FromAmount, l.ToAmount, l.Rate, l.CreatedAt, l.ExpiresAt, l.Reference))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == referenceConstraint {
			return domain.RateLock{}, domain.ErrReferenceTaken
		}
		return domain.RateLock{}, fmt.Errorf("failed to insert rate lock %s->%s: %w", l.From, l.To, err)
	}
	return created, nil
}

func (r *RateLockRepository) ListByUser(ctx context.Context, userID string) ([]domain.RateLock, error) {
	const q = `select ` + lockColumns + ` from rate_locks where user_id = $1 order by created_at desc, id`

	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rate locks: %w", err)
	}
	defer rows.Close()

	locks := make([]domain.RateLock, 0, 16)
	for rows.Next() {
		l, err := scanLock(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rate lock: %w", err)
		}
		locks = append(locks, l)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rate locks: %w", err)
	}
	return locks, nil
}

func (r *RateLockRepository) GetByID(ctx context.Context, userID string, id uuid.UUID) (domain.RateLock, error) {
	const q = `select ` + lockColumns + ` from rate_locks where id = $1 and user_id = $2`
	return r.getOne(ctx, q, id, userID)
}

func (r *RateLockRepository) GetByReference(ctx context.Context, userID string, reference string) (domain.RateLock, error) {
	const q = `select ` + lockColumns + ` from rate_locks where reference = $1 and user_id = $2`
	return r.getOne(ctx, q, reference, userID)
}

// MarkUsed is a compare-and-swap on (status, expires_at). Zero rows means the
// lock is missing, foreign, used or expired and is reported as not eligible.
func (r *RateLockRepository) MarkUsed(ctx context.Context, userID string, id uuid.UUID, now time.Time) (domain.RateLock, error) {
	const q = `
		update rate_locks
		set status = 'used', used_at = $3
		where id = $1 and user_id = $2 and status = 'active' and expires_at > $3
		returning ` + lockColumns

	updated, err := scanLock(r.pool.QueryRow(ctx, q, id, userID, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RateLock{}, domain.ErrLockNotEligible
		}
		return domain.RateLock{}, fmt.Errorf("failed to mark rate lock '%s' used: %w", id, err)
	}
	return updated, nil
}

func (r *RateLockRepository) getOne(ctx context.Context, q string, key any, userID string) (domain.RateLock, error) {
	l, err := scanLock(r.pool.QueryRow(ctx, q, key, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RateLock{}, domain.ErrLockNotFound
		}
		return domain.RateLock{}, fmt.Errorf("failed to get rate lock: %w", err)
	}
	return l, nil
}

func scanLock(row pgx.Row) (domain.RateLock, error) {
	var (
		l      domain.RateLock
		status string
	)
	if err := row.Scan(&l.ID, &l.UserID, &l.From, &l.To, &l.FromAmount, &l.ToAmount, &l.Rate,
		&l.CreatedAt, &l.ExpiresAt, &status, &l.Reference, &l.UsedAt); err != nil {
		return domain.RateLock{}, err
	}
	l.Status = domain.LockStatus(status)
	l.CreatedAt = l.CreatedAt.UTC()
	l.ExpiresAt = l.ExpiresAt.UTC()
	if l.UsedAt != nil {
		usedAt := l.UsedAt.UTC()
		l.UsedAt = &usedAt
	}
	return l, nil
}

func NewRateLockRepository(pool *pgxpool.Pool) *RateLockRepository {
	return &RateLockRepository{pool: pool}
}
