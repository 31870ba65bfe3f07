package domain

import (
	"time"

	"github.com/google/uuid"
)

// LockStatus is the status persisted with a rate lock. Expiry is never stored.
type LockStatus string

const (
	LockStatusActive LockStatus = "active"
	LockStatusUsed   LockStatus = "used"
)

// DisplayStatus is the status derived from a stored lock and the wall clock.
type DisplayStatus string

const (
	DisplayActive  DisplayStatus = "active"
	DisplayExpired DisplayStatus = "expired"
	DisplayUsed    DisplayStatus = "used"
)

// LockTTL is the validity window of every rate lock.
const LockTTL = 24 * time.Hour

type RateLock struct {
	ID         uuid.UUID
	UserID     string
	From       string
	To         string
	FromAmount float64
	ToAmount   float64
	Rate       float64
	CreatedAt  time.Time
	ExpiresAt  time.Time
	Status     LockStatus
	Reference  string
	UsedAt     *time.Time
}

// NewRateLock is a lock before the store assigned its ID.
type NewRateLock struct {
	UserID     string
	From       string
	To         string
	FromAmount float64
	ToAmount   float64
	Rate       float64
	CreatedAt  time.Time
	ExpiresAt  time.Time
	Reference  string
}
