package lock

import (
	"time"

	"ratelock/internal/domain"
)

// DeriveDisplayStatus is the only definition of whether a lock can still be
// honored. Used wins over expiry, an active lock expires at exactly ExpiresAt.
func DeriveDisplayStatus(l domain.RateLock, now time.Time) domain.DisplayStatus {
	if l.Status == domain.LockStatusUsed {
		return domain.DisplayUsed
	}
	if !now.Before(l.ExpiresAt) {
		return domain.DisplayExpired
	}
	return domain.DisplayActive
}

// Remaining is the time left on an active lock, zero otherwise.
func Remaining(l domain.RateLock, now time.Time) time.Duration {
	if DeriveDisplayStatus(l, now) != domain.DisplayActive {
		return 0
	}
	return l.ExpiresAt.Sub(now)
}

// View is a stored lock together with its status at read time.
type View struct {
	domain.RateLock
	Display   domain.DisplayStatus
	Remaining time.Duration
}

func NewView(l domain.RateLock, now time.Time) View {
	return View{RateLock: l, Display: DeriveDisplayStatus(l, now), Remaining: Remaining(l, now)}
}
