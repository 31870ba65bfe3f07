package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRateUnavailable = errors.New("rate unavailable")
	ErrAmountTooLarge  = fmt.Errorf("amount must not exceed %.0f", MaxAmount)

	ErrLockNotFound = errors.New("rate lock not found")
	// ErrLockNotEligible is returned when a lock can no longer be redeemed.
	ErrLockNotEligible = errors.New("rate lock not eligible")
	ErrLockAlreadyUsed = fmt.Errorf("%w: already used", ErrLockNotEligible)
	ErrLockExpired     = fmt.Errorf("%w: expired", ErrLockNotEligible)

	ErrReferenceTaken = errors.New("rate lock reference already taken")
)
