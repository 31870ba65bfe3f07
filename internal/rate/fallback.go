package rate

import (
	"time"

	"ratelock/internal/domain"
)

const (
	ReasonSourceUnavailable = "rate source unavailable, showing demo rates"
	ReasonStale             = "rate source unavailable, showing last known rates"
	ReasonNoData            = "rate source unavailable, no rates yet"
)

// demo rates used when the live source is down
var fallbackTable = []struct {
	from, to string
	rate     float64
}{
	{"USD", "EUR", 0.92},
	{"USD", "GBP", 0.79},
	{"USD", "JPY", 151.69},
	{"EUR", "USD", 1.09},
	{"EUR", "GBP", 0.86},
	{"GBP", "USD", 1.27},
	{"JPY", "USD", 0.0066},
}

func FallbackSnapshot(base string, at time.Time) Snapshot {
	rates := make([]domain.ExchangeRate, 0, len(fallbackTable))
	for _, r := range fallbackTable {
		rates = append(rates, domain.ExchangeRate{From: r.from, To: r.to, Rate: r.rate, Timestamp: at})
	}
	return NewSnapshot(base, rates, at).degraded(ReasonSourceUnavailable)
}
