package rate

import (
	"math"
	"slices"
	"time"

	"ratelock/internal/domain"
)

// Snapshot is the full pairwise rate matrix from a single refresh. It is never
// mutated after construction, a refresh replaces it as a whole.
type Snapshot struct {
	Base      string
	Rates     []domain.ExchangeRate
	FetchedAt time.Time
	// Degraded marks fallback or stale data, Reason says why.
	Degraded bool
	Reason   string

	index map[domain.RatePair]float64
}

func NewSnapshot(base string, rates []domain.ExchangeRate, fetchedAt time.Time) Snapshot {
	index := make(map[domain.RatePair]float64, len(rates))
	for _, r := range rates {
		index[r.Pair()] = r.Rate
	}
	return Snapshot{Base: base, Rates: rates, FetchedAt: fetchedAt, index: index}
}

// Convert applies the snapshot rate for from/to, see Convert.
func (s Snapshot) Convert(amount float64, from, to string) (float64, bool) {
	if from == to {
		return amount, true
	}
	r, ok := s.index[domain.RatePair{Base: from, Quote: to}]
	if !ok {
		return 0, false
	}
	return amount * r, true
}

// Lookup returns the stored rate for from/to. Same-currency pairs are not stored.
func (s Snapshot) Lookup(from, to string) (float64, bool) {
	r, ok := s.index[domain.RatePair{Base: from, Quote: to}]
	return r, ok
}

func (s Snapshot) degraded(reason string) Snapshot {
	s.Degraded = true
	s.Reason = reason
	return s
}

// BuildRates derives every ordered pair of codes from a single-base table.
// Pairs whose non-base side has no usable rate are omitted, and so is
// everything when the base itself is not one of codes.
func BuildRates(base string, baseTable map[string]float64, codes []string, at time.Time) []domain.ExchangeRate {
	if !slices.Contains(codes, base) {
		return nil
	}

	rates := make([]domain.ExchangeRate, 0, len(codes)*(len(codes)-1))
	emit := func(from, to string, value float64) {
		rates = append(rates, domain.ExchangeRate{From: from, To: to, Rate: value, Timestamp: at})
	}

	for _, x := range codes {
		if x == base {
			continue
		}
		if vx, ok := usableRate(baseTable, x); ok {
			emit(base, x, vx)
		}
	}

	for _, x := range codes {
		if x == base {
			continue // base->X already emitted
		}
		vx, ok := usableRate(baseTable, x)
		if !ok {
			continue
		}
		for _, y := range codes {
			if x == y {
				continue
			}
			if y == base {
				emit(x, base, 1/vx)
				continue
			}
			vy, ok := usableRate(baseTable, y)
			if !ok {
				continue
			}
			emit(x, y, vy/vx)
		}
	}
	return rates
}

func usableRate(table map[string]float64, code string) (float64, bool) {
	v, ok := table[code]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}
