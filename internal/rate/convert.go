package rate

import "ratelock/internal/domain"

// Convert maps amount from one currency to another using rates. Same codes are
// identity. The second result is false when no rate for the pair exists.
// No rounding happens here, round at display time.
func Convert(amount float64, from, to string, rates []domain.ExchangeRate) (float64, bool) {
	if from == to {
		return amount, true
	}
	for _, r := range rates {
		if r.From == from && r.To == to {
			return amount * r.Rate, true
		}
	}
	return 0, false
}
