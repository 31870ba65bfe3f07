package domain

import (
	"time"
)

// MaxAmount caps any amount accepted for conversion or locking.
const MaxAmount = 1e12

// ExchangeRate means one unit of From buys Rate units of To.
type ExchangeRate struct {
	From      string    `json:"from_currency"`
	To        string    `json:"to_currency"`
	Rate      float64   `json:"rate"`
	Timestamp time.Time `json:"timestamp"`
}

func (r ExchangeRate) Pair() RatePair {
	return RatePair{Base: r.From, Quote: r.To}
}

type RatePair struct {
	Base  string
	Quote string
}

func (p RatePair) Reversed() RatePair {
	return RatePair{
		Base:  p.Quote,
		Quote: p.Base,
	}
}

func (p RatePair) String() string { return p.Base + "/" + p.Quote }

// BaseRates is a single-base table as returned by the rate source.
type BaseRates struct {
	Base  string
	Rates map[string]float64
	Date  string
}
