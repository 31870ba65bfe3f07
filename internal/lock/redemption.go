package lock

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"math"
	"strings"
	"time"

	"ratelock/internal/domain"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/shopspring/decimal"
)

const (
	DefaultQRSize = 256
	MinQRSize     = 64
	MaxQRSize     = 1024
)

var (
	ErrMalformedRedemption = errors.New("malformed redemption payload")
	ErrInvalidQRSize       = fmt.Errorf("qr size must be between %d and %d", MinQRSize, MaxQRSize)
)

// Redemption is the self-contained record a counterparty needs to honor a
// lock offline.
type Redemption struct {
	Reference    string    `json:"reference"`
	FromCurrency string    `json:"fromCurrency"`
	ToCurrency   string    `json:"toCurrency"`
	FromAmount   float64   `json:"fromAmount"`
	ToAmount     float64   `json:"toAmount"`
	Rate         float64   `json:"rate"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

func NewRedemption(l domain.RateLock) Redemption {
	return Redemption{
		Reference:    l.Reference,
		FromCurrency: l.From,
		ToCurrency:   l.To,
		FromAmount:   l.FromAmount,
		ToAmount:     l.ToAmount,
		Rate:         l.Rate,
		ExpiresAt:    l.ExpiresAt.UTC(),
	}
}

func (r Redemption) Encode() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode redemption: %w", err)
	}
	return data, nil
}

// DecodeRedemption parses a scanned payload without any service lookup.
func DecodeRedemption(data []byte) (Redemption, error) {
	var r Redemption
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil {
		return Redemption{}, fmt.Errorf("%w: %w", ErrMalformedRedemption, err)
	}

	switch {
	case strings.TrimSpace(r.Reference) == "":
		return Redemption{}, fmt.Errorf("%w: reference is missing", ErrMalformedRedemption)
	case r.FromCurrency == "" || r.ToCurrency == "":
		return Redemption{}, fmt.Errorf("%w: currency is missing", ErrMalformedRedemption)
	case !positive(r.FromAmount) || !positive(r.ToAmount) || !positive(r.Rate):
		return Redemption{}, fmt.Errorf("%w: amounts and rate must be positive", ErrMalformedRedemption)
	case r.ExpiresAt.IsZero():
		return Redemption{}, fmt.Errorf("%w: expiresAt is missing", ErrMalformedRedemption)
	}
	return r, nil
}

// Consistent reports whether toAmount still equals fromAmount*rate.
func (r Redemption) Consistent() bool {
	want := r.FromAmount * r.Rate
	return math.Abs(want-r.ToAmount) <= 1e-9*math.Max(1, math.Abs(want))
}

// Summary is a human readable line, two decimals for amounts and four for the rate.
func (r Redemption) Summary() string {
	return fmt.Sprintf("%s: %s %s -> %s %s at %s, valid until %s",
		r.Reference,
		decimal.NewFromFloat(r.FromAmount).StringFixed(2), r.FromCurrency,
		decimal.NewFromFloat(r.ToAmount).StringFixed(2), r.ToCurrency,
		decimal.NewFromFloat(r.Rate).StringFixed(4),
		r.ExpiresAt.UTC().Format(time.RFC3339),
	)
}

// RenderQR encodes the payload as a size x size PNG.
func (r Redemption) RenderQR(size int) ([]byte, error) {
	if size < MinQRSize || size > MaxQRSize {
		return nil, ErrInvalidQRSize
	}
	data, err := r.Encode()
	if err != nil {
		return nil, err
	}

	code, err := qr.Encode(string(data), qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	code, err = barcode.Scale(code, size, size)
	if err != nil {
		return nil, fmt.Errorf("failed to scale qr code: %w", err)
	}

	var buf bytes.Buffer
	if err = png.Encode(&buf, code); err != nil {
		return nil, fmt.Errorf("failed to write qr png: %w", err)
	}
	return buf.Bytes(), nil
}
