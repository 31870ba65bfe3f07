package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"ratelock/internal/domain"
)

var ErrMalformedResponse = errors.New("malformed rates response")

type ExchangeRateClient struct {
	http    *http.Client
	baseURL string
}

type apiResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
	Date  string             `json:"date"`
}

// GetLatestRates requests {baseURL}/{base} and returns the single-base table.
func (c *ExchangeRateClient) GetLatestRates(ctx context.Context, base string) (domain.BaseRates, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return domain.BaseRates{}, fmt.Errorf("failed to parse base URL: %w", err)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + base

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.BaseRates{}, fmt.Errorf("failed to create request for currency %q: %w", base, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.BaseRates{}, fmt.Errorf("failed to execute request for currency %q: %w", base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.BaseRates{}, fmt.Errorf("unexpected status code %d for currency %q: %s", resp.StatusCode, base, resp.Status)
	}

	var body apiResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.BaseRates{}, fmt.Errorf("failed to decode response for currency %q: %w", base, err)
	}

	// the source is untrusted, absence of either field is a malformed payload
	if body.Base == "" || body.Rates == nil {
		return domain.BaseRates{}, fmt.Errorf("%w for currency %q: missing base or rates", ErrMalformedResponse, base)
	}
	if !strings.EqualFold(body.Base, base) {
		return domain.BaseRates{}, fmt.Errorf("%w for currency %q: got base %q", ErrMalformedResponse, base, body.Base)
	}

	return domain.BaseRates{
		Base:  strings.ToUpper(body.Base),
		Rates: body.Rates,
		Date:  body.Date,
	}, nil
}

func NewExchangeRateClient(httpClient *http.Client, baseURL string) *ExchangeRateClient {
	return &ExchangeRateClient{http: httpClient, baseURL: baseURL}
}
