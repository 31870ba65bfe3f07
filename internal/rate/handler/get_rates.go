package handler

import (
	"net/http"
	"strings"
	"time"

	"ratelock/internal/domain"
)

type GetRatesResponse struct {
	Base      string                `json:"base" example:"USD"`
	FetchedAt time.Time             `json:"fetched_at" example:"2025-01-02T15:04:05Z"`
	Degraded  bool                  `json:"degraded"`
	Warning   string                `json:"warning,omitempty"`
	Rates     []domain.ExchangeRate `json:"rates"`
}

// GetRates godoc
// @Summary Current rate snapshot
// @Description Full pairwise rate matrix. degraded is true when the live source was unavailable.
// @Tags Rates
// @Produce json
// @Param from query string false "Only rates from this currency"
// @Success 200 {object} GetRatesResponse
// @Router /rates [get]
func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	snap := h.service.Current()

	rates := snap.Rates
	if from := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("from"))); from != "" {
		rates = make([]domain.ExchangeRate, 0, len(snap.Rates))
		for _, er := range snap.Rates {
			if er.From == from {
				rates = append(rates, er)
			}
		}
	}
	if rates == nil {
		rates = []domain.ExchangeRate{}
	}

	writeJSON(w, http.StatusOK, GetRatesResponse{
		Base:      snap.Base,
		FetchedAt: snap.FetchedAt,
		Degraded:  snap.Degraded,
		Warning:   snap.Reason,
		Rates:     rates,
	})
}
