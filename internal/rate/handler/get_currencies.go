package handler

import (
	"net/http"

	"ratelock/internal/currency"
	"ratelock/internal/domain"
)

type GetCurrenciesResponse struct {
	Currencies []domain.Currency `json:"currencies"`
}

// GetCurrencies godoc
// @Summary List supported currencies
// @Description Retrieve the currency catalog with display metadata
// @Tags Rates
// @Produce json
// @Success 200 {object} GetCurrenciesResponse
// @Router /currencies [get]
func (h *Handler) GetCurrencies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, GetCurrenciesResponse{
		Currencies: currency.List(),
	})
}
