package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ratelock/internal/domain"

	"github.com/sirupsen/logrus"
)

type ConvertResponse struct {
	From     string    `json:"from" example:"USD"`
	To       string    `json:"to" example:"EUR"`
	Amount   float64   `json:"amount" example:"1000"`
	Result   float64   `json:"result" example:"920"`
	Rate     float64   `json:"rate" example:"0.92"`
	Degraded bool      `json:"degraded"`
	AsOf     time.Time `json:"as_of" example:"2025-01-02T15:04:05Z"`
}

// Convert godoc
// @Summary Convert an amount
// @Description Convert amount using the current snapshot. Same currency is identity.
// @Tags Rates
// @Produce json
// @Param amount query number true "Amount, non-negative, at most 1e12"
// @Param from query string true "From currency"
// @Param to query string true "To currency"
// @Success 200 {object} ConvertResponse
// @Failure 400 {object} errorResponse
// @Failure 422 {object} errorResponse "rate unavailable"
// @Router /rates/convert [get]
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from := strings.ToUpper(strings.TrimSpace(q.Get("from")))
	to := strings.ToUpper(strings.TrimSpace(q.Get("to")))

	amount, err := strconv.ParseFloat(strings.TrimSpace(q.Get("amount")), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		writeError(w, http.StatusBadRequest, "amount must be a non-negative number")
		return
	}
	if amount > domain.MaxAmount {
		writeError(w, http.StatusBadRequest, domain.ErrAmountTooLarge.Error())
		return
	}

	if err = h.validator.ValidateCodes(from, to); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conv, err := h.service.Convert(amount, from, to)
	if err != nil {
		if errors.Is(err, domain.ErrRateUnavailable) {
			writeError(w, http.StatusUnprocessableEntity, "rate unavailable")
			return
		}
		if errors.Is(err, domain.ErrAmountTooLarge) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		msg := "ups, couldn't convert this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Convert", "from": from, "to": to}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, ConvertResponse{
		From:     conv.From,
		To:       conv.To,
		Amount:   conv.Amount,
		Result:   conv.Result,
		Rate:     conv.Rate,
		Degraded: conv.Degraded,
		AsOf:     conv.AsOf,
	})
}
