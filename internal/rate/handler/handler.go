package handler

import (
	"encoding/json"
	"net/http"

	"ratelock/internal/rate"

	"github.com/sirupsen/logrus"
)

type currencyValidator interface {
	ValidateCodes(from, to string) error
}

type rateService interface {
	Current() rate.Snapshot
	Convert(amount float64, from, to string) (rate.Conversion, error)
}

type Handler struct {
	validator currencyValidator
	service   rateService
}

func NewRateHandler(validator currencyValidator, service rateService) *Handler {
	return &Handler{validator: validator, service: service}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		logrus.WithError(err).WithField("status", statusCode).Error("Failed to encode response")
		statusCode = http.StatusInternalServerError
		payload = []byte(`{"error":"ups, couldn't encode the response this time"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(append(payload, '\n'))
}
