package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"ratelock/internal/auth"
	"ratelock/internal/domain"
	"ratelock/internal/lock"
	"ratelock/internal/rate"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type lockService interface {
	CreateLock(ctx context.Context, userID, from, to string, amount, rate float64) (lock.View, error)
	MarkUsed(ctx context.Context, userID string, id uuid.UUID) (lock.View, error)
	ListLocks(ctx context.Context, userID string) ([]lock.View, error)
	GetLock(ctx context.Context, userID string, id uuid.UUID) (lock.View, error)
	GetByReference(ctx context.Context, userID, reference string) (lock.View, error)
}

type snapshotSource interface {
	Current() rate.Snapshot
}

type Handler struct {
	locks    lockService
	rates    snapshotSource
	validate *validator.Validate
}

func NewLockHandler(locks lockService, rates snapshotSource) *Handler {
	return &Handler{
		locks:    locks,
		rates:    rates,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

const notFoundMsg = "rate lock not found"

type errorResponse struct {
	Error string `json:"error"`
}

type LockResponse struct {
	ID               string     `json:"id" example:"5f0c8b2e-6a37-4a53-9d7e-2d1f0a6c4b11"`
	Reference        string     `json:"reference" example:"K7QX2M9PLA"`
	FromCurrency     string     `json:"from_currency" example:"USD"`
	ToCurrency       string     `json:"to_currency" example:"EUR"`
	FromAmount       float64    `json:"from_amount" example:"1000"`
	ToAmount         float64    `json:"to_amount" example:"920"`
	Rate             float64    `json:"rate" example:"0.92"`
	DisplayToAmount  string     `json:"display_to_amount" example:"920.00"`
	Status           string     `json:"status" example:"active"`
	DisplayStatus    string     `json:"display_status" example:"active"`
	RemainingSeconds int64      `json:"remaining_seconds" example:"86400"`
	CreatedAt        time.Time  `json:"created_at"`
	ExpiresAt        time.Time  `json:"expires_at"`
	UsedAt           *time.Time `json:"used_at,omitempty"`
}

func toLockResponse(v lock.View) LockResponse {
	return LockResponse{
		ID:               v.ID.String(),
		Reference:        v.Reference,
		FromCurrency:     v.From,
		ToCurrency:       v.To,
		FromAmount:       v.FromAmount,
		ToAmount:         v.ToAmount,
		Rate:             v.Rate,
		DisplayToAmount:  decimal.NewFromFloat(v.ToAmount).StringFixed(2),
		Status:           string(v.Status),
		DisplayStatus:    string(v.Display),
		RemainingSeconds: int64(v.Remaining / time.Second),
		CreatedAt:        v.CreatedAt,
		ExpiresAt:        v.ExpiresAt,
		UsedAt:           v.UsedAt,
	}
}

// writeLockError maps lookup and lifecycle errors. It reports whether err was handled.
func writeLockError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, lock.ErrUserRequired):
		writeError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, domain.ErrLockNotFound):
		writeError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, domain.ErrLockAlreadyUsed):
		writeError(w, http.StatusConflict, "rate lock already used")
	case errors.Is(err, domain.ErrLockExpired):
		writeError(w, http.StatusConflict, "rate lock expired")
	default:
		return false
	}
	return true
}

func internalError(w http.ResponseWriter, r *http.Request, err error, handler, msg string) {
	logrus.WithError(err).WithFields(logrus.Fields{
		"handler": handler,
		"user_id": auth.UserID(r.Context()),
	}).Error(msg)
	writeError(w, http.StatusInternalServerError, msg)
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
