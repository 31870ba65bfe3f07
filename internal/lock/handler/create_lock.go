package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"ratelock/internal/auth"
	"ratelock/internal/currency"
	"ratelock/internal/domain"
	"ratelock/internal/lock"

	"github.com/go-playground/validator/v10"
)

type CreateLockRequest struct {
	FromCurrency string   `json:"from_currency" validate:"required,len=3,alpha"`
	ToCurrency   string   `json:"to_currency" validate:"required,len=3,alpha,nefield=FromCurrency"`
	Amount       float64  `json:"amount" validate:"gt=0,lte=1000000000000"`
	Rate         *float64 `json:"rate,omitempty" validate:"omitempty,gt=0"`
}

type CreateLockResponse struct {
	LockResponse
	RateFromSnapshot bool `json:"rate_from_snapshot"`
	RateDegraded     bool `json:"rate_degraded,omitempty"`
}

var fieldMessages = map[string]string{
	"FromCurrency": "from_currency must be a 3-letter currency code",
	"ToCurrency":   "to_currency must be a 3-letter currency code different from from_currency",
	"Amount":       "amount must be a positive number",
	"Rate":         "rate must be a positive number",
	"Amount.lte":   domain.ErrAmountTooLarge.Error(),
}

// CreateLock godoc
// @Summary Lock a rate
// @Description Lock amount at rate for 24 hours. Without rate the current snapshot rate is used.
// @Tags Locks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateLockRequest true "Lock request"
// @Success 201 {object} CreateLockResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 422 {object} errorResponse "rate unavailable"
// @Router /locks [post]
func (h *Handler) CreateLock(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 512)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req CreateLockRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.FromCurrency = strings.ToUpper(strings.TrimSpace(req.FromCurrency))
	req.ToCurrency = strings.ToUpper(strings.TrimSpace(req.ToCurrency))

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	resp := CreateLockResponse{}
	var lockRate float64
	if req.Rate != nil {
		lockRate = *req.Rate
	} else {
		snap := h.rates.Current()
		var ok bool
		if lockRate, ok = snap.Lookup(req.FromCurrency, req.ToCurrency); !ok {
			writeError(w, http.StatusUnprocessableEntity, "rate unavailable")
			return
		}
		resp.RateFromSnapshot = true
		resp.RateDegraded = snap.Degraded
	}

	created, err := h.locks.CreateLock(r.Context(), auth.UserID(r.Context()), req.FromCurrency, req.ToCurrency, req.Amount, lockRate)
	if err != nil {
		switch {
		case writeLockError(w, err):
		case isValidation(err):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			internalError(w, r, err, "CreateLock", "ups, couldn't lock the rate this time")
		}
		return
	}

	resp.LockResponse = toLockResponse(created)
	writeJSON(w, http.StatusCreated, resp)
}

func isValidation(err error) bool {
	for _, target := range []error{
		currency.ErrFromRequired, currency.ErrToRequired,
		currency.ErrFromUnsupported, currency.ErrToUnsupported, currency.ErrSameCodes,
		lock.ErrInvalidAmount, lock.ErrInvalidRate, lock.ErrToAmountOutOfRange,
		domain.ErrAmountTooLarge,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := fieldMessages[verrs[0].StructField()+"."+verrs[0].Tag()]; ok {
			return msg
		}
		if msg, ok := fieldMessages[verrs[0].StructField()]; ok {
			return msg
		}
	}
	return "invalid request body"
}
