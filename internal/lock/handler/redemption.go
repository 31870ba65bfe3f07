package handler

import (
	"errors"
	"net/http"
	"strconv"

	"ratelock/internal/auth"
	"ratelock/internal/lock"
)

type RedemptionResponse struct {
	Payload lock.Redemption `json:"payload"`
	Encoded string          `json:"encoded"`
	Summary string          `json:"summary" example:"K7QX2M9PLA: 1000.00 USD -> 920.00 EUR at 0.9200, valid until 2025-01-03T15:04:05Z"`
}

// GetRedemption godoc
// @Summary Redemption payload of a rate lock
// @Tags Locks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lock ID"
// @Success 200 {object} RedemptionResponse
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /locks/{id}/redemption [get]
func (h *Handler) GetRedemption(w http.ResponseWriter, r *http.Request) {
	id, ok := lockID(w, r)
	if !ok {
		return
	}

	v, err := h.locks.GetLock(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		if !writeLockError(w, err) {
			internalError(w, r, err, "GetRedemption", "ups, couldn't build the redemption this time")
		}
		return
	}

	payload := lock.NewRedemption(v.RateLock)
	encoded, err := payload.Encode()
	if err != nil {
		internalError(w, r, err, "GetRedemption", "ups, couldn't build the redemption this time")
		return
	}
	writeJSON(w, http.StatusOK, RedemptionResponse{
		Payload: payload,
		Encoded: string(encoded),
		Summary: payload.Summary(),
	})
}

// GetRedemptionQR godoc
// @Summary Redemption QR code of a rate lock
// @Tags Locks
// @Produce png
// @Security BearerAuth
// @Param id path string true "Lock ID"
// @Param size query int false "Image size in pixels, 64 to 1024"
// @Success 200 {file} binary
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /locks/{id}/qr.png [get]
func (h *Handler) GetRedemptionQR(w http.ResponseWriter, r *http.Request) {
	id, ok := lockID(w, r)
	if !ok {
		return
	}

	size := lock.DefaultQRSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < lock.MinQRSize || n > lock.MaxQRSize {
			writeError(w, http.StatusBadRequest, lock.ErrInvalidQRSize.Error())
			return
		}
		size = n
	}

	v, err := h.locks.GetLock(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		if !writeLockError(w, err) {
			internalError(w, r, err, "GetRedemptionQR", "ups, couldn't render the qr code this time")
		}
		return
	}

	png, err := lock.NewRedemption(v.RateLock).RenderQR(size)
	if err != nil {
		if errors.Is(err, lock.ErrInvalidQRSize) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		internalError(w, r, err, "GetRedemptionQR", "ups, couldn't render the qr code this time")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
