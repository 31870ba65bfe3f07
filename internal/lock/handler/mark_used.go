package handler

import (
	"net/http"

	"ratelock/internal/auth"
)

// MarkUsed godoc
// @Summary Redeem a rate lock
// @Description One-way transition of an active lock to used. Used and expired locks are rejected.
// @Tags Locks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lock ID"
// @Success 200 {object} LockResponse
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse "already used or expired"
// @Router /locks/{id}/use [post]
func (h *Handler) MarkUsed(w http.ResponseWriter, r *http.Request) {
	id, ok := lockID(w, r)
	if !ok {
		return
	}

	v, err := h.locks.MarkUsed(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		if !writeLockError(w, err) {
			internalError(w, r, err, "MarkUsed", "ups, couldn't redeem the rate lock this time")
		}
		return
	}
	writeJSON(w, http.StatusOK, toLockResponse(v))
}
