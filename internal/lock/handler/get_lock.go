package handler

import (
	"net/http"
	"strings"

	"ratelock/internal/auth"

	"github.com/go-chi/chi/v5"
)

// GetLock godoc
// @Summary Get a rate lock
// @Tags Locks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lock ID"
// @Success 200 {object} LockResponse
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /locks/{id} [get]
func (h *Handler) GetLock(w http.ResponseWriter, r *http.Request) {
	id, ok := lockID(w, r)
	if !ok {
		return
	}

	v, err := h.locks.GetLock(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		if !writeLockError(w, err) {
			internalError(w, r, err, "GetLock", "ups, couldn't get the rate lock this time")
		}
		return
	}
	writeJSON(w, http.StatusOK, toLockResponse(v))
}

// GetLockByReference godoc
// @Summary Get a rate lock by reference
// @Tags Locks
// @Produce json
// @Security BearerAuth
// @Param reference path string true "Lock reference"
// @Success 200 {object} LockResponse
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /locks/reference/{reference} [get]
func (h *Handler) GetLockByReference(w http.ResponseWriter, r *http.Request) {
	ref := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "reference")))
	if ref == "" {
		writeError(w, http.StatusNotFound, notFoundMsg)
		return
	}

	v, err := h.locks.GetByReference(r.Context(), auth.UserID(r.Context()), ref)
	if err != nil {
		if !writeLockError(w, err) {
			internalError(w, r, err, "GetLockByReference", "ups, couldn't get the rate lock this time")
		}
		return
	}
	writeJSON(w, http.StatusOK, toLockResponse(v))
}
