package handler

import (
	"net/http"

	"ratelock/internal/auth"
	"ratelock/internal/lock"
)

type ListLocksResponse struct {
	Locks  []LockResponse `json:"locks"`
	Counts lock.Counts    `json:"counts"`
}

// ListLocks godoc
// @Summary List my rate locks
// @Description Locks of the caller with status derived at read time. Counts cover all locks, not only the filtered ones.
// @Tags Locks
// @Produce json
// @Security BearerAuth
// @Param status query string false "all, active, expired or used"
// @Param q query string false "Currency code or reference substring"
// @Param sort query string false "date, amount, rate or status"
// @Param order query string false "asc or desc"
// @Success 200 {object} ListLocksResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Router /locks [get]
func (h *Handler) ListLocks(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query, err := lock.ListQuery{
		Status: params.Get("status"),
		Search: params.Get("q"),
		Sort:   params.Get("sort"),
		Order:  params.Get("order"),
	}.Normalize()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	views, err := h.locks.ListLocks(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		if !writeLockError(w, err) {
			internalError(w, r, err, "ListLocks", "ups, couldn't list rate locks this time")
		}
		return
	}

	filtered := lock.Apply(views, query)
	resp := ListLocksResponse{
		Locks:  make([]LockResponse, 0, len(filtered)),
		Counts: lock.Count(views),
	}
	for _, v := range filtered {
		resp.Locks = append(resp.Locks, toLockResponse(v))
	}
	writeJSON(w, http.StatusOK, resp)
}
