package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// lockID parses the {id} path param. A malformed id is reported the same way
// as a missing lock.
func lockID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, notFoundMsg)
		return uuid.Nil, false
	}
	return id, true
}
