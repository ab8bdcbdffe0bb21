package handlers

import (
	"net/http"
	"strconv"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/api/problem"
)

// parseIDParam extracts the numeric public id from the route. Non-numeric or
// non-positive ids are rejected before any store access.
func parseIDParam(w http.ResponseWriter, r *http.Request, env string) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		problem.Validation(w, r, pagination.ParamError{Field: "id", Message: "must be a positive number"}, env)
		return 0, false
	}
	return id, true
}
