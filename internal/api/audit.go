package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"lostfound/internal/store"
)

// ListAuditRecords returns the audit trail, newest first. Supports
// ?type= to filter by action type and ?limit= to cap the result.
func ListAuditRecords(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actionType := r.URL.Query().Get("type")

		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				jsonError(w, http.StatusBadRequest, "invalid limit")
				return
			}
			limit = n
		}

		records, err := store.ListAuditRecords(r.Context(), db, actionType, limit)
		if err != nil {
			slog.Error("failed to list audit records", "error", err)
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}

		jsonResponse(w, http.StatusOK, records)
	}
}
