package web

import (
	"log/slog"
	"net/http"

	"lostfound/internal/model"
	"lostfound/internal/store"
)

// AuditPage handles GET /admin/audit.
func (s *Server) AuditPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	actionType := r.URL.Query().Get("type")

	records, err := store.ListAuditRecords(r.Context(), s.DB, actionType, 0)
	if err != nil {
		slog.Error("failed to list audit records", "error", err)
	}
	types, err := store.ListAuditActionTypes(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list audit action types", "error", err)
	}

	s.Templates.Render(w, "audit.html", &struct {
		PageData
		Records []model.AuditRecord
		Types   []string
		Filter  string
	}{
		PageData: PageData{Title: "Audit log", Admin: claims},
		Records:  records,
		Types:    types,
		Filter:   actionType,
	})
}
