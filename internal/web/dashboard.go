package web

import (
	"log/slog"
	"net/http"

	"lostfound/internal/model"
	"lostfound/internal/store"
)

// Dashboard handles GET /admin.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	itemCount, err := store.CountItems(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to count items", "error", err)
	}
	pendingCount, err := store.CountClaimsByStatus(r.Context(), s.DB, model.ClaimStatusPending)
	if err != nil {
		slog.Error("failed to count pending claims", "error", err)
	}
	recent, err := store.ListRecentItems(r.Context(), s.DB, 10)
	if err != nil {
		slog.Error("failed to list recent items", "error", err)
	}

	s.Templates.Render(w, "dashboard.html", &struct {
		PageData
		ItemCount     int
		PendingClaims int
		RecentItems   []model.Item
	}{
		PageData:      PageData{Title: "Dashboard", Admin: claims},
		ItemCount:     itemCount,
		PendingClaims: pendingCount,
		RecentItems:   recent,
	})
}
