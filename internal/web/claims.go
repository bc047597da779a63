package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"lostfound/internal/model"
	"lostfound/internal/store"
)

// ClaimsPage handles GET /admin/claims.
func (s *Server) ClaimsPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	status := r.URL.Query().Get("status")
	if !model.ValidClaimStatus(status) {
		status = ""
	}

	list, err := store.ListClaims(r.Context(), s.DB, status)
	if err != nil {
		slog.Error("failed to list claims", "error", err)
	}

	s.Templates.Render(w, "claims.html", &struct {
		PageData
		Claims []model.Claim
		Status string
	}{
		PageData: PageData{Title: "Claims", Admin: claims},
		Claims:   list,
		Status:   status,
	})
}

// ClaimDetailPage handles GET /admin/claims/{id}.
func (s *Server) ClaimDetailPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	claim, err := store.GetClaim(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get claim", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if claim == nil {
		http.NotFound(w, r)
		return
	}

	item, err := store.GetItem(r.Context(), s.DB, claim.ItemID)
	if err != nil {
		slog.Error("failed to get item", "error", err)
	}

	var errMsg string
	switch r.URL.Query().Get("error") {
	case "resolved":
		errMsg = "This claim has already been resolved."
	case "failed":
		errMsg = "Could not resolve the claim, try again."
	}

	s.Templates.Render(w, "claim_detail.html", &struct {
		PageData
		Claim *model.Claim
		Item  *model.Item
	}{
		PageData: PageData{Title: "Claim review", Admin: claims, Error: errMsg},
		Claim:    claim,
		Item:     item,
	})
}

// ClaimProof handles GET /admin/claims/{id}/proof.
func (s *Server) ClaimProof(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	data, mime, err := store.GetClaimProof(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get proof", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write proof response", "error", err)
	}
}

// ClaimApproveSubmit handles POST /admin/claims/{id}/approve.
func (s *Server) ClaimApproveSubmit(w http.ResponseWriter, r *http.Request) {
	s.resolveClaim(w, r, store.DecisionApprove)
}

// ClaimRejectSubmit handles POST /admin/claims/{id}/reject.
func (s *Server) ClaimRejectSubmit(w http.ResponseWriter, r *http.Request) {
	s.resolveClaim(w, r, store.DecisionReject)
}

func (s *Server) resolveClaim(w http.ResponseWriter, r *http.Request, decision store.Decision) {
	claims := GetWebClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if _, err := store.ResolveClaim(r.Context(), s.DB, id, decision, claims.AdminID); err != nil {
		switch {
		case errors.Is(err, store.ErrClaimNotFound):
			http.NotFound(w, r)
		case errors.Is(err, store.ErrAlreadyResolved):
			http.Redirect(w, r, fmt.Sprintf("/admin/claims/%d?error=resolved", id), http.StatusSeeOther)
		default:
			slog.Error("failed to resolve claim", "claim_id", id, "error", err)
			http.Redirect(w, r, fmt.Sprintf("/admin/claims/%d?error=failed", id), http.StatusSeeOther)
		}
		return
	}

	slog.Info("claim resolved", "admin", claims.Username, "claim_id", id, "decision", decision)
	http.Redirect(w, r, fmt.Sprintf("/admin/claims/%d", id), http.StatusSeeOther)
}
