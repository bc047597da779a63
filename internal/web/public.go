package web

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"lostfound/internal/imaging"
	"lostfound/internal/model"
	"lostfound/internal/store"
)

// IndexPage handles GET /. It lists unclaimed items so students can browse
// what has been handed in.
func (s *Server) IndexPage(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), s.DB, model.ItemStatusLost)
	if err != nil {
		slog.Error("failed to list items", "error", err)
	}

	s.Templates.Render(w, "index.html", &struct {
		PageData
		Items []model.Item
	}{
		PageData: PageData{Title: "Lost & Found"},
		Items:    items,
	})
}

// ItemPage handles GET /items/{id}.
func (s *Server) ItemPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	item, err := store.GetItem(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.NotFound(w, r)
		return
	}

	s.Templates.Render(w, "item.html", &struct {
		PageData
		Item *model.Item
	}{
		PageData: PageData{Title: item.Name},
		Item:     item,
	})
}

// ItemPhoto handles GET /items/{id}/photo.
func (s *Server) ItemPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	data, mime, err := store.GetItemPhoto(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get photo", "error", err)
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
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write photo response", "error", err)
	}
}

// ClaimFormPage handles GET /items/{id}/claim.
func (s *Server) ClaimFormPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	item, err := store.GetItem(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.NotFound(w, r)
		return
	}
	if item.Status != model.ItemStatusLost {
		http.Redirect(w, r, "/items/"+r.PathValue("id"), http.StatusSeeOther)
		return
	}

	s.Templates.Render(w, "claim_form.html", &struct {
		PageData
		Item *model.Item
	}{
		PageData: PageData{Title: "Claim " + item.Name},
		Item:     item,
	})
}

// ClaimSubmit handles POST /items/{id}/claim.
func (s *Server) ClaimSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	maxBytes := s.Config.Uploads.MaxProofBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+64<<10)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		s.renderClaimFormError(w, r, id, "The proof file is too large.")
		return
	}

	name := strings.TrimSpace(r.FormValue("claimant_name"))
	campusID := strings.TrimSpace(r.FormValue("campus_id"))
	course := strings.TrimSpace(r.FormValue("course"))
	message := strings.TrimSpace(r.FormValue("message"))

	if name == "" || campusID == "" {
		s.renderClaimFormError(w, r, id, "Your name and campus ID are required.")
		return
	}

	var proof []byte
	var proofMime string
	if file, _, err := r.FormFile("proof"); err == nil {
		defer file.Close()
		result, err := imaging.ProcessProof(file)
		if err != nil {
			s.renderClaimFormError(w, r, id, "Proof must be an image or a PDF.")
			return
		}
		proof = result.Data
		proofMime = result.MIME
	}

	if _, err := store.CreateClaim(r.Context(), s.DB, id, name, campusID, course, message, proof, proofMime); err != nil {
		slog.Error("failed to create claim", "item_id", id, "error", err)
		s.renderClaimFormError(w, r, id, "Could not submit your claim, try again.")
		return
	}

	slog.Info("claim submitted", "item_id", id, "claimant", name)
	http.Redirect(w, r, "/claims/success", http.StatusSeeOther)
}

func (s *Server) renderClaimFormError(w http.ResponseWriter, r *http.Request, itemID int64, msg string) {
	item, err := store.GetItem(r.Context(), s.DB, itemID)
	if err != nil || item == nil {
		http.NotFound(w, r)
		return
	}

	s.Templates.Render(w, "claim_form.html", &struct {
		PageData
		Item *model.Item
	}{
		PageData: PageData{Title: "Claim " + item.Name, Error: msg},
		Item:     item,
	})
}

// ClaimSuccessPage handles GET /claims/success.
func (s *Server) ClaimSuccessPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "claim_success.html", &PageData{Title: "Claim submitted"})
}
