package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"lostfound/internal/imaging"
	"lostfound/internal/model"
	"lostfound/internal/store"
)

// AdminItemsPage handles GET /admin/items.
func (s *Server) AdminItemsPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	status := r.URL.Query().Get("status")
	if !model.ValidItemStatus(status) {
		status = ""
	}

	items, err := store.ListItems(r.Context(), s.DB, status)
	if err != nil {
		slog.Error("failed to list items", "error", err)
	}

	s.Templates.Render(w, "items.html", &struct {
		PageData
		Items  []model.Item
		Status string
	}{
		PageData: PageData{Title: "Items", Admin: claims},
		Items:    items,
		Status:   status,
	})
}

func itemParamsFromForm(r *http.Request) store.ItemParams {
	return store.ItemParams{
		Name:         strings.TrimSpace(r.FormValue("name")),
		Description:  strings.TrimSpace(r.FormValue("description")),
		Category:     strings.TrimSpace(r.FormValue("category")),
		LocationLost: strings.TrimSpace(r.FormValue("location_lost")),
		DateLost:     strings.TrimSpace(r.FormValue("date_lost")),
	}
}

// ItemCreateSubmit handles POST /admin/items.
func (s *Server) ItemCreateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	params := itemParamsFromForm(r)
	if params.Name == "" {
		http.Redirect(w, r, "/admin/items", http.StatusSeeOther)
		return
	}

	item, err := store.CreateItem(r.Context(), s.DB, params, claims.AdminID)
	if err != nil {
		slog.Error("failed to create item", "error", err)
		http.Redirect(w, r, "/admin/items", http.StatusSeeOther)
		return
	}

	slog.Info("item created", "admin", claims.Username, "item", params.Name)
	http.Redirect(w, r, fmt.Sprintf("/admin/items/%d", item.ID), http.StatusSeeOther)
}

// ItemEditPage handles GET /admin/items/{id}.
func (s *Server) ItemEditPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

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

	itemClaims, err := store.ListClaimsForItem(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to list claims for item", "error", err)
	}

	s.Templates.Render(w, "item_edit.html", &struct {
		PageData
		Item   *model.Item
		Claims []model.Claim
	}{
		PageData: PageData{Title: item.Name, Admin: claims},
		Item:     item,
		Claims:   itemClaims,
	})
}

// ItemUpdateSubmit handles POST /admin/items/{id}.
func (s *Server) ItemUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	params := itemParamsFromForm(r)
	if err := store.UpdateItem(r.Context(), s.DB, id, params, claims.AdminID); err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.Error("failed to update item", "error", err)
		http.Error(w, "failed to update", http.StatusInternalServerError)
		return
	}

	slog.Info("item updated", "admin", claims.Username, "item", params.Name)
	http.Redirect(w, r, fmt.Sprintf("/admin/items/%d", id), http.StatusSeeOther)
}

// ItemDeleteSubmit handles POST /admin/items/{id}/delete.
func (s *Server) ItemDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := store.DeleteItem(r.Context(), s.DB, id, claims.AdminID); err != nil {
		if !errors.Is(err, store.ErrItemNotFound) {
			slog.Error("failed to delete item", "error", err)
		}
	} else {
		slog.Info("item deleted", "admin", claims.Username, "item_id", id)
	}

	http.Redirect(w, r, "/admin/items", http.StatusSeeOther)
}

// ItemMarkClaimedSubmit handles POST /admin/items/{id}/claimed. It marks an
// item as returned without going through a claim, for walk-up handovers.
func (s *Server) ItemMarkClaimedSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := store.MarkItemClaimed(r.Context(), s.DB, id, claims.AdminID); err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.Error("failed to mark item claimed", "error", err)
		http.Error(w, "failed to update", http.StatusInternalServerError)
		return
	}

	slog.Info("item marked claimed", "admin", claims.Username, "item_id", id)
	http.Redirect(w, r, fmt.Sprintf("/admin/items/%d", id), http.StatusSeeOther)
}

// ItemPhotoSubmit handles POST /admin/items/{id}/photo.
func (s *Server) ItemPhotoSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	maxBytes := s.Config.Uploads.MaxPhotoBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		http.Error(w, "file too large", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, "photo required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := imaging.ProcessPhoto(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := store.SetItemPhoto(r.Context(), s.DB, id, result.Data, result.MIME); err != nil {
		slog.Error("failed to save photo", "error", err)
		http.Error(w, "failed to save photo", http.StatusInternalServerError)
		return
	}

	slog.Info("item photo uploaded", "admin", claims.Username, "item_id", id)
	http.Redirect(w, r, fmt.Sprintf("/admin/items/%d", id), http.StatusSeeOther)
}
