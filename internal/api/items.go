package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"lostfound/internal/imaging"
	"lostfound/internal/model"
	"lostfound/internal/store"
)

// parseID extracts a numeric path parameter from the request.
func parseID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}

type itemRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	LocationLost string `json:"location_lost"`
	DateLost     string `json:"date_lost"`
}

func (req itemRequest) params() (store.ItemParams, error) {
	p := store.ItemParams{
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		Category:     strings.TrimSpace(req.Category),
		LocationLost: strings.TrimSpace(req.LocationLost),
		DateLost:     strings.TrimSpace(req.DateLost),
	}
	if p.Name == "" {
		return p, errors.New("item name is required")
	}
	return p, nil
}

// ListItems returns all items, optionally filtered by ?status=.
func ListItems(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")
		if status != "" && !model.ValidItemStatus(status) {
			jsonError(w, http.StatusBadRequest, "invalid status filter")
			return
		}

		items, err := store.ListItems(r.Context(), db, status)
		if err != nil {
			slog.Error("failed to list items", "error", err)
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}

		jsonResponse(w, http.StatusOK, items)
	}
}

// GetItem returns a single item by ID.
func GetItem(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid item ID")
			return
		}

		item, err := store.GetItem(r.Context(), db, id)
		if err != nil {
			slog.Error("failed to get item", "id", id, "error", err)
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if item == nil {
			jsonError(w, http.StatusNotFound, "item not found")
			return
		}

		jsonResponse(w, http.StatusOK, item)
	}
}

// CreateItem registers a new found item.
func CreateItem(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r.Context())

		var req itemRequest
		if err := decodeJSON(r, &req); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		params, err := req.params()
		if err != nil {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}

		item, err := store.CreateItem(r.Context(), db, params, claims.AdminID)
		if err != nil {
			slog.Error("failed to create item", "error", err)
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}

		jsonResponse(w, http.StatusCreated, item)
	}
}

// UpdateItem edits an item's details. Status is managed by claim
// resolution, not by this endpoint.
func UpdateItem(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r.Context())

		id, err := parseID(r, "id")
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid item ID")
			return
		}

		var req itemRequest
		if err := decodeJSON(r, &req); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		params, err := req.params()
		if err != nil {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := store.UpdateItem(r.Context(), db, id, params, claims.AdminID); err != nil {
			if errors.Is(err, store.ErrItemNotFound) {
				jsonError(w, http.StatusNotFound, "item not found")
				return
			}
			slog.Error("failed to update item", "id", id, "error", err)
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}

		item, err := store.GetItem(r.Context(), db, id)
		if err != nil {
			slog.Error("failed to get item", "id", id, "error", err)
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}

		jsonResponse(w, http.StatusOK, item)
	}
}

// DeleteItem removes an item and its claims.
func DeleteItem(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r.Context())

		id, err := parseID(r, "id")
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid item ID")
			return
		}

		if err := store.DeleteItem(r.Context(), db, id, claims.AdminID); err != nil {
			if errors.Is(err, store.ErrItemNotFound) {
				jsonError(w, http.StatusNotFound, "item not found")
				return
			}
			slog.Error("failed to delete item", "id", id, "error", err)
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}

		jsonResponse(w, http.StatusNoContent, nil)
	}
}

// UploadItemPhoto stores a downscaled photo for an item.
func UploadItemPhoto(db *sql.DB, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid item ID")
			return
		}

		item, err := store.GetItem(r.Context(), db, id)
		if err != nil {
			slog.Error("failed to get item", "id", id, "error", err)
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if item == nil {
			jsonError(w, http.StatusNotFound, "item not found")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			jsonError(w, http.StatusBadRequest, "photo too large or malformed request")
			return
		}

		file, _, err := r.FormFile("photo")
		if err != nil {
			jsonError(w, http.StatusBadRequest, "missing photo field")
			return
		}
		defer file.Close()

		result, err := imaging.ProcessPhoto(file)
		if err != nil {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := store.SetItemPhoto(r.Context(), db, id, result.Data, result.MIME); err != nil {
			slog.Error("failed to store photo", "id", id, "error", err)
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}

		jsonResponse(w, http.StatusNoContent, nil)
	}
}

// GetItemPhoto serves an item's photo.
func GetItemPhoto(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid item ID")
			return
		}

		photo, mime, err := store.GetItemPhoto(r.Context(), db, id)
		if err != nil {
			slog.Error("failed to get photo", "id", id, "error", err)
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if photo == nil {
			jsonError(w, http.StatusNotFound, "photo not found")
			return
		}

		w.Header().Set("Content-Type", mime)
		w.Write(photo)
	}
}
