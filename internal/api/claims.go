package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"lostfound/internal/imaging"
	"lostfound/internal/model"
	"lostfound/internal/store"
)

// SubmitClaim accepts a public ownership claim for an item. The request is
// multipart form data so a proof file can ride along.
func SubmitClaim(db *sql.DB, maxProofBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := parseID(r, "id")
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid item ID")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxProofBytes+64<<10)
		if err := r.ParseMultipartForm(maxProofBytes); err != nil {
			jsonError(w, http.StatusBadRequest, "proof too large or malformed request")
			return
		}

		name := strings.TrimSpace(r.FormValue("claimant_name"))
		campusID := strings.TrimSpace(r.FormValue("campus_id"))
		course := strings.TrimSpace(r.FormValue("course"))
		message := strings.TrimSpace(r.FormValue("message"))
		if name == "" || campusID == "" {
			jsonError(w, http.StatusBadRequest, "claimant name and campus ID are required")
			return
		}

		var proof []byte
		var proofMime string
		if file, _, err := r.FormFile("proof"); err == nil {
			defer file.Close()
			result, err := imaging.ProcessProof(file)
			if err != nil {
				jsonError(w, http.StatusBadRequest, err.Error())
				return
			}
			proof = result.Data
			proofMime = result.MIME
		}

		claim, err := store.CreateClaim(r.Context(), db, itemID, name, campusID, course, message, proof, proofMime)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrItemNotFound):
				jsonError(w, http.StatusNotFound, "item not found")
			case errors.Is(err, store.ErrItemNotClaimable):
				jsonError(w, http.StatusConflict, "item is no longer available for claims")
			default:
				slog.Error("failed to create claim", "item_id", itemID, "error", err)
				jsonError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		jsonResponse(w, http.StatusCreated, claim)
	}
}

// ListClaims returns claims, optionally filtered by ?status=.
func ListClaims(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")
		if status != "" && !model.ValidClaimStatus(status) {
			jsonError(w, http.StatusBadRequest, "invalid status filter")
			return
		}

		claims, err := store.ListClaims(r.Context(), db, status)
		if err != nil {
			slog.Error("failed to list claims", "error", err)
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}

		jsonResponse(w, http.StatusOK, claims)
	}
}

// GetClaim returns a single claim by ID.
func GetClaim(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid claim ID")
			return
		}

		claim, err := store.GetClaim(r.Context(), db, id)
		if err != nil {
			slog.Error("failed to get claim", "id", id, "error", err)
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if claim == nil {
			jsonError(w, http.StatusNotFound, "claim not found")
			return
		}

		jsonResponse(w, http.StatusOK, claim)
	}
}

// GetClaimProof serves the proof file attached to a claim.
func GetClaimProof(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid claim ID")
			return
		}

		proof, mime, err := store.GetClaimProof(r.Context(), db, id)
		if err != nil {
			slog.Error("failed to get proof", "id", id, "error", err)
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if proof == nil {
			jsonError(w, http.StatusNotFound, "proof not found")
			return
		}

		w.Header().Set("Content-Type", mime)
		w.Write(proof)
	}
}

type resolveRequest struct {
	Decision string `json:"decision"`
}

// ResolveClaim approves or rejects a pending claim.
func ResolveClaim(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r.Context())

		id, err := parseID(r, "id")
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid claim ID")
			return
		}

		var req resolveRequest
		if err := decodeJSON(r, &req); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		resolution, err := store.ResolveClaim(r.Context(), db, id, store.Decision(req.Decision), claims.AdminID)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrClaimNotFound):
				jsonError(w, http.StatusNotFound, "claim not found")
			case errors.Is(err, store.ErrAlreadyResolved):
				jsonError(w, http.StatusConflict, "claim has already been resolved")
			case errors.Is(err, store.ErrInvalidDecision):
				jsonError(w, http.StatusBadRequest, "decision must be approve or reject")
			default:
				slog.Error("failed to resolve claim", "id", id, "error", err)
				jsonError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		jsonResponse(w, http.StatusOK, resolution)
	}
}
