package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"lostfound/internal/auth"
	"lostfound/internal/model"
	"lostfound/internal/store"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	Admin *model.Admin `json:"admin"`
}

// Login authenticates an admin and returns a JWT.
func Login(db *sql.DB, jwtSecret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		admin, err := store.GetAdminByUsername(r.Context(), db, req.Username)
		if err != nil {
			slog.Error("failed to look up admin", "error", err)
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if admin == nil || admin.DeletedAt != nil {
			jsonError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
			jsonError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		token, err := auth.GenerateToken(jwtSecret, admin.ID, admin.Username, admin.Name)
		if err != nil {
			slog.Error("failed to generate token", "error", err)
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}

		jsonResponse(w, http.StatusOK, loginResponse{Token: token, Admin: admin})
	}
}

// Logout revokes the current token so it cannot be reused.
func Logout(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r.Context())
		if claims == nil || claims.ID == "" {
			jsonResponse(w, http.StatusNoContent, nil)
			return
		}

		expiresAt := time.Now().Add(auth.TokenExpiry)
		if claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}

		if err := store.RevokeToken(r.Context(), db, claims.ID, expiresAt); err != nil {
			slog.Error("failed to revoke token", "error", err)
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}

		jsonResponse(w, http.StatusNoContent, nil)
	}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword updates the authenticated admin's password.
func ChangePassword(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r.Context())

		var req changePasswordRequest
		if err := decodeJSON(r, &req); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := model.ValidatePassword(req.NewPassword); err != nil {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}

		admin, err := store.GetAdmin(r.Context(), db, claims.AdminID)
		if err != nil {
			slog.Error("failed to look up admin", "error", err)
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if admin == nil {
			jsonError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.CurrentPassword)); err != nil {
			jsonError(w, http.StatusUnauthorized, "current password is incorrect")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			slog.Error("failed to hash password", "error", err)
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if err := store.UpdateAdminPassword(r.Context(), db, admin.ID, string(hash)); err != nil {
			slog.Error("failed to update password", "error", err)
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}

		jsonResponse(w, http.StatusNoContent, nil)
	}
}
