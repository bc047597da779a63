package api

import (
	"database/sql"
	"net/http"

	"lostfound/internal/config"
)

// NewRouter builds the JSON API router. Login and claim submission are
// public; everything else requires a valid admin token.
func NewRouter(db *sql.DB, jwtSecret string, cfg config.Config) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", Login(db, jwtSecret))
	mux.HandleFunc("GET /api/items", ListItems(db))
	mux.HandleFunc("GET /api/items/{id}", GetItem(db))
	mux.HandleFunc("GET /api/items/{id}/photo", GetItemPhoto(db))
	mux.HandleFunc("POST /api/items/{id}/claims", SubmitClaim(db, cfg.Uploads.MaxProofBytes()))

	authed := http.NewServeMux()
	authed.HandleFunc("POST /api/auth/logout", Logout(db))
	authed.HandleFunc("PUT /api/auth/password", ChangePassword(db))
	authed.HandleFunc("POST /api/items", CreateItem(db))
	authed.HandleFunc("PUT /api/items/{id}", UpdateItem(db))
	authed.HandleFunc("DELETE /api/items/{id}", DeleteItem(db))
	authed.HandleFunc("PUT /api/items/{id}/photo", UploadItemPhoto(db, cfg.Uploads.MaxPhotoBytes()))
	authed.HandleFunc("GET /api/claims", ListClaims(db))
	authed.HandleFunc("GET /api/claims/{id}", GetClaim(db))
	authed.HandleFunc("GET /api/claims/{id}/proof", GetClaimProof(db))
	authed.HandleFunc("POST /api/claims/{id}/resolve", ResolveClaim(db))
	authed.HandleFunc("GET /api/audit", ListAuditRecords(db))

	mux.Handle("/api/", AuthMiddleware(jwtSecret, db)(authed))

	return mux
}
