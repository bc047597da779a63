package web

import (
	"database/sql"
	"net/http"

	"lostfound/internal/config"
	webembed "lostfound/web"
)

// NewRouter creates the web page router with all page routes registered.
// Student-facing pages are public; everything under /admin (except the
// login page) requires a session cookie.
func NewRouter(db *sql.DB, jwtSecret string, cfg config.Config) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:        db,
		Templates: templates,
		JWTSecret: jwtSecret,
		Config:    cfg,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(jwtSecret, db)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public portal.
	mux.HandleFunc("GET /{$}", s.IndexPage)
	mux.HandleFunc("GET /items/{id}", s.ItemPage)
	mux.HandleFunc("GET /items/{id}/photo", s.ItemPhoto)
	mux.HandleFunc("GET /items/{id}/claim", s.ClaimFormPage)
	mux.HandleFunc("POST /items/{id}/claim", s.ClaimSubmit)
	mux.HandleFunc("GET /claims/success", s.ClaimSuccessPage)

	// Admin login.
	mux.HandleFunc("GET /admin/login", s.LoginPage)
	mux.HandleFunc("POST /admin/login", s.LoginSubmit)
	mux.HandleFunc("POST /admin/logout", s.Logout)

	// Admin pages.
	mux.Handle("GET /admin", cookieAuth(http.HandlerFunc(s.Dashboard)))
	mux.Handle("GET /admin/items", cookieAuth(http.HandlerFunc(s.AdminItemsPage)))
	mux.Handle("POST /admin/items", cookieAuth(http.HandlerFunc(s.ItemCreateSubmit)))
	mux.Handle("GET /admin/items/{id}", cookieAuth(http.HandlerFunc(s.ItemEditPage)))
	mux.Handle("POST /admin/items/{id}", cookieAuth(http.HandlerFunc(s.ItemUpdateSubmit)))
	mux.Handle("POST /admin/items/{id}/delete", cookieAuth(http.HandlerFunc(s.ItemDeleteSubmit)))
	mux.Handle("POST /admin/items/{id}/claimed", cookieAuth(http.HandlerFunc(s.ItemMarkClaimedSubmit)))
	mux.Handle("POST /admin/items/{id}/photo", cookieAuth(http.HandlerFunc(s.ItemPhotoSubmit)))
	mux.Handle("GET /admin/claims", cookieAuth(http.HandlerFunc(s.ClaimsPage)))
	mux.Handle("GET /admin/claims/{id}", cookieAuth(http.HandlerFunc(s.ClaimDetailPage)))
	mux.Handle("GET /admin/claims/{id}/proof", cookieAuth(http.HandlerFunc(s.ClaimProof)))
	mux.Handle("POST /admin/claims/{id}/approve", cookieAuth(http.HandlerFunc(s.ClaimApproveSubmit)))
	mux.Handle("POST /admin/claims/{id}/reject", cookieAuth(http.HandlerFunc(s.ClaimRejectSubmit)))
	mux.Handle("GET /admin/audit", cookieAuth(http.HandlerFunc(s.AuditPage)))

	return mux, nil
}
