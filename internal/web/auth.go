package web

import (
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"lostfound/internal/auth"
	"lostfound/internal/store"
)

// LoginPage handles GET /admin/login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &PageData{Title: "Admin login"})
}

// LoginSubmit handles POST /admin/login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	if username == "" || password == "" {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Admin login",
			Error: "Enter a username and password.",
		})
		return
	}

	admin, err := store.GetAdminByUsername(r.Context(), s.DB, username)
	if err != nil || admin == nil || admin.DeletedAt != nil {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Admin login",
			Error: "Incorrect username or password.",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Admin login",
			Error: "Incorrect username or password.",
		})
		return
	}

	token, err := auth.GenerateToken(s.JWTSecret, admin.ID, admin.Username, admin.Name)
	if err != nil {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Admin login",
			Error: "Login failed, try again.",
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.TokenExpiry.Seconds()),
	})

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Logout handles POST /admin/logout. The session token is revoked so it
// cannot be replayed after the cookie is cleared.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		if claims, err := auth.ValidateToken(s.JWTSecret, cookie.Value); err == nil && claims.ID != "" {
			expiresAt := time.Now().Add(auth.TokenExpiry)
			if claims.ExpiresAt != nil {
				expiresAt = claims.ExpiresAt.Time
			}
			store.RevokeToken(r.Context(), s.DB, claims.ID, expiresAt)
		}
	}

	clearAuthCookie(w)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}
