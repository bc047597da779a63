package web

import (
	"database/sql"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"lostfound/internal/auth"
	"lostfound/internal/config"
	webembed "lostfound/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"itemStatusName": func(status string) string {
			switch status {
			case "lost":
				return "Unclaimed"
			case "claimed":
				return "Returned to owner"
			default:
				return status
			}
		},
		"claimStatusName": func(status string) string {
			switch status {
			case "pending":
				return "Pending review"
			case "approved":
				return "Approved"
			case "rejected":
				return "Rejected"
			default:
				return status
			}
		},
		"actionName": func(actionType string) string {
			switch actionType {
			case "item_added":
				return "Item added"
			case "item_updated":
				return "Item updated"
			case "item_deleted":
				return "Item deleted"
			case "item_claimed":
				return "Item claimed"
			case "claim_approved":
				return "Claim approved"
			case "claim_rejected":
				return "Claim rejected"
			default:
				return actionType
			}
		},
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"index.html",
		"item.html",
		"claim_form.html",
		"claim_success.html",
		"login.html",
		"dashboard.html",
		"items.html",
		"item_edit.html",
		"claims.html",
		"claim_detail.html",
		"audit.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title   string
	Admin   *auth.Claims
	Error   string
	Success string
}

// Server holds all dependencies for page handlers.
type Server struct {
	DB        *sql.DB
	Templates *Templates
	JWTSecret string
	Config    config.Config
}
