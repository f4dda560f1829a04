// Package web renders the portal's HTML pages from embedded templates.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"docportal/internal/model"
	"docportal/internal/view"
)

//go:embed templates/*.html
var files embed.FS

// Pages lists every renderable page name.
var Pages = []string{"login", "register", "dashboard", "document", "qa"}

// PageData is the binding passed to every page.
type PageData struct {
	Title          string
	State          view.State
	Error          string
	Fields         map[string]string
	Form           map[string]string
	Document       *model.Document
	Keyword        string
	KeywordResults *model.Page[model.Document]
	Snippets       *model.QuestionResponse
	DocumentTypes  []model.DocumentType
	Roles          []model.Role
}

// Engine implements fiber.Views over the embedded templates.
type Engine struct {
	pages map[string]*template.Template
}

// New returns an engine; templates are parsed by Load.
func New() *Engine {
	return &Engine{}
}

var funcs = template.FuncMap{
	"date": func(t model.Timestamp) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02 15:04")
	},
	"dateInput": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02")
	},
	"size": func(n int64) string {
		switch {
		case n >= 1<<20:
			return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
		case n >= 1<<10:
			return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
		default:
			return fmt.Sprintf("%d B", n)
		}
	},
	"inc":   func(i int) int { return i + 1 },
	"dec":   func(i int) int { return i - 1 },
	"score": func(f float64) string { return fmt.Sprintf("%.0f%%", f*100) },
}

// Load parses the layout together with each page.
func (e *Engine) Load() error {
	pages := make(map[string]*template.Template, len(Pages))
	for _, name := range Pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = t
	}
	e.pages = pages
	return nil
}

// Render writes the named page wrapped in the shared layout.
func (e *Engine) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	t, ok := e.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
