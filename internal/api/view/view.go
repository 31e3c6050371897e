// Package view renders the dashboard's HTML pages. Templates are embedded
// into the binary; each page is parsed together with the shared layout, which
// draws the navbar and sidebar for authenticated sessions.
package view

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ifds/dashboard/internal/core/domain"
	"github.com/ifds/dashboard/internal/core/policy"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Data is the envelope every page is rendered with.
type Data struct {
	Title   string
	Active  string
	Session domain.Session
	Menu    []policy.MenuItem
	Flashes []domain.Flash
	// Error is an inline banner: a form validation failure or a failed load.
	Error   string
	Content any
}

var pageNames = []string{
	"login.html",
	"register.html",
	"dashboard.html",
	"inventory.html",
	"transactions.html",
	"fraud_alerts.html",
	"fraud_alert_detail.html",
	"reports.html",
	"error.html",
}

// Renderer implements echo.Renderer over the embedded template set.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page against the shared layout.
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"pretty":   prettyJSON,
		"humanize": humanize,
		"upper":    strings.ToUpper,
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.html").
			Funcs(funcs).
			ParseFS(templatesFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages}, nil
}

// Render satisfies echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// prettyJSON re-indents a raw payload without touching its content, so what
// the page shows is byte-for-byte what the download produces.
func prettyJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

// humanize turns identifier-ish strings into labels: "stock_in" → "stock in".
func humanize(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}
