package biblio

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/biblio2ie/biblio/core/handler"
	"github.com/biblio2ie/biblio/core/response"
	"github.com/biblio2ie/biblio/core/session"
	"github.com/biblio2ie/biblio/middleware"
	"github.com/biblio2ie/biblio/pkg/notify"
)

//go:embed templates
var templateFS embed.FS

//go:embed assets
var assetFS embed.FS

const (
	liveURL      = "/session/live"
	defaultCover = "/static/placeholder-book.svg"
)

// view is the data every page template receives.
type view struct {
	AppName string
	Title   string
	LiveURL string
	Session session.Snapshot
	Notice  notify.Notification
	Errors  map[string]string
	Data    any
}

var funcs = template.FuncMap{
	"banner": func(note notify.Notification) (template.HTML, error) {
		return templ.ToGoHTML(context.Background(), notify.Banner(note))
	},
	"cover": func(url string) string {
		if strings.TrimSpace(url) == "" {
			return defaultCover
		}
		return url
	},
	"date":     formatDate("02/01/2006"),
	"datetime": func(t *time.Time) string { return t.Local().Format("02/01/2006 à 15:04") },
	"stars": func(n int) string {
		n = min(max(n, 0), 5)
		return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
	},
}

// formatDate renders backend timestamps (RFC 3339 or plain dates).
func formatDate(layout string) func(string) string {
	return func(raw string) string {
		if raw == "" {
			return ""
		}
		for _, in := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", time.DateOnly} {
			if t, err := time.Parse(in, raw); err == nil {
				return t.Format(layout)
			}
		}
		return raw
	}
}

// parsePages builds one template set per page, each layered on the layout.
func parsePages() (map[string]*template.Template, error) {
	layout, err := template.New("biblio").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		t, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		pages[strings.TrimSuffix(path.Base(file), ".html")] = t
	}
	return pages, nil
}

// render fills the shared page fields and renders name inside the layout.
// A notification queued by the previous request wins over v.Notice only
// when v has none.
func (a *App) render(ctx *Context, name string, status int, v view) handler.Response {
	t, ok := a.pages[name]
	if !ok {
		return response.Error(fmt.Errorf("%w: %s", ErrUnknownPage, name))
	}

	v.AppName = a.config.AppName
	v.LiveURL = liveURL
	if store, ok := middleware.GetStore(ctx); ok {
		v.Session = store.Read()
	}

	return func(w http.ResponseWriter, r *http.Request) error {
		if note, ok := a.notifier.Pop(w, r); ok && v.Notice.IsZero() {
			v.Notice = note
		}
		return response.TemplateNameWithStatus(t, "layout", v, status)(w, r)
	}
}

func (a *App) page(ctx *Context, name, title string, data any) handler.Response {
	return a.render(ctx, name, http.StatusOK, view{Title: title, Data: data})
}
