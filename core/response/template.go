package response

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/biblio2ie/biblio/core/handler"
)

// ErrNilTemplate is returned when a template response has no template.
var ErrNilTemplate = errors.New("template is nil")

// Template renders tmpl with 200 OK. Output is buffered so a failing
// template writes nothing.
func Template(tmpl *template.Template, data any) handler.Response {
	return TemplateNameWithStatus(tmpl, "", data, http.StatusOK)
}

// TemplateName renders the named template from a collection with 200 OK.
func TemplateName(tmpl *template.Template, name string, data any) handler.Response {
	return TemplateNameWithStatus(tmpl, name, data, http.StatusOK)
}

// TemplateNameWithStatus renders the named template with a custom status.
// An empty name executes tmpl itself.
func TemplateNameWithStatus(tmpl *template.Template, name string, data any, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if tmpl == nil {
			return ErrNilTemplate
		}

		var buf bytes.Buffer
		var err error
		if name != "" {
			err = tmpl.ExecuteTemplate(&buf, name, data)
		} else {
			err = tmpl.Execute(&buf, data)
		}
		if err != nil {
			return err
		}

		return write(w, "text/html; charset=utf-8", status, buf.Bytes())
	}
}
