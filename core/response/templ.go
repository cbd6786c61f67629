package response

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/a-h/templ"

	"github.com/biblio2ie/biblio/core/handler"
)

// Templ renders a templ component with 200 OK using the request context.
func Templ(component templ.Component) handler.Response {
	return TemplWithStatus(component, http.StatusOK)
}

// TemplWithStatus renders a templ component with a custom status code.
func TemplWithStatus(component templ.Component, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if component == nil {
			return fmt.Errorf("templ component is nil")
		}
		var buf bytes.Buffer
		if err := component.Render(r.Context(), &buf); err != nil {
			return fmt.Errorf("templ component render error: %w", err)
		}
		return write(w, "text/html; charset=utf-8", status, buf.Bytes())
	}
}
