package notify

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Banner renders note as an alert box, or nothing for a zero notification.
func Banner(note Notification) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if note.IsZero() {
			return nil
		}
		role := "status"
		if note.Kind == KindError {
			role = "alert"
		}
		html := `<div class="notification notification-` + templ.EscapeString(string(note.Kind)) +
			`" role="` + role + `"><strong>` + templ.EscapeString(note.Title) + `</strong>`
		if note.Description != "" {
			html += `<p>` + templ.EscapeString(note.Description) + `</p>`
		}
		html += `</div>`
		_, err := io.WriteString(w, html)
		return err
	})
}
