package notify

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/biblio2ie/biblio/core/cookie"
	"github.com/biblio2ie/biblio/core/logger"
)

// DefaultFlashKey names the flash cookie slot.
const DefaultFlashKey = "notice"

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notification is a titled message shown once.
type Notification struct {
	Kind        Kind   `json:"k"`
	Title       string `json:"t"`
	Description string `json:"d,omitempty"`
}

// IsZero reports whether there is nothing to show.
func (n Notification) IsZero() bool {
	return n.Title == "" && n.Description == ""
}

// Notifier stores notifications in encrypted flash cookies.
type Notifier struct {
	cookies *cookie.Manager
	key     string
	logger  *slog.Logger
}

type Option func(*Notifier)

func WithFlashKey(key string) Option {
	return func(n *Notifier) {
		if key != "" {
			n.key = key
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(n *Notifier) {
		if l != nil {
			n.logger = l
		}
	}
}

// New creates a Notifier. It panics when cookies is nil.
func New(cookies *cookie.Manager, opts ...Option) *Notifier {
	if cookies == nil {
		panic("notify: cookie manager is required")
	}
	n := &Notifier{cookies: cookies, key: DefaultFlashKey, logger: logger.Discard()}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Push queues note for the next page. A later Push in the same response
// replaces it.
func (n *Notifier) Push(w http.ResponseWriter, note Notification) error {
	if note.IsZero() {
		return nil
	}
	return n.cookies.SetFlash(w, n.key, note)
}

// Pop returns the pending notification and clears it. Unreadable cookies
// are dropped and reported as absent.
func (n *Notifier) Pop(w http.ResponseWriter, r *http.Request) (Notification, bool) {
	var note Notification
	err := n.cookies.GetFlash(w, r, n.key, &note)
	switch {
	case err == nil:
		return note, !note.IsZero()
	case errors.Is(err, cookie.ErrCookieNotFound):
		return Notification{}, false
	default:
		n.logger.WarnContext(r.Context(), "dropping unreadable notification",
			logger.Component("notify"),
			logger.Error(err),
		)
		n.cookies.DeleteFlash(w, n.key)
		return Notification{}, false
	}
}
