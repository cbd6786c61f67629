package sessiontransport

import (
	"github.com/biblio2ie/biblio/core/cookie"
	"github.com/biblio2ie/biblio/core/session"
)

// CookieConfig provides environment-based configuration for the cookie transport.
type CookieConfig struct {
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"__biblio_client"`
	// MaxAge is the client cookie lifetime in seconds.
	MaxAge int `env:"SESSION_COOKIE_MAX_AGE" envDefault:"31536000"`
}

// NewCookieFromConfig creates a cookie transport from configuration.
func NewCookieFromConfig(cfg CookieConfig, registry *session.Registry, cookies *cookie.Manager) *Cookie {
	return NewCookie(registry, cookies,
		WithCookieName(cfg.CookieName),
		WithCookieMaxAge(cfg.MaxAge),
	)
}
