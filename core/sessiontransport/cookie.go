package sessiontransport

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/biblio2ie/biblio/core/cookie"
	"github.com/biblio2ie/biblio/core/handler"
	"github.com/biblio2ie/biblio/core/session"
)

// DefaultCookieName names the client identity cookie.
const DefaultCookieName = "__biblio_client"

// Cookie maps a request to its client's session store through a signed
// client-id cookie. The cookie carries only a random identifier; the token
// and user stay on the server.
type Cookie struct {
	registry *session.Registry
	cookies  *cookie.Manager
	name     string
	maxAge   int
}

// CookieOption configures the cookie transport.
type CookieOption func(*Cookie)

// WithCookieName overrides DefaultCookieName.
func WithCookieName(name string) CookieOption {
	return func(c *Cookie) {
		if name != "" {
			c.name = name
		}
	}
}

// WithCookieMaxAge sets the cookie lifetime in seconds. Zero makes it a
// browser-session cookie.
func WithCookieMaxAge(seconds int) CookieOption {
	return func(c *Cookie) {
		if seconds >= 0 {
			c.maxAge = seconds
		}
	}
}

// NewCookie creates a cookie transport over registry.
func NewCookie(registry *session.Registry, cookies *cookie.Manager, opts ...CookieOption) *Cookie {
	c := &Cookie{
		registry: registry,
		cookies:  cookies,
		name:     DefaultCookieName,
		maxAge:   365 * 24 * 60 * 60,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the cookie name.
func (c *Cookie) Name() string { return c.name }

// ClientID extracts and verifies the client id without issuing a new one.
func (c *Cookie) ClientID(r *http.Request) (string, error) {
	raw, err := c.cookies.GetSigned(r, c.name)
	if err != nil {
		if errors.Is(err, cookie.ErrCookieNotFound) {
			return "", ErrNoClientID
		}
		return "", errors.Join(ErrInvalidClientID, err)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", errors.Join(ErrInvalidClientID, err)
	}
	return id.String(), nil
}

// Lookup returns the store of an already identified client.
func (c *Cookie) Lookup(r *http.Request) (*session.Store, string, error) {
	id, err := c.ClientID(r)
	if err != nil {
		return nil, "", err
	}
	return c.registry.Get(id), id, nil
}

// Load returns the client's store. Requests without a valid cookie get a
// fresh client id, written to the response, and an empty store.
func (c *Cookie) Load(ctx handler.Context) (*session.Store, string, error) {
	if store, id, err := c.Lookup(ctx.Request()); err == nil {
		return store, id, nil
	}

	id := uuid.NewString()
	if err := c.issue(ctx.ResponseWriter(), id); err != nil {
		return nil, "", err
	}
	return c.registry.Get(id), id, nil
}

// Authenticate signs the client in under a new client id. The token and user
// go into a fresh store, the new id is written to the response, and the store
// behind the previous id is logged out and evicted. A client id known before
// sign-in never carries the authenticated state.
func (c *Cookie) Authenticate(ctx handler.Context, token string, user session.User) (*session.Store, string, error) {
	id := uuid.NewString()
	store := c.registry.Get(id)
	if err := store.Login(token, user); err != nil {
		c.registry.Evict(id)
		return nil, "", err
	}
	if err := c.issue(ctx.ResponseWriter(), id); err != nil {
		store.Logout()
		c.registry.Evict(id)
		return nil, "", err
	}

	if prev, err := c.ClientID(ctx.Request()); err == nil {
		old := c.registry.Get(prev)
		old.Logout()
		c.registry.Evict(prev)
	}
	return store, id, nil
}

func (c *Cookie) issue(w http.ResponseWriter, id string) error {
	return c.cookies.SetSigned(w, c.name, id,
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
		cookie.WithMaxAge(c.maxAge),
	)
}
