package middleware

import (
	"io"
	"log/slog"

	"github.com/biblio2ie/biblio/core/handler"
	"github.com/biblio2ie/biblio/core/logger"
	"github.com/biblio2ie/biblio/core/session"
)

type (
	storeKey    struct{}
	clientIDKey struct{}
)

// StoreLoader resolves the session store of the client behind a request.
// sessiontransport.Cookie implements it.
type StoreLoader interface {
	Load(ctx handler.Context) (*session.Store, string, error)
}

// SessionConfig configures the session middleware.
type SessionConfig[C handler.Context] struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx C) bool
	// Transport resolves the client's store (required)
	Transport StoreLoader
	// Logger for structured logging (default: slog with io.Discard)
	Logger *slog.Logger
}

// Session loads the client's store and puts it in context. Handlers reach it
// with GetStore; the Guard middleware depends on it.
//
//	r.Use(middleware.Session[*app.Context](transport))
func Session[C handler.Context](transport StoreLoader) handler.Middleware[C] {
	return SessionWithConfig(SessionConfig[C]{Transport: transport})
}

// SessionWithConfig creates a session middleware with custom configuration.
//
// When the transport fails the request continues with a throwaway
// memory-only store, so the visitor is treated as anonymous rather than
// shown an error page.
func SessionWithConfig[C handler.Context](cfg SessionConfig[C]) handler.Middleware[C] {
	if cfg.Transport == nil {
		panic("session middleware: transport is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			store, clientID, err := cfg.Transport.Load(ctx)
			if err != nil {
				cfg.Logger.ErrorContext(ctx, "session middleware: failed to load store",
					logger.Component("session"),
					logger.Error(err),
				)
				store, clientID = session.NewStore("", nil), ""
			}

			ctx.SetValue(storeKey{}, store)
			ctx.SetValue(clientIDKey{}, clientID)
			return next(ctx)
		}
	}
}

// GetStore retrieves the client's store from context.
func GetStore(ctx handler.Context) (*session.Store, bool) {
	if ctx == nil {
		return nil, false
	}
	s, ok := ctx.Value(storeKey{}).(*session.Store)
	return s, ok && s != nil
}

// MustGetStore retrieves the store or panics. Use it only behind Session.
func MustGetStore(ctx handler.Context) *session.Store {
	s, ok := GetStore(ctx)
	if !ok {
		panic("session store not found in context")
	}
	return s
}

// GetClientID retrieves the client id resolved by Session.
func GetClientID(ctx handler.Context) (string, bool) {
	id, ok := ctx.Value(clientIDKey{}).(string)
	return id, ok && id != ""
}
