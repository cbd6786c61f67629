package middleware

import (
	"github.com/biblio2ie/biblio/core/handler"
	"github.com/biblio2ie/biblio/pkg/clientip"
)

type clientIPContextKey struct{}

// ClientIP resolves the client address once per request and stores it in
// context for logging.
func ClientIP[C handler.Context]() handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			ctx.SetValue(clientIPContextKey{}, clientip.GetIP(ctx.Request()))
			return next(ctx)
		}
	}
}

// GetClientIP retrieves the client IP address from the request context.
func GetClientIP(ctx handler.Context) (string, bool) {
	ip, ok := ctx.Value(clientIPContextKey{}).(string)
	return ip, ok
}
