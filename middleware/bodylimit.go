package middleware

import (
	"net/http"

	"github.com/biblio2ie/biblio/core/handler"
	"github.com/biblio2ie/biblio/core/response"
)

// DefaultBodyLimit caps form submissions.
const DefaultBodyLimit int64 = 1 << 20

// BodyLimit rejects requests whose declared body exceeds maxSize with 413
// and caps the reader for bodies without a Content-Length. A non-positive
// maxSize means DefaultBodyLimit.
func BodyLimit[C handler.Context](maxSize int64) handler.Middleware[C] {
	if maxSize <= 0 {
		maxSize = DefaultBodyLimit
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			req := ctx.Request()
			if req.ContentLength > maxSize {
				return response.Error(response.ErrRequestEntityTooLarge)
			}
			if req.Body != nil && req.Body != http.NoBody {
				req.Body = http.MaxBytesReader(ctx.ResponseWriter(), req.Body, maxSize)
			}
			return next(ctx)
		}
	}
}
