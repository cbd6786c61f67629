package response

import (
	"net/http"

	"github.com/biblio2ie/biblio/core/handler"
)

// WithHeaders sets headers before rendering resp.
func WithHeaders(resp handler.Response, headers map[string]string) handler.Response {
	if resp == nil || len(headers) == 0 {
		return resp
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		for k, v := range headers {
			w.Header().Set(k, v)
		}
		return resp(w, r)
	}
}

// WithCookie sets cookie before rendering resp.
func WithCookie(resp handler.Response, cookie *http.Cookie) handler.Response {
	if resp == nil || cookie == nil {
		return resp
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		http.SetCookie(w, cookie)
		return resp(w, r)
	}
}

// NoStore marks resp as never cacheable. Pages that depend on the session
// state use it so browsers and proxies do not replay a stale view.
func NoStore(resp handler.Response) handler.Response {
	return WithHeaders(resp, map[string]string{
		"Cache-Control": "no-store, no-cache, must-revalidate",
		"Pragma":        "no-cache",
		"Expires":       "0",
	})
}
