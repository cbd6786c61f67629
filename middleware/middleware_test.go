package middleware_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biblio2ie/biblio/core/handler"
	"github.com/biblio2ie/biblio/core/logger"
	"github.com/biblio2ie/biblio/core/response"
	"github.com/biblio2ie/biblio/core/router"
	"github.com/biblio2ie/biblio/middleware"
)

func ok(ctx *router.Context) handler.Response {
	return response.String("ok")
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates uuid", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Use(middleware.RequestID[*router.Context]())

		var captured string
		r.Get("/test", func(ctx *router.Context) handler.Response {
			id, found := middleware.GetRequestID(ctx)
			assert.True(t, found)
			captured = id
			return response.NoContent()
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		_, err := uuid.Parse(captured)
		require.NoError(t, err)
		assert.Equal(t, captured, w.Header().Get("X-Request-ID"))
	})

	t.Run("keeps a valid incoming id only", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Use(middleware.RequestIDWithConfig[*router.Context](middleware.RequestIDConfig{UseExisting: true}))
		r.Get("/", ok)

		incoming := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", incoming)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, incoming, w.Header().Get("X-Request-ID"))

		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "evil\nline")
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.NotEqual(t, "evil\nline", w.Header().Get("X-Request-ID"))
	})
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Use(middleware.ClientIP[*router.Context]())

	var ip string
	r.Get("/", func(ctx *router.Context) handler.Response {
		ip, _ = middleware.GetClientIP(ctx)
		return response.NoContent()
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "203.0.113.9", ip)
}

func TestLogging(t *testing.T) {
	t.Parallel()

	t.Run("success at info with request id", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		r := router.New[*router.Context]()
		r.Use(
			middleware.RequestID[*router.Context](),
			middleware.LoggingWithLogger[*router.Context](logger.NewWithWriter(&buf, logger.Config{Level: "debug"})),
		)
		r.Get("/livres", ok)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/livres?titre=x", nil))

		out := buf.String()
		assert.Contains(t, out, "level=INFO")
		assert.Contains(t, out, "status_code=200")
		assert.Contains(t, out, "path=/livres")
		assert.Contains(t, out, "request_id="+w.Header().Get("X-Request-ID"))
	})

	t.Run("error status from returned error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		r := router.New[*router.Context]()
		r.Use(middleware.LoggingWithLogger[*router.Context](logger.NewWithWriter(&buf, logger.Config{})))
		r.Get("/boom", func(*router.Context) handler.Response {
			return response.Error(errors.New("backend exploded"))
		})
		r.Get("/missing", func(*router.Context) handler.Response {
			return response.Error(response.ErrNotFound)
		})

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], "level=ERROR")
		assert.Contains(t, lines[0], "status_code=500")
		assert.Contains(t, lines[0], "backend exploded")
		assert.Contains(t, lines[1], "level=WARN")
		assert.Contains(t, lines[1], "status_code=404")
	})
}

func TestBodyLimit(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Use(middleware.BodyLimit[*router.Context](8))
	r.Post("/", func(ctx *router.Context) handler.Response {
		if err := ctx.Request().ParseForm(); err != nil {
			return response.Error(response.ErrRequestEntityTooLarge.WithError(err))
		}
		return response.NoContent()
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=1")))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=1234567890")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Use(middleware.SecurityHeaders[*router.Context]())
	r.Get("/", ok)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "connect-src 'self' ws: wss:")
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))

	dev := middleware.LibrarySecurity
	dev.IsDevelopment = true
	r = router.New[*router.Context]()
	r.Use(middleware.SecurityHeadersWithConfig[*router.Context](dev))
	r.Get("/", ok)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}
