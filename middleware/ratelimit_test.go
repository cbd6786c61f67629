package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biblio2ie/biblio/core/handler"
	"github.com/biblio2ie/biblio/core/router"
	"github.com/biblio2ie/biblio/middleware"
	"github.com/biblio2ie/biblio/pkg/ratelimiter"
)

func limited(t *testing.T, capacity int, setHeaders bool) http.Handler {
	t.Helper()
	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
		Capacity:       capacity,
		RefillRate:     1,
		RefillInterval: time.Minute,
	})
	require.NoError(t, err)

	r := router.New[*router.Context]()
	r.Use(middleware.RateLimit[*router.Context](middleware.RateLimitConfig{
		Limiter:    limiter,
		SetHeaders: setHeaders,
		KeyExtractor: func(ctx handler.Context) string {
			return ctx.Request().Header.Get("X-Client")
		},
	}))
	r.Post("/connexion", ok)
	return r
}

func hit(h http.Handler, client string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/connexion", nil)
	req.Header.Set("X-Client", client)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	t.Run("refuses over capacity", func(t *testing.T) {
		t.Parallel()
		h := limited(t, 2, false)

		assert.Equal(t, http.StatusOK, hit(h, "a").Code)
		assert.Equal(t, http.StatusOK, hit(h, "a").Code)

		w := hit(h, "a")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))

		assert.Equal(t, http.StatusOK, hit(h, "b").Code, "keys are independent")
	})

	t.Run("headers", func(t *testing.T) {
		t.Parallel()
		h := limited(t, 3, true)

		w := hit(h, "a")
		assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
	})

	t.Run("requires a limiter", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			middleware.RateLimit[*router.Context](middleware.RateLimitConfig{})
		})
	})
}
