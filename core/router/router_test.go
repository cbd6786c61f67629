package router_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biblio2ie/biblio/core/handler"
	"github.com/biblio2ie/biblio/core/router"
)

type statusErr struct{ code int }

func (e statusErr) Error() string   { return http.StatusText(e.code) }
func (e statusErr) StatusCode() int { return e.code }

func text(s string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		_, err := w.Write([]byte(s))
		return err
	}
}

func serve(h http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestRouterImplementsHTTPHandler(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	var _ http.Handler = r
	assert.Empty(t, r.Routes())
}

func TestRouterMethods(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/books", func(*router.Context) handler.Response { return text("get") })
	r.Post("/books", func(*router.Context) handler.Response { return text("post") })
	r.Put("/books", func(*router.Context) handler.Response { return text("put") })
	r.Patch("/books", func(*router.Context) handler.Response { return text("patch") })
	r.Delete("/books", func(*router.Context) handler.Response { return text("delete") })

	for method, body := range map[string]string{
		http.MethodGet:    "get",
		http.MethodPost:   "post",
		http.MethodPut:    "put",
		http.MethodPatch:  "patch",
		http.MethodDelete: "delete",
	} {
		w := serve(r, method, "/books")
		assert.Equal(t, http.StatusOK, w.Code, method)
		assert.Equal(t, body, w.Body.String(), method)
	}
	assert.Len(t, r.Routes(), 5)
}

func TestRouterParams(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/books/{id}/reviews/{rid}", func(ctx *router.Context) handler.Response {
		return text(ctx.Param("id") + ":" + ctx.Param("rid") + ":" + ctx.Param("missing"))
	})

	w := serve(r, http.MethodGet, "/books/42/reviews/7")
	assert.Equal(t, "42:7:", w.Body.String())
}

func TestRouterExactMatch(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/", func(*router.Context) handler.Response { return text("home") })

	assert.Equal(t, "home", serve(r, http.MethodGet, "/").Body.String())
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/unknown").Code)
}

func TestRouterMethodNotAllowed(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/books", func(*router.Context) handler.Response { return text("ok") })

	w := serve(r, http.MethodDelete, "/books")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Header().Get("Allow"), http.MethodGet)
}

func TestRouterMiddlewareOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(name string) handler.Middleware[*router.Context] {
		return func(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] {
			return func(ctx *router.Context) handler.Response {
				order = append(order, name)
				return next(ctx)
			}
		}
	}

	r := router.New[*router.Context](router.WithMiddleware(mw("opt")))
	r.Use(mw("use"))
	r.With(mw("with")).Get("/x", func(*router.Context) handler.Response {
		order = append(order, "handler")
		return text("ok")
	})

	serve(r, http.MethodGet, "/x")
	assert.Equal(t, []string{"opt", "use", "with", "handler"}, order)
}

func TestRouterUseAfterRoutesPanics(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/", func(*router.Context) handler.Response { return text("ok") })
	assert.Panics(t, func() {
		r.Use(func(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] { return next })
	})
}

func TestRouterRoute(t *testing.T) {
	t.Parallel()

	blocked := func(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] {
		return func(*router.Context) handler.Response { return text("blocked") }
	}

	r := router.New[*router.Context]()
	r.Get("/public", func(*router.Context) handler.Response { return text("public") })
	r.Route("/admin", func(r router.Router[*router.Context]) {
		r.Use(blocked)
		r.Get("/", func(*router.Context) handler.Response { return text("index") })
		r.Get("/books", func(*router.Context) handler.Response { return text("books") })
	})

	assert.Equal(t, "public", serve(r, http.MethodGet, "/public").Body.String())
	assert.Equal(t, "blocked", serve(r, http.MethodGet, "/admin").Body.String())
	assert.Equal(t, "blocked", serve(r, http.MethodGet, "/admin/books").Body.String())

	var patterns []string
	for _, rt := range r.Routes() {
		patterns = append(patterns, rt.Pattern)
	}
	assert.ElementsMatch(t, []string{"/public", "/admin", "/admin/books"}, patterns)
}

func TestRouterErrorHandling(t *testing.T) {
	t.Parallel()

	t.Run("status coder errors keep their status", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Get("/x", func(*router.Context) handler.Response {
			return func(http.ResponseWriter, *http.Request) error { return statusErr{http.StatusTeapot} }
		})
		assert.Equal(t, http.StatusTeapot, serve(r, http.MethodGet, "/x").Code)
	})

	t.Run("plain errors become 500", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Get("/x", func(*router.Context) handler.Response {
			return func(http.ResponseWriter, *http.Request) error { return errors.New("secret detail") }
		})
		w := serve(r, http.MethodGet, "/x")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "secret detail")
	})

	t.Run("custom handler sees not found", func(t *testing.T) {
		t.Parallel()

		var got error
		r := router.New[*router.Context](router.WithErrorHandler(func(_ *router.Context, err error) { got = err }))
		serve(r, http.MethodGet, "/nope")
		assert.ErrorIs(t, got, router.ErrNotFound)
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()

		var got error
		r := router.New[*router.Context](router.WithErrorHandler(func(_ *router.Context, err error) { got = err }))
		r.Get("/x", func(*router.Context) handler.Response { return nil })
		serve(r, http.MethodGet, "/x")
		assert.ErrorIs(t, got, router.ErrNilResponse)
	})
}

func TestRouterPanicRecovery(t *testing.T) {
	t.Parallel()

	var got error
	r := router.New[*router.Context](router.WithErrorHandler(func(_ *router.Context, err error) { got = err }))
	r.Get("/boom", func(*router.Context) handler.Response { panic("boom") })

	require.NotPanics(t, func() { serve(r, http.MethodGet, "/boom") })
	var perr router.PanicError
	require.ErrorAs(t, got, &perr)
	assert.Equal(t, "boom", perr.Value())
	assert.NotEmpty(t, perr.Stack())
}

func TestRouterSetValueReachesResponse(t *testing.T) {
	t.Parallel()

	type key struct{}
	mw := func(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] {
		return func(ctx *router.Context) handler.Response {
			ctx.SetValue(key{}, "v")
			return next(ctx)
		}
	}

	r := router.New[*router.Context]()
	r.With(mw).Get("/x", func(*router.Context) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			_, err := w.Write([]byte(r.Context().Value(key{}).(string)))
			return err
		}
	})
	assert.Equal(t, "v", serve(r, http.MethodGet, "/x").Body.String())
}
