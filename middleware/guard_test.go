package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biblio2ie/biblio/core/handler"
	"github.com/biblio2ie/biblio/core/response"
	"github.com/biblio2ie/biblio/core/router"
	"github.com/biblio2ie/biblio/core/session"
	"github.com/biblio2ie/biblio/core/sessionstore"
	"github.com/biblio2ie/biblio/middleware"
)

const adminContent = "liste des livres (admin)"

// fixedLoader hands out the same store for every request.
type fixedLoader struct {
	store *session.Store
	err   error
}

func (l fixedLoader) Load(handler.Context) (*session.Store, string, error) {
	if l.err != nil {
		return nil, "", l.err
	}
	return l.store, "client-1", nil
}

// blockingPersister never finishes loading until release is closed.
type blockingPersister struct {
	*sessionstore.Memory
	release chan struct{}
}

func (b blockingPersister) Load(ctx context.Context, key string) (session.Snapshot, bool, error) {
	select {
	case <-b.release:
	case <-ctx.Done():
		return session.Snapshot{}, false, ctx.Err()
	}
	return b.Memory.Load(ctx, key)
}

func readyStore(t *testing.T) *session.Store {
	t.Helper()
	s := session.NewStore("k", sessionstore.NewMemory())
	s.Hydrate(context.Background())
	return s
}

func guarded(store *session.Store, cfg middleware.GuardConfig[*router.Context]) http.Handler {
	r := router.New[*router.Context]()
	r.Use(middleware.Session[*router.Context](fixedLoader{store: store}))
	r.Route("/admin", func(r router.Router[*router.Context]) {
		r.Use(middleware.GuardWithConfig(cfg))
		r.Get("/livres", func(*router.Context) handler.Response {
			return response.HTML(adminContent)
		})
	})
	r.Group(func(r router.Router[*router.Context]) {
		r.Use(middleware.RequireAuth[*router.Context]("/connexion"))
		r.Get("/dashboard", func(*router.Context) handler.Response {
			return response.HTML("mes emprunts")
		})
	})
	return r
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestGuard_Placeholder(t *testing.T) {
	t.Parallel()

	mem := sessionstore.NewMemory()
	u := session.User{ID: 7, Name: "Moussa", Email: "m@x.com", Role: session.RoleAdmin}
	require.NoError(t, mem.Save(context.Background(), "k", session.Snapshot{Token: "tok", User: &u}))

	for _, tc := range []struct {
		name  string
		login bool
	}{
		{name: "empty store", login: false},
		{name: "admin already logged in", login: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := blockingPersister{Memory: mem, release: make(chan struct{})}
			store := session.NewStore("k", p)
			go store.Hydrate(context.Background())
			if tc.login {
				require.NoError(t, store.Login("tok", u))
			}

			h := guarded(store, middleware.GuardConfig[*router.Context]{
				Role:          session.RoleAdmin,
				HydrationWait: 10 * time.Millisecond,
			})
			w := get(h, "/admin/livres")

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), middleware.PlaceholderText)
			assert.NotContains(t, w.Body.String(), adminContent)
			assert.Empty(t, w.Header().Get("Location"))
			assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
			assert.Contains(t, w.Body.String(), `"/session/live"`)

			close(p.release)
			<-store.Ready()
			assert.Equal(t, session.HydrationReady, store.Hydration())
		})
	}
}

func TestGuard_WaitsForShortHydration(t *testing.T) {
	t.Parallel()

	mem := sessionstore.NewMemory()
	u := session.User{ID: 7, Name: "Moussa", Email: "m@x.com", Role: session.RoleAdmin}
	require.NoError(t, mem.Save(context.Background(), "k", session.Snapshot{Token: "tok", User: &u}))

	p := blockingPersister{Memory: mem, release: make(chan struct{})}
	store := session.NewStore("k", p)
	go store.Hydrate(context.Background())
	time.AfterFunc(5*time.Millisecond, func() { close(p.release) })

	h := guarded(store, middleware.GuardConfig[*router.Context]{
		Role:          session.RoleAdmin,
		HydrationWait: time.Second,
	})
	w := get(h, "/admin/livres")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), adminContent)
}

func TestGuard_Gating(t *testing.T) {
	t.Parallel()

	student := session.User{ID: 1, Name: "Awa", Email: "a@x.com", Role: session.RoleStudent}
	admin := session.User{ID: 7, Name: "Moussa", Email: "m@x.com", Role: session.RoleAdmin}

	tests := []struct {
		name     string
		user     *session.User
		path     string
		wantCode int
		wantLoc  string
		wantBody string
	}{
		{name: "anonymous on admin", path: "/admin/livres", wantCode: http.StatusFound, wantLoc: "/"},
		{name: "student on admin", user: &student, path: "/admin/livres", wantCode: http.StatusFound, wantLoc: "/"},
		{name: "admin on admin", user: &admin, path: "/admin/livres", wantCode: http.StatusOK, wantBody: adminContent},
		{name: "anonymous on dashboard", path: "/dashboard", wantCode: http.StatusFound, wantLoc: "/connexion"},
		{name: "student on dashboard", user: &student, path: "/dashboard", wantCode: http.StatusOK, wantBody: "mes emprunts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := readyStore(t)
			if tt.user != nil {
				require.NoError(t, store.Login("tok", *tt.user))
			}
			h := guarded(store, middleware.GuardConfig[*router.Context]{Role: session.RoleAdmin})

			w := get(h, tt.path)
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantLoc != "" {
				assert.Equal(t, tt.wantLoc, w.Header().Get("Location"))
				assert.NotContains(t, w.Body.String(), adminContent)
			}
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
				assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
			}
		})
	}
}

func TestGuard_HTMX(t *testing.T) {
	t.Parallel()

	h := guarded(readyStore(t), middleware.GuardConfig[*router.Context]{Role: session.RoleAdmin})

	req := httptest.NewRequest(http.MethodGet, "/admin/livres", nil)
	req.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/", w.Header().Get("HX-Location"))
	assert.NotContains(t, w.Body.String(), adminContent)
}

func TestGuard_ReevaluatesAfterLogout(t *testing.T) {
	t.Parallel()

	store := readyStore(t)
	require.NoError(t, store.Login("tok", session.User{ID: 7, Name: "Moussa", Email: "m@x.com", Role: session.RoleAdmin}))
	h := guarded(store, middleware.GuardConfig[*router.Context]{Role: session.RoleAdmin})

	changed := make(chan session.Snapshot, 1)
	unsubscribe := store.Subscribe(func(s session.Snapshot) { changed <- s })
	defer unsubscribe()

	assert.Equal(t, http.StatusOK, get(h, "/admin/livres").Code)

	store.Logout()
	select {
	case snap := <-changed:
		assert.False(t, snap.IsAuthenticated())
	case <-time.After(time.Second):
		t.Fatal("logout not published to subscribers")
	}

	w := get(h, "/admin/livres")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestGuard_WithoutSessionMiddleware(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Use(middleware.RequireRole[*router.Context](session.RoleAdmin))
	r.Get("/admin", func(*router.Context) handler.Response { return response.HTML(adminContent) })

	w := get(r, "/admin")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), adminContent)
}

func TestSession(t *testing.T) {
	t.Parallel()

	t.Run("puts store and client id in context", func(t *testing.T) {
		t.Parallel()

		store := readyStore(t)
		r := router.New[*router.Context]()
		r.Use(middleware.Session[*router.Context](fixedLoader{store: store}))

		var got *session.Store
		var id string
		r.Get("/", func(ctx *router.Context) handler.Response {
			got = middleware.MustGetStore(ctx)
			id, _ = middleware.GetClientID(ctx)
			return response.NoContent()
		})
		get(r, "/")

		assert.Same(t, store, got)
		assert.Equal(t, "client-1", id)
	})

	t.Run("transport failure degrades to anonymous", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Use(middleware.Session[*router.Context](fixedLoader{err: errors.New("cookie too large")}))
		r.Get("/", func(ctx *router.Context) handler.Response {
			s, found := middleware.GetStore(ctx)
			require.True(t, found)
			assert.False(t, s.Read().IsAuthenticated())
			assert.Equal(t, session.HydrationReady, s.Hydration())
			_, hasID := middleware.GetClientID(ctx)
			assert.False(t, hasID)
			return response.NoContent()
		})
		assert.Equal(t, http.StatusNoContent, get(r, "/").Code)
	})

	t.Run("missing transport panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { middleware.Session[*router.Context](nil) })
	})
}
