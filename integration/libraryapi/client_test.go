package libraryapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biblio2ie/biblio/core/session"
	"github.com/biblio2ie/biblio/integration/libraryapi"
)

func newClient(t *testing.T, h http.HandlerFunc, opts ...libraryapi.Option) *libraryapi.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := libraryapi.New(srv.URL+"/api", opts...)
	require.NoError(t, err)
	return c
}

func TestNewRejectsRelativeURL(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "/api", "localhost:5000"} {
		_, err := libraryapi.New(raw)
		assert.ErrorIs(t, err, libraryapi.ErrInvalidBaseURL, raw)
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	var body map[string]string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_ = json.NewDecoder(r.Body).Decode(&body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"token":"tok123","user":{"id":1,"nom":"Awa","email":"a@x.com","role":"etudiant"}}`)
	})

	res, err := c.Login(context.Background(), libraryapi.Credentials{Email: "a@x.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"email": "a@x.com", "password": "secret"}, body)
	assert.Equal(t, "tok123", res.Token)
	assert.Equal(t, session.User{ID: 1, Name: "Awa", Email: "a@x.com", Role: session.RoleStudent}, res.User)
}

func TestBackendMessage(t *testing.T) {
	t.Parallel()

	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Identifiants invalides"}`)
	})

	_, err := c.Login(context.Background(), libraryapi.Credentials{Email: "a@x.com", Password: "bad"})
	require.Error(t, err)
	assert.True(t, libraryapi.IsUnauthorized(err))
	assert.False(t, libraryapi.IsNotFound(err))
	assert.Equal(t, "Identifiants invalides", libraryapi.Message(err, "fallback"))

	var apiErr *libraryapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode())
}

func TestErrorWithoutMessageUsesFallback(t *testing.T) {
	t.Parallel()

	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	err := c.Borrow(context.Background(), "tok123", 3)
	require.Error(t, err)
	assert.Equal(t, "Une erreur est survenue.", libraryapi.Message(err, "Une erreur est survenue."))
	assert.Equal(t, "Internal Server Error", err.Error())
}

func TestBearerHeader(t *testing.T) {
	t.Parallel()

	var auth string
	var body map[string]int64
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, "/api/emprunts", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
	})

	require.NoError(t, c.Borrow(context.Background(), "tok123", 3))
	assert.Equal(t, "Bearer tok123", auth)
	assert.Equal(t, map[string]int64{"livreId": 3}, body)
}

func TestListBooksQuery(t *testing.T) {
	t.Parallel()

	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/livres", r.URL.Path)
		assert.Equal(t, "Dune", r.URL.Query().Get("titre"))
		assert.Equal(t, "Roman", r.URL.Query().Get("genre"))
		assert.False(t, r.URL.Query().Has("auteur"))
		_, _ = io.WriteString(w, `[{"id":9,"titre":"Dune","auteur":"Frank Herbert","genre":"Roman","disponible":true}]`)
	})

	books, err := c.ListBooks(context.Background(), libraryapi.BookFilter{Title: "Dune", Genre: "Roman"})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Frank Herbert", books[0].Author)
	assert.True(t, books[0].Available)
}

func TestAdminEndpoints(t *testing.T) {
	t.Parallel()

	type call struct{ method, path string }
	var calls []call
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		assert.Equal(t, "Bearer adm", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/emprunts/all":
			_, _ = io.WriteString(w, `[{"id":1,"livre_titre":"Dune","etudiant_nom":"Awa","date_emprunt":"2024-01-01","date_retour_prevue":"2024-01-15"}]`)
		case "/api/etudiants":
			_, _ = io.WriteString(w, `[{"id":1,"nom":"Awa","email":"a@x.com","role":"etudiant","date_creation":"2024-01-01"}]`)
		case "/api/livres":
			_, _ = io.WriteString(w, `{"id":5,"titre":"Dune","auteur":"Frank Herbert","genre":"Roman","disponible":true}`)
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	})
	ctx := context.Background()

	borrows, err := c.AllBorrows(ctx, "adm")
	require.NoError(t, err)
	require.Len(t, borrows, 1)
	assert.Equal(t, "Dune", borrows[0].DisplayTitle())
	assert.False(t, borrows[0].Returned())

	students, err := c.ListStudents(ctx, "adm")
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Awa", students[0].Name)

	book, err := c.CreateBook(ctx, "adm", libraryapi.BookInput{Title: "Dune", Author: "Frank Herbert", Genre: "Roman"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), book.ID)

	require.NoError(t, c.ReturnBorrow(ctx, "adm", 1))
	require.NoError(t, c.DeleteStudent(ctx, "adm", 2))
	require.NoError(t, c.DeleteBook(ctx, "adm", 5))

	assert.Equal(t, []call{
		{http.MethodGet, "/api/emprunts/all"},
		{http.MethodGet, "/api/etudiants"},
		{http.MethodPost, "/api/livres"},
		{http.MethodPut, "/api/emprunts/1/return"},
		{http.MethodDelete, "/api/etudiants/2"},
		{http.MethodDelete, "/api/livres/5"},
	}, calls)
}

func TestMalformedPayload(t *testing.T) {
	t.Parallel()

	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{not json`)
	})

	_, err := c.GetBook(context.Background(), 1)
	assert.ErrorIs(t, err, libraryapi.ErrDecode)
}

func unreachable(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

func TestUnavailable(t *testing.T) {
	t.Parallel()

	c, err := libraryapi.New(unreachable(t), libraryapi.WithTimeout(time.Second))
	require.NoError(t, err)

	_, err = c.ListBooks(context.Background(), libraryapi.BookFilter{})
	assert.ErrorIs(t, err, libraryapi.ErrUnavailable)
}

func TestDemoFallback(t *testing.T) {
	t.Parallel()

	c, err := libraryapi.New(unreachable(t), libraryapi.WithDemoFallback(true))
	require.NoError(t, err)

	books, err := c.ListBooks(context.Background(), libraryapi.BookFilter{Author: "john"})
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Les secrets de Node.js", books[0].Title)
	assert.Equal(t, "L'art du CSS moderne", books[1].Title)
}

func TestDemoFallbackOnlyForTransportErrors(t *testing.T) {
	t.Parallel()

	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, libraryapi.WithDemoFallback(true))

	_, err := c.ListBooks(context.Background(), libraryapi.BookFilter{})
	var apiErr *libraryapi.APIError
	assert.True(t, errors.As(err, &apiErr))
}

func TestContextCancel(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}, libraryapi.WithDemoFallback(true))
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.ListBooks(ctx, libraryapi.BookFilter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFilterBooks(t *testing.T) {
	t.Parallel()

	all := libraryapi.DemoBooks()
	assert.Len(t, libraryapi.FilterBooks(all, libraryapi.BookFilter{}), 4)
	assert.Len(t, libraryapi.FilterBooks(all, libraryapi.BookFilter{Genre: "technique"}), 2)
	assert.Empty(t, libraryapi.FilterBooks(all, libraryapi.BookFilter{Title: "Dune"}))
}
