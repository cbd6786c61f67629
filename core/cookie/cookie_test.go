package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biblio2ie/biblio/core/cookie"
)

const (
	secretA = "this-is-a-very-long-secret-key-for-tests-a"
	secretB = "this-is-a-very-long-secret-key-for-tests-b"
)

// roundTrip copies the cookies set on w into a fresh request.
func roundTrip(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := cookie.New(nil)
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"", ""})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"short"})
	assert.ErrorIs(t, err, cookie.ErrSecretTooShort)

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestSignedCookie(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, m.SetSigned(w, "client", "abc-123"))

	got, err := m.GetSigned(roundTrip(w), "client")
	require.NoError(t, err)
	assert.Equal(t, "abc-123", got)

	t.Run("tampered", func(t *testing.T) {
		t.Parallel()
		c := w.Result().Cookies()[0]
		value, sig, _ := strings.Cut(c.Value, ".")
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "client", Value: value + "x." + sig})
		_, err := m.GetSigned(r, "client")
		assert.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "client", Value: "nodot"})
		_, err := m.GetSigned(r, "client")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		_, err := m.GetSigned(httptest.NewRequest(http.MethodGet, "/", nil), "client")
		assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})
}

func TestKeyRotation(t *testing.T) {
	t.Parallel()

	old, err := cookie.New([]string{secretA})
	require.NoError(t, err)
	rotated, err := cookie.New([]string{secretB, secretA})
	require.NoError(t, err)
	other, err := cookie.New([]string{secretB})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, old.SetSigned(w, "s", "v"))
	require.NoError(t, old.SetEncrypted(w, "e", "secret"))
	r := roundTrip(w)

	got, err := rotated.GetSigned(r, "s")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	got, err = rotated.GetEncrypted(r, "e")
	require.NoError(t, err)
	assert.Equal(t, "secret", got)

	_, err = other.GetSigned(r, "s")
	assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	_, err = other.GetEncrypted(r, "e")
	assert.ErrorIs(t, err, cookie.ErrDecryptionFailed)
}

func TestEncryptedCookieHidesValue(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, m.SetEncrypted(w, "e", "plain-text-value"))
	assert.NotContains(t, w.Header().Get("Set-Cookie"), "plain-text-value")
}

func TestFlash(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	type note struct {
		Title string `json:"title"`
	}

	w := httptest.NewRecorder()
	require.NoError(t, m.SetFlash(w, "notice", note{Title: "Connexion réussie"}))

	w2 := httptest.NewRecorder()
	var got note
	require.NoError(t, m.GetFlash(w2, roundTrip(w), "notice", &got))
	assert.Equal(t, "Connexion réussie", got.Title)

	deleted := w2.Result().Cookies()
	require.Len(t, deleted, 1)
	assert.Equal(t, -1, deleted[0].MaxAge)
}

func TestCookieTooLarge(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	err = m.Set(httptest.NewRecorder(), "big", strings.Repeat("a", cookie.MaxCookieSize))
	var tooLarge cookie.ErrCookieTooLarge
	assert.ErrorAs(t, err, &tooLarge)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	m, err := cookie.NewFromConfig(cookie.Config{Secret: secretB + ", " + secretA, Secure: true})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, m.Set(w, "a", "b"))
	c := w.Result().Cookies()[0]
	assert.True(t, c.Secure)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/", c.Path)
}
