package i18n_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/testimony/pkg/i18n"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	locales := i18n.MustLocales("en", "es")

	var gotLocale, gotPath, gotOriginal string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLocale = i18n.GetLocale(r.Context())
		gotPath = r.URL.Path
		gotOriginal, _ = i18n.OriginalPath(r.Context())
	})
	h := i18n.Middleware(locales)(next)

	t.Run("path prefix wins", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/es/account", nil)
		r.AddCookie(&http.Cookie{Name: i18n.DefaultCookieName, Value: "en"})
		h.ServeHTTP(httptest.NewRecorder(), r)

		assert.Equal(t, "es", gotLocale)
		assert.Equal(t, "/account", gotPath)
		assert.Equal(t, "/es/account", gotOriginal)
	})

	t.Run("cookie before header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/account", nil)
		r.AddCookie(&http.Cookie{Name: i18n.DefaultCookieName, Value: "ES"})
		r.Header.Set("Accept-Language", "en")
		h.ServeHTTP(httptest.NewRecorder(), r)

		assert.Equal(t, "es", gotLocale)
		assert.Equal(t, "/account", gotPath)
		assert.Empty(t, gotOriginal)
	})

	t.Run("accept-language fallback", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Accept-Language", "es-AR")
		h.ServeHTTP(httptest.NewRecorder(), r)

		assert.Equal(t, "es", gotLocale)
	})

	t.Run("default", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		h.ServeHTTP(httptest.NewRecorder(), r)

		assert.Equal(t, "en", gotLocale)
	})
}
