package i18n

import (
	"net/http"
	"strings"
)

// DefaultCookieName is the cookie consulted for an explicit language choice.
const DefaultCookieName = "lang"

type middlewareConfig struct {
	cookieName string
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

// WithCookieName sets the cookie name to check for language preference
func WithCookieName(name string) MiddlewareOption {
	return func(c *middlewareConfig) {
		if name != "" {
			c.cookieName = name
		}
	}
}

// Middleware resolves the request locale and strips a locale path segment.
//
// Precedence: path segment, cookie, Accept-Language, default locale.
func Middleware(locales *Locales, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{cookieName: DefaultCookieName}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			lang, rest := locales.SplitPath(r.URL.Path)
			if lang != "" {
				ctx = withOriginalPath(ctx, r.URL.Path)
				r2 := r.Clone(ctx)
				r2.URL.Path = rest
				r2.URL.RawPath = ""
				r = r2
			}

			if lang == "" {
				if c, err := r.Cookie(cfg.cookieName); err == nil && locales.Supports(c.Value) {
					lang = strings.ToLower(c.Value)
				}
			}
			if lang == "" {
				lang = locales.Match(r.Header.Get("Accept-Language"))
			}

			next.ServeHTTP(w, r.WithContext(SetLocale(ctx, lang)))
		})
	}
}
