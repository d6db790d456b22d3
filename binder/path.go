package binder

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Path binds router parameters using `path` tags. extract returns the raw
// value of a named parameter.
func Path(extract func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindValues(v, "path", func(name string) []string {
			if value := extract(r, name); value != "" {
				return []string{value}
			}
			return nil
		}, ErrInvalidPath)
	}
}

// ChiPath binds chi URL parameters.
func ChiPath() func(r *http.Request, v any) error {
	return Path(chi.URLParam)
}
