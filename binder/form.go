package binder

import (
	"fmt"
	"net/http"
)

// Form binds application/x-www-form-urlencoded bodies using `form` tags.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if mediaType(r) != "application/x-www-form-urlencoded" {
			return ErrNotApplicable
		}

		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}

		return bindValues(v, "form", func(name string) []string { return r.PostForm[name] }, ErrInvalidForm)
	}
}

// Query binds the URL query string using `query` tags.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		q := r.URL.Query()
		return bindValues(v, "query", func(name string) []string { return q[name] }, ErrInvalidQuery)
	}
}
