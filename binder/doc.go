// Package binder fills request structs from the JSON body, form values, the
// query string and router path parameters.
//
// Binders share one signature, func(*http.Request, any) error, and are chained
// by handler.Wrap. A binder that does not apply to the request's content type
// returns ErrNotApplicable and the next one is tried:
//
//	type dismissRequest struct {
//		ID string `path:"id"`
//	}
//
//	r.Delete("/notifications/{id}", handler.Wrap(dismiss,
//		handler.WithBinders(binder.ChiPath()),
//	))
//
// Struct fields are matched by the `json`, `form`, `query` and `path` tags.
// A `-` tag skips the field. Supported field kinds are strings, booleans,
// integers, floats, string slices and pointers to those.
package binder
