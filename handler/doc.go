// Package handler turns typed request handlers into http.HandlerFuncs.
//
// A handler receives a Context and a bound request value and returns a
// Response. Wrap binds the request with the configured binders, calls the
// handler and renders the result, sending any error to the ErrorHandler:
//
//	type enqueueRequest struct {
//		Kind  string `json:"kind"`
//		Title string `json:"title"`
//	}
//
//	r.Post("/notifications", handler.Wrap(
//		func(ctx handler.Context, req enqueueRequest) handler.Response {
//			return handler.JSON(map[string]string{"id": id}, handler.WithJSONStatus(http.StatusCreated))
//		},
//		handler.WithBinders(binder.JSON(), binder.Form()),
//		handler.WithErrorHandler(errs),
//	))
//
// Responses adapt to datastar requests: Templ patches elements over SSE,
// Redirect sends a client-side redirect, and SSE streams until the client
// disconnects. NewErrorHandler renders HTTPError and ValidationError values as
// JSON, a toast patch or a full error page depending on the request. Boundary
// contains panics raised while rendering a subtree.
package handler
