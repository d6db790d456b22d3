// Package guard decides whether a request may render a page or must be
// redirected, based on the route table and the current session.
//
// Evaluate is the pure core: given a Subject (authenticated flag, role, tier)
// and the effective Requirements it returns a Decision. Effective requirements
// are, in order of precedence, an explicit override, the rule resolved from
// the routeauth.Table, or nothing (a public page).
//
// A Guard wraps the check in a small state machine
// (checking -> authorized | unauthorized) and performs the side effect of an
// unauthorized outcome: it asks its Navigator to redirect. When a fallback is
// configured the redirect never fires and the caller renders the fallback
// instead. Every Check starts again from "checking", so a long-lived Guard can
// follow a connection as the session, path or override change.
//
// Middleware adapts this to net/http:
//
//	r.Use(guard.Middleware(table, session.Subject, guard.WithLogger(log)))
//	r.With(guard.Middleware(table, subjectFn, guard.WithOverride(guard.Requirements{RequiresAuth: true}))).
//		Get("/drafts", h)
package guard
