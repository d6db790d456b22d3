package guard

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/testimony/handler"
	"github.com/dmitrymomot/testimony/pkg/i18n"
	"github.com/dmitrymomot/testimony/pkg/logger"
	"github.com/dmitrymomot/testimony/pkg/rbac"
	"github.com/dmitrymomot/testimony/pkg/routeauth"
)

// SubjectFunc extracts the subject of a request. Returning nil means anonymous.
type SubjectFunc func(r *http.Request) Subject

// HTTPNavigator redirects the response: a datastar SSE redirect for datastar
// requests, 303 See Other otherwise.
func HTTPNavigator(w http.ResponseWriter, r *http.Request) Navigator {
	return NavigatorFunc(func(_ context.Context, target string) error {
		if handler.IsDataStar(r) {
			return handler.NewSSE(w, r).Redirect(target)
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return nil
	})
}

// Middleware guards every request with a fresh Guard. Authorized requests
// continue with the Decision in their context; unauthorized ones are
// redirected, or handed to the fallback when WithFallback is set.
func Middleware(table *routeauth.Table, subject SubjectFunc, opts ...Option) func(http.Handler) http.Handler {
	o := newOptions(opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			g := New(table, HTTPNavigator(w, r), opts...)

			var s Subject = Anonymous
			if subject != nil {
				if v := subject(r); v != nil {
					s = v
				}
			}

			d, err := g.check(r.Context(), r.URL.Path, returnTo(r), s)
			if err != nil {
				o.logger.ErrorContext(r.Context(), "guard check failed",
					logger.Path(r.URL.Path),
					logger.Error(err),
				)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			r = r.WithContext(withSubject(WithDecision(r.Context(), d), s))
			switch {
			case d.Authorized():
				next.ServeHTTP(w, r)
			case o.fallback != nil:
				o.fallback.ServeHTTP(w, r)
			case o.fallbackM:
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			}
		})
	}
}

// returnTo is the URL the user asked for, before locale rewriting.
func returnTo(r *http.Request) string {
	p := r.URL.Path
	if orig, ok := i18n.OriginalPath(r.Context()); ok {
		p = orig
	}
	if r.URL.RawQuery != "" {
		p += "?" + r.URL.RawQuery
	}
	return p
}

// withSubject exposes the signed-in user's role and tier to downstream handlers.
func withSubject(ctx context.Context, s Subject) context.Context {
	if !s.IsAuthenticated() {
		return ctx
	}
	if role := s.Role(); role != nil {
		ctx = rbac.SetRoleToContext(ctx, *role)
	}
	if tier := s.Tier(); tier != nil {
		ctx = rbac.SetTierToContext(ctx, *tier)
	}
	return ctx
}
