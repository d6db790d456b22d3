package guard

import (
	"context"

	"github.com/dmitrymomot/testimony/pkg/rbac"
	"github.com/dmitrymomot/testimony/pkg/routeauth"
)

// State is the authorization state of a guarded view.
type State string

const (
	StateChecking     State = "checking"
	StateAuthorized   State = "authorized"
	StateUnauthorized State = "unauthorized"
)

// Reason explains a Decision.
type Reason string

const (
	ReasonPublic           Reason = "public"
	ReasonAllowed          Reason = "allowed"
	ReasonUnauthenticated  Reason = "unauthenticated"
	ReasonInsufficientRole Reason = "insufficient_role"
	ReasonInsufficientTier Reason = "insufficient_tier"
)

// Subject is the read-only view of the session the guard needs.
type Subject interface {
	IsAuthenticated() bool
	Role() *rbac.Role
	Tier() *rbac.Tier
}

// Snapshot is a plain Subject value.
type Snapshot struct {
	Authenticated bool
	UserRole      *rbac.Role
	UserTier      *rbac.Tier
}

// IsAuthenticated reports the Authenticated field.
func (s Snapshot) IsAuthenticated() bool { return s.Authenticated }

// Role returns UserRole; nil when unknown.
func (s Snapshot) Role() *rbac.Role { return s.UserRole }

// Tier returns UserTier; nil when unknown.
func (s Snapshot) Tier() *rbac.Tier { return s.UserTier }

// Anonymous is the subject of a request without a signed-in user.
var Anonymous Subject = Snapshot{}

// Requirements is what a page demands from the subject.
type Requirements struct {
	RequiresAuth            bool
	MinRole                 *rbac.Role
	MinTier                 *rbac.Tier
	UnauthenticatedRedirect string
	UnauthorizedRedirect    string
}

// FromRule converts a resolved route rule into requirements.
func FromRule(r routeauth.Rule) Requirements {
	return Requirements{
		RequiresAuth:            r.RequiresAuth,
		MinRole:                 r.MinRole,
		MinTier:                 r.MinTier,
		UnauthenticatedRedirect: r.LoginRedirect(),
		UnauthorizedRedirect:    r.DeniedRedirect(),
	}
}

// IsPublic reports whether the requirements let anyone through.
func (r Requirements) IsPublic() bool {
	return !r.RequiresAuth && r.MinRole == nil && r.MinTier == nil
}

func (r Requirements) loginRedirect() string {
	if r.UnauthenticatedRedirect != "" {
		return r.UnauthenticatedRedirect
	}
	return routeauth.DefaultLoginPath
}

func (r Requirements) deniedRedirect() string {
	if r.UnauthorizedRedirect != "" {
		return r.UnauthorizedRedirect
	}
	return routeauth.DefaultUnauthorizedPath
}

// Decision is the outcome of a check.
type Decision struct {
	State    State
	Reason   Reason
	Redirect string // empty unless State is StateUnauthorized
	Path     string
	Pattern  string // matched rule pattern, empty for overrides and public pages
}

// Authorized reports whether the protected content may render.
func (d Decision) Authorized() bool { return d.State == StateAuthorized }

type decisionCtxKey struct{}

// WithDecision stores a decision in the context.
func WithDecision(ctx context.Context, d Decision) context.Context {
	return context.WithValue(ctx, decisionCtxKey{}, d)
}

// DecisionFromContext returns the decision made for the current request.
func DecisionFromContext(ctx context.Context) (Decision, bool) {
	d, ok := ctx.Value(decisionCtxKey{}).(Decision)
	return d, ok
}
