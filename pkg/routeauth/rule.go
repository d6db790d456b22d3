package routeauth

import (
	"github.com/dmitrymomot/testimony/pkg/rbac"
)

const (
	// DefaultLoginPath receives visitors that must sign in first.
	DefaultLoginPath = "/login"

	// DefaultUnauthorizedPath receives signed-in users lacking a role or tier.
	DefaultUnauthorizedPath = "/account"
)

// Rule describes what a path pattern requires.
type Rule struct {
	Pattern                 string     `yaml:"pattern"`
	RequiresAuth            bool       `yaml:"requires_auth"`
	MinRole                 *rbac.Role `yaml:"min_role,omitempty"`
	MinTier                 *rbac.Tier `yaml:"min_tier,omitempty"`
	UnauthenticatedRedirect string     `yaml:"unauthenticated_redirect,omitempty"`
	UnauthorizedRedirect    string     `yaml:"unauthorized_redirect,omitempty"`
}

// LoginRedirect returns the redirect target for anonymous visitors.
func (r Rule) LoginRedirect() string {
	if r.UnauthenticatedRedirect != "" {
		return r.UnauthenticatedRedirect
	}
	return DefaultLoginPath
}

// DeniedRedirect returns the redirect target for signed-in users without access.
func (r Rule) DeniedRedirect() string {
	if r.UnauthorizedRedirect != "" {
		return r.UnauthorizedRedirect
	}
	return DefaultUnauthorizedPath
}

// Role returns a pointer to r, for building rules inline.
func Role(r rbac.Role) *rbac.Role { return &r }

// Tier returns a pointer to t, for building rules inline.
func Tier(t rbac.Tier) *rbac.Tier { return &t }

// DefaultRules is the access table of the testimony site.
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: "/account", RequiresAuth: true},
		{Pattern: "/notifications", RequiresAuth: true},
		{Pattern: "/notifications/stream"},
		{Pattern: "/testimonies/new", RequiresAuth: true},
		{Pattern: "/studio", RequiresAuth: true, MinRole: Role(rbac.RoleCreator)},
		{Pattern: "/family", RequiresAuth: true, MinTier: Tier(rbac.TierFamily), UnauthorizedRedirect: "/account/plan"},
		{Pattern: "/legacy", RequiresAuth: true, MinTier: Tier(rbac.TierLegacy), UnauthorizedRedirect: "/account/plan"},
		{Pattern: "/admin", RequiresAuth: true, MinRole: Role(rbac.RoleAdmin), UnauthorizedRedirect: "/"},
		{Pattern: "/admin/users", RequiresAuth: true, MinRole: Role(rbac.RoleAdmin), UnauthorizedRedirect: "/"},
	}
}
