package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/testimony/pkg/guard"
	"github.com/dmitrymomot/testimony/pkg/rbac"
	"github.com/dmitrymomot/testimony/pkg/routeauth"
)

func signedIn(role rbac.Role, tier rbac.Tier) guard.Snapshot {
	return guard.Snapshot{Authenticated: true, UserRole: &role, UserTier: &tier}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	creator := guard.Requirements{RequiresAuth: true, MinRole: routeauth.Role(rbac.RoleCreator)}
	family := guard.Requirements{RequiresAuth: true, MinTier: routeauth.Tier(rbac.TierFamily), UnauthorizedRedirect: "/account/plan"}

	tests := []struct {
		name     string
		subject  guard.Subject
		req      *guard.Requirements
		state    guard.State
		reason   guard.Reason
		redirect string
	}{
		{"no requirements", guard.Anonymous, nil, guard.StateAuthorized, guard.ReasonPublic, ""},
		{"empty requirements", guard.Anonymous, &guard.Requirements{}, guard.StateAuthorized, guard.ReasonPublic, ""},
		{"anonymous on auth page", guard.Anonymous, &guard.Requirements{RequiresAuth: true}, guard.StateUnauthorized, guard.ReasonUnauthenticated, "/login"},
		{"nil subject", nil, &guard.Requirements{RequiresAuth: true}, guard.StateUnauthorized, guard.ReasonUnauthenticated, "/login"},
		{"anonymous on role page", guard.Anonymous, &creator, guard.StateUnauthorized, guard.ReasonUnauthenticated, "/login"},
		{"user below creator", signedIn(rbac.RoleUser, rbac.TierFree), &creator, guard.StateUnauthorized, guard.ReasonInsufficientRole, "/account"},
		{"creator meets creator", signedIn(rbac.RoleCreator, rbac.TierFree), &creator, guard.StateAuthorized, guard.ReasonAllowed, ""},
		{"admin above creator", signedIn(rbac.RoleAdmin, rbac.TierFree), &creator, guard.StateAuthorized, guard.ReasonAllowed, ""},
		{"free below family", signedIn(rbac.RoleAdmin, rbac.TierFree), &family, guard.StateUnauthorized, guard.ReasonInsufficientTier, "/account/plan"},
		{"legacy above family", signedIn(rbac.RoleUser, rbac.TierLegacy), &family, guard.StateAuthorized, guard.ReasonAllowed, ""},
		{"signed in without role", guard.Snapshot{Authenticated: true}, &creator, guard.StateUnauthorized, guard.ReasonInsufficientRole, "/account"},
		{"signed in without tier", guard.Snapshot{Authenticated: true}, &family, guard.StateUnauthorized, guard.ReasonInsufficientTier, "/account/plan"},
		{
			"custom login redirect",
			guard.Anonymous,
			&guard.Requirements{RequiresAuth: true, UnauthenticatedRedirect: "/welcome"},
			guard.StateUnauthorized, guard.ReasonUnauthenticated, "/welcome",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := guard.Evaluate(tt.subject, tt.req)
			assert.Equal(t, tt.state, d.State)
			assert.Equal(t, tt.reason, d.Reason)
			assert.Equal(t, tt.redirect, d.Redirect)
		})
	}
}

func TestFromRule(t *testing.T) {
	t.Parallel()

	req := guard.FromRule(routeauth.Rule{Pattern: "/studio", RequiresAuth: true, MinRole: routeauth.Role(rbac.RoleCreator)})
	assert.True(t, req.RequiresAuth)
	assert.Equal(t, rbac.RoleCreator, *req.MinRole)
	assert.Equal(t, "/login", req.UnauthenticatedRedirect)
	assert.Equal(t, "/account", req.UnauthorizedRedirect)
	assert.False(t, req.IsPublic())
}
