package routeauth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/testimony/pkg/i18n"
	"github.com/dmitrymomot/testimony/pkg/rbac"
	"github.com/dmitrymomot/testimony/pkg/routeauth"
)

func TestTable_Resolve(t *testing.T) {
	t.Parallel()

	table := routeauth.MustTable(routeauth.DefaultRules()...)

	tests := []struct {
		name        string
		path        string
		wantPublic  bool
		wantPattern string
	}{
		{name: "exact match", path: "/account", wantPattern: "/account"},
		{name: "nested under account", path: "/account/settings", wantPattern: "/account"},
		{name: "listed child", path: "/admin/users", wantPattern: "/admin/users"},
		{name: "below listed child", path: "/admin/users/42", wantPattern: "/admin/users"},
		{name: "unlisted admin child", path: "/admin/reports", wantPattern: "/admin"},
		{name: "locale prefix", path: "/en/account", wantPattern: "/account"},
		{name: "locale prefix nested", path: "/uk/admin/users/7", wantPattern: "/admin/users"},
		{name: "trailing slash", path: "/studio/", wantPattern: "/studio"},
		{name: "public page", path: "/about", wantPublic: true},
		{name: "root", path: "/", wantPublic: true},
		{name: "locale root", path: "/en", wantPublic: true},
		{name: "prefix without separator", path: "/accounting", wantPublic: true},
		{name: "dot segments", path: "/about/../admin", wantPattern: "/admin"},
		{name: "exact beats prefix", path: "/notifications/stream", wantPattern: "/notifications/stream"},
		{name: "nested under notifications", path: "/notifications/42/action", wantPattern: "/notifications"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, ok := table.Resolve(tt.path)
			if tt.wantPublic {
				assert.False(t, ok)
				assert.Nil(t, rule)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantPattern, rule.Pattern)
		})
	}
}

func TestTable_ResolveLocaleEquivalence(t *testing.T) {
	t.Parallel()

	table := routeauth.MustTable(routeauth.DefaultRules()...)

	for _, p := range []string{"/account", "/admin/users", "/family/vault", "/about"} {
		plain, plainOK := table.Resolve(p)
		localized, localizedOK := table.Resolve("/en" + p)
		assert.Equal(t, plainOK, localizedOK, p)
		assert.Equal(t, plain, localized, p)
	}
}

func TestTable_LongestPrefixIgnoresOrder(t *testing.T) {
	t.Parallel()

	child := routeauth.Rule{Pattern: "/admin/users", RequiresAuth: true, MinRole: routeauth.Role(rbac.RoleAdmin), UnauthorizedRedirect: "/admin"}
	parent := routeauth.Rule{Pattern: "/admin", RequiresAuth: true, MinRole: routeauth.Role(rbac.RoleCreator)}

	forward := routeauth.MustTable(parent, child)
	backward := routeauth.MustTable(child, parent)

	for _, table := range []*routeauth.Table{forward, backward} {
		rule, ok := table.Resolve("/admin/users/9")
		require.True(t, ok)
		assert.Equal(t, "/admin/users", rule.Pattern)
		assert.Equal(t, rbac.RoleAdmin, *rule.MinRole)
	}
}

func TestTable_CustomLocales(t *testing.T) {
	t.Parallel()

	table, err := routeauth.NewTable(
		[]routeauth.Rule{{Pattern: "/account", RequiresAuth: true}},
		routeauth.WithLocales(i18n.MustLocales("en", "pl")),
	)
	require.NoError(t, err)

	_, ok := table.Resolve("/pl/account")
	assert.True(t, ok)

	_, ok = table.Resolve("/de/account")
	assert.False(t, ok, "unsupported locale segment is a regular path segment")
}

func TestTable_ResolveReturnsCopy(t *testing.T) {
	t.Parallel()

	table := routeauth.MustTable(routeauth.Rule{Pattern: "/account", RequiresAuth: true})
	rule, ok := table.Resolve("/account")
	require.True(t, ok)
	rule.RequiresAuth = false

	again, _ := table.Resolve("/account")
	assert.True(t, again.RequiresAuth)
}

func TestNewTable_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rules   []routeauth.Rule
		wantErr error
	}{
		{
			name:    "duplicate after normalisation",
			rules:   []routeauth.Rule{{Pattern: "/admin"}, {Pattern: "/admin/"}},
			wantErr: routeauth.ErrDuplicatePattern,
		},
		{
			name:    "relative pattern",
			rules:   []routeauth.Rule{{Pattern: "admin"}},
			wantErr: routeauth.ErrInvalidPattern,
		},
		{
			name:    "empty pattern",
			rules:   []routeauth.Rule{{Pattern: " "}},
			wantErr: routeauth.ErrInvalidPattern,
		},
		{
			name:    "role without auth",
			rules:   []routeauth.Rule{{Pattern: "/studio", MinRole: routeauth.Role(rbac.RoleCreator)}},
			wantErr: routeauth.ErrInvalidRule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := routeauth.NewTable(tt.rules)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRule_Redirects(t *testing.T) {
	t.Parallel()

	var r routeauth.Rule
	assert.Equal(t, routeauth.DefaultLoginPath, r.LoginRedirect())
	assert.Equal(t, routeauth.DefaultUnauthorizedPath, r.DeniedRedirect())

	r = routeauth.Rule{UnauthenticatedRedirect: "/signin", UnauthorizedRedirect: "/upgrade"}
	assert.Equal(t, "/signin", r.LoginRedirect())
	assert.Equal(t, "/upgrade", r.DeniedRedirect())
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	t.Run("valid file", func(t *testing.T) {
		src := `
rules:
  - pattern: /studio
    requires_auth: true
    min_role: creator
  - pattern: /family
    requires_auth: true
    min_tier: family
    unauthorized_redirect: /account/plan
`
		table, err := routeauth.LoadYAML(strings.NewReader(src))
		require.NoError(t, err)

		rule, ok := table.Resolve("/es/family/album")
		require.True(t, ok)
		require.NotNil(t, rule.MinTier)
		assert.Equal(t, rbac.TierFamily, *rule.MinTier)
		assert.Equal(t, "/account/plan", rule.DeniedRedirect())

		rule, ok = table.Resolve("/studio")
		require.True(t, ok)
		assert.Equal(t, rbac.RoleCreator, *rule.MinRole)
	})

	t.Run("unknown role", func(t *testing.T) {
		src := "rules:\n  - pattern: /x\n    requires_auth: true\n    min_role: owner\n"
		_, err := routeauth.LoadYAML(strings.NewReader(src))
		assert.ErrorIs(t, err, routeauth.ErrParseRules)
	})

	t.Run("unknown field", func(t *testing.T) {
		src := "rules:\n  - pattern: /x\n    requires: true\n"
		_, err := routeauth.LoadYAML(strings.NewReader(src))
		assert.ErrorIs(t, err, routeauth.ErrParseRules)
	})

	t.Run("empty file is an empty table", func(t *testing.T) {
		table, err := routeauth.LoadYAML(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, table.Rules())
	})
}
