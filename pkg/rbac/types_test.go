package rbac_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/testimony/pkg/rbac"
)

func TestParseRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    rbac.Role
		wantErr error
	}{
		{in: "user", want: rbac.RoleUser},
		{in: " Creator ", want: rbac.RoleCreator},
		{in: "ADMIN", want: rbac.RoleAdmin},
		{in: "owner", wantErr: rbac.ErrUnknownRole},
		{in: "", wantErr: rbac.ErrUnknownRole},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := rbac.ParseRole(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTier(t *testing.T) {
	t.Parallel()

	got, err := rbac.ParseTier("Family")
	require.NoError(t, err)
	assert.Equal(t, rbac.TierFamily, got)

	_, err = rbac.ParseTier("enterprise")
	assert.ErrorIs(t, err, rbac.ErrUnknownTier)
}

func TestUnmarshalText(t *testing.T) {
	t.Parallel()

	var r rbac.Role
	require.NoError(t, r.UnmarshalText([]byte("creator")))
	assert.Equal(t, rbac.RoleCreator, r)
	assert.Error(t, r.UnmarshalText([]byte("nobody")))

	var tier rbac.Tier
	require.NoError(t, tier.UnmarshalText([]byte("legacy")))
	assert.Equal(t, rbac.TierLegacy, tier)
}

func TestAtLeastHelpers(t *testing.T) {
	t.Parallel()

	user := rbac.RoleUser
	assert.ErrorIs(t, rbac.RoleAtLeast(&user, rbac.RoleCreator), rbac.ErrInsufficientRole)
	assert.NoError(t, rbac.RoleAtLeast(&user, rbac.RoleUser))
	assert.ErrorIs(t, rbac.RoleAtLeast(nil, rbac.RoleUser), rbac.ErrInsufficientRole)

	family := rbac.TierFamily
	assert.NoError(t, rbac.TierAtLeast(&family, rbac.TierFree))
	assert.ErrorIs(t, rbac.TierAtLeast(&family, rbac.TierLegacy), rbac.ErrInsufficientTier)
}

func TestContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, ok := rbac.GetRoleFromContext(ctx)
	assert.False(t, ok)

	ctx = rbac.SetRoleToContext(ctx, rbac.RoleAdmin)
	ctx = rbac.SetTierToContext(ctx, rbac.TierFamily)

	role, ok := rbac.GetRoleFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, rbac.RoleAdmin, role)

	tier, ok := rbac.GetTierFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, rbac.TierFamily, tier)
}
