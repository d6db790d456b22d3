package rbac

import "context"

type (
	roleCtxKey struct{}
	tierCtxKey struct{}
)

// SetRoleToContext stores the user's role in the context.
func SetRoleToContext(ctx context.Context, role Role) context.Context {
	return context.WithValue(ctx, roleCtxKey{}, role)
}

// GetRoleFromContext retrieves the user's role from the context.
func GetRoleFromContext(ctx context.Context) (Role, bool) {
	role, ok := ctx.Value(roleCtxKey{}).(Role)
	return role, ok
}

// SetTierToContext stores the user's subscription tier in the context.
func SetTierToContext(ctx context.Context, tier Tier) context.Context {
	return context.WithValue(ctx, tierCtxKey{}, tier)
}

// GetTierFromContext retrieves the user's subscription tier from the context.
func GetTierFromContext(ctx context.Context) (Tier, bool) {
	tier, ok := ctx.Value(tierCtxKey{}).(Tier)
	return tier, ok
}
