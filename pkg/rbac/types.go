package rbac

import (
	"fmt"
	"strings"
)

// Role is a permission level for feature access.
type Role string

const (
	RoleUser    Role = "user"
	RoleCreator Role = "creator"
	RoleAdmin   Role = "admin"
)

// Tier is a subscription plan level.
type Tier string

const (
	TierFree   Tier = "free"
	TierFamily Tier = "family"
	TierLegacy Tier = "legacy"
)

var (
	// Roles ranks user < creator < admin.
	Roles = MustHierarchy(RoleUser, RoleCreator, RoleAdmin)

	// Tiers ranks free < family < legacy.
	Tiers = MustHierarchy(TierFree, TierFamily, TierLegacy)
)

func (r Role) String() string { return string(r) }
func (t Tier) String() string { return string(t) }

// Valid reports whether the role is part of the role hierarchy.
func (r Role) Valid() bool { return Roles.Contains(r) }

// Valid reports whether the tier is part of the tier hierarchy.
func (t Tier) Valid() bool { return Tiers.Contains(t) }

// ParseRole converts a case-insensitive name into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

// ParseTier converts a case-insensitive name into a Tier.
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, s)
	}
	return t, nil
}

// UnmarshalText implements encoding.TextUnmarshaler so roles can be read from
// YAML, JSON and environment variables.
func (r *Role) UnmarshalText(text []byte) error {
	v, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(text []byte) error {
	v, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// RoleAtLeast returns nil when actual satisfies required, ErrInsufficientRole otherwise.
func RoleAtLeast(actual *Role, required Role) error {
	if !Roles.MeetsMinimum(actual, required) {
		return ErrInsufficientRole
	}
	return nil
}

// TierAtLeast returns nil when actual satisfies required, ErrInsufficientTier otherwise.
func TierAtLeast(actual *Tier, required Tier) error {
	if !Tiers.MeetsMinimum(actual, required) {
		return ErrInsufficientTier
	}
	return nil
}
