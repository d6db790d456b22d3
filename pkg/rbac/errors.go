package rbac

import "errors"

// Domain errors for role and tier parsing and checks.
var (
	// ErrUnknownRole is returned when a role name is not part of the role hierarchy.
	ErrUnknownRole = errors.New("rbac.unknown_role")

	// ErrUnknownTier is returned when a tier name is not part of the tier hierarchy.
	ErrUnknownTier = errors.New("rbac.unknown_tier")

	// ErrInsufficientRole is returned when the actual role ranks below the required one.
	ErrInsufficientRole = errors.New("rbac.insufficient_role")

	// ErrInsufficientTier is returned when the actual tier ranks below the required one.
	ErrInsufficientTier = errors.New("rbac.insufficient_tier")

	// ErrDuplicateRank is returned when a hierarchy lists the same value twice.
	ErrDuplicateRank = errors.New("rbac.duplicate_rank")
)
