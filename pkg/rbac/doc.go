// Package rbac ranks roles and subscription tiers for access checks.
//
// Roles and tiers are two independent ordered enumerations. A Hierarchy holds
// the rank order for one of them (index = rank) and answers whether an actual
// value satisfies a required minimum:
//
//	rbac.Roles.MeetsMinimum(&role, rbac.RoleCreator) // creator or admin
//	rbac.Tiers.MeetsMinimum(nil, rbac.TierFree)      // always false
//
// Role and Tier are distinct types, so a role can never be compared against the
// tier hierarchy by accident.
//
// The role and tier of the current request can be stored in a context with
// SetRoleToContext / SetTierToContext and read back with the matching getters.
package rbac
