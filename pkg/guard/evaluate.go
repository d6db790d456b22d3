package guard

import "github.com/dmitrymomot/testimony/pkg/rbac"

// Evaluate decides access for subject against req. A nil req is a public page.
// It has no side effects.
func Evaluate(subject Subject, req *Requirements) Decision {
	if req == nil || req.IsPublic() {
		return Decision{State: StateAuthorized, Reason: ReasonPublic}
	}
	if subject == nil {
		subject = Anonymous
	}

	if !subject.IsAuthenticated() {
		return Decision{State: StateUnauthorized, Reason: ReasonUnauthenticated, Redirect: req.loginRedirect()}
	}
	if req.MinRole != nil && !rbac.Roles.MeetsMinimum(subject.Role(), *req.MinRole) {
		return Decision{State: StateUnauthorized, Reason: ReasonInsufficientRole, Redirect: req.deniedRedirect()}
	}
	if req.MinTier != nil && !rbac.Tiers.MeetsMinimum(subject.Tier(), *req.MinTier) {
		return Decision{State: StateUnauthorized, Reason: ReasonInsufficientTier, Redirect: req.deniedRedirect()}
	}

	return Decision{State: StateAuthorized, Reason: ReasonAllowed}
}
