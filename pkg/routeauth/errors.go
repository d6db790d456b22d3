package routeauth

import "errors"

var (
	// ErrDuplicatePattern is returned when two rules share a pattern.
	ErrDuplicatePattern = errors.New("routeauth.duplicate_pattern")

	// ErrInvalidPattern is returned for patterns that are not absolute paths.
	ErrInvalidPattern = errors.New("routeauth.invalid_pattern")

	// ErrInvalidRule is returned when a rule declares role or tier requirements
	// without requiring authentication.
	ErrInvalidRule = errors.New("routeauth.invalid_rule")

	// ErrParseRules is returned when a rule file cannot be decoded.
	ErrParseRules = errors.New("routeauth.parse_rules")
)
