// Package routeauth maps URL path patterns to access requirements.
//
// A Table is an immutable set of Rules keyed by pattern. Resolve canonicalises
// the path (locale segment stripped, trailing slash removed) and looks it up:
//
//  1. exact pattern match;
//  2. otherwise the longest pattern p for which the path starts with p + "/".
//
// A path with no matching rule is public. The longest-prefix policy makes the
// result independent of the order rules were registered in: "/admin/users"
// always wins over "/admin" for "/admin/users/42".
//
//	table := routeauth.MustTable(routeauth.DefaultRules()...)
//	rule, ok := table.Resolve("/en/account/settings")
//
// Tables can also be read from YAML with LoadYAML.
package routeauth
