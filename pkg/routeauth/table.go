package routeauth

import (
	"fmt"
	"path"
	"strings"

	"github.com/dmitrymomot/testimony/pkg/i18n"
)

// Table resolves paths to rules. It is immutable and safe for concurrent use.
type Table struct {
	rules   []Rule
	exact   map[string]int
	locales *i18n.Locales
}

// TableOption configures a Table.
type TableOption func(*Table)

// WithLocales sets the locale segments stripped before lookup.
// Defaults to i18n.DefaultLocales.
func WithLocales(l *i18n.Locales) TableOption {
	return func(t *Table) {
		if l != nil {
			t.locales = l
		}
	}
}

// NewTable validates rules and builds a table.
func NewTable(rules []Rule, opts ...TableOption) (*Table, error) {
	t := &Table{
		rules:   make([]Rule, 0, len(rules)),
		exact:   make(map[string]int, len(rules)),
		locales: i18n.MustLocales(i18n.DefaultLocales...),
	}
	for _, opt := range opts {
		opt(t)
	}

	for _, r := range rules {
		pattern, err := normalizePattern(r.Pattern)
		if err != nil {
			return nil, err
		}
		if _, dup := t.exact[pattern]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePattern, pattern)
		}
		if !r.RequiresAuth && (r.MinRole != nil || r.MinTier != nil) {
			return nil, fmt.Errorf("%w: %s declares role or tier without requires_auth", ErrInvalidRule, pattern)
		}
		r.Pattern = pattern
		t.exact[pattern] = len(t.rules)
		t.rules = append(t.rules, r)
	}

	return t, nil
}

// MustTable is like NewTable but panics on invalid rules.
func MustTable(rules ...Rule) *Table {
	t, err := NewTable(rules)
	if err != nil {
		panic(err)
	}
	return t
}

// Rules returns a copy of the table's rules in registration order.
func (t *Table) Rules() []Rule {
	return append([]Rule(nil), t.rules...)
}

// Canonical strips the locale segment, cleans the path and removes any
// trailing slash.
func (t *Table) Canonical(p string) string {
	_, rest := t.locales.SplitPath(p)
	return cleanPath(rest)
}

// Resolve returns the rule governing p. The second value is false when the
// path is public.
func (t *Table) Resolve(p string) (*Rule, bool) {
	canonical := t.Canonical(p)

	if i, ok := t.exact[canonical]; ok {
		r := t.rules[i]
		return &r, true
	}

	best := -1
	for i, r := range t.rules {
		if r.Pattern == "/" || !strings.HasPrefix(canonical, r.Pattern+"/") {
			continue
		}
		if best < 0 || len(r.Pattern) > len(t.rules[best].Pattern) {
			best = i
		}
	}
	if best < 0 {
		return nil, false
	}

	r := t.rules[best]
	return &r, true
}

func normalizePattern(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" || !strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPattern, p)
	}
	return cleanPath(p), nil
}

func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
