package guard

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/dmitrymomot/testimony/pkg/logger"
	"github.com/dmitrymomot/testimony/pkg/routeauth"
	"github.com/dmitrymomot/testimony/pkg/statemachine"
)

// DefaultNextParam carries the originally requested URL on login redirects.
const DefaultNextParam = "next"

type verdict string

const (
	verdictAllow   verdict = "allow"
	verdictDeny    verdict = "deny"
	verdictRecheck verdict = "recheck"
)

// Navigator performs the redirect of an unauthorized outcome.
type Navigator interface {
	Navigate(ctx context.Context, target string) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, target string) error

func (f NavigatorFunc) Navigate(ctx context.Context, target string) error { return f(ctx, target) }

// Recorder receives every decision for metrics.
type Recorder interface {
	RecordGuardDecision(state, reason string)
}

// Option configures a Guard or Middleware.
type Option func(*options)

type options struct {
	override  *Requirements
	fallback  http.Handler
	fallbackM bool
	nextParam string
	logger    *slog.Logger
	recorder  Recorder
}

// WithOverride makes req the effective requirements, ignoring the table.
func WithOverride(req Requirements) Option {
	return func(o *options) { o.override = &req }
}

// WithFallback renders h instead of redirecting. Middleware serves h for
// unauthorized requests; a Guard built with it never calls its Navigator.
func WithFallback(h http.Handler) Option {
	return func(o *options) {
		o.fallback = h
		o.fallbackM = true
	}
}

// WithNextParam renames the return-to query parameter. Empty disables it.
func WithNextParam(name string) Option {
	return func(o *options) { o.nextParam = name }
}

// WithLogger sets the logger for failed checks and redirects.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRecorder reports decisions to r.
func WithRecorder(r Recorder) Option {
	return func(o *options) { o.recorder = r }
}

func newOptions(opts []Option) options {
	o := options{nextParam: DefaultNextParam, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Guard is one guarded view.
type Guard struct {
	table *routeauth.Table
	nav   Navigator
	opts  options

	mu       sync.Mutex
	override *Requirements
	machine  *statemachine.Machine[State, verdict]
	last     Decision
}

// New returns a Guard in the checking state. table may be nil, in which case
// only an override can protect the view.
func New(table *routeauth.Table, nav Navigator, opts ...Option) *Guard {
	g := &Guard{table: table, nav: nav, opts: newOptions(opts)}
	g.override = g.opts.override
	g.machine = statemachine.MustNew(StateChecking,
		statemachine.WithTransition(StateChecking, StateAuthorized, verdictAllow),
		statemachine.WithTransition(StateChecking, StateUnauthorized, verdictDeny,
			statemachine.WithActions(g.redirect)),
		statemachine.WithTransition(StateAuthorized, StateChecking, verdictRecheck),
		statemachine.WithTransition(StateUnauthorized, StateChecking, verdictRecheck),
	)
	return g
}

// State returns the current state.
func (g *Guard) State() State {
	return g.machine.Current()
}

// Decision returns the outcome of the last Check.
func (g *Guard) Decision() Decision {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last
}

// SetOverride replaces the override requirements; nil falls back to the
// table. The next Check uses it.
func (g *Guard) SetOverride(req *Requirements) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if req == nil {
		g.override = nil
		return
	}
	r := *req
	g.override = &r
}

// Check re-runs the authorization for path and subject. An unauthorized
// outcome navigates to the decision's redirect unless a fallback is set; a
// navigation failure is returned and leaves the guard in checking.
func (g *Guard) Check(ctx context.Context, path string, subject Subject) (Decision, error) {
	return g.check(ctx, path, path, subject)
}

func (g *Guard) check(ctx context.Context, path, returnTo string, subject Subject) (Decision, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.machine.Current() != StateChecking {
		if err := g.machine.Fire(ctx, verdictRecheck); err != nil {
			return Decision{}, err
		}
	}

	req, pattern := g.requirements(path)
	d := Evaluate(subject, req)
	d.Path = path
	d.Pattern = pattern
	if d.Reason == ReasonUnauthenticated {
		d.Redirect = withNext(d.Redirect, g.opts.nextParam, returnTo)
	}
	g.last = d

	v := verdictAllow
	if d.State == StateUnauthorized {
		v = verdictDeny
	}
	err := g.machine.Fire(ctx, v)
	g.record(ctx, d, subject)
	return d, err
}

// requirements picks the override, then the table rule. Must hold g.mu.
func (g *Guard) requirements(path string) (*Requirements, string) {
	if g.override != nil {
		r := *g.override
		return &r, ""
	}
	if g.table == nil {
		return nil, ""
	}
	rule, ok := g.table.Resolve(path)
	if !ok {
		return nil, ""
	}
	r := FromRule(*rule)
	return &r, rule.Pattern
}

// redirect is the action of checking -> unauthorized. Runs with g.mu held.
func (g *Guard) redirect(ctx context.Context, _, _ State, _ verdict) error {
	if g.opts.fallbackM || g.nav == nil {
		return nil
	}
	if err := g.nav.Navigate(ctx, g.last.Redirect); err != nil {
		return fmt.Errorf("%w: %w", ErrNavigation, err)
	}
	return nil
}

func (g *Guard) record(ctx context.Context, d Decision, subject Subject) {
	if g.opts.recorder != nil {
		g.opts.recorder.RecordGuardDecision(string(d.State), string(d.Reason))
	}
	if d.State != StateUnauthorized {
		return
	}
	attrs := []slog.Attr{
		logger.Path(d.Path),
		logger.Reason(string(d.Reason)),
		slog.String("redirect", d.Redirect),
		logger.Component("guard"),
	}
	if subject != nil {
		attrs = append(attrs, logger.Role(subject.Role()), logger.Tier(subject.Tier()))
	}
	g.opts.logger.LogAttrs(ctx, slog.LevelInfo, "access denied", attrs...)
}

// withNext appends the return-to parameter to a login redirect.
func withNext(target, param, returnTo string) string {
	if param == "" || returnTo == "" || returnTo == target {
		return target
	}
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + param + "=" + url.QueryEscape(returnTo)
}
