package web

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/testimony/handler"
	"github.com/dmitrymomot/testimony/pkg/environment"
	"github.com/dmitrymomot/testimony/pkg/guard"
	"github.com/dmitrymomot/testimony/pkg/httpserver"
	"github.com/dmitrymomot/testimony/pkg/i18n"
	"github.com/dmitrymomot/testimony/pkg/metrics"
	"github.com/dmitrymomot/testimony/pkg/notifications"
	"github.com/dmitrymomot/testimony/pkg/requestid"
	"github.com/dmitrymomot/testimony/pkg/routeauth"
	"github.com/dmitrymomot/testimony/pkg/session"
	"github.com/dmitrymomot/testimony/views"
)

// Mountable is a module served under a path prefix.
type Mountable interface {
	Handle() http.Handler
}

// Deps are the collaborators every deployment provides.
type Deps struct {
	Sessions *session.Manager
	Hub      *notifications.Hub
	Table    *routeauth.Table
	// Inbox is mounted at /notifications.
	Inbox Mountable
}

// Service is the testimony web application: pages, sign-in, probes and the
// middleware chain in front of them.
type Service struct {
	deps         Deps
	env          environment.Environment
	appName      string
	locales      *i18n.Locales
	logger       *slog.Logger
	collector    *metrics.Collector
	gatherer     prometheus.Gatherer
	checks       map[string]httpserver.Check
	errorHandler handler.ErrorHandler
	profiles     []Profile
}

// Option configures a Service.
type Option func(*Service)

// WithEnvironment switches production behaviour such as HTTPS redirects.
func WithEnvironment(env environment.Environment) Option {
	return func(s *Service) { s.env = env }
}

// WithAppName sets the name shown in titles and the manifest.
func WithAppName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.appName = name
		}
	}
}

// WithLocales sets the locales accepted as path prefixes.
func WithLocales(l *i18n.Locales) Option {
	return func(s *Service) {
		if l != nil {
			s.locales = l
		}
	}
}

// WithLogger sets the logger of the service and its middleware.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records guard decisions and request latency in c and serves g
// at /metrics.
func WithMetrics(c *metrics.Collector, g prometheus.Gatherer) Option {
	return func(s *Service) {
		s.collector = c
		s.gatherer = g
	}
}

// WithReadinessCheck adds a dependency check to /readyz.
func WithReadinessCheck(name string, check httpserver.Check) Option {
	return func(s *Service) { s.checks[name] = check }
}

// WithErrorHandler sets how failed requests are rendered.
func WithErrorHandler(h handler.ErrorHandler) Option {
	return func(s *Service) {
		if h != nil {
			s.errorHandler = h
		}
	}
}

// WithProfiles replaces the demo sign-in accounts.
func WithProfiles(p ...Profile) Option {
	return func(s *Service) {
		if len(p) > 0 {
			s.profiles = p
		}
	}
}

// New returns the web service. It panics when a dependency is missing.
func New(deps Deps, opts ...Option) *Service {
	if deps.Sessions == nil || deps.Hub == nil || deps.Table == nil {
		panic("web: sessions, hub and route table are required")
	}
	s := &Service{
		deps:     deps,
		env:      environment.Development,
		appName:  "testimony",
		locales:  i18n.MustLocales(i18n.DefaultLocales...),
		logger:   slog.Default(),
		checks:   make(map[string]httpserver.Check),
		profiles: DefaultProfiles(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.errorHandler == nil {
		s.errorHandler = handler.NewErrorHandler(s.logger, handler.ErrorHandlerConfig{
			ErrorPage:  views.ErrorPage,
			ErrorToast: views.ErrorToast,
		})
	}
	return s
}

// Handle builds the full router.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RealIP,
		requestid.Middleware,
		environment.Middleware(s.env),
		s.collector.Middleware,
		middleware.Recoverer,
		s.securityHeaders(),
		i18n.Middleware(s.locales),
	)

	r.NotFound(handler.Wrap(notFound, handler.WithErrorHandler(s.errorHandler)))
	r.MethodNotAllowed(handler.Wrap(methodNotAllowed, handler.WithErrorHandler(s.errorHandler)))

	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(s.logger, s.checks))
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(s.gatherer))
	}
	r.Get("/manifest.webmanifest", s.manifest)

	r.Group(func(r chi.Router) {
		r.Use(
			s.deps.Sessions.EnsureSession,
			guard.Middleware(s.deps.Table, session.Subject,
				guard.WithRecorder(s.collector),
				guard.WithLogger(s.logger),
			),
		)

		if s.deps.Inbox != nil {
			r.Mount("/notifications", s.deps.Inbox.Handle())
		}

		r.Group(func(r chi.Router) {
			r.Use(handler.Boundary(views.BoundaryFallback, handler.WithBoundaryLogger(s.logger)))
			s.pageRoutes(r)
		})
	})

	return r
}

func notFound(handler.Context, struct{}) handler.Response {
	return handler.Error(handler.ErrNotFound)
}

func methodNotAllowed(handler.Context, struct{}) handler.Response {
	return handler.Error(handler.ErrMethodNotAllowed)
}
