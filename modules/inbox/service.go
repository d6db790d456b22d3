package inbox

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/dmitrymomot/testimony/binder"
	"github.com/dmitrymomot/testimony/handler"
	"github.com/dmitrymomot/testimony/pkg/notifications"
	"github.com/dmitrymomot/testimony/pkg/session"
	"github.com/dmitrymomot/testimony/pkg/toast"
)

const (
	DefaultEnqueueLimit  = 30
	DefaultEnqueueWindow = time.Minute
)

// Recorder receives the inbox metrics. *metrics.Collector implements it.
type Recorder interface {
	RecordRateLimited()
	StreamOpened() (closed func())
}

// Service is the notification HTTP surface of a browser session: the
// dropdown list, enqueue, dismiss, action and the live toast stream.
type Service struct {
	hub          *notifications.Hub
	toastOpts    []toast.Option
	errorHandler handler.ErrorHandler
	logger       *slog.Logger
	recorder     Recorder
	limit        int
	window       time.Duration
	stacks       *stacks
}

// Option configures a Service.
type Option func(*Service)

// WithToastOptions configures the toast stack of every stream.
func WithToastOptions(opts ...toast.Option) Option {
	return func(s *Service) { s.toastOpts = append(s.toastOpts, opts...) }
}

// WithErrorHandler sets how failed requests are rendered.
func WithErrorHandler(h handler.ErrorHandler) Option {
	return func(s *Service) {
		if h != nil {
			s.errorHandler = h
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder reports rate limits and open streams to r.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithEnqueueLimit caps POST requests per session within window. A limit of
// zero disables the HTTP limiter; the hub still applies its own bucket.
func WithEnqueueLimit(limit int, window time.Duration) Option {
	return func(s *Service) {
		s.limit = limit
		if window > 0 {
			s.window = window
		}
	}
}

// New returns the inbox service over hub. It panics when hub is nil.
func New(hub *notifications.Hub, opts ...Option) *Service {
	if hub == nil {
		panic("inbox: nil hub")
	}
	s := &Service{
		hub:    hub,
		logger: slog.Default(),
		limit:  DefaultEnqueueLimit,
		window: DefaultEnqueueWindow,
		stacks: newStacks(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.errorHandler == nil {
		s.errorHandler = handler.NewErrorHandler(s.logger, handler.ErrorHandlerConfig{})
	}
	return s
}

// Handle returns the router, meant to be mounted at /notifications behind the
// session middleware.
//
//	r.Mount("/notifications", inbox.New(hub).Handle())
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	wrap := []handler.WrapOption{handler.WithErrorHandler(s.errorHandler)}
	withPath := slices.Concat(wrap, []handler.WrapOption{handler.WithBinders(binder.ChiPath())})
	withBody := slices.Concat(wrap, []handler.WrapOption{handler.WithBinders(binder.JSON(), binder.Form())})

	r.Get("/", handler.Wrap(s.list, wrap...))
	r.Delete("/", handler.Wrap(s.clear, wrap...))
	r.Get("/stream", handler.Wrap(s.stream, wrap...))
	r.Delete("/{id}", handler.Wrap(s.dismiss, withPath...))
	r.Post("/{id}/action", handler.Wrap(s.invoke, withPath...))

	r.Group(func(r chi.Router) {
		if s.limit > 0 {
			r.Use(s.rateLimiter())
		}
		r.Post("/", handler.Wrap(s.enqueue, withBody...))
	})

	return r
}

func (s *Service) rateLimiter() func(http.Handler) http.Handler {
	return httprate.Limit(s.limit, s.window,
		httprate.WithKeyFuncs(sessionKey),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			if s.recorder != nil {
				s.recorder.RecordRateLimited()
			}
			s.errorHandler(handler.NewContext(w, r), handler.ErrTooManyRequests)
		}),
	)
}

// sessionKey limits per browser session, falling back to the client IP for
// requests that reached the inbox without one.
func sessionKey(r *http.Request) (string, error) {
	if sid, ok := session.IDFromContext(r.Context()); ok {
		return "sid:" + sid, nil
	}
	return httprate.KeyByIP(r)
}
