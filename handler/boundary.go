package handler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/testimony/pkg/logger"
	"github.com/dmitrymomot/testimony/pkg/requestid"
)

// BoundaryFallback renders the replacement for a failed subtree.
type BoundaryFallback func(ErrorPageParams) templ.Component

type boundaryConfig struct {
	logger *slog.Logger
	onFail func(r *http.Request, recovered any)
}

// BoundaryOption configures Boundary.
type BoundaryOption func(*boundaryConfig)

// WithBoundaryLogger logs recovered panics to l.
func WithBoundaryLogger(l *slog.Logger) BoundaryOption {
	return func(c *boundaryConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithBoundaryHook is called after a failure was contained.
func WithBoundaryHook(fn func(r *http.Request, recovered any)) BoundaryOption {
	return func(c *boundaryConfig) {
		c.onFail = fn
	}
}

// Boundary contains panics raised by next. The response is buffered, so a
// failure discards partial output and the client receives fallback with a
// 500 status and a retry URL pointing back at the failed request. Retrying
// is a plain new request; nothing of the failed attempt is kept.
//
// Streaming responses (datastar SSE) bypass the buffer and are only recovered.
func Boundary(fallback BoundaryFallback, opts ...BoundaryOption) func(http.Handler) http.Handler {
	cfg := &boundaryConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsDataStar(r) {
				defer func() {
					if rec := recover(); rec != nil {
						if rec == http.ErrAbortHandler {
							panic(rec)
						}
						cfg.report(r, rec)
					}
				}()
				next.ServeHTTP(w, r)
				return
			}

			buf := &bufferedWriter{header: make(http.Header)}
			failed := func() (failed bool) {
				defer func() {
					if rec := recover(); rec != nil {
						if rec == http.ErrAbortHandler {
							panic(rec)
						}
						cfg.report(r, rec)
						failed = true
					}
				}()
				next.ServeHTTP(buf, r)
				return false
			}()

			if !failed {
				buf.flushTo(w)
				return
			}

			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Header().Set("Cache-Control", "no-store")
			w.WriteHeader(http.StatusInternalServerError)
			if fallback == nil {
				_, _ = w.Write([]byte(http.StatusText(http.StatusInternalServerError)))
				return
			}
			params := ErrorPageParams{
				Error:      ErrInternalServerError.Key,
				StatusCode: http.StatusInternalServerError,
				RequestID:  requestid.FromContext(r.Context()),
				RetryURL:   r.URL.RequestURI(),
			}
			if err := fallback(params).Render(r.Context(), w); err != nil {
				cfg.logger.LogAttrs(r.Context(), slog.LevelError, "failed to render boundary fallback",
					logger.Error(err),
					logger.Component("boundary"),
				)
			}
		})
	}
}

func (c *boundaryConfig) report(r *http.Request, rec any) {
	c.logger.LogAttrs(r.Context(), slog.LevelError, "render failed",
		logger.Error(fmt.Errorf("panic: %v", rec)),
		logger.Path(r.URL.Path),
		logger.Component("boundary"),
		slog.String("stack", string(debug.Stack())),
	)
	if c.onFail != nil {
		c.onFail(r, rec)
	}
}

type bufferedWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (b *bufferedWriter) Header() http.Header { return b.header }

func (b *bufferedWriter) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

func (b *bufferedWriter) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

func (b *bufferedWriter) flushTo(w http.ResponseWriter) {
	for k, v := range b.header {
		w.Header()[k] = v
	}
	if b.status == 0 {
		b.status = http.StatusOK
	}
	w.WriteHeader(b.status)
	_, _ = b.body.WriteTo(w)
}
