package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/testimony/pkg/logger"
	"github.com/dmitrymomot/testimony/pkg/requestid"
)

// ErrorPageParams feed the full-page error component.
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string
}

// ErrorToastParams feed the error toast sent to datastar requests.
type ErrorToastParams struct {
	Message   string
	Type      string // "error" or "warning"
	RequestID string
}

// ErrorHandlerConfig selects the components NewErrorHandler renders.
type ErrorHandlerConfig struct {
	ErrorPage   func(ErrorPageParams) templ.Component
	ErrorToast  func(ErrorToastParams) templ.Component
	ToastTarget string
	ToastMode   datastar.ElementPatchMode
}

// ErrorInfo is the client-facing classification of an error.
type ErrorInfo struct {
	StatusCode int
	Message    string
	Type       string
	LogLevel   slog.Level
}

// Classify maps err to a status, a safe message and a log level. Messages of
// unknown errors are never exposed.
func Classify(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Message:    ErrInternalServerError.Key,
	}

	var valErr ValidationError
	var httpErr HTTPError
	switch {
	case errors.As(err, &valErr):
		info.StatusCode = http.StatusUnprocessableEntity
		info.Message = valErr.Error()
	case errors.As(err, &httpErr):
		info.StatusCode = httpErr.Code
		info.Message = httpErr.Key
	}

	info.Type = "error"
	info.LogLevel = slog.LevelError
	if info.StatusCode < http.StatusInternalServerError {
		info.Type = "warning"
		info.LogLevel = slog.LevelWarn
	}

	return info
}

// NewErrorHandler logs err at warn (4xx) or error (5xx) and renders JSON for
// API clients, a toast patch for datastar requests and an error page otherwise.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-errors"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchAppend
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		w := ctx.ResponseWriter()
		reqID := requestid.FromContext(r.Context())
		info := Classify(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.Error(err),
			logger.Path(r.URL.Path),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.Bool("datastar", IsDataStar(r)),
			logger.Component("error_handler"),
		)

		var resp Response
		switch {
		case WantsJSON(r):
			resp = JSONError(err)
		case IsDataStar(r):
			if cfg.ErrorToast == nil {
				return
			}
			resp = Templ(cfg.ErrorToast(ErrorToastParams{
				Message:   info.Message,
				Type:      info.Type,
				RequestID: reqID,
			}), WithTarget(cfg.ToastTarget), WithPatchMode(cfg.ToastMode))
		case cfg.ErrorPage != nil:
			resp = TemplWithStatus(info.StatusCode, cfg.ErrorPage(ErrorPageParams{
				Error:      info.Message,
				StatusCode: info.StatusCode,
				RequestID:  reqID,
				RetryURL:   r.URL.RequestURI(),
			}))
		default:
			http.Error(w, info.Message, info.StatusCode)
			return
		}

		if renderErr := resp.Render(w, r); renderErr != nil {
			log.LogAttrs(r.Context(), slog.LevelError, "failed to render error response",
				logger.Error(renderErr),
				logger.Component("error_handler"),
			)
		}
	}
}
