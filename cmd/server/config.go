package main

import (
	"time"

	"github.com/dmitrymomot/testimony/pkg/environment"
	"github.com/dmitrymomot/testimony/pkg/httpserver"
	"github.com/dmitrymomot/testimony/pkg/redis"
	"github.com/dmitrymomot/testimony/pkg/session"
)

// Config is read from the environment, with .env loaded first when present.
type Config struct {
	Env     environment.Environment `env:"APP_ENV" envDefault:"development"`
	AppName string                  `env:"APP_NAME" envDefault:"testimony"`
	Locales []string                `env:"SUPPORTED_LOCALES" envSeparator:"," envDefault:"en,es,fr,de,pt,uk"`

	// RouteRulesFile replaces the built-in access table with a YAML file.
	RouteRulesFile string `env:"ROUTE_RULES_FILE"`
	// PreviousSecret keeps cookies signed before a secret rotation valid.
	PreviousSecret string `env:"SESSION_PREVIOUS_SECRET"`

	HTTP    httpserver.Config
	Redis   redis.Config
	Session session.Config
	Notify  NotifyConfig
	Toast   ToastConfig
}

// NotifyConfig bounds the notification hub and the enqueue endpoint.
type NotifyConfig struct {
	HubCapacity       int     `env:"NOTIFY_HUB_CAPACITY" envDefault:"10000"`
	RequestsPerMinute int     `env:"NOTIFY_RATE_LIMIT" envDefault:"30"`
	RatePerSecond     float64 `env:"NOTIFY_RATE_PER_SECOND" envDefault:"5"`
	Burst             int     `env:"NOTIFY_BURST" envDefault:"10"`
}

// ToastConfig tunes the toast stack of every stream.
type ToastConfig struct {
	MaxVisible       int           `env:"TOAST_MAX_VISIBLE" envDefault:"3"`
	EnterDelay       time.Duration `env:"TOAST_ENTER_DELAY" envDefault:"50ms"`
	ExitDelay        time.Duration `env:"TOAST_EXIT_DELAY" envDefault:"300ms"`
	AutoDismiss      time.Duration `env:"TOAST_AUTO_DISMISS" envDefault:"5s"`
	ErrorAutoDismiss bool          `env:"TOAST_ERROR_AUTO_DISMISS" envDefault:"false"`
}
