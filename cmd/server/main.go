package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"

	"github.com/dmitrymomot/testimony/handler"
	"github.com/dmitrymomot/testimony/modules/inbox"
	"github.com/dmitrymomot/testimony/modules/web"
	"github.com/dmitrymomot/testimony/pkg/config"
	"github.com/dmitrymomot/testimony/pkg/cookie"
	"github.com/dmitrymomot/testimony/pkg/environment"
	"github.com/dmitrymomot/testimony/pkg/httpserver"
	"github.com/dmitrymomot/testimony/pkg/i18n"
	"github.com/dmitrymomot/testimony/pkg/logger"
	"github.com/dmitrymomot/testimony/pkg/metrics"
	"github.com/dmitrymomot/testimony/pkg/notifications"
	"github.com/dmitrymomot/testimony/pkg/redis"
	"github.com/dmitrymomot/testimony/pkg/requestid"
	"github.com/dmitrymomot/testimony/pkg/routeauth"
	"github.com/dmitrymomot/testimony/pkg/session"
	"github.com/dmitrymomot/testimony/pkg/toast"
	"github.com/dmitrymomot/testimony/views"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.AppName),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			session.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	locales, err := i18n.NewLocales(cfg.Locales...)
	if err != nil {
		return err
	}

	table, err := loadRouteTable(cfg.RouteRulesFile, locales)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(reg)

	serverOpts := []httpserver.Option{httpserver.WithLogger(log)}
	webOpts := []web.Option{
		web.WithEnvironment(cfg.Env),
		web.WithAppName(cfg.AppName),
		web.WithLocales(locales),
		web.WithLogger(log),
		web.WithMetrics(collector, reg),
	}

	store, closeStore, err := sessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	serverOpts = append(serverOpts, httpserver.WithShutdownHook("sessions", httpserver.Closer(closeStore)))
	if rs, ok := store.(*session.RedisStore); ok {
		webOpts = append(webOpts, web.WithReadinessCheck("redis", redis.Healthcheck(rs.Client())))
	}

	cookieOpts := []cookie.Option{
		cookie.WithSecure(cfg.Session.Secure || cfg.Env.IsProduction()),
		cookie.WithDomain(cfg.Session.Domain),
	}
	if cfg.Session.StrictSameSite {
		cookieOpts = append(cookieOpts, cookie.WithStrictSameSite())
	}
	jar, err := cookie.New([]string{cfg.Session.Secret, cfg.PreviousSecret}, cookieOpts...)
	if err != nil {
		return err
	}
	sessions := session.New(session.NewCookieTransport(jar, cfg.Session.CookieName),
		session.WithStore(store),
		session.WithConfig(cfg.Session),
		session.WithLogger(log),
	)

	hub := notifications.NewHub(
		notifications.WithCapacity(cfg.Notify.HubCapacity),
		notifications.WithRateLimit(rate.Limit(cfg.Notify.RatePerSecond), cfg.Notify.Burst),
		notifications.WithRateRecorder(collector),
		notifications.WithHubLogger(log),
		notifications.WithStoreOptions(
			notifications.WithRecorder(collector),
			notifications.WithStoreLogger(log),
		),
	)
	serverOpts = append(serverOpts, httpserver.WithShutdownHook("notifications", httpserver.Closer(hub.Close)))

	errorHandler := handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
		ErrorPage:   views.ErrorPage,
		ErrorToast:  views.ErrorToast,
		ToastTarget: "#" + views.ErrorToastRegionID,
	})

	inboxSvc := inbox.New(hub,
		inbox.WithLogger(log),
		inbox.WithErrorHandler(errorHandler),
		inbox.WithRecorder(collector),
		inbox.WithEnqueueLimit(cfg.Notify.RequestsPerMinute, 0),
		inbox.WithToastOptions(
			toast.WithMaxVisible(cfg.Toast.MaxVisible),
			toast.WithEnterDelay(cfg.Toast.EnterDelay),
			toast.WithExitDelay(cfg.Toast.ExitDelay),
			toast.WithAutoDismiss(cfg.Toast.AutoDismiss),
			toast.WithErrorAutoDismiss(cfg.Toast.ErrorAutoDismiss),
			toast.WithLogger(log),
		),
	)

	webOpts = append(webOpts, web.WithErrorHandler(errorHandler))
	app := web.New(web.Deps{
		Sessions: sessions,
		Hub:      hub,
		Table:    table,
		Inbox:    inboxSvc,
	}, webOpts...)

	srv := httpserver.NewFromConfig(cfg.HTTP, append(serverOpts,
		httpserver.WithStartHook(func(addr string) {
			log.Info("listening", slog.String("addr", addr), slog.Int("routes", len(table.Rules())))
		}),
	)...)

	return srv.Run(ctx, app.Handle())
}

func loadRouteTable(path string, locales *i18n.Locales) (*routeauth.Table, error) {
	if path == "" {
		return routeauth.NewTable(routeauth.DefaultRules(), routeauth.WithLocales(locales))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return routeauth.LoadYAML(f, routeauth.WithLocales(locales))
}

func sessionStore(ctx context.Context, cfg Config) (session.Store, func() error, error) {
	if cfg.Session.Store != "redis" {
		store := session.NewMemoryStore(cfg.Session.CleanupInterval)
		return store, store.Close, nil
	}

	client, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	return session.NewRedisStore(client), client.Close, nil
}
