// Package httpserver runs an http.Handler until its context is cancelled or the
// process receives SIGINT/SIGTERM, then drains connections and runs shutdown
// hooks (closing notification hubs, stores and clients) in registration order.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP,
//		httpserver.WithLogger(log),
//		httpserver.WithShutdownHook("notifications", hub.Close),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// LivenessHandler and ReadinessHandler back the /healthz and /readyz probes.
package httpserver
