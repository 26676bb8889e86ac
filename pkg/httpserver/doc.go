// Package httpserver wraps net/http with graceful shutdown, env-driven
// timeouts, a start hook and liveness/readiness handlers.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//
//	r := chi.NewRouter()
//	r.Get("/livez", httpserver.LivenessHandler())
//	r.Get("/readyz", httpserver.ReadinessHandler(log, 2*time.Second,
//		httpserver.Check{Name: "postgres", Ping: pg.Healthcheck(pool)},
//	))
//
//	if err := srv.Run(ctx, r); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Run returns when ctx is cancelled, on SIGINT/SIGTERM, or when the listener
// fails. Errors wrap ErrStart and ErrShutdown.
package httpserver
