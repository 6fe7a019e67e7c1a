// Package httpserver runs an http.Handler until its context ends and then
// shuts down gracefully.
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// HealthCheckHandler serves liveness (no checks) and readiness (with
// checks such as pg.Healthcheck) probes.
package httpserver
