// Command httpinstrument-demo runs a small instrumented HTTP server. It
// shows the intended wiring: construct all collectors at startup, install
// the middleware, and mount the exposition endpoint on the same router.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi"
	"github.com/joeshaw/envdecode"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/promkit/httpinstrument/instrumentator"
	"github.com/promkit/httpinstrument/metrics"
	"github.com/promkit/httpinstrument/svclog"
)

type config struct {
	Port    int `env:"PORT,default=8080"`
	Logger  svclog.Config
	Metrics instrumentator.Config
}

func main() {
	var cfg config
	envdecode.MustStrictDecode(&cfg)
	logger := svclog.NewLogger(cfg.Logger)

	reg := prometheus.NewRegistry()
	in := instrumentator.New(
		instrumentator.WithConfig(cfg.Metrics),
		instrumentator.WithLogger(logger),
		instrumentator.WithGatherer(reg),
		instrumentator.WithExcludedHandlers("^"+cfg.Metrics.MetricsPath+"$"),
		instrumentator.WithInstrumentation(
			metrics.Full(metrics.FullOpts{Registry: reg}),
			metrics.RequestSize(metrics.SizeOpts{
				Registry: reg,
				Labels:   metrics.Labels{Handler: true},
			}),
		),
	)

	r := chi.NewRouter()
	r.Use(in.Middleware)
	r.Get("/hello/{name}", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "hello, %s\n", chi.URLParam(r, "name"))
	})
	r.Method(http.MethodGet, cfg.Metrics.MetricsPath, in.Handler())

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	var g run.Group
	g.Add(func() error {
		logger.WithField("addr", srv.Addr).Info("listening")
		return srv.ListenAndServe()
	}, func(error) {
		srv.Shutdown(context.Background()) //nolint:errcheck
	})

	sig := make(chan os.Signal, 1)
	g.Add(func() error {
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		if s := <-sig; s != nil {
			logger.Infoln("received signal", s)
		}
		return nil
	}, func(error) {
		signal.Stop(sig)
		select {
		case sig <- nil:
		default:
		}
	})

	if err := g.Run(); err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Fatal()
	}
}
