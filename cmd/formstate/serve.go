package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/metrics/prom"
	"github.com/goliatone/go-formstate/pkg/transport/httpform"
)

func serveCmd(a *app) *cobra.Command {
	var (
		addr    string
		title   string
		metrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			handler, err := a.serveHandler(cmd.Context(), title, metrics)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 5 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("serving form", "addr", addr)
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&title, "title", "Form", "page title")
	cmd.Flags().BoolVar(&metrics, "metrics", true, "expose Prometheus metrics on /metrics")
	return cmd
}

// serveHandler wires the form handler and, optionally, the metrics endpoint.
func (a *app) serveHandler(ctx context.Context, title string, metrics bool) (http.Handler, error) {
	var extra []form.Option
	registry := prometheus.NewRegistry()
	if metrics {
		extra = append(extra, form.WithObserver(prom.New(prom.WithRegistry(registry))))
	}

	src, err := a.load(ctx, extra...)
	if err != nil {
		return nil, err
	}
	f, err := src.form()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	if metrics {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}
	r.Mount("/", httpform.New(f,
		httpform.WithLogger(a.logger),
		httpform.WithTitle(title),
	))
	return r, nil
}
