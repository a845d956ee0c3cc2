package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ionfleet/fleetctl/internal/config"
	"github.com/ionfleet/fleetctl/internal/metrics"
)

// startMetrics registers the scheduler and financial collectors against the
// global registry and serves them over HTTP until ctx is cancelled.
func startMetrics(ctx context.Context, cfg config.MetricsConfig) error {
	metrics.InitRegistry()

	sched := metrics.NewSchedulerMetricsCollector()
	if err := sched.Register(); err != nil {
		return fmt.Errorf("register scheduler metrics: %w", err)
	}
	metrics.SetGlobalCollector(sched)

	fin := metrics.NewFinancialMetricsCollector()
	if err := fin.Register(); err != nil {
		return fmt.Errorf("register financial metrics: %w", err)
	}
	metrics.SetGlobalFinancialCollector(fin)

	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), Handler: mux}

	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("metrics server error: %v\n", err)
		}
	}()
	return nil
}
