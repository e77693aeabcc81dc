package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"taxguard/internal/nexus"
	"taxguard/internal/platform/config"
	"taxguard/internal/platform/httpserver"
	"taxguard/internal/platform/logger"
	"taxguard/internal/platform/metrics"
	"taxguard/internal/preflight"
	preflighthandler "taxguard/internal/preflight/handler"
	pfmetrics "taxguard/internal/preflight/metrics"
	httptransport "taxguard/internal/transport/http"
	"taxguard/pkg/platform/audit/publishers/compliance"
	"taxguard/pkg/platform/audit/sink/logsink"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "taxguard: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	// The threshold table is loaded once and never changes for the life of the process.
	table, err := nexus.LoadTable(cfg.NexusTablePath)
	if err != nil {
		return fmt.Errorf("load nexus table: %w", err)
	}
	log.Info("nexus table loaded",
		"path", cfg.NexusTablePath,
		"jurisdictions", table.Jurisdictions(),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	auditLog := log.With("component", "audit")
	svc, err := preflight.New(table,
		preflight.WithLogger(log),
		preflight.WithMetrics(pfmetrics.NewWithRegisterer(reg)),
		preflight.WithAuditPublisher(compliance.New(logsink.New(auditLog), compliance.WithLogger(log))),
	)
	if err != nil {
		return err
	}

	router := httptransport.NewRouter(log, reg, metrics.New(reg),
		preflighthandler.New(svc, log),
	)
	srv := httpserver.New(cfg.Addr, router, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting taxguard", "addr", cfg.Addr)
	if err := httpserver.Run(ctx, srv, nil, cfg.ShutdownTimeout, log); err != nil {
		log.Error("taxguard stopped with error", slog.Any("error", err))
		return err
	}
	return nil
}
