package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/unirank/unirank/internal/adapters/http/api"
	"github.com/unirank/unirank/internal/adapters/loader"
	mcpserver "github.com/unirank/unirank/internal/adapters/mcp"
	"github.com/unirank/unirank/internal/adapters/repository"
	service "github.com/unirank/unirank/internal/app"
	"github.com/unirank/unirank/internal/config"
	"github.com/unirank/unirank/pkg/logger"
	"github.com/unirank/unirank/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics.
	// We collect our own custom system metrics instead.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Logs go to stderr; stdout belongs to the MCP stdio transport.
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input).
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Load the dataset once; the table is immutable afterwards.
	loadStart := time.Now()
	records, err := loader.LoadCSV(ctx, cfg.CSVPath)
	if err != nil {
		log.Error(ctx, "failed to load dataset", logger.String("path", cfg.CSVPath), logger.Error(err))
		return
	}
	store, err := repository.NewTableStore(ctx, records)
	if err != nil {
		log.Error(ctx, "failed to build ranking table", logger.Error(err))
		return
	}
	metrics.RecordDatasetLoad(float64(time.Since(loadStart).Milliseconds()), time.Now().Unix())

	stats := store.Stats(ctx)
	log.Info(ctx, "dataset loaded",
		logger.String("path", cfg.CSVPath),
		logger.Int("records", stats.Records),
		logger.Int("universities", stats.Universities),
		logger.Int("years", stats.Years),
		logger.Int("countries", stats.Countries))

	svc := service.New(store,
		service.WithLogger(log),
		service.WithTopUniversitiesCap(cfg.TopUniversitiesCap),
		service.WithMaxTopN(cfg.MaxTopN),
	)

	go startSystemMetricsUpdater(ctx)

	// Operational HTTP server for probes and scrapers.
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		api.NewServer(store).Register(ctx, mux)

		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadTimeout:       readTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
			ReadHeaderTimeout: readHeaderTimeout,
		}
		go func() {
			log.Info(ctx, "starting operational HTTP server", logger.String("addr", cfg.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error(ctx, "operational HTTP server failed", logger.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error(ctx, "operational HTTP server shutdown failed", logger.Error(err))
			}
		}()
	}

	// MCP server over the configured transport, blocking until shutdown.
	mcpSrv := mcpserver.New(svc, logger.Named("mcp"))
	switch mcpserver.Transport(cfg.Transport) {
	case mcpserver.TransportHTTP:
		err = mcpSrv.ServeHTTP(ctx, cfg.MCPAddr)
	default:
		err = mcpSrv.ServeStdio(ctx)
	}
	if err != nil {
		log.Error(ctx, "mcp server failed", logger.Error(err))
		return
	}
	log.Info(ctx, "server stopped")
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
