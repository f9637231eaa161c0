package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/edvin/ri-utilization/internal/api"
	"github.com/edvin/ri-utilization/internal/awsclient"
	"github.com/edvin/ri-utilization/internal/config"
	"github.com/edvin/ri-utilization/internal/logging"
	"github.com/edvin/ri-utilization/internal/metrics"
	"github.com/edvin/ri-utilization/internal/reservation"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate("server"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	awsCfg, err := awsclient.Load(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load aws config")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	bridge := reservation.NewBridge(
		reservation.NewQueryBuilder(reservation.SystemClock),
		awsclient.NewCostExplorer(awsCfg, cfg),
		reservation.NewMetricPublisher(awsclient.NewCloudWatch(awsCfg, cfg), logger),
		metrics.NewInvocations(reg),
		logger,
	)

	// A separate METRICS_ADDR keeps /metrics off the trigger port.
	separateMetrics := cfg.MetricsAddr != ""
	apiSrv := &http.Server{
		Addr:              cfg.HTTPListenAddr,
		Handler:           api.NewServer(logger, bridge, reg, !separateMetrics).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	servers := []*http.Server{apiSrv}
	if separateMetrics {
		servers = append(servers, metrics.NewServer(cfg.MetricsAddr, reg))
	}

	if err := serve(ctx, logger, servers...); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
	logger.Info().Msg("server stopped")
}

// serve runs all servers until ctx is cancelled or one of them fails, then
// shuts the rest down.
func serve(ctx context.Context, logger zerolog.Logger, servers ...*http.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, srv := range servers {
		g.Go(func() error {
			logger.Info().Str("addr", srv.Addr).Msg("starting http server")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("listen on %s: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("shutdown %s: %w", srv.Addr, err))
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}
