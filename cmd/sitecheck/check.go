package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/sonic-site-check/internal/adapter/chart"
	"github.com/couchcryptid/sonic-site-check/internal/adapter/file"
	httpadapter "github.com/couchcryptid/sonic-site-check/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/sonic-site-check/internal/adapter/kafka"
	"github.com/couchcryptid/sonic-site-check/internal/config"
	"github.com/couchcryptid/sonic-site-check/internal/domain"
	"github.com/couchcryptid/sonic-site-check/internal/observability"
	"github.com/couchcryptid/sonic-site-check/internal/pipeline"
	"github.com/spf13/cobra"
)

func checkCmd() *cobra.Command {
	var (
		site  string
		serve bool
	)
	cmd := &cobra.Command{
		Use:   "check <combined-file> <report-prefix>",
		Short: "Check a combined yearly file and write the site reports",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("site") {
				cfg.SiteName = site
			}
			if cmd.Flags().Changed("serve") {
				cfg.ServeEnabled = serve
			}
			return runCheck(cmd, cfg, logger, args[0], args[1])
		},
	}
	cmd.Flags().StringVar(&site, "site", "", "site name used in reports (overrides SITE_NAME)")
	cmd.Flags().BoolVar(&serve, "serve", false, "keep serving the report over HTTP after the check (overrides SERVE_ENABLED)")
	return cmd
}

func runCheck(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, input, prefix string) error {
	metrics := observability.NewMetrics()

	analyzer, err := pipeline.NewAnalyzer(cfg.SiteName,
		domain.FluxBounds{Lower: cfg.H0LowerBound, Upper: cfg.H0UpperBound}, logger, metrics)
	if err != nil {
		return err
	}

	loaders := []pipeline.ReportLoader{file.NewReportWriter(prefix, logger)}
	if cfg.ChartsEnabled {
		loaders = append(loaders, chart.NewRenderer(prefix, logger))
	}
	if cfg.KafkaEnabled() {
		writer := kafkaadapter.NewWriter(cfg, logger)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		loaders = append(loaders, writer)
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaReportTopic)
	}

	p := pipeline.New(file.NewSource(input, logger), analyzer, loaders, logger, metrics)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, runErr := p.Run(ctx)
	if _, ok := p.Latest(); !ok {
		return runErr
	}
	printSummary(cmd.OutOrStdout(), report)

	if cfg.ServeEnabled {
		serveReport(ctx, cfg, p, logger)
	}
	return runErr
}

// serveReport exposes the finished report over HTTP until ctx is done.
func serveReport(ctx context.Context, cfg *config.Config, p *pipeline.Pipeline, logger *slog.Logger) {
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
}
