package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"consultoc-api/config"
	"consultoc-api/database"
	"consultoc-api/internal/api/billing"
	"consultoc-api/internal/api/reports"
	"consultoc-api/internal/api/status"
	stripewebhooks "consultoc-api/internal/api/stripewebhook"
	"consultoc-api/internal/api/valuations"
	routes "consultoc-api/internal/app/http"
	"consultoc-api/internal/clock"
	"consultoc-api/internal/estimator"
	stripeinfra "consultoc-api/internal/infra/stripe"
	"consultoc-api/internal/notify"
	"consultoc-api/internal/report"
	"consultoc-api/internal/store"
	"consultoc-api/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New(logger.Config{})
		boot.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.SetGlobalLogger(log)

	db, err := database.Open(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	est, err := estimator.New(cfg.PricingModel, cfg.UnitPricePerSqm)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build estimator")
	}
	log.Info().Str("modelo", est.Name()).Msg("estimator ready")

	clk := clock.NewSystem()
	valuationStore := store.NewValuations(db, clk)
	paymentStore := store.NewPayments(db, clk)

	reportStorage, err := newReportStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up report storage")
	}

	handlers := routes.Handlers{
		Status:     status.NewHandler(database.NewProbe(db), log),
		Valuations: valuations.NewHandler(est, valuationStore, log),
		Billing: billing.NewHandler(
			stripeinfra.NewGateway(cfg.StripeSecretKey, cfg.AppURL, log),
			valuationStore, paymentStore, log,
		),
		Webhook: stripewebhooks.NewHandler(
			stripeinfra.NewVerifier(cfg.StripeWebhookSecret),
			paymentStore, newNotifier(cfg, log), log,
		),
		Reports: reports.NewHandler(report.NewGenerator(reportStorage, clk, log), valuationStore, log),
	}

	gin.SetMode(cfg.GinMode)
	r := gin.Default()
	r.Use(cors.New(corsConfig(cfg.CORSOrigin)))
	routes.RegisterRoutes(r, handlers, cfg.AdminJWTSecret)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
		}
	case <-stopCtx.Done():
		log.Info().Msg("shutdown signal received, stopping server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server shutdown error")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server stopped")
}

func newNotifier(cfg *config.Config, log zerolog.Logger) notify.Notifier {
	if !cfg.SMTPEnabled() {
		log.Warn().Msg("SMTP not configured, payment notices go to the log")
		return notify.NewLogNotifier(log)
	}
	return notify.NewSMTPNotifier(notify.SMTPConfig{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		User:      cfg.SMTPUser,
		Password:  cfg.SMTPPassword,
		From:      cfg.SMTPFrom,
		LeadInbox: cfg.LeadAlertEmail,
	}, log)
}

func newReportStorage(cfg *config.Config) (report.Storage, error) {
	if cfg.ReportS3Bucket == "" {
		return report.NewDirStorage(cfg.ReportDir)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return report.NewS3Storage(ctx, report.S3Config{
		Bucket:   cfg.ReportS3Bucket,
		Prefix:   cfg.ReportS3Prefix,
		Region:   cfg.AWSRegion,
		Endpoint: cfg.S3Endpoint,
	})
}

func corsConfig(origins string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	var list []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" && o != "*" {
			list = append(list, o)
		}
	}
	if len(list) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = list
	c.AllowCredentials = true
	return c
}
