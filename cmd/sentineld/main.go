package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Valentinus295/econsentinel/pkg/auth"
	"github.com/Valentinus295/econsentinel/pkg/kafka"
	"github.com/Valentinus295/econsentinel/pkg/observability"
	"github.com/Valentinus295/econsentinel/pkg/postgres"

	"github.com/Valentinus295/econsentinel/internal/application/usecase"
	"github.com/Valentinus295/econsentinel/internal/domain/port"
	"github.com/Valentinus295/econsentinel/internal/domain/service"
	"github.com/Valentinus295/econsentinel/internal/domain/valueobject"
	"github.com/Valentinus295/econsentinel/internal/infrastructure/config"
	infraCSV "github.com/Valentinus295/econsentinel/internal/infrastructure/csv"
	infraKafka "github.com/Valentinus295/econsentinel/internal/infrastructure/kafka"
	infraPostgres "github.com/Valentinus295/econsentinel/internal/infrastructure/postgres"
	"github.com/Valentinus295/econsentinel/internal/infrastructure/provider"
	grpcPresentation "github.com/Valentinus295/econsentinel/internal/presentation/grpc"
	"github.com/Valentinus295/econsentinel/internal/presentation/rest"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "econsentinel: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration.
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize structured logger.
	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "econsentinel",
	})
	logger.Info("starting econsentinel",
		"grpc_port", cfg.GRPCPort,
		"http_port", cfg.HTTPPort,
		"dataset", cfg.Dataset.Path,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: "econsentinel",
	})
	if err != nil {
		return fmt.Errorf("initialize metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()

	// Optional database pool: without a password the archive is skipped
	// and the service runs degraded.
	var pool *pgxpool.Pool
	var runRepo port.SimulationRunRepository
	if cfg.ArchiveEnabled() {
		pool, err = postgres.NewPool(ctx, postgres.Config{
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			User:     cfg.DB.User,
			Password: cfg.DB.Password,
			Database: cfg.DB.Name,
			SSLMode:  cfg.DB.SSLMode,
			MaxConns: cfg.DB.MaxConns,
			MinConns: cfg.DB.MinConns,
		})
		if err != nil {
			return fmt.Errorf("create database pool: %w", err)
		}
		defer pool.Close()
		logger.Info("database pool created")

		migDSN := postgres.Config{
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			User:     cfg.DB.User,
			Password: cfg.DB.Password,
			Database: cfg.DB.Name,
			SSLMode:  cfg.DB.SSLMode,
		}.DSN()
		if migErr := postgres.RunMigrations(migDSN, "file://migrations"); migErr != nil {
			logger.Warn("migration warning", "error", migErr)
		}

		runRepo = infraPostgres.NewSimulationRunRepo(pool)
	} else {
		logger.Info("archive disabled, simulation runs will not be persisted")
	}

	// Optional Kafka publisher.
	var publisher port.EventPublisher
	if cfg.EventsEnabled() {
		kafkaProducer := kafka.NewProducer(kafka.Config{
			Brokers: cfg.Kafka.Brokers,
		})
		defer kafkaProducer.Close()
		publisher = infraKafka.NewEventPublisher(kafkaProducer, logger)
		logger.Info("kafka producer created", "brokers", cfg.Kafka.Brokers)
	} else {
		logger.Info("kafka disabled, alert events will not be published")
	}

	// Region snapshot.
	regionRepo := infraCSV.NewRegionLoader(cfg.Dataset.Path, cfg.Dataset.BaseRiskColumn, logger)

	// Market providers: static for dev/CI, HTTP with cache and fallback otherwise.
	var rateProvider port.RateProvider
	var fuelProvider port.FuelPriceProvider
	if cfg.Provider.Mode == "static" {
		rateProvider = provider.NewStaticRateProvider()
		fuelProvider = provider.NewStaticFuelPriceProvider()
		logger.Info("using static market providers")
	} else {
		rateProvider = provider.NewCachedRateProvider(
			provider.NewHTTPRateProvider(cfg.Provider.ForexURL, cfg.Provider.Timeout),
			cfg.Provider.CacheTTL, logger,
		)
		if cfg.Provider.FuelURL != "" {
			fuelProvider = provider.NewCachedFuelPriceProvider(
				provider.NewHTTPFuelPriceProvider(cfg.Provider.FuelURL, cfg.Provider.Timeout),
				cfg.Provider.CacheTTL, logger,
			)
		} else {
			fuelProvider = provider.NewStaticFuelPriceProvider()
			logger.Info("no fuel endpoint configured, using static pump price")
		}
	}

	// Domain services.
	policy := valueobject.RiskPolicy{
		FuelTier1:      cfg.Policy.FuelTier1,
		FuelBonus1:     cfg.Policy.FuelBonus1,
		FuelTier2:      cfg.Policy.FuelTier2,
		FuelBonus2:     cfg.Policy.FuelBonus2,
		TaxThreshold:   cfg.Policy.TaxThreshold,
		TaxMultiplier:  cfg.Policy.TaxMultiplier,
		SubsidyRelief:  cfg.Policy.SubsidyRelief,
		MapSizeDivisor: cfg.Policy.MapSizeDivisor,
	}
	riskEngine, err := service.NewRiskEngine(policy)
	if err != nil {
		return fmt.Errorf("configure risk engine: %w", err)
	}
	feedComposer := service.NewFeedComposer()

	// Use cases.
	simulate := usecase.NewSimulateScenario(regionRepo, runRepo, fuelProvider, publisher, riskEngine, feedComposer, logger)
	snapshot := usecase.NewGetMarketSnapshot(rateProvider, fuelProvider, logger)
	lagTrend := usecase.NewGetLagTrend()

	// JWT validation (public key preferred, secret as fallback).
	var jwtSvc *auth.JWTService
	if cfg.AuthEnabled() {
		jwtCfg := auth.JWTConfig{Issuer: cfg.Auth.Issuer}
		if cfg.Auth.PublicKeyFile != "" {
			keyData, loadErr := auth.LoadKeyFromFile(cfg.Auth.PublicKeyFile)
			if loadErr != nil {
				return fmt.Errorf("load JWT public key file: %w", loadErr)
			}
			jwtCfg.PublicKeyPEM = string(keyData)
		} else {
			jwtCfg.Secret = cfg.Auth.Secret
		}
		jwtSvc, err = auth.NewJWTService(jwtCfg)
		if err != nil {
			return fmt.Errorf("initialize JWT service: %w", err)
		}
	}

	// gRPC server.
	handler := grpcPresentation.NewHandler(simulate, snapshot, lagTrend, logger)
	grpcServer := grpcPresentation.NewServer(handler, logger, cfg.GRPCPort, jwtSvc, cfg.TLS)

	// HTTP server: health checks and metrics.
	healthHandler := rest.NewHealthHandler(pool, regionRepo, logger)
	mux := http.NewServeMux()
	healthHandler.RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		errCh <- grpcServer.Start()
	}()

	go func() {
		logger.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	// Graceful shutdown.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		logger.Error("server error", "error", err)
		return err
	}

	// Shutdown sequence.
	logger.Info("shutting down")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	cancel()
	logger.Info("econsentinel stopped")
	return nil
}
