package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gobusters/ectoenv"
	"github.com/Gobusters/ectologger"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.uber.org/zap"

	"github.com/Ramsey-B/laurel/config"
	"github.com/Ramsey-B/laurel/internal/handlers"
	"github.com/Ramsey-B/laurel/internal/repositories/property"
	"github.com/Ramsey-B/laurel/pkg/comparables"
	"github.com/Ramsey-B/laurel/pkg/database"
	"github.com/Ramsey-B/laurel/pkg/kafka"
	"github.com/Ramsey-B/laurel/pkg/middleware"
	"github.com/Ramsey-B/laurel/pkg/processor"
	"github.com/Ramsey-B/laurel/pkg/startup"
	"github.com/Ramsey-B/laurel/pkg/tracing"
)

const version = "0.1.0"

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	var cfg config.Config
	if err := ectoenv.BindEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, zapFlush := newLogger(&cfg)
	defer zapFlush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, &cfg)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize tracing")
		os.Exit(1)
	}

	var (
		db       database.DB
		producer *kafka.Producer
		consumer *kafka.Consumer
		server   *echo.Echo
		health   *handlers.HealthChecker
	)

	boot := startup.New(logger, cfg.StartupMaxAttempts)

	boot.AddDependency(&startup.Func{
		Name: "database",
		StartFunc: func(ctx context.Context) error {
			conn, err := database.Connect(ctx, &cfg, logger)
			if err != nil {
				return err
			}
			if err := database.Migrate(conn, &cfg, logger); err != nil {
				_ = conn.Close()
				return err
			}
			db = conn
			return nil
		},
		StopFunc: func(ctx context.Context) error {
			if db == nil {
				return nil
			}
			return db.Close()
		},
	})

	boot.AddDependency(&startup.Func{
		Name: "kafka-producer",
		StartFunc: func(ctx context.Context) error {
			producer = kafka.NewProducer(kafka.ProducerConfig{
				Brokers:      cfg.KafkaBrokers,
				Topic:        cfg.KafkaOutputTopic,
				BatchSize:    cfg.KafkaBatchSize,
				BatchTimeout: time.Duration(cfg.KafkaBatchTimeout) * time.Millisecond,
				RequiredAcks: cfg.KafkaRequiredAcks,
				Compression:  cfg.KafkaCompression,
			}, logger)
			return nil
		},
		StopFunc: func(ctx context.Context) error {
			if producer == nil {
				return nil
			}
			return producer.Close()
		},
	})

	boot.AddDependency(&startup.Func{
		Name: "kafka-consumer",
		Deps: []string{"database", "kafka-producer"},
		StartFunc: func(ctx context.Context) error {
			if !cfg.KafkaConsumerEnabled {
				logger.Info("Kafka consumer disabled")
				return nil
			}

			propertyRepo := property.NewRepository(db, logger)
			docProcessor := processor.NewDocumentProcessor(logger, propertyRepo, producer)
			consumer = kafka.NewConsumer(cfg, logger, docProcessor.ProcessMessage)
			return consumer.Start(ctx)
		},
		StopFunc: func(ctx context.Context) error {
			if consumer == nil {
				return nil
			}
			return consumer.Stop()
		},
	})

	boot.AddDependency(&startup.Func{
		Name: "http-server",
		Deps: []string{"database", "kafka-producer"},
		StartFunc: func(ctx context.Context) error {
			propertyRepo := property.NewRepository(db, logger)
			comparableService := comparables.NewService(logger, propertyRepo, producer, comparables.Config{
				Limit: cfg.ComparableLimit,
			})

			server = buildServer(&cfg, logger)

			health = handlers.NewHealthChecker(db, version)
			health.RegisterRoutes(server)

			api := server.Group("/api/v1")
			handlers.NewPropertyHandler(propertyRepo, logger).RegisterRoutes(api)
			handlers.NewComparableHandler(comparableService, logger).RegisterRoutes(api)

			go func() {
				addr := fmt.Sprintf(":%d", cfg.Port)
				if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
					logger.WithError(err).Error("HTTP server stopped unexpectedly")
					stop()
				}
			}()

			health.SetReady(true)
			return nil
		},
		StopFunc: func(ctx context.Context) error {
			if server == nil {
				return nil
			}
			if health != nil {
				health.SetReady(false)
			}
			return server.Shutdown(ctx)
		},
	})

	if err := boot.Start(ctx); err != nil {
		logger.WithError(err).Error("Startup failed")
		os.Exit(1)
	}

	logger.WithField("port", cfg.Port).Infof("%s started", cfg.AppName)

	<-ctx.Done()
	logger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := boot.Stop(shutdownCtx); err != nil {
		logger.WithError(err).Error("Shutdown did not complete cleanly")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.WithError(err).Error("Failed to shut down tracing")
	}
}

// newLogger wires ectologger onto a zap backend. Pretty logs use zap's
// development encoder for local work; production gets JSON.
func newLogger(cfg *config.Config) (ectologger.Logger, func()) {
	var zapLogger *zap.Logger
	var err error
	if cfg.PrettyLogs {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}

	logger := ectologger.NewEctoLogger(func(m ectologger.EctoLogMessage) {
		zapLogger.Info("log", zap.Any("entry", m))
	})

	return logger, func() { _ = zapLogger.Sync() }
}

// buildServer constructs the echo instance with the shared middleware stack.
func buildServer(cfg *config.Config, logger ectologger.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = time.Duration(cfg.HttpServerReadTimeoutSeconds) * time.Second
	e.Server.WriteTimeout = time.Duration(cfg.HttpServerWriteTimeoutSeconds) * time.Second
	e.Server.IdleTimeout = time.Duration(cfg.HttpServerIdleTimeoutSeconds) * time.Second
	e.Server.ReadHeaderTimeout = time.Duration(cfg.ReadHeaderTimeoutSeconds) * time.Second
	e.Server.MaxHeaderBytes = cfg.MaxHeaderBytes

	e.Use(otelecho.Middleware(cfg.AppName))
	e.Use(middleware.Context())
	e.Use(middleware.Logger(logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: cfg.AllowMethods,
	}))
	e.Use(echomiddleware.Recover())

	e.HTTPErrorHandler = middleware.Error(logger)

	return e
}
