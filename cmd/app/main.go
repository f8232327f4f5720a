package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"steelorders/cmd"
	httpin "steelorders/internal/adapters/in/http"
	postgres_adapter "steelorders/internal/adapters/out/postgres"
	"steelorders/internal/adapters/out/rabbitmq"
	"steelorders/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := gorm.Open(postgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err := postgres_adapter.Migrate(db); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(config, db)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stopJobs := startJobs(app, config, logger)
	defer stopJobs()

	startWebServer(ctx, app, config, logger)
}

// startJobs runs the outbox relay when a broker is configured. Without one,
// events stay in the outbox until a relay runs.
func startJobs(app *cmd.CompositionRoot, config cmd.Config, logger *slog.Logger) func() {
	if config.AMQPURL == "" {
		logger.Warn("AMQP_URL is not set, outbox relay is disabled")
		return func() {}
	}

	conn, err := rabbitmq.Dial(config.AMQPURL)
	if err != nil {
		log.Fatalf("Error connecting to RabbitMQ: %v", err)
	}
	publisher := rabbitmq.NewPublisher(conn, config.AMQPExchange)

	jobManager := jobs.NewJobManager(app.CreateRelayOutboxCommandHandler(publisher), config.OutboxRelaySchedule, logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	return func() {
		jobManager.StopAll()
		if err := publisher.Close(); err != nil {
			logger.Error("failed to close RabbitMQ connection", "error", err)
		}
	}
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, config cmd.Config, logger *slog.Logger) {
	e := echo.New()
	e.HideBanner = true

	server := httpin.NewServer(app.CreateHTTPHandlers(), app.Tokens(), logger)
	e.HTTPErrorHandler = server.HandleError

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				logger.ErrorContext(c.Request().Context(), "request", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	}))

	doc, err := httpin.LoadSpec()
	if err != nil {
		log.Fatalf("Error loading API description: %v", err)
	}
	if err := httpin.RegisterDocs(e, doc); err != nil {
		log.Fatalf("Error registering API docs: %v", err)
	}

	var validate echo.MiddlewareFunc
	if config.OpenAPIValidation {
		if validate, err = httpin.RequestValidator(doc); err != nil {
			log.Fatalf("Error building request validator: %v", err)
		}
	}
	server.RegisterRoutes(e, validate)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down HTTP server", "error", err)
	}
}
