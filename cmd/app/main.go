package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"procserve/cmd"
	ihttp "procserve/internal/adapters/in/http"
	"procserve/internal/adapters/out/postgres/bidrepo"
	"procserve/internal/adapters/out/postgres/draftrepo"
	"procserve/internal/adapters/out/postgres/orderrepo"
	"procserve/internal/jobs"
	"procserve/internal/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB, err := gorm.Open(postgres.Open(dsn(configs)), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.RecipientDTO{},
		&draftrepo.DraftDTO{},
		&bidrepo.BidDTO{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	root := cmd.NewCompositionRoot(configs, gormDB)
	defer func() {
		_ = root.ClosePublisher()
	}()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(
		root.CreatePurgeStaleDraftsCommandHandler(),
		time.Duration(configs.DraftRetentionHours)*time.Hour,
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	retention, err := strconv.Atoi(goDotEnvVariable("DRAFT_RETENTION_HOURS"))
	if err != nil || retention <= 0 {
		retention = 72
	}

	return cmd.Config{
		HTTPPort:               goDotEnvVariable("HTTP_PORT"),
		DBHost:                 goDotEnvVariable("DB_HOST"),
		DBPort:                 goDotEnvVariable("DB_PORT"),
		DBUser:                 goDotEnvVariable("DB_USER"),
		DBPassword:             goDotEnvVariable("DB_PASSWORD"),
		DBName:                 goDotEnvVariable("DB_NAME"),
		DBSslMode:              goDotEnvVariable("DB_SSLMODE"),
		GeoServiceURL:          goDotEnvVariable("GEO_SERVICE_URL"),
		KafkaHost:              goDotEnvVariable("KAFKA_HOST"),
		KafkaOrderChangedTopic: goDotEnvVariable("KAFKA_ORDER_CHANGED_TOPIC"),
		DocumentRoot:           goDotEnvVariable("DOCUMENT_ROOT"),
		DocumentBaseURL:        goDotEnvVariable("DOCUMENT_BASE_URL"),
		DraftRetentionHours:    retention,
	}
}

func dsn(config cmd.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSslMode)
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func startWebServer(root cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Use(requestMetrics)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	server := ihttp.NewServer(
		root.CreateCreateDraftCommandHandler(),
		root.CreateUpdateDraftCommandHandler(),
		root.CreateSubmitOrderCommandHandler(),
		root.CreateUpdateOrderCommandHandler(),
		root.CreateCancelOrderCommandHandler(),
		root.CreateAttachDocumentCommandHandler(),
		root.CreateSubmitBidCommandHandler(),
		root.CreateAcceptBidCommandHandler(),
		root.CreateRejectBidCommandHandler(),
		root.CreateRecordDeliveryAttemptCommandHandler(),
		root.CreateGetOrderQueryHandler(),
		root.CreateGetOrderEditabilityQueryHandler(),
		root.CreateListOrdersQueryHandler(),
		root.CreateGetRecipientBidsQueryHandler(),
	)
	server.RegisterRoutes(e)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && err != http.ErrServerClosed {
		e.Logger.Fatal(err)
	}
}

// requestMetrics counts every request by method, route and status.
func requestMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request().Method,
			c.Path(),
			strconv.Itoa(c.Response().Status),
		).Inc()
		return err
	}
}
