package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"fulfillment/cmd"
	"fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db := mustConnectDB(configs)

	root, err := cmd.NewCompositionRoot(configs, db)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	createOrderHandler, err := root.CreateCreateOrderCommandHandler()
	if err != nil {
		log.Fatalf("Failed to create order handler: %v", err)
	}

	transitionHandler, err := root.CreateTransitionOrderStatusCommandHandler()
	if err != nil {
		log.Fatalf("Failed to create transition handler: %v", err)
	}

	carrierUpdateHandler := root.CreateApplyCarrierUpdateCommandHandler(&transitionHandler)

	autoProgressHandler, err := root.CreateAutoProgressOrdersCommandHandler(&transitionHandler)
	if err != nil {
		log.Fatalf("Failed to create auto-progress handler: %v", err)
	}

	jobManager := jobs.NewJobManager(autoProgressHandler, logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	server := http.NewServer(
		createOrderHandler,
		transitionHandler,
		carrierUpdateHandler,
		root.CreateGetOrderQueryHandler(),
		root.CreateGetCustomerOrdersQueryHandler(),
		configs.AdminAPIKey,
		configs.CarrierWebhookSecret,
	)

	startWebServer(server, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		slog.Warn("No .env file loaded, relying on environment", "error", err)
	}

	return cmd.Config{
		HTTPPort:               envOrDefault("HTTP_PORT", "8080"),
		DBHost:                 envOrDefault("DB_HOST", "localhost"),
		DBPort:                 envOrDefault("DB_PORT", "5432"),
		DBUser:                 envOrDefault("DB_USER", "postgres"),
		DBPassword:             envOrDefault("DB_PASSWORD", "postgres"),
		DBName:                 envOrDefault("DB_NAME", "fulfillment"),
		DBSslMode:              envOrDefault("DB_SSLMODE", "disable"),
		CatalogServiceURL:      envOrDefault("CATALOG_SERVICE_URL", "http://localhost:8081"),
		NotificationServiceURL: envOrDefault("NOTIFICATION_SERVICE_URL", "http://localhost:8082"),
		InvoiceServiceURL:      envOrDefault("INVOICE_SERVICE_URL", "http://localhost:8083"),
		AdminAPIKey:            os.Getenv("ADMIN_API_KEY"),
		CarrierWebhookSecret:   os.Getenv("CARRIER_WEBHOOK_SECRET"),
		DeliveryLead:           durationEnv("DELIVERY_LEAD"),
		ShipAfter:              durationEnv("SHIP_AFTER"),
		DeliverAfter:           durationEnv("DELIVER_AFTER"),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// durationEnv parses an optional duration variable; zero means "use default".
func durationEnv(key string) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return 0
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Invalid duration in %s: %v", key, err)
	}
	return d
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = db.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func startWebServer(server *http.Server, port string) {
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			slog.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))

	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
