package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"refill/cmd"
	"refill/internal/adapters/out/postgres/orderrepo"
	"refill/internal/adapters/out/postgres/paymentrepo"
	"refill/internal/adapters/out/postgres/riderrepo"
	"refill/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)
	mustMigrate(gormDB)

	amqpConn, err := amqp.Dial(configs.AMQPUrl)
	if err != nil {
		log.Fatalf("Error connecting to RabbitMQ: %v", err)
	}
	defer amqpConn.Close()

	app := cmd.NewCompositionRoot(configs, gormDB, amqpConn)

	jobManager := jobs.NewJobManager(
		app.CreateExpireStalePaymentsCommandHandler(),
		mustParseDuration(configs.PaymentMaxAge),
		configs.PaymentExpirySchedule,
		slog.Default(),
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:              goDotEnvVariable("HTTP_PORT"),
		DBHost:                goDotEnvVariable("DB_HOST"),
		DBPort:                goDotEnvVariable("DB_PORT"),
		DBUser:                goDotEnvVariable("DB_USER"),
		DBPassword:            goDotEnvVariable("DB_PASSWORD"),
		DBName:                goDotEnvVariable("DB_NAME"),
		DBSslMode:             goDotEnvVariable("DB_SSLMODE"),
		JWTSecret:             goDotEnvVariable("JWT_SECRET"),
		PayMongoSecretKey:     goDotEnvVariable("PAYMONGO_SECRET_KEY"),
		PayMongoWebhookSecret: goDotEnvVariable("PAYMONGO_WEBHOOK_SECRET"),
		AMQPUrl:               goDotEnvVariable("AMQP_URL"),
		PaymentMaxAge:         goDotEnvVariable("PAYMENT_MAX_AGE"),
		PaymentExpirySchedule: goDotEnvVariable("PAYMENT_EXPIRY_SCHEDULE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func mustMigrate(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.StatusChangeDTO{},
		&orderrepo.AssignmentDTO{},
		&riderrepo.RiderDTO{},
		&paymentrepo.PaymentDTO{},
		&paymentrepo.EventDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

func mustParseDuration(raw string) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Error parsing duration %q: %v", raw, err)
	}
	return d
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
