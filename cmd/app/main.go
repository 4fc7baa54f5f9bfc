package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"kitchen/cmd"
	httpin "kitchen/internal/adapters/in/http"
	natsin "kitchen/internal/adapters/in/natsbus"
	natsout "kitchen/internal/adapters/out/natsbus"
	"kitchen/internal/adapters/out/postgres/contractrepo"
	"kitchen/internal/adapters/out/postgres/kitchenorderrepo"
	"kitchen/internal/adapters/out/postgres/refdatarepo"
	"kitchen/internal/adapters/out/postgres/stationrepo"
	"kitchen/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/nats-io/nats.go"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDatabase(configs)

	conn, err := nats.Connect(configs.NatsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS at %s: %v", configs.NatsURL, err)
	}
	defer conn.Drain()

	publisher := natsout.NewPublisher(conn)
	app := cmd.NewCompositionRoot(configs, gormDB, publisher)

	bus := natsin.NewNATSBus(conn)
	subscriber := natsin.NewOrderConfirmedSubscriber(bus, app.CreateCreateKitchenOrderCommandHandler(), logger)
	if err := subscriber.Start(); err != nil {
		log.Fatalf("Failed to start order confirmed subscriber: %v", err)
	}
	defer bus.Close()

	jobManager := jobs.NewJobManager(
		jobs.NewAssignmentProposalsJob(
			app.CreateGetActiveTenantsQueryHandler(),
			app.CreateGetAssignmentProposalsQueryHandler(),
			publisher,
			logger,
		),
		jobs.NewConsistencyAuditJob(
			app.CreateGetActiveTenantsQueryHandler(),
			app.CreateGetActiveKitchenOrdersQueryHandler(),
			app.CreateGetAuditReportQueryHandler(),
			publisher,
			logger,
		),
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),
		NatsURL:    goDotEnvVariable("NATS_URL"),
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

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&contractrepo.ContractDTO{},
		&contractrepo.ContractItemDTO{},
		&kitchenorderrepo.KitchenOrderDTO{},
		&kitchenorderrepo.KitchenItemDTO{},
		&kitchenorderrepo.StatusChangeDTO{},
		&stationrepo.StationDTO{},
		&refdatarepo.RecipeDTO{},
		&refdatarepo.IngredientDTO{},
		&refdatarepo.StockDTO{},
		&refdatarepo.SourceOrderDTO{},
		&refdatarepo.SourceOrderLineDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	server := httpin.NewServer(
		app.CreateAcceptAssignmentCommandHandler(),
		app.CreateChangeKitchenStatusCommandHandler(),
		app.CreateChangeItemStatusCommandHandler(),
		app.CreateReportQualityIssueCommandHandler(),
		app.CreateGetActiveKitchenOrdersQueryHandler(),
		app.CreateGetStationWorkloadsQueryHandler(),
		app.CreateGetAssignmentProposalsQueryHandler(),
		app.CreateGetAuditReportQueryHandler(),
	)

	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
