package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	eventsHttp "analytics-reports-service/internal/events/adapters/http/fiber"
	eventsRepoPg "analytics-reports-service/internal/events/adapters/postgres"
	eventsUsecase "analytics-reports-service/internal/events/core/usecase"

	projectsHttp "analytics-reports-service/internal/projects/adapters/http/fiber"
	projectsRepoPg "analytics-reports-service/internal/projects/adapters/postgres"
	projectsUsecase "analytics-reports-service/internal/projects/core/usecase"

	reportsHttp "analytics-reports-service/internal/reports/adapters/http/fiber"
	reportsRepoPg "analytics-reports-service/internal/reports/adapters/postgres"
	reportsUsecase "analytics-reports-service/internal/reports/core/usecase"

	"github.com/gofiber/fiber/v2"
	_ "github.com/lib/pq"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "analytics-reports-service/docs"
)

// @title Analytics Reports Service API
// @version 1.0
// @description Per-project analytics event ingestion and reporting.
func main() {
	// Config
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is not set")
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// DB connection
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to open postgres: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping postgres: %v", err)
	}

	// Adapter-level DB wrappers
	projectsDB := projectsRepoPg.NewSQLDB(db)
	eventsDB := eventsRepoPg.NewSQLDB(db)
	reportsDB := reportsRepoPg.NewSQLDB(db)

	// Repositories
	projectRepository := projectsRepoPg.NewProjectRepository(projectsDB)
	eventRepository := eventsRepoPg.NewEventRepository(eventsDB)
	eventWindow := reportsRepoPg.NewEventWindow(reportsDB)

	// Usecases; the project repository doubles as the activity gate for
	// ingestion and reporting.
	projectUC := projectsUsecase.NewProjectUseCase(projectRepository)
	ingestUC := eventsUsecase.NewBatchIngestUseCase(eventRepository, projectRepository)
	dispatcher := reportsUsecase.NewReportDispatcher(projectRepository, eventWindow)

	// HTTP (Fiber) app + handlers
	app := fiber.New()

	projectHandler := projectsHttp.NewProjectHandler(projectUC)
	app.Post("/v1/projects", projectHandler.CreateProject)
	app.Get("/v1/projects", projectHandler.ListProjects)

	eventHandler := eventsHttp.NewEventHandler(ingestUC)
	app.Post("/v1/events/batch", eventHandler.BatchEvents)

	reportHandler := reportsHttp.NewReportHandler(dispatcher)
	app.Get("/v1/reports/overview", reportHandler.Overview)
	app.Get("/v1/reports/top-events", reportHandler.TopEvents)
	app.Get("/v1/reports/events-timeseries", reportHandler.EventsTimeSeries)
	app.Post("/v1/reports/funnel", reportHandler.Funnel)
	app.Get("/v1/reports/conversion", reportHandler.Conversion)

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := db.PingContext(c.Context()); err != nil {
			return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded",
			})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("fiber stopped: %v", err)
		}
	}()

	log.Printf("server started on :%s", port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("fiber shutdown error: %v", err)
	}

	log.Println("server exiting")
}
