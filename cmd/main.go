package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/brokermate/brokermate-backend/internal/db"
	"github.com/brokermate/brokermate-backend/internal/handlers"
	"github.com/brokermate/brokermate-backend/internal/logger"
	"github.com/brokermate/brokermate-backend/internal/middleware"
	"github.com/brokermate/brokermate-backend/internal/repos"
	"github.com/brokermate/brokermate-backend/internal/server"
	"github.com/brokermate/brokermate-backend/internal/services"
	"github.com/brokermate/brokermate-backend/internal/utils"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos from main...")
	monthlyClientRepo := repos.NewMonthlyClientRepo(thePG, log)
	globalClientRepo := repos.NewGlobalClientRepo(thePG, log)

	// Services
	log.Info("Setting up services from main...")
	aggregateService := services.NewAggregateService(monthlyClientRepo, log)
	globalSyncService := services.NewGlobalSyncService(aggregateService, globalClientRepo, log)
	clientService := services.NewClientService(monthlyClientRepo, globalClientRepo, globalSyncService, log)
	bucketService, err := services.NewBucketService(log)
	if err != nil {
		log.Warn("Could not init BucketService, uploads disabled", "error", err)
	}

	// Handlers
	log.Info("Setting up handlers from main...")
	clientHandler := handlers.NewClientHandler(clientService)
	uploadHandler := handlers.NewUploadHandler(bucketService)
	requestLog := middleware.NewRequestLogMiddleware(log)

	// Router
	router := server.NewRouter(server.RouterConfig{
		ClientHandler:        clientHandler,
		UploadHandler:        uploadHandler,
		RequestLogMiddleware: requestLog,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
