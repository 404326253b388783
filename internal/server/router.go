package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/brokermate/brokermate-backend/internal/handlers"
	"github.com/brokermate/brokermate-backend/internal/middleware"
)

type RouterConfig struct {
	ClientHandler        *handlers.ClientHandler
	UploadHandler        *handlers.UploadHandler
	RequestLogMiddleware *middleware.RequestLogMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))
	if cfg.RequestLogMiddleware != nil {
		router.Use(cfg.RequestLogMiddleware.Handler())
	}

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/clients", cfg.ClientHandler.ListAll)
		api.DELETE("/clients", cfg.ClientHandler.DeleteClient)
		api.GET("/clients/monthly/:month", cfg.ClientHandler.ListMonthly)
		api.POST("/clients/monthly/:month", cfg.ClientHandler.AddMonthly)
		api.PATCH("/clients/monthly/:month/:id", cfg.ClientHandler.UpdateMonthly)
		api.DELETE("/clients/monthly/:month/:id", cfg.ClientHandler.DeleteMonthly)
		api.POST("/documents", cfg.UploadHandler.UploadPdf)
	}

	return router
}
