package main

import (
	"log"

	"court_agenda_go/config"
	"court_agenda_go/db"
	"court_agenda_go/handlers"
	"court_agenda_go/middleware"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))
	e.Use(middleware.ActorContext())

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Agenda routes
	api := e.Group("/api")
	{
		api.GET("/hearings", handlers.ListHearingsHandler)
		api.GET("/hearings/stats", handlers.HearingStatsHandler)
		api.GET("/hearings/export", handlers.ExportHearingsHandler)
		api.GET("/hearings/day/:date", handlers.ListHearingsByDayHandler)
		api.POST("/hearings", handlers.CreateHearingHandler)
		api.GET("/hearings/:id", handlers.GetHearingHandler)
		api.PUT("/hearings/:id", handlers.UpdateHearingHandler)
		api.DELETE("/hearings/:id", handlers.DeleteHearingHandler)
		api.POST("/hearings/:id/reschedule", handlers.RescheduleHearingHandler)
		api.POST("/hearings/:id/complete", handlers.CompleteHearingHandler)
		api.POST("/hearings/:id/cancel", handlers.CancelHearingHandler)
		api.GET("/dockets/history", handlers.DocketHistoryHandler)
	}

	// Start server
	log.Printf("Starting agenda server on port %s (%s)", cfg.ServerPort, cfg.Environment)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
