package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"clinic-booking-server/internal/config"
	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/reminder"
	"clinic-booking-server/internal/routes"
	"clinic-booking-server/internal/scheduling"
	"clinic-booking-server/internal/store"
	"clinic-booking-server/internal/utils"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	if err := utils.InitLogger(cfg.Environment); err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer utils.Logger.Sync()

	// Initialize database connection
	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
	if err != nil {
		utils.Logger.Fatal("Error connecting to database", zap.Error(err))
	}

	// Wire the scheduling engine onto its stores
	appointments := store.NewAppointments(db)
	engine := scheduling.NewEngine(
		store.NewDoctors(db),
		store.NewUsers(db),
		appointments,
		store.NewAssistantDoctors(db),
	)

	// Start the reminder sweep in the background
	sweep := reminder.New(appointments, store.NewNotifications(db), utils.Logger)
	sweep.Interval = time.Duration(cfg.Reminder.IntervalSeconds) * time.Second
	sweep.Horizon = time.Duration(cfg.Reminder.HorizonMinutes) * time.Minute
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweep.Run(ctx)

	// Initialize Gin router
	router := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Set up routes
	routes.SetupRoutes(router, db, cfg, engine)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	utils.Logger.Info("Server starting", zap.String("port", cfg.Port))
	if err := router.Run(serverAddr); err != nil {
		utils.Logger.Fatal("Failed to start server", zap.Error(err))
	}
}
