package routes

import (
	"clinic-booking-server/internal/config"
	"clinic-booking-server/internal/handlers"
	"clinic-booking-server/internal/middleware"
	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/scheduling"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, engine *scheduling.Engine) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	appointmentHandler := handlers.NewAppointmentHandler(engine)
	doctorHandler := handlers.NewDoctorHandler(db, engine)
	assistantHandler := handlers.NewAssistantHandler(db, engine)
	notificationHandler := handlers.NewNotificationHandler(db)
	adminHandler := handlers.NewAdminHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg)) // Apply JWT authentication middleware
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// Public doctor directory (any authenticated user)
		doctorRoutes := private.Group("/doctors")
		{
			doctorRoutes.GET("", doctorHandler.GetDoctors)
			doctorRoutes.GET("/:id", doctorHandler.GetDoctorByID)
		}

		// Patient appointment routes
		appointmentRoutes := private.Group("/appointments")
		appointmentRoutes.Use(middleware.RoleAuthMiddleware(models.RoleUser))
		{
			appointmentRoutes.POST("/doctors/:doctorId", appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("", appointmentHandler.GetMyAppointments)
			appointmentRoutes.PATCH("/:id", appointmentHandler.EditAppointment)
			appointmentRoutes.PATCH("/:id/cancel", appointmentHandler.CancelAppointment)
		}

		// Doctor panel routes (schedule and working hours)
		panelRoutes := private.Group("/doctor-panel")
		panelRoutes.Use(middleware.RoleAuthMiddleware(models.RoleDoctor))
		{
			panelRoutes.GET("/appointments", doctorHandler.GetMyAppointments)
			panelRoutes.PATCH("/appointments/:id", doctorHandler.EditAppointment)
			panelRoutes.POST("/appointments/:id/shift", doctorHandler.ShiftAppointment)
			panelRoutes.PATCH("/appointments/:id/cancel", doctorHandler.CancelAppointment)
			panelRoutes.GET("/working-hours", doctorHandler.GetMyWorkingHours)
			panelRoutes.PUT("/working-hours", doctorHandler.UpdateWorkingHours)
			panelRoutes.DELETE("/working-hours/:dayOfWeek", doctorHandler.DeleteWorkingHoursForDay)
		}

		// Assistant routes (delegated access)
		assistantRoutes := private.Group("/assistant")
		assistantRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAssistant))
		{
			assistantRoutes.GET("/doctors", assistantHandler.GetAssignedDoctors)
			assistantRoutes.GET("/doctors/:doctorId/appointments", assistantHandler.GetDoctorAppointments)
			assistantRoutes.POST("/doctors/:doctorId/appointments", assistantHandler.CreateAppointment)
			assistantRoutes.PATCH("/appointments/:id", assistantHandler.EditAppointment)
			assistantRoutes.PATCH("/appointments/:id/cancel", assistantHandler.CancelAppointment)
			assistantRoutes.GET("/patients", assistantHandler.GetPatients)
		}

		// Notification inbox (any authenticated user)
		notificationRoutes := private.Group("/notifications")
		{
			notificationRoutes.GET("", notificationHandler.GetMyNotifications)
			notificationRoutes.PATCH("/:id/read", notificationHandler.MarkAsRead)
		}

		// Admin routes
		adminRoutes := private.Group("/admin")
		adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.GET("/users", adminHandler.GetUsers)
			adminRoutes.PATCH("/users/:id", adminHandler.UpdateUser)
			adminRoutes.DELETE("/users/:id", adminHandler.DeleteUser)
			adminRoutes.GET("/doctors", adminHandler.GetDoctors)
			adminRoutes.GET("/assistants", adminHandler.GetAssistants)
			adminRoutes.GET("/assistants/:id/doctors", adminHandler.GetAssistantDoctors)
			adminRoutes.POST("/assistants/:id/doctors/:doctorId", adminHandler.AssignDoctor)
			adminRoutes.DELETE("/assistants/:id/doctors/:doctorId", adminHandler.UnassignDoctor)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
