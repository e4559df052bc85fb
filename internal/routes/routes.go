package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"petcare-app-server/internal/config"
	"petcare-app-server/internal/handlers"
	"petcare-app-server/internal/metrics"
	"petcare-app-server/internal/middleware"
	"petcare-app-server/internal/models"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger, collector *metrics.Collector) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg, log)
	petHandler := handlers.NewPetHandler(db, cfg, log, collector)
	appointmentHandler := handlers.NewAppointmentHandler(db, cfg, log, collector)
	notificationHandler := handlers.NewNotificationHandler(db)
	directoryHandler := handlers.NewDirectoryHandler(db)
	dietPlanHandler := handlers.NewDietPlanHandler()

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
			authRoutesPrivate.POST("/profile/image", middleware.RoleAuthMiddleware(models.RoleVeterinarian), authHandler.UploadProfileImage)
		}

		// Pet profile routes (pet owners and NGOs manage their own pets)
		petRoutes := private.Group("/pets")
		petRoutes.Use(middleware.RoleAuthMiddleware(models.RolePetOwner, models.RoleNGO, models.RoleAdmin))
		{
			petRoutes.POST("", petHandler.CreatePet)
			petRoutes.GET("", petHandler.GetPets)
			petRoutes.GET("/:id", petHandler.GetPetByID)
			petRoutes.PUT("/:id", petHandler.UpdatePet)
			petRoutes.DELETE("/:id", petHandler.DeletePet)
			petRoutes.POST("/:id/image", petHandler.UploadPetImage)
		}

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			// Owners book appointments; no delete operation exists.
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePetOwner, models.RoleNGO, models.RoleAdmin), appointmentHandler.CreateAppointment)

			// Role-scoped listing: owners see their own, vets see assigned.
			appointmentRoutes.GET("", appointmentHandler.GetAppointmentsForUser)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID) // Authorization inside handler

			// Vet-side transitions (authorization inside handler)
			appointmentRoutes.PATCH("/:id/approve", appointmentHandler.ApproveAppointment)
			appointmentRoutes.PATCH("/:id/reject", appointmentHandler.RejectAppointment)
			appointmentRoutes.PATCH("/:id/complete", appointmentHandler.CompleteAppointment)

			// Video-call room/token for approved online appointments
			appointmentRoutes.GET("/:id/call", appointmentHandler.GetCallInfo)
		}

		// Notification inbox routes
		notificationRoutes := private.Group("/notifications")
		{
			notificationRoutes.GET("", notificationHandler.GetNotificationsForUser)
			notificationRoutes.PATCH("/:id/read", notificationHandler.MarkNotificationAsRead)
			notificationRoutes.POST("/read-all", notificationHandler.MarkAllNotificationsAsRead)
		}

		// Directory routes
		directoryRoutes := private.Group("/directory")
		{
			directoryRoutes.GET("/vets", directoryHandler.GetVets)
			directoryRoutes.GET("/nannies", directoryHandler.GetNannies)
			directoryRoutes.GET("/pharmacies", directoryHandler.GetPharmacies)
		}

		// Diet plan suggestion
		private.POST("/diet-plan", dietPlanHandler.SuggestDietPlan)
	}

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
