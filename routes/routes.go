package routes

import (
	"ClinicFlow/cache"
	"ClinicFlow/config"
	"ClinicFlow/controllers"
	"ClinicFlow/handlers"
	"ClinicFlow/middlewares"
	"ClinicFlow/repositories"
	"ClinicFlow/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) (http.Handler, *services.InventoryMonitor) {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	// Create a Gin router
	router := gin.Default()

	// Apply Bearer token validation to all routes
	router.Use(middlewares.ValidateBearerToken(config.GetBearerToken()))

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "https://www.example.com", "https://example-dev.com"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Initialize repositories
	doctorRepo := repositories.NewDoctorRepository(db, cache)
	scheduleRepo := repositories.NewScheduleRepository(db, cache)
	appointmentRepo := repositories.NewAppointmentRepository(db, cache)
	medicationRepo := repositories.NewMedicationRepository(db, cache)
	orderRepo := repositories.NewMedicationOrderRepository(db)
	userRepo := repositories.NewUserRepository(db, cache)

	// Initialize services
	doctorService := services.NewDoctorService(doctorRepo, scheduleRepo)
	scheduleService := services.NewScheduleService(scheduleRepo, doctorRepo, appointmentRepo)
	appointmentService := services.NewAppointmentService(db, appointmentRepo, scheduleRepo)
	medicationService := services.NewMedicationService(medicationRepo, orderRepo)
	userService := services.NewUserService(userRepo)

	monitor := services.NewInventoryMonitor(db, medicationRepo, orderRepo, config.AlertMailer, config.StockSweepInterval)

	// Initialize handlers
	doctorHandler := handlers.NewDoctorHandler(doctorService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	medicationHandler := handlers.NewMedicationHandler(medicationService)
	dashboardHandler := handlers.NewDashboardHandler(doctorService, appointmentService, medicationService)
	authHandler := handlers.NewAuthHandler(userService)

	// Register routes
	controllers.SetupClinicRoutes(
		router,
		doctorHandler,
		scheduleHandler,
		appointmentHandler,
		medicationHandler,
		dashboardHandler,
	)

	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	controllers.SetupRootRoute(router)

	return router, monitor
}
