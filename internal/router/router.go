// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/drivelane/dealer-backend/internal/config"
	"github.com/drivelane/dealer-backend/internal/handlers"
	"github.com/drivelane/dealer-backend/internal/middleware"
	"github.com/drivelane/dealer-backend/internal/services"
	"github.com/drivelane/dealer-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(db, cfg)
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db)
	clientService := services.NewClientService(db)
	vehicleService := services.NewVehicleService(db, cfg)
	fiRequestService := services.NewFIRequestService(db, notificationService)
	metricsService := services.NewMetricsService(db)
	billingService := services.NewBillingService(db, cfg)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	clientHandler := handlers.NewClientHandler(clientService)
	vehicleHandler := handlers.NewVehicleHandler(vehicleService, storageService)
	fiRequestHandler := handlers.NewFIRequestHandler(fiRequestService, metricsService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	billingHandler := handlers.NewBillingHandler(billingService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/profile", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Everything below requires an authenticated tenant user.
		authed := v1.Group("")
		authed.Use(middleware.AuthRequired())
		{
			// F&I request lifecycle
			fiRequests := authed.Group("/fi-requests")
			{
				fiRequests.POST("", middleware.SellerRequired(), fiRequestHandler.Create)
				fiRequests.GET("", fiRequestHandler.List)
				fiRequests.GET("/metrics", middleware.ReviewerRequired(), fiRequestHandler.Metrics)
				fiRequests.GET("/:id", fiRequestHandler.Get)
				fiRequests.POST("/:id/submit", fiRequestHandler.Submit)
				fiRequests.POST("/:id/review", middleware.ReviewerRequired(), fiRequestHandler.Review)
			}

			// Clients
			clients := authed.Group("/clients")
			{
				clients.POST("", clientHandler.Create)
				clients.GET("", clientHandler.List)
				clients.GET("/:id", clientHandler.Get)
				clients.PUT("/:id", clientHandler.Update)
				clients.DELETE("/:id", middleware.ReviewerRequired(), clientHandler.Delete)
			}

			// Vehicle inventory
			vehicles := authed.Group("/vehicles")
			{
				vehicles.POST("", vehicleHandler.Create)
				vehicles.GET("", vehicleHandler.List)
				vehicles.GET("/:id", vehicleHandler.Get)
				vehicles.PUT("/:id", vehicleHandler.Update)
				vehicles.DELETE("/:id", middleware.ReviewerRequired(), vehicleHandler.Delete)
				vehicles.POST("/:id/photos", middleware.UploadRateLimit(), vehicleHandler.UploadPhoto)
				vehicles.POST("/:id/generate-description", middleware.AIRateLimit(), vehicleHandler.GenerateDescription)
			}

			// Notifications
			notifications := authed.Group("/notifications")
			{
				notifications.GET("", notificationHandler.List)
				notifications.POST("/:id/read", notificationHandler.MarkRead)
			}

			// Tenant administration
			admin := authed.Group("")
			admin.Use(middleware.AdminRequired())
			{
				admin.POST("/staff", userHandler.CreateStaff)
				admin.GET("/staff", userHandler.ListStaff)
				admin.PUT("/staff/:id/status", userHandler.SetStaffStatus)
				admin.PUT("/settings/workflow", userHandler.UpdateWorkflowSettings)
				admin.GET("/dashboard", dashboardHandler.GetStats)
				admin.POST("/billing/checkout", billingHandler.CreateCheckoutSession)
				admin.POST("/billing/sync", billingHandler.SyncSubscription)
			}
		}
	}

	return r
}
