package router

import (
	"github.com/auca/lostandfound-backend/config"
	"github.com/auca/lostandfound-backend/internal/app/controller"
	"github.com/auca/lostandfound-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController      *controller.AuthController
	userController      *controller.UserController
	lostItemController  *controller.LostItemController
	foundItemController *controller.FoundItemController
	categoryController  *controller.CategoryController
	matchController     *controller.MatchController
	searchController    *controller.SearchController
	uploadController    *controller.UploadController
	reportController    *controller.ReportController
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	userController *controller.UserController,
	lostItemController *controller.LostItemController,
	foundItemController *controller.FoundItemController,
	categoryController *controller.CategoryController,
	matchController *controller.MatchController,
	searchController *controller.SearchController,
	uploadController *controller.UploadController,
	reportController *controller.ReportController,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		userController:      userController,
		lostItemController:  lostItemController,
		foundItemController: foundItemController,
		categoryController:  categoryController,
		matchController:     matchController,
		searchController:    searchController,
		uploadController:    uploadController,
		reportController:    reportController,
		config:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "AUCA Lost and Found API is running",
		})
	})

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", r.authController.Login)
			auth.POST("/verify-otp", r.authController.VerifyOTP)
			auth.POST("/forgot-password", r.authController.ForgotPassword)
			auth.POST("/reset-password", r.authController.ResetPassword)
		}

		users := api.Group("/users")
		users.Use(middleware.Authenticate())
		{
			users.GET("", r.userController.GetAll)
			users.GET("/:id", r.userController.GetByID)
			users.POST("", r.userController.Create)
			users.PUT("/:id", r.userController.Update)
			users.DELETE("/:id", r.userController.Delete)
		}

		lostItems := api.Group("/lost-items")
		{
			lostItems.GET("", r.lostItemController.GetAll)
			lostItems.GET("/:id", r.lostItemController.GetByID)
			lostItems.POST("", middleware.Authenticate(), r.lostItemController.Create)
			lostItems.PUT("/:id", middleware.Authenticate(), r.lostItemController.Update)
			lostItems.DELETE("/:id", middleware.Authenticate(), r.lostItemController.Delete)
		}

		foundItems := api.Group("/found-items")
		{
			foundItems.GET("", r.foundItemController.GetAll)
			foundItems.GET("/:id", r.foundItemController.GetByID)
			foundItems.POST("", middleware.Authenticate(), r.foundItemController.Create)
			foundItems.PUT("/:id", middleware.Authenticate(), r.foundItemController.Update)
			foundItems.DELETE("/:id", middleware.Authenticate(), r.foundItemController.Delete)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", r.categoryController.GetAll)
			categories.GET("/:id", r.categoryController.GetByID)
			categories.POST("", middleware.Authenticate(), r.categoryController.Create)
			categories.PUT("/:id", middleware.Authenticate(), r.categoryController.Update)
			categories.DELETE("/:id", middleware.Authenticate(), r.categoryController.Delete)
		}

		matches := api.Group("/matches")
		{
			matches.GET("", r.matchController.GetAll)
			matches.GET("/:id", r.matchController.GetByID)
			matches.POST("", middleware.OptionalAuthenticate(), r.matchController.Propose)
			matches.PUT("/:id", middleware.Authenticate(), r.matchController.Decide)
		}

		api.GET("/search", r.searchController.Search)

		upload := api.Group("/upload")
		upload.Use(middleware.Authenticate())
		{
			upload.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
		}

		reports := api.Group("/reports")
		reports.Use(middleware.Authenticate())
		{
			reports.GET("/register.xlsx", r.reportController.ExportRegister)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
