package router

import (
	"github.com/ecommercio/storefront-backend/config"
	"github.com/ecommercio/storefront-backend/internal/app/controller"
	"github.com/ecommercio/storefront-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController      *controller.AuthController
	settingsController  *controller.SettingsController
	homeController      *controller.HomeController
	categoryController  *controller.CategoryController
	productController   *controller.ProductController
	profileController   *controller.ProfileController
	adminUserController *controller.AdminUserController
	checkoutController  *controller.CheckoutController
	authMiddleware      *middleware.AuthMiddleware
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	settingsController *controller.SettingsController,
	homeController *controller.HomeController,
	categoryController *controller.CategoryController,
	productController *controller.ProductController,
	profileController *controller.ProfileController,
	adminUserController *controller.AdminUserController,
	checkoutController *controller.CheckoutController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		settingsController:  settingsController,
		homeController:      homeController,
		categoryController:  categoryController,
		productController:   productController,
		profileController:   profileController,
		adminUserController: adminUserController,
		checkoutController:  checkoutController,
		authMiddleware:      authMiddleware,
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
			"message": "Storefront API is running",
		})
	})

	// Locally stored product images
	if r.config.Storage.Driver == "local" {
		router.Static("/uploads", r.config.Storage.UploadDir)
	}

	api := router.Group("/api")
	{
		api.GET("/session", r.authMiddleware.OptionalAuthenticate(), r.authController.GetSession)
		api.POST("/register", r.authController.Register)
		api.POST("/login", r.authController.Login)
		api.POST("/logout", r.authController.Logout)

		api.GET("/settings", r.settingsController.GetSettings)
		api.POST("/settings",
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireAdmin(),
			r.settingsController.UpdateSettings,
		)

		api.GET("/home", r.homeController.GetHome)

		categories := api.Group("/categories")
		{
			categories.GET("", r.categoryController.ListCategories)
			categories.GET("/:id", r.categoryController.GetCategory)

			categories.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireAdmin(),
				r.categoryController.CreateCategory,
			)
			categories.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireAdmin(),
				r.categoryController.UpdateCategory,
			)
			categories.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireAdmin(),
				r.categoryController.DeleteCategory,
			)
		}

		products := api.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/:id", r.productController.GetProduct)

			products.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireAdmin(),
				r.productController.CreateProduct,
			)
			products.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireAdmin(),
				r.productController.UpdateProduct,
			)
			products.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireAdmin(),
				r.productController.DeleteProduct,
			)
		}

		profile := api.Group("/profile")
		profile.Use(r.authMiddleware.Authenticate())
		{
			profile.GET("", r.profileController.GetProfile)
			profile.POST("", r.profileController.SaveProfile)
		}

		admin := api.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireAdmin())
		{
			admin.GET("/users", r.adminUserController.ListUsers)
			admin.POST("/users/:id/ban", r.adminUserController.SetBanned)
			admin.POST("/users/:id/role", r.adminUserController.SetRole)
			admin.GET("/export/products", r.adminUserController.ExportProducts)
		}

		api.POST("/create-checkout-session", r.checkoutController.CreateCheckoutSession)
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
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
