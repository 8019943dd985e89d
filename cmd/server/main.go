package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/adilrkl/av-bayi/internal/handler"
	mid "github.com/adilrkl/av-bayi/internal/middleware"
	"github.com/adilrkl/av-bayi/internal/model"
	"github.com/adilrkl/av-bayi/pkg/config"
	"github.com/adilrkl/av-bayi/pkg/database"
	"github.com/adilrkl/av-bayi/pkg/jwtutil"
	"github.com/adilrkl/av-bayi/pkg/logger"
	"github.com/adilrkl/av-bayi/prometheus"
)

func main() {
	// .env is optional; deployed environments set real env vars
	_ = godotenv.Load()

	appConfig, err := config.Load("avbayi")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting storefront service", appConfig.LogConfig()...)

	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	if err := ensureAdminAccount(appConfig); err != nil {
		log.Fatal("Failed to create admin account", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(mid.RequestLogger)
	e.Use(mid.MetricsMiddleware)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public storefront routes
	api := e.Group("/api")
	api.POST("/auth/register", handler.Register)
	api.POST("/auth/login", handler.Login)
	api.GET("/products", handler.ListProducts)
	api.GET("/products/:slug", handler.GetProductBySlug)
	api.GET("/categories", handler.ListCategories)
	api.GET("/brands", handler.ListBrands)
	api.GET("/blog", handler.ListPublishedPosts)
	api.GET("/blog/:slug", handler.GetPostBySlug)
	api.GET("/sliders", handler.ListActiveSliders)
	api.GET("/settings", handler.GetSettings)
	api.POST("/contact", handler.SubmitContact)
	api.POST("/cart/validate", handler.ValidateCart)

	// Authenticated customer routes
	authAPI := e.Group("/api", mid.AuthMiddleware)
	authAPI.POST("/orders", handler.CreateOrder)
	authAPI.GET("/orders", handler.ListMyOrders)
	authAPI.GET("/profile", handler.GetProfile)
	authAPI.PUT("/profile", handler.UpdateProfile)
	authAPI.GET("/addresses", handler.ListAddresses)
	authAPI.POST("/addresses", handler.CreateAddress)
	authAPI.DELETE("/addresses/:id", handler.DeleteAddress)

	// Admin routes
	adminAPI := e.Group("/api", mid.AuthMiddleware, mid.AdminOnly)
	adminAPI.POST("/admin/products", handler.CreateProduct)
	adminAPI.PATCH("/admin/products/:id", handler.UpdateProduct)
	adminAPI.DELETE("/admin/products/:id", handler.DeleteProduct)
	adminAPI.POST("/admin/categories", handler.CreateCategory)
	adminAPI.PATCH("/admin/categories/:id", handler.UpdateCategory)
	adminAPI.DELETE("/admin/categories/:id", handler.DeleteCategory)
	adminAPI.GET("/admin/brands", handler.ListBrands)
	adminAPI.POST("/admin/brands", handler.CreateBrand)
	adminAPI.PATCH("/admin/brands/:id", handler.UpdateBrand)
	adminAPI.DELETE("/admin/brands/:id", handler.DeleteBrand)
	adminAPI.GET("/admin/blog", handler.ListPosts)
	adminAPI.POST("/admin/blog", handler.CreatePost)
	adminAPI.PATCH("/admin/blog/:id", handler.UpdatePost)
	adminAPI.DELETE("/admin/blog/:id", handler.DeletePost)
	adminAPI.GET("/admin/sliders", handler.ListSliders)
	adminAPI.POST("/admin/sliders", handler.CreateSlider)
	adminAPI.PATCH("/admin/sliders/:id", handler.UpdateSlider)
	adminAPI.DELETE("/admin/sliders/:id", handler.DeleteSlider)
	adminAPI.POST("/admin/settings", handler.UpsertSettings)
	adminAPI.GET("/admin/coupons", handler.ListCoupons)
	adminAPI.POST("/admin/coupons", handler.CreateCoupon)
	adminAPI.PATCH("/admin/coupons/:id", handler.UpdateCoupon)
	adminAPI.DELETE("/admin/coupons/:id", handler.DeleteCoupon)
	adminAPI.GET("/admin/orders", handler.ListAllOrders)
	adminAPI.GET("/admin/messages", handler.ListContactMessages)
	adminAPI.PATCH("/admin/orders/:id", handler.UpdateOrderStatus)

	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}

// ensureAdminAccount creates the bootstrap admin account when ADMIN_EMAIL /
// ADMIN_PASSWORD are set and no account with that email exists.
func ensureAdminAccount(cfg *config.Config) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		return nil
	}

	db := database.GetDB()

	var count int64
	if err := db.Model(&model.User{}).Where("email = ?", cfg.Admin.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.User{
		Name:     "Admin",
		Email:    cfg.Admin.Email,
		Password: string(hashed),
		Role:     model.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	logger.GetLogger().Info("Bootstrap admin account created",
		zap.String("email", cfg.Admin.Email))
	return nil
}
