package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/shoplane/commerce-api/docs"
	"github.com/shoplane/commerce-api/internal/api/handler"
	"github.com/shoplane/commerce-api/internal/api/middleware"
	"github.com/shoplane/commerce-api/internal/core/domain"
	"github.com/shoplane/commerce-api/internal/core/service"
	"github.com/shoplane/commerce-api/internal/infrastructure/config"
	mongostore "github.com/shoplane/commerce-api/internal/infrastructure/db/mongo"
	redisstore "github.com/shoplane/commerce-api/internal/infrastructure/db/redis"
	"github.com/shoplane/commerce-api/internal/infrastructure/mail"
	"github.com/shoplane/commerce-api/internal/infrastructure/storage"
)

// NewRouter builds the Echo instance with every route registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("commerce"))

	// --- Infrastructure adapters ---
	userRepo := mongostore.NewUserRepository(db)
	productRepo := mongostore.NewProductRepository(db)
	reviewRepo := mongostore.NewReviewRepository(db)
	productCache := redisstore.NewProductCache(rdb, cfg.Redis.CacheTTL)

	mailer := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, log)

	photoStore, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	// --- Core services ---
	hasher := service.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokens := service.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(userRepo, hasher, tokens, mailer, cfg.AppDomain, cfg.ClientDomain, log)
	userService := service.NewUserService(userRepo, hasher, photoStore, log)
	productService := service.NewProductService(productRepo, userRepo, productCache, log)
	reviewService := service.NewReviewService(reviewRepo, productRepo, userRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)
	reviewHandler := handler.NewReviewHandler(reviewService)

	guardAny := middleware.Guard(tokens, userRepo, domain.RoleAdmin, domain.RoleUser)
	guardAdmin := middleware.Guard(tokens, userRepo, domain.RoleAdmin)

	// --- Account routes ---
	users := e.Group("/api/users")
	users.POST("/auth/register", authHandler.Register)
	users.POST("/auth/login", authHandler.Login)
	users.GET("/verify-email/:id/:token", authHandler.VerifyEmail)
	users.POST("/forgot-password", authHandler.ForgotPassword)
	users.GET("/reset-password/:id/:token", authHandler.ValidateResetLink)
	users.POST("/reset-password", authHandler.ResetPassword)

	users.GET("/current-user", userHandler.CurrentUser, guardAny)
	users.GET("", userHandler.List, guardAdmin)
	users.PUT("", userHandler.Update, guardAny)
	users.POST("/profile-photo", userHandler.UploadProfilePhoto, guardAny)
	users.DELETE("/profile-photo", userHandler.RemoveProfilePhoto, guardAny)
	users.DELETE("/:id", userHandler.Delete, guardAny)

	// --- Catalog routes ---
	products := e.Group("/api/products")
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.POST("", productHandler.Create, guardAdmin)
	products.PUT("/:id", productHandler.Update, guardAdmin)
	products.DELETE("/:id", productHandler.Delete, guardAdmin)
	products.POST("/:id/reviews", reviewHandler.Create, guardAny)

	// --- Review routes ---
	reviews := e.Group("/api/reviews")
	reviews.GET("", reviewHandler.List, guardAdmin)
	reviews.PUT("/:id", reviewHandler.Update, guardAny)
	reviews.DELETE("/:id", reviewHandler.Delete, guardAny)

	// --- Uploaded profile photos ---
	e.Static("/images/users", cfg.UploadDir)

	// --- Health probes and operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, nil
}
