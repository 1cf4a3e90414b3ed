package main

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/confessbox/confessbox/internal/config"
	"github.com/confessbox/confessbox/internal/constants"
	"github.com/confessbox/confessbox/internal/database"
	"github.com/confessbox/confessbox/internal/handlers"
	"github.com/confessbox/confessbox/internal/middleware"
	"github.com/confessbox/confessbox/internal/repository"
	"github.com/confessbox/confessbox/internal/services"
	"github.com/confessbox/confessbox/internal/storage"
	"github.com/confessbox/confessbox/web"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Picture storage: local upload directory by default, MinIO when configured
	pictures, err := newPictureStore(cfg)
	if err != nil {
		logrus.Fatalf("Failed to set up picture storage: %v", err)
	}

	// Initialize Gin router with the embedded templates
	r := gin.Default()
	r.SetHTMLTemplate(web.Templates())

	// Setup session middleware: Redis-backed when configured, cookie store otherwise
	var store sessions.Store
	if cfg.RedisHost != "" {
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		store, err = redisStore.NewStore(10, "tcp", redisAddr, "", "", []byte(cfg.SessionSecret))
		if err != nil {
			logrus.Fatalf("Failed to create Redis store: %v", err)
		}
	} else {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.Use(middleware.CurrentUser())

	// Wire repositories, services, handlers
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	confessionRepo := repository.NewConfessionRepository(db)

	authService := services.NewAuthService(userRepo)
	confessionService := services.NewConfessionService(userRepo, confessionRepo)
	profileService := services.NewProfileService(userRepo, pictures, cfg.AllowedImageExts)

	authHandler := handlers.NewAuthHandler(authService)
	confessionHandler := handlers.NewConfessionHandler(confessionService, authService)
	profileHandler := handlers.NewProfileHandler(profileService, cfg.MaxUploadBytes)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Confessions app is running",
		})
	})

	// Public routes
	r.GET("/", authHandler.Home)
	r.GET("/register", authHandler.RegisterForm)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.LoginForm)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)
	r.GET("/uploads/:filename", profileHandler.Picture)

	// Per-user routes
	user := r.Group("/:username")
	{
		user.GET("/confess", confessionHandler.Form)
		user.POST("/confess", confessionHandler.Submit)
		user.GET("/dashboard", middleware.RequireOwner(), confessionHandler.Dashboard)
		user.GET("/profile", profileHandler.Show)
		user.GET("/profile/update", middleware.RequireOwner(), profileHandler.EditForm)
		user.POST("/profile/update", middleware.RequireOwner(), profileHandler.Update)
	}

	// Start server
	addr := ":" + cfg.AppPort
	logrus.Infof("Server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}

func newPictureStore(cfg *config.Config) (storage.PictureStore, error) {
	if cfg.PictureStore == "minio" {
		return storage.NewMinioStore(context.Background(),
			cfg.MinioEndpoint,
			cfg.MinioAccessKey,
			cfg.MinioSecretKey,
			cfg.MinioBucket,
			cfg.MinioUseSSL,
		)
	}
	return storage.NewLocalStore(cfg.UploadDir)
}
