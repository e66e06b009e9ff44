package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/talentsafricains/showcase/internal/config"
	"github.com/talentsafricains/showcase/internal/database"
	"github.com/talentsafricains/showcase/internal/handler"
	"github.com/talentsafricains/showcase/internal/middleware"
	"github.com/talentsafricains/showcase/internal/models"
	"github.com/talentsafricains/showcase/internal/repository"
	"github.com/talentsafricains/showcase/internal/service"
	"github.com/talentsafricains/showcase/internal/upload"
	"github.com/talentsafricains/showcase/pkg/logger"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db := database.Connect(cfg)
	database.Migrate(db)

	uploads, err := upload.NewSaver(cfg.UploadDir, cfg.MaxUploadSize)
	if err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	projectService := service.NewProjectService(projectRepo, likeRepo, commentRepo)
	interactionService := service.NewInteractionService(likeRepo, commentRepo, projectRepo)
	adminService := service.NewAdminService(statsRepo, userRepo, projectRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, uploads)
	projectHandler := handler.NewProjectHandler(projectService, uploads)
	interactionHandler := handler.NewInteractionHandler(interactionService)
	adminHandler := handler.NewAdminHandler(adminService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.MaxMultipartMemory = cfg.MaxUploadSize

	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.HSTSMiddleware(cfg.IsProduction()))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Uploaded images are served straight from disk.
	router.Static("/uploads", cfg.UploadDir)

	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"success": true, "message": "API up"})
	})

	// Auth routes, rate-limited when Redis is configured.
	auth := api.Group("/auth")
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Invalid REDIS_URL: %v", err)
		}
		limiter := middleware.NewRateLimiter(redis.NewClient(opts), middleware.RateLimiterConfig{
			MaxRequests: cfg.RateLimitMaxRequests,
			Window:      cfg.RateLimitWindow,
			BlockTime:   cfg.RateLimitBlockTime,
		})
		auth.Use(limiter.Middleware())
	}
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/user/:id", authHandler.GetPublicProfile)

	authed := api.Group("/auth")
	authed.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	authed.GET("/profile", authHandler.GetProfile)
	authed.PUT("/profile", authHandler.UpdateProfile)

	// Project routes
	projects := api.Group("/projects")
	projects.GET("", projectHandler.GetAll)
	projects.GET("/user/:userId", projectHandler.GetByUser)
	projects.GET("/my", middleware.AuthMiddleware(cfg.JWTSecret), projectHandler.GetMine)
	projects.GET("/:id", middleware.OptionalAuthMiddleware(cfg.JWTSecret), projectHandler.GetByID)
	projects.POST("",
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.RequireRole(models.RoleProjectOwner),
		projectHandler.Create,
	)
	projects.PUT("/:id", middleware.AuthMiddleware(cfg.JWTSecret), projectHandler.Update)
	projects.DELETE("/:id", middleware.AuthMiddleware(cfg.JWTSecret), projectHandler.Delete)

	// Interaction routes
	interactions := api.Group("/interactions")
	interactions.GET("/likes/:projectId", interactionHandler.GetLikes)
	interactions.GET("/comments/:projectId", interactionHandler.GetComments)
	interactions.POST("/like/:projectId", middleware.AuthMiddleware(cfg.JWTSecret), interactionHandler.ToggleLike)
	interactions.POST("/comment/:projectId", middleware.AuthMiddleware(cfg.JWTSecret), interactionHandler.AddComment)
	interactions.DELETE("/comment/:commentId", middleware.AuthMiddleware(cfg.JWTSecret), interactionHandler.DeleteComment)

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg.JWTSecret), middleware.RequireRole(models.RoleAdmin))
	admin.GET("/statistics", adminHandler.GetStatistics)
	admin.GET("/users", adminHandler.GetAllUsers)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/projects", adminHandler.GetAllProjects)
	admin.DELETE("/projects/:id", adminHandler.DeleteProject)

	router.NoRoute(handler.NotFoundHandler)

	log.Printf("Server starting on %s", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
