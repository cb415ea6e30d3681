package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/Mohammad8002/THE-GRAM/internal/handlers"
	"github.com/Mohammad8002/THE-GRAM/internal/middleware"
	"github.com/Mohammad8002/THE-GRAM/internal/models"
	"github.com/Mohammad8002/THE-GRAM/internal/realtime"
	"github.com/Mohammad8002/THE-GRAM/internal/repositories"
	"github.com/Mohammad8002/THE-GRAM/internal/services"
	"github.com/Mohammad8002/THE-GRAM/pkg/config"
	"github.com/Mohammad8002/THE-GRAM/pkg/storage"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, db *config.DB, firebaseAuthClient *auth.Client, media storage.ObjectStore) {
	// AutoMigrate PostgreSQL models
	if err := db.Postgres.AutoMigrate(&models.Message{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{"message": "Welcome to server", "success": true})
	})

	mongoDB := db.Mongo.Database(cfg.MongoDatabase)

	// --- Initialize Repositories ---
	userRepo := repositories.NewMongoUserRepository(mongoDB)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	commentRepo := repositories.NewMongoCommentRepository(mongoDB)
	messageRepo := repositories.NewPostgresMessageRepository(db.Postgres)
	tokenRepo := repositories.NewRedisTokenRepository(db.Redis)

	// --- Realtime: connection registry, dispatcher and websocket endpoint ---
	// The registry is owned here and injected everywhere it is needed.
	registry := realtime.NewRegistry()
	dispatcher := realtime.NewDispatcher(registry)
	wsHandler := realtime.NewWSHandler(registry)
	e.GET("/ws", wsHandler.Serve)
	log.Println("Realtime channel configured.")

	// --- Services ---
	interactionService := services.NewInteractionService(userRepo, postRepo, commentRepo, dispatcher)
	messageService := services.NewMessageService(userRepo, messageRepo, dispatcher)

	authMW := middleware.JWTAuthMiddleware(cfg.JWTSecret, tokenRepo)

	// --- Auth routes (register/login unprotected, logout reads its own token) ---
	userGroup := e.Group("/user")
	authHandler := handlers.NewAuthHandler(userRepo, tokenRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(userGroup)
	log.Println("Auth routes configured.")

	// --- Protected user routes ---
	userProtected := e.Group("/user", authMW)
	userHandler := handlers.NewUserHandler(userRepo, interactionService, media)
	userHandler.RegisterUserRoutes(userProtected)
	log.Println("User routes configured.")

	// --- Post routes (posts, likes, comments share the /post group) ---
	postGroup := e.Group("/post", authMW)
	postHandler := handlers.NewPostHandler(postRepo, userRepo, commentRepo, media)
	postHandler.RegisterPostRoutes(postGroup)

	likeHandler := handlers.NewLikeHandler(interactionService)
	likeHandler.RegisterLikeRoutes(postGroup)

	commentHandler := handlers.NewCommentHandler(interactionService, commentRepo, postRepo)
	commentHandler.RegisterCommentRoutes(postGroup)
	log.Println("Post, like and comment routes configured.")

	// --- Message routes ---
	messageGroup := e.Group("/message", authMW)
	messageHandler := handlers.NewMessageHandler(messageService)
	messageHandler.RegisterMessageRoutes(messageGroup)
	log.Println("Message routes configured.")

	log.Println("All routes configured.")
}
