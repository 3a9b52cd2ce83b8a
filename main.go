package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mangashelf/internal/cache"
	"mangashelf/internal/config"
	"mangashelf/internal/handlers"
	"mangashelf/internal/middleware"
	"mangashelf/internal/models"
	"mangashelf/internal/repositories"
	"mangashelf/internal/services"
	"mangashelf/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set in the environment")
	}

	// --- Database ---
	db, err := openDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Story{},
		&models.Chapter{},
		&models.Interaction{},
		&models.Comment{},
		&models.Genre{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Cache (optional) ---
	var homeCache cache.Cache
	if cfg.RedisAddr != "" {
		redisClient, err := cache.Connect(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		homeCache = cache.NewRedisCache(redisClient)
		log.Println("Redis connection successfully opened.")
	}

	// --- Event broker (optional) ---
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	storyRepo := repositories.NewGORMStoryRepository(db)
	chapterRepo := repositories.NewGORMChapterRepository(db)
	interactionRepo := repositories.NewGORMInteractionRepository(db)
	commentRepo := repositories.NewGORMCommentRepository(db)
	genreRepo := repositories.NewGORMGenreRepository(db)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenDuration)
	catalogService := services.NewCatalogService(
		storyRepo, chapterRepo, interactionRepo, genreRepo, userRepo, commentRepo,
		homeCache, cfg.HomeCacheTTL,
	)
	interactionService := services.NewInteractionService(interactionRepo, storyRepo, commentRepo, mqClient)
	adminService := services.NewAdminService(storyRepo, chapterRepo, genreRepo)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService, cfg.TokenDuration)
	storyHandler := handlers.NewStoryHandler(catalogService)
	interactionHandler := handlers.NewInteractionHandler(interactionService)
	adminHandler := handlers.NewAdminHandler(adminService)
	profileHandler := handlers.NewProfileHandler(authService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New())
	app.Use(middleware.Session(authService))
	app.Use(middleware.PageGate(middleware.DefaultRules))

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)
	storyHandler.RegisterRoutes(apiV1)
	interactionHandler.RegisterRoutes(apiV1)
	adminHandler.RegisterRoutes(apiV1)
	profileHandler.RegisterRoutes(apiV1)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for interaction events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received interaction event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeInteractionEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// openDatabase opens the configured GORM backend.
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(cfg.DBDSN), &gorm.Config{})
	}
}
