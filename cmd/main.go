package main

import (
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "anime-stream/docs"
	"anime-stream/internal/config"
	"anime-stream/internal/database"
	"anime-stream/internal/handlers"
	"anime-stream/internal/middleware"
	"anime-stream/internal/repository"
	"anime-stream/internal/routes"
	"anime-stream/internal/services"
	"anime-stream/internal/web"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

// @title AnimeStream API
// @version 1.0
// @description Anime streaming catalog: public browsing, the active advertisement slot and the admin back office for anime and advertisements
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/yourusername/anime-stream
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8010
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	config.LoadEnvFile(bootLogger())
	cfg := config.Load()
	log := setupLogger()

	if err := cfg.Validate(); err != nil {
		log.Warnf("Configuration validation warning: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Errorf("Error closing database connection: %v", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	minioService, err := services.NewMinIOService(&cfg.MinIO, log)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}

	app := newServer(cfg, db, minioService, log)

	go gracefulShutdown(app, log)

	log.WithFields(logrus.Fields{
		"port":   cfg.Server.Port,
		"bucket": cfg.MinIO.BucketName,
		"auth":   cfg.Auth.BaseURL,
	}).Info("AnimeStream starting")
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start HTTP server: %v", err)
	}
}

// newServer wires repositories, services and handlers onto a fiber app.
func newServer(cfg *config.Config, db *database.Database, minioService *services.MinIOService, log *logrus.Logger) *fiber.App {
	animeRepo := repository.NewAnimeRepository(db)
	adRepo := repository.NewAdvertisementRepository(db)
	roleRepo := repository.NewUserRoleRepository(db)

	catalogService := services.NewCatalogService(animeRepo, adRepo, log)
	animeService := services.NewAnimeService(animeRepo, log)
	adService := services.NewAdvertisementService(adRepo, log)
	if as, ok := animeService.(interface{ SetPosterStore(services.PosterStore) }); ok {
		as.SetPosterStore(minioService)
	}

	adminGate := services.NewAdminGate(services.NewSessionProvider(cfg.Auth, log), roleRepo, log)
	gate := middleware.NewGate(adminGate, cfg.Auth.CookieName, cfg.Auth.EntryURL)

	app := fiber.New(fiber.Config{
		AppName:      "AnimeStream",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
		Views:        web.NewEngine(),
		ErrorHandler: customErrorHandler(log),
	})

	setupMiddleware(app)

	app.Get("/health", healthCheckHandler(db))
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	routes.Setup(app, gate,
		handlers.NewCatalogHandler(catalogService, log),
		handlers.NewAdminHandler(animeService, adService, log),
		handlers.NewUploadHandler(minioService, log),
		handlers.NewPagesHandler(catalogService, animeService, adService, adminGate, gate, log),
	)
	return app
}

func bootLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{})
	log.SetOutput(os.Stdout)
	return log
}

func setupLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	if os.Getenv("GO_ENV") == "dev" || os.Getenv("GO_ENV") == "development" {
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}

func setupMiddleware(app *fiber.App) {
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	app.Use(requestid.New())

	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${locals:requestid} | ${method} | ${path} | ${error}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	// Pages are same-origin; only the JSON API is opened up.
	app.Use("/api", cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
		MaxAge:       86400,
	}))
}

// healthCheckHandler reports 503 while the database is unreachable so a
// load balancer can take the instance out of rotation.
func healthCheckHandler(db *database.Database) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, code := "ok", fiber.StatusOK
		dbStatus := "healthy"
		if err := db.HealthCheck(); err != nil {
			status, code, dbStatus = "degraded", fiber.StatusServiceUnavailable, "unhealthy"
		}

		return c.Status(code).JSON(fiber.Map{
			"status":    status,
			"service":   "anime-stream",
			"version":   "1.0.0",
			"database":  dbStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// customErrorHandler answers API routes with the JSON envelope and pages
// with plain status text. 5xx details stay in the log.
func customErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		entry := log.WithError(err).WithFields(logrus.Fields{
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     code,
			"request_id": c.Locals("requestid"),
		})
		if code >= fiber.StatusInternalServerError {
			entry.Error("Request error")
		} else {
			entry.Debug("Request rejected")
		}

		message := utils.StatusMessage(code)
		if code < fiber.StatusInternalServerError {
			message = err.Error()
		}

		if !strings.HasPrefix(c.Path(), "/api") {
			return c.Status(code).SendString(message)
		}
		return c.Status(code).JSON(fiber.Map{
			"status":  "error",
			"code":    code,
			"message": message,
		})
	}
}

func gracefulShutdown(app *fiber.App, log *logrus.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		log.Errorf("Error during shutdown: %v", err)
	}

	log.Info("Server shutdown complete")
}
