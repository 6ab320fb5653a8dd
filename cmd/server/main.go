package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	config "postdeck/configs"
	"postdeck/internal/api/handlers"
	"postdeck/internal/api/middleware"
	job "postdeck/internal/jobs"
	"postdeck/internal/publisher"
	"postdeck/internal/repository"
	"postdeck/internal/scheduler"
	"postdeck/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	validate := validator.New()

	userRepo := repository.NewUserRepository()
	postRepo := repository.NewPostRepository()
	scheduleRepo := repository.NewScheduleRepository()
	platformRepo := repository.NewPlatformRepository()
	mediaRepo := repository.NewMediaAssetRepository()
	settingsRepo := repository.NewSettingsRepository()
	apiKeyRepo := repository.NewApiKeyRepository()

	runner := cron.New(cron.WithLocation(time.UTC))
	simPublisher := publisher.NewSimulated(service.AvailablePlatforms, cfg.PublishConcurrency)
	engine := scheduler.New(runner, scheduleRepo, simPublisher, cfg.PublishTimeout)

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo)
	postService := service.NewPostService(postRepo)
	scheduleService := service.NewScheduleService(scheduleRepo, engine)
	platformService := service.NewPlatformService(*cfg, platformRepo)
	analyticsService := service.NewAnalyticsService(postRepo)
	mediaService := service.NewMediaService(*cfg, mediaRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	apiKeyService := service.NewApiKeyService(apiKeyRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, apiKeyService)

	auth := handlers.NewAuthHandler(*cfg, authService, validate)
	app.Post("/register", auth.Register)
	app.Post("/login", auth.Login)
	app.Post("/logout", auth.Logout)
	app.Get("/login/google", auth.GoogleLogin)
	app.Get("/login/callback", auth.GoogleCallback)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(userService)
	api.Get("/user/info", user.GetUserInfo)

	settings := handlers.NewSettingsHandler(settingsService)
	api.Get("/settings", settings.Get)
	api.Put("/settings", settings.Update)

	apiKeys := handlers.NewApiKeyHandler(apiKeyService)
	api.Post("/api_key/new", apiKeys.Create)
	api.Get("/api_key/list", apiKeys.List)
	api.Post("/api_key/remove", apiKeys.Remove)

	post := handlers.NewPostHandler(postService, validate)
	api.Get("/posts", post.List)
	api.Get("/posts/:id", post.Get)
	api.Post("/posts", post.Create)
	api.Put("/posts/:id", post.Update)
	api.Delete("/posts/:id", post.Remove)
	api.Post("/posts/:id/publish", post.Publish)

	schedule := handlers.NewScheduleHandler(scheduleService, validate)
	api.Get("/schedule", schedule.List)
	api.Post("/schedule", schedule.Create)
	api.Get("/schedule/upcoming", schedule.Upcoming)
	api.Get("/schedule/calendar", schedule.Calendar)
	api.Get("/schedule/optimal-times", schedule.OptimalTimes)
	api.Get("/schedule/:id", schedule.Get)
	api.Put("/schedule/:id", schedule.Update)
	api.Delete("/schedule/:id", schedule.Cancel)

	platform := handlers.NewPlatformHandler(platformService, validate)
	api.Get("/platforms/available", platform.Available)
	api.Get("/platforms/connected", platform.Connected)
	api.Post("/platforms/connect", platform.Connect)
	api.Delete("/platforms/:id", platform.Disconnect)

	analytics := handlers.NewAnalyticsHandler(analyticsService)
	api.Get("/analytics/dashboard", analytics.Dashboard)
	api.Get("/analytics/platform/:platform", analytics.Platform)
	api.Get("/analytics/posts/:id", analytics.Post)

	media := handlers.NewMediaHandler(mediaService)
	api.Post("/media/upload", media.Upload)
	api.Get("/media", media.List)

	// background jobs share the scheduler's cron runner
	syncJob := job.NewPlatformSyncJob(platformRepo, platformService)
	if _, err := runner.AddFunc(cfg.StatsSyncSchedule, syncJob.SyncStats); err != nil {
		log.Fatalf("Failed to register stats sync job: %v", err)
	}
	runner.Start()
	defer runner.Stop()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(app)
}

func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	log.Println("Server shutdown complete.")
}
